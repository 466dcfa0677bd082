// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package config

// Output policies accepted by OutputPolicy.
const (
	// PolicyExclusive requires exactly one of pause or pipe per binding.
	PolicyExclusive = "exclusive"
	// PolicyPermissive accepts any combination, including neither.
	PolicyPermissive = "permissive"
)

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Commands Commands `mapstructure:"commands"`
	// ExtensionFilter lists the file extensions allowed to run. Empty
	// allows every file.
	ExtensionFilter []string `mapstructure:"extension_filter"`
	Pause           Pause    `mapstructure:"pause"`
	Pipe            Pipe     `mapstructure:"pipe"`
	// CustomTerminal replaces the detected terminal when Program is set.
	CustomTerminal CustomTerminal `mapstructure:"custom_terminal"`
	// EnvironmentVariables are KEY:VALUE pairs merged into the child
	// environment.
	EnvironmentVariables []string `mapstructure:"environment_variables" validate:"dive,env_pair"`
	// EnvFile loads a .env file from the script's directory beneath
	// EnvironmentVariables.
	EnvFile bool `mapstructure:"env_file"`
	// ConsoleLog streams the terminal's output into the log.
	ConsoleLog bool `mapstructure:"console_log"`
	// Direct runs the formatted command straight in the terminal
	// without a helper. Pause and pipe are unavailable then.
	Direct bool `mapstructure:"direct"`
	// ScriptPath is an external helper script. Empty selects the
	// default location when a script is installed there, and the
	// builtin exec subcommand otherwise.
	ScriptPath string `mapstructure:"script_path"`
	// Interpreter runs the external helper script.
	Interpreter  string    `mapstructure:"interpreter"`
	OutputPolicy string    `mapstructure:"output_policy"         validate:"omitempty,oneof=exclusive permissive"`
	Telemetry    Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Commands holds the command template of each binding.
type Commands struct {
	Primary   string `mapstructure:"primary"   validate:"required"`
	Secondary string `mapstructure:"secondary" validate:"required"`
}

// Pause holds whether each binding keeps its terminal open after exit.
type Pause struct {
	Primary   bool `mapstructure:"primary"`
	Secondary bool `mapstructure:"secondary"`
}

// Pipe redirects child output to a file.
type Pipe struct {
	Enabled     bool   `mapstructure:"enabled"`
	Destination string `mapstructure:"destination"`
}

// CustomTerminal overrides terminal detection.
type CustomTerminal struct {
	Program string `mapstructure:"program"`
	// Flags replace the execute flag. Empty picks the program's known
	// flag.
	Flags []string `mapstructure:"flags"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}
