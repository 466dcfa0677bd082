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

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/retr0h/termrun/internal/cli"
	"github.com/retr0h/termrun/internal/config"
	"github.com/retr0h/termrun/internal/launch"
	"github.com/retr0h/termrun/internal/telemetry"
)

const defaultConfigName = ".termrun.yaml"

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stderr, nil))
	jsonOutput bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "termrun",
	Short: "Run the file you are editing in a new terminal window.",
	Long: `Save the file you are editing and run it with its interpreter inside
a freshly spawned terminal window that outlives the editor.

Bind your editor's run hotkeys to "termrun run primary <file>" and
"termrun run secondary <file>".

https://github.com/retr0h/termrun
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")
	rootCmd.PersistentFlags().
		StringVarP(&configFile, "config", "c", "", "Path to config file (default $HOME/"+defaultConfigName+")")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("commands.primary", "python {file}")
	viper.SetDefault("commands.secondary", "python {file}")
	viper.SetDefault("extension_filter", []string{})
	viper.SetDefault("pause.primary", true)
	viper.SetDefault("pause.secondary", true)
	viper.SetDefault("pipe.enabled", false)
	viper.SetDefault("pipe.destination", "")
	viper.SetDefault("custom_terminal.program", "")
	viper.SetDefault("custom_terminal.flags", []string{})
	viper.SetDefault("environment_variables", []string{})
	viper.SetDefault("env_file", false)
	viper.SetDefault("console_log", false)
	viper.SetDefault("direct", false)
	viper.SetDefault("script_path", "")
	viper.SetDefault("interpreter", launch.DefaultInterpreter)
	viper.SetDefault("output_policy", config.PolicyExclusive)
	viper.SetDefault("telemetry.tracing.enabled", false)
	viper.SetDefault("telemetry.tracing.exporter", "")
	viper.SetDefault("telemetry.tracing.otlp_endpoint", "")
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("termrun")

	explicit := configFile != ""
	path := configFile
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, defaultConfigName)
		}
	}
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
		if explicit || !missing {
			cli.LogFatal(logger, "failed to read config", err, "config", path)
		}
	}

	err := viper.Unmarshal(&appConfig, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	})
	if err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "config", viper.ConfigFileUsed())
	}

	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}

	if err := config.Validate(&appConfig); err != nil {
		cli.LogFatal(logger, "validation failed", err, "config", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}
