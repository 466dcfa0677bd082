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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retr0h/termrun/internal/cli"
	"github.com/retr0h/termrun/internal/exec"
	"github.com/retr0h/termrun/internal/runner"
	"github.com/retr0h/termrun/internal/session"
)

var (
	terminalProbe bool
	terminalList  bool
)

type terminalReport struct {
	Platform     string            `json:"platform"`
	Session      string            `json:"session"`
	Desktop      string            `json:"desktop"`
	ShellProgram string            `json:"shell_program"`
	ShellOptions []string          `json:"shell_options"`
	Builder      string            `json:"builder"`
	Helper       string            `json:"helper"`
	HelperArgv   []string          `json:"helper_argv,omitempty"`
	Probe        *exec.ProbeResult `json:"probe,omitempty"`
}

// terminalCmd represents the terminal command.
var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Show the terminal a run would launch",
	Long: `Show the detected desktop session and the terminal program, options and
helper a run would use on this machine.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if terminalList {
			printKnownTerminals()
			return nil
		}

		r, err := newRunner()
		if err != nil {
			return err
		}

		desc, mode, err := r.Descriptor()
		if err != nil {
			return err
		}

		hints := session.NewResolver(nil).Hints()
		report := terminalReport{
			Platform:     string(desc.Platform),
			Session:      hints.Session,
			Desktop:      hints.Desktop,
			ShellProgram: desc.ShellProgram,
			ShellOptions: desc.ShellOptions,
			Builder:      desc.Builder.String(),
			Helper:       string(mode),
		}
		if mode != runner.HelperDirect {
			report.HelperArgv = []string{desc.Interpreter, desc.Target}
		}

		if terminalProbe {
			res, err := exec.New(logger).
				Probe(desc.ShellProgram, []string{"--version"}, exec.DefaultProbeTimeout)
			if err != nil {
				cli.LogFatal(logger, "probe failed", err, "program", desc.ShellProgram)
			}
			report.Probe = res
		}

		if jsonOutput {
			out, err := json.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		printReport(report)
		return nil
	},
}

func printReport(
	report terminalReport,
) {
	fmt.Println()
	cli.PrintKV("Platform", report.Platform, "Builder", report.Builder)
	cli.PrintKV("Session", orUnset(report.Session), "Desktop", orUnset(report.Desktop))
	cli.PrintKV("Terminal", report.ShellProgram, "Options", strings.Join(report.ShellOptions, " "))
	if len(report.HelperArgv) > 0 {
		cli.PrintKV("Helper", report.Helper, "Command", strings.Join(report.HelperArgv, " "))
	} else {
		cli.PrintKV("Helper", report.Helper)
	}
	if p := report.Probe; p != nil {
		cli.PrintKV("Probe", "exit "+strconv.Itoa(p.ExitCode), "Duration", fmt.Sprintf("%dms", p.DurationMs))
		if line := firstLine(p.Stdout); line != "" {
			fmt.Println("  " + cli.DimStyle.Render(line))
		}
	}
}

func printKnownTerminals() {
	rows := make([][]string, 0)
	for _, program := range session.KnownTerminals() {
		rows = append(rows, []string{program, session.FlagFor(program)})
	}

	cli.PrintTable([]cli.Section{
		{
			Title:   "Terminals",
			Headers: []string{"program", "flag"},
			Rows:    rows,
		},
	})
}

func orUnset(
	s string,
) string {
	if s == "" {
		return "unset"
	}

	return s
}

func firstLine(
	s string,
) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")

	return line
}

func init() {
	rootCmd.AddCommand(terminalCmd)

	terminalCmd.Flags().
		BoolVarP(&terminalProbe, "probe", "p", false, "Run the terminal with --version to check it is installed")
	terminalCmd.Flags().
		BoolVarP(&terminalList, "list", "l", false, "List the terminals termrun knows how to drive")
}
