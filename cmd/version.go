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
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X".
var version = ""

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(_ *cobra.Command, _ []string) error {
		info := buildInfo()

		if jsonOutput {
			out, err := info.JSONString()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		fmt.Println(info.String())
		return nil
	},
}

func buildInfo() goversion.Info {
	info := goversion.GetVersionInfo(
		goversion.WithAppDetails(
			"termrun",
			"Run the file you are editing in a new terminal window.",
			"https://github.com/retr0h/termrun",
		),
	)
	if version != "" {
		info.GitVersion = version
	}

	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
