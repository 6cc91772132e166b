// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/osxripper"
	"github.com/forensicanalysis/osxripper/datasource"
	"github.com/forensicanalysis/osxripper/goflatten"
)

// Releases is the osxripper releases commandline subcommand.
func Releases() *cobra.Command {
	return &cobra.Command{
		Use:   "releases",
		Short: "List the OS releases accepted by --os-version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, release := range osxripper.Releases() {
				fmt.Fprintln(cmd.OutOrStdout(), release)
			}
			return nil
		},
	}
}

// Artifacts is the osxripper artifacts commandline subcommand.
func Artifacts() *cobra.Command {
	var release string
	artifactsCommand := &cobra.Command{
		Use:   "artifacts",
		Short: "List the extracted artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0) // nolint:gomnd
			for _, plugin := range osxripper.Plugins() {
				line := plugin.Family().Slug() + "\t" + plugin.Title()
				if release != "" {
					line += "\t" + support(plugin.Family(), osxripper.ParseRelease(release))
				}
				fmt.Fprintln(w, line+"\t"+plugin.Description())
			}
			return w.Flush()
		},
	}
	artifactsCommand.Flags().StringVar(&release, "os-version", "", "show support for this release")
	return artifactsCommand
}

func support(family osxripper.Family, release osxripper.Release) string {
	resolution := osxripper.Resolve(family, release)
	switch resolution.Kind {
	case osxripper.Supported:
		return string(resolution.Era)
	case osxripper.NotInRelease:
		return "not in release"
	default:
		return "unknown release"
	}
}

// Plist is the osxripper plist commandline subcommand.
func Plist() *cobra.Command {
	return &cobra.Command{
		Use:   "plist <file>",
		Short: "Print all values of a property list as flattened key value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := datasource.LoadPlist(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			flat, err := goflatten.Flatten(doc.Tree())
			if err != nil {
				return err
			}
			for _, line := range goflatten.Lines(flat) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
