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

// Package main implements the osxripper command line tool. It extracts
// forensic artifacts from a copied or mounted macOS filesystem tree into
// text reports.
//
//	run        Extract artifacts into reports
//	releases   List the accepted OS releases
//	artifacts  List the extracted artifacts
//	plist      Dump a property list
//	records    Query a record store
//
// # Usage
//
// Extract all artifacts of an El Capitan image:
//
//	osxripper run -i /mnt/image -o /cases/1 --os-version el_capitan
//
// Additionally keep all records in a SQLite file:
//
//	osxripper run -i /mnt/image -o /cases/1 --os-version el_capitan --store /cases/1/records.sqlite
//	osxripper records select accounts /cases/1/records.sqlite
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/osxripper/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "osxripper",
		Short:        "Extract forensic artifacts from macOS filesystem trees",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(cmd.Run(), cmd.Releases(), cmd.Artifacts(), cmd.Plist(), cmd.Records())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
