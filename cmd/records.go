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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/osxripper/recordstore"
)

// Records is the osxripper records commandline subcommand.
func Records() *cobra.Command {
	recordsCommand := &cobra.Command{
		Use:   "records",
		Short: "Query a record store written by run --store",
	}
	recordsCommand.AddCommand(getCommand(), selectCommand(), allCommand(), searchCommand())
	return recordsCommand
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <store>",
		Short: "Retrieve a single record",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(args[1], func(store *recordstore.Store) (interface{}, error) {
				element, err := store.Get(args[0])
				return json.RawMessage(element), err
			}, cmd)
		},
	}
}

func selectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <artifact> <store>",
		Short: "Retrieve all records of an artifact",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(args[1], func(store *recordstore.Store) (interface{}, error) {
				return rawList(store.Select(args[0]))
			}, cmd)
		},
	}
}

func allCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all <store>",
		Short: "Retrieve all records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(args[0], func(store *recordstore.Store) (interface{}, error) {
				return rawList(store.All())
			}, cmd)
		},
	}
}

func searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query> <store>",
		Short: "Full text search over all records",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(args[1], func(store *recordstore.Store) (interface{}, error) {
				return rawList(store.Search(args[0]))
			}, cmd)
		},
	}
}

func withStore(name string, query func(store *recordstore.Store) (interface{}, error), cmd *cobra.Command) error {
	store, err := recordstore.Open(name)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := query(store)
	if err != nil {
		return err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
	return nil
}

func rawList(elements []recordstore.JSONElement, err error) ([]json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	list := make([]json.RawMessage, len(elements))
	for i, element := range elements {
		list[i] = json.RawMessage(element)
	}
	return list, nil
}
