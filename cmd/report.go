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

	"github.com/kll3425/cmdusage/usagestore"
)

// Report is the cmdusage report commandline subcommand
func Report() *cobra.Command {
	reportCommand := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored command usage reports",
	}
	reportCommand.AddCommand(listCommand(), showCommand(), searchCommand())
	return reportCommand
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <store>",
		Short: "List all stored reports",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := usagestore.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close() // nolint:errcheck

			summaries, err := store.List()
			if err != nil {
				return err
			}
			b, _ := json.Marshal(summaries)
			fmt.Printf("%s\n", b)
			return nil
		},
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id> <store>",
		Short: "Retrieve a single report",
		Args:  cobra.ExactArgs(2), // nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			id := cmd.Flags().Args()[0]
			storeName := cmd.Flags().Args()[1]
			store, err := usagestore.Open(storeName)
			if err != nil {
				return err
			}
			defer store.Close() // nolint:errcheck

			report, err := store.Get(id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", report)
			return nil
		},
	}
}

func searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <command> <store>",
		Short: "Retrieve all reports mentioning a command",
		Args:  cobra.ExactArgs(2), // nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			query := cmd.Flags().Args()[0]
			storeName := cmd.Flags().Args()[1]
			store, err := usagestore.Open(storeName)
			if err != nil {
				return err
			}
			defer store.Close() // nolint:errcheck

			reports, err := store.Search(query)
			if err != nil {
				return err
			}
			for _, report := range reports {
				fmt.Printf("%s\n", report)
			}
			return nil
		},
	}
}
