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
	"io"
	"io/ioutil"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kll3425/cmdusage"
	"github.com/kll3425/cmdusage/source"
	"github.com/kll3425/cmdusage/usagestore"
)

// analyzeRunner invokes the external tools, tests swap in canned output.
var analyzeRunner source.Runner = source.ExecRunner{}

// Analyze is the cmdusage analyze commandline subcommand
func Analyze() *cobra.Command { // nolint:funlen
	var (
		configPath      string
		historyPatterns []string
		syslogPaths     []string
		rootPrefix      string
		imagePath       string
		processTimeout  time.Duration
		auditTimeout    time.Duration
		jsonPath        string
		storePath       string
	)
	analyzeCommand := &cobra.Command{
		Use:   "analyze",
		Short: "Collect and rank command usage from all sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cmdusage.DefaultConfig()
			if configPath != "" {
				var err error
				config, err = cmdusage.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}
			if len(historyPatterns) > 0 {
				config.HistoryPatterns = historyPatterns
			}
			if len(syslogPaths) > 0 {
				config.SystemLogPaths = syslogPaths
			}
			if rootPrefix != "" {
				config.RootPrefix = rootPrefix
			}
			if processTimeout > 0 {
				config.ProcessTimeout = cmdusage.Duration(processTimeout)
			}
			if auditTimeout > 0 {
				config.AuditTimeout = cmdusage.Duration(auditTimeout)
			}

			if imagePath != "" {
				mountPoint, unmount, err := mountImage(cmd.Context(), imagePath)
				if err != nil {
					return err
				}
				defer unmount()
				config.RootPrefix = mountPoint
			}

			pipeline, err := cmdusage.New(config)
			if err != nil {
				return err
			}
			pipeline.SetRunner(analyzeRunner)

			report, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonPath != "" {
				if err := writeJSON(jsonPath, report); err != nil {
					return err
				}
			}
			if storePath != "" {
				if err := storeReport(storePath, report); err != nil {
					return err
				}
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	flags := analyzeCommand.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "yaml configuration file")
	flags.StringSliceVar(&historyPatterns, "history", nil, "shell history glob patterns")
	flags.StringSliceVar(&syslogPaths, "syslog", nil, "system log files")
	flags.StringVar(&rootPrefix, "root", "", "resolve all paths under this directory")
	flags.StringVar(&imagePath, "image", "", "mount this disk image and analyze it instead of the live system")
	flags.DurationVar(&processTimeout, "ps-timeout", 0, "timeout for the process listing")
	flags.DurationVar(&auditTimeout, "audit-timeout", 0, "timeout for the audit search")
	flags.StringVar(&jsonPath, "json", "", "write the ranked result to this json file")
	flags.StringVar(&storePath, "store", "", "persist the report in this usage store")
	return analyzeCommand
}

func printReport(w io.Writer, report *cmdusage.Report) error {
	if len(report.Entries) == 0 {
		_, err := fmt.Fprintln(w, "no commands found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tCOUNT")
	for _, entry := range report.Entries {
		fmt.Fprintf(tw, "%s\t%d\n", entry.Name, entry.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d commands, %d tokens\n", len(report.Entries), report.TokenCount)
	return err
}

func writeJSON(path string, report *cmdusage.Report) error {
	b, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0600)
}

func storeReport(path string, report *cmdusage.Report) error {
	store, err := usagestore.Open(path)
	if err == usagestore.ErrStoreNotExists {
		store, err = usagestore.New(path)
	}
	if err != nil {
		return err
	}
	defer store.Close() // nolint:errcheck

	_, err = store.InsertReport(report)
	return err
}
