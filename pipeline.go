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

package cmdusage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/kll3425/cmdusage/source"
)

// ErrRootNotExists is returned when the configured root prefix is missing
// or not a directory.
var ErrRootNotExists = errors.New("root prefix does not exist")

// A Diagnostic records why a source contributed nothing. Diagnostics are
// informational, they never fail a run.
type Diagnostic struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// A Report is the durable result of one pipeline run.
type Report struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	CollectedTime string       `json:"collected_time"`
	RootPrefix    string       `json:"root_prefix,omitempty"`
	TokenCount    int          `json:"token_count"`
	Entries       []Entry      `json:"entries"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
}

// A Pipeline runs the four source readers in a fixed order and folds their
// combined output into a ranked frequency table.
type Pipeline struct {
	config Config
	fs     afero.Fs
	runner source.Runner
}

// New creates a Pipeline for the given configuration. A configured root
// prefix must exist, everything else is checked lazily by the readers.
func New(config Config) (*Pipeline, error) {
	fs := afero.Fs(afero.NewOsFs())
	if config.RootPrefix != "" {
		info, err := os.Stat(config.RootPrefix)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(ErrRootNotExists, config.RootPrefix)
			}
			return nil, err
		}
		if !info.IsDir() {
			return nil, errors.Wrap(ErrRootNotExists, config.RootPrefix)
		}
		fs = afero.NewBasePathFs(fs, config.RootPrefix)
	}
	return &Pipeline{config: config, fs: fs, runner: source.ExecRunner{}}, nil
}

// SetFS replaces the filesystem the file based readers operate on.
func (p *Pipeline) SetFS(fs afero.Fs) {
	p.fs = fs
}

// SetRunner replaces the runner used to invoke external tools.
func (p *Pipeline) SetRunner(runner source.Runner) {
	p.runner = runner
}

func (p *Pipeline) readers() []source.Reader {
	return []source.Reader{
		&source.HistoryReader{FS: p.fs, Patterns: p.config.HistoryPatterns},
		&source.ProcessReader{Runner: p.runner, Timeout: time.Duration(p.config.ProcessTimeout)},
		&source.SyslogReader{FS: p.fs, Paths: p.config.SystemLogPaths},
		&source.AuditReader{Runner: p.runner, Timeout: time.Duration(p.config.AuditTimeout)},
	}
}

// Run executes all four readers in order, normalizes and counts their
// combined output and returns the finished report. A failing reader
// contributes an empty sequence and a diagnostic on the report. Run itself
// fails only if the context is canceled between readers.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		ID:            "report--" + uuid.New().String(),
		Type:          "command_usage",
		CollectedTime: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		RootPrefix:    p.config.RootPrefix,
	}

	var raw []string
	for _, reader := range p.readers() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens, err := reader.Read(ctx)
		if err != nil {
			log.Printf("%s unavailable: %s", reader.Name(), err)
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Source:  reader.Name(),
				Message: err.Error(),
			})
			continue
		}
		raw = append(raw, tokens...)
	}

	table := NewFrequencyTable()
	table.AddAll(Normalize(raw))
	report.TokenCount = table.Total()
	report.Entries = table.Ranked()
	return report, nil
}
