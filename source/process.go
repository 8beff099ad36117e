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

package source

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// COMMAND column of `ps aux` output.
const psCommandField = 10

// A ProcessReader extracts the command names of all currently running
// processes from a process listing.
type ProcessReader struct {
	Runner  Runner
	Timeout time.Duration
}

// Name implements Reader.
func (r *ProcessReader) Name() string { return "process-snapshot" }

// Read invokes `ps aux` and returns the base name of the command column of
// every process line. Lines with too few fields are skipped. A missing or
// failing ps binary fails the whole snapshot, timeouts included.
func (r *ProcessReader) Read(ctx context.Context) ([]string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := r.Runner.Run(ctx, "ps", "aux")
	if err != nil {
		return nil, errors.Wrap(err, "could not list processes")
	}

	var tokens []string
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) <= psCommandField {
			continue
		}
		tokens = append(tokens, path.Base(fields[psCommandField]))
	}
	return tokens, nil
}
