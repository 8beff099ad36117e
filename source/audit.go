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
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// First argument of an EXECVE record, following the argument count.
var execvePattern = regexp.MustCompile(`argc=\d+.*?a0="([^"]+)"`)

// An AuditReader extracts the executed binary of EXECVE events recorded by
// the audit subsystem. auditd is disabled or absent on many systems, so a
// failing query is an expected condition.
type AuditReader struct {
	Runner  Runner
	Timeout time.Duration
}

// Name implements Reader.
func (r *AuditReader) Name() string { return "audit-log" }

// Read invokes `ausearch -m EXECVE` and returns the base name of the first
// argument of every matched record. Lines without a complete EXECVE record
// are skipped. A missing or failing ausearch binary fails the whole query,
// timeouts included.
func (r *AuditReader) Read(ctx context.Context) ([]string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := r.Runner.Run(ctx, "ausearch", "-m", "EXECVE")
	if err != nil {
		return nil, errors.Wrap(err, "could not query audit log")
	}

	var tokens []string
	for _, line := range strings.Split(string(out), "\n") {
		match := execvePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		tokens = append(tokens, path.Base(match[1]))
	}
	return tokens, nil
}
