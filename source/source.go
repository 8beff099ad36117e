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

// Package source extracts raw command name candidates from the individual
// data sources of a system under analysis: shell history files, a process
// snapshot, system log files and the audit subsystem.
//
// All readers are best-effort. A reader returns an error only if its whole
// source is unavailable; single unreadable files or records are skipped
// with a logged diagnostic. The returned tokens are untrusted text and are
// cleaned up by the caller.
package source

import (
	"bufio"
	"context"
	"io"
	"os/exec"
)

const maxLineSize = 1024 * 1024

// eachLine calls fn for every line of r. A line that does not fit into
// maxLineSize is treated as a damaged record: it is skipped and reading
// continues with the following line.
func eachLine(r io.Reader, fn func(line string)) error {
	reader := bufio.NewReaderSize(r, maxLineSize)
	for {
		line, isPrefix, err := reader.ReadLine()
		for isPrefix && err == nil {
			// drain the remainder of the oversized line
			_, isPrefix, err = reader.ReadLine()
			line = nil
		}
		if len(line) > 0 {
			fn(string(line))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// A Reader extracts raw command name candidates from one data source in
// source order.
type Reader interface {
	Name() string
	Read(ctx context.Context) ([]string, error)
}

// A Runner invokes an external command and returns its captured stdout.
// It exists so readers can be tested against canned output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local system.
type ExecRunner struct{}

// Run executes the command and returns its stdout. The context limits the
// runtime of the command.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output() // #nosec
}
