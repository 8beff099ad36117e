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
	"log"
	"strings"

	"github.com/spf13/afero"
)

// A HistoryReader extracts the leading token of every line of the shell
// history files matching the configured glob patterns. History files are
// optional artifacts, missing files are no error.
type HistoryReader struct {
	FS       afero.Fs
	Patterns []string
}

// Name implements Reader.
func (r *HistoryReader) Name() string { return "shell-history" }

// Read returns the first whitespace separated token of every non-empty
// history line, in file then line order. Files are processed in the order
// of the configured patterns.
func (r *HistoryReader) Read(_ context.Context) ([]string, error) {
	tokens := []string{}
	for _, pattern := range r.Patterns {
		matches, err := afero.Glob(r.FS, pattern)
		if err != nil {
			log.Printf("skipping history pattern %s: %s", pattern, err)
			continue
		}
		for _, match := range matches {
			tokens = append(tokens, r.readFile(match)...)
		}
	}
	return tokens, nil
}

func (r *HistoryReader) readFile(path string) []string {
	file, err := r.FS.Open(path)
	if err != nil {
		log.Printf("skipping history file %s: %s", path, err)
		return nil
	}
	defer file.Close() // nolint:errcheck

	var tokens []string
	err = eachLine(file, func(line string) {
		// invalid byte sequences stay in the token and are rejected
		// later by normalization
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return
		}
		tokens = append(tokens, fields[0])
	})
	if err != nil {
		log.Printf("stopped reading history file %s: %s", path, err)
	}
	return tokens
}
