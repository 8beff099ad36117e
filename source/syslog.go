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
	"os"
	"path"
	"regexp"

	"github.com/spf13/afero"
)

// COMMAND= entries are written by sudo to auth.log.
var commandPattern = regexp.MustCompile(`COMMAND=(\S+)`)

// A SyslogReader extracts commands recorded in system log files, e.g. the
// COMMAND= values sudo writes to auth.log. Missing log files are no error.
type SyslogReader struct {
	FS    afero.Fs
	Paths []string
}

// Name implements Reader.
func (r *SyslogReader) Name() string { return "system-log" }

// Read scans every configured log file for COMMAND= markers and returns
// the base names of the matched values in file then line order.
func (r *SyslogReader) Read(_ context.Context) ([]string, error) {
	tokens := []string{}
	for _, logPath := range r.Paths {
		file, err := r.FS.Open(logPath)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("skipping log file %s: %s", logPath, err)
			}
			continue
		}

		err = eachLine(file, func(line string) {
			match := commandPattern.FindStringSubmatch(line)
			if match == nil {
				return
			}
			tokens = append(tokens, path.Base(match[1]))
		})
		if err != nil {
			log.Printf("stopped reading log file %s: %s", logPath, err)
		}
		file.Close() // nolint:errcheck
	}
	return tokens, nil
}
