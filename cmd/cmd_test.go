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
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kll3425/cmdusage"
	"github.com/kll3425/cmdusage/source"
)

type stubRunner struct {
	out map[string]string
}

func (r *stubRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	out, ok := r.out[name]
	if !ok {
		return nil, errors.New("executable file not found in $PATH")
	}
	return []byte(out), nil
}

func TestPrintReport(t *testing.T) {
	report := &cmdusage.Report{
		TokenCount: 3,
		Entries:    []cmdusage.Entry{{Name: "git", Count: 2}, {Name: "ls", Count: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "2 commands, 3 tokens")
}

func TestPrintReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &cmdusage.Report{Entries: []cmdusage.Entry{}}))
	assert.Equal(t, "no commands found\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	report := &cmdusage.Report{
		ID:            "report--1",
		Type:          "command_usage",
		CollectedTime: "2020-05-04T10:00:00.000Z",
		TokenCount:    2,
		Entries:       []cmdusage.Entry{{Name: "git", Count: 2}},
	}

	path := filepath.Join(t.TempDir(), "command_usage.json")
	require.NoError(t, writeJSON(path, report))

	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "git", gjson.GetBytes(b, "entries.0.name").String())
	assert.Equal(t, int64(2), gjson.GetBytes(b, "entries.0.count").Int())
}

func TestCreateCommand(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "usage.db")

	cmd := rootCommand()
	cmd.SetArgs([]string{"create", storePath})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(storePath)
	assert.NoError(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "root"), 0700))
	history := filepath.Join(root, "root", ".bash_history")
	require.NoError(t, ioutil.WriteFile(history, []byte("git status\ngit push\nls\n"), 0600))

	defer func(runner source.Runner) { analyzeRunner = runner }(analyzeRunner)
	analyzeRunner = &stubRunner{out: map[string]string{
		"ps": "USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND\n" +
			"root           1  0.0  0.1 167744 11712 ?        Ss   10:00   0:02 /bin/bash\n",
	}}

	jsonPath := filepath.Join(t.TempDir(), "out.json")

	cmd := rootCommand()
	cmd.SetArgs([]string{
		"analyze",
		"--root", root,
		"--history", "/root/.bash_history",
		"--syslog", "/var/log/auth.log",
		"--json", jsonPath,
	})
	require.NoError(t, cmd.Execute())

	b, err := ioutil.ReadFile(jsonPath)
	require.NoError(t, err)

	entries := gjson.GetBytes(b, "entries").Array()
	require.Len(t, entries, 3)
	assert.Equal(t, "git", entries[0].Get("name").String())
	assert.Equal(t, int64(2), entries[0].Get("count").Int())
	assert.Equal(t, "ls", entries[1].Get("name").String())
	assert.Equal(t, "bash", entries[2].Get("name").String())

	// ausearch is not part of the canned runner
	assert.Equal(t, "audit-log", gjson.GetBytes(b, "diagnostics.0.source").String())
}

func TestRequireOneStore(t *testing.T) {
	assert.Error(t, requireOneStore(nil, nil))
	assert.Error(t, requireOneStore(nil, []string{"/nonexistent/usage.db"}))

	path := filepath.Join(t.TempDir(), "usage.db")
	require.NoError(t, ioutil.WriteFile(path, nil, 0600))
	assert.NoError(t, requireOneStore(nil, []string{path}))
}
