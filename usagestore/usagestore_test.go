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

package usagestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kll3425/cmdusage"
)

func testReport() *cmdusage.Report {
	return &cmdusage.Report{
		ID:            "report--920d7c41-0fef-4cf8-bce2-ead120f6b506",
		Type:          "command_usage",
		CollectedTime: "2020-05-04T10:00:00.000Z",
		TokenCount:    4,
		Entries: []cmdusage.Entry{
			{Name: "git", Count: 2},
			{Name: "ls", Count: 1},
			{Name: "bash", Count: 1},
		},
		Diagnostics: []cmdusage.Diagnostic{
			{Source: "audit-log", Message: "could not query audit log"},
		},
	}
}

func TestNew(t *testing.T) {
	type args struct {
		url string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{"New", args{filepath.Join(t.TempDir(), "usage.db")}, false},
		{"Memory", args{":memory:"}, false},
		{"Wrong URL", args{"foo\x00bar"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.args.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				assert.NoError(t, store.Close())
			}
		})
	}
}

func TestNewExisting(t *testing.T) {
	url := filepath.Join(t.TempDir(), "usage.db")
	store, err := New(url)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = New(url)
	assert.Equal(t, ErrStoreExists, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "usage.db"))
	assert.Equal(t, ErrStoreNotExists, err)
}

func TestInsertReport(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	id, err := store.InsertReport(testReport())
	require.NoError(t, err)
	assert.Equal(t, "report--920d7c41-0fef-4cf8-bce2-ead120f6b506", id)

	report, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "command_usage", gjson.GetBytes(report, "type").String())
	assert.Equal(t, int64(4), gjson.GetBytes(report, "token_count").Int())
	assert.Equal(t, "git", gjson.GetBytes(report, "entries.0.name").String())
	assert.Equal(t, int64(2), gjson.GetBytes(report, "entries.0.count").Int())
}

func TestInsertInvalid(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	_, err = store.Insert(JSONReport(`{"id": "report--1", "type": "something_else", "collected_time": "2020-05-04T10:00:00.000Z"}`))
	assert.Error(t, err)

	_, err = store.Insert(JSONReport(`{"type": "command_usage"}`))
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	_, err = store.Get("report--missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	url := filepath.Join(t.TempDir(), "usage.db")
	store, err := New(url)
	require.NoError(t, err)

	_, err = store.InsertReport(testReport())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(url)
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "report--920d7c41-0fef-4cf8-bce2-ead120f6b506", summaries[0].ID)
	assert.Equal(t, int64(4), summaries[0].TokenCount)
	assert.Equal(t, int64(3), summaries[0].Commands)

	all, err := store.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSearch(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	_, err = store.InsertReport(testReport())
	require.NoError(t, err)

	reports, err := store.Search("git")
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	reports, err = store.Search("nmap")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestEmptyReport(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	report := &cmdusage.Report{
		ID:            "report--empty",
		Type:          "command_usage",
		CollectedTime: "2020-05-04T10:00:00.000Z",
		Entries:       []cmdusage.Entry{},
	}
	_, err = store.InsertReport(report)
	assert.NoError(t, err)
}
