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

// Package usagestore persists command usage reports in a sqlite database
// so runs can be listed, compared and exported later.
package usagestore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"reflect"
	"strings"
	"time"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"

	"github.com/kll3425/cmdusage"
)

const usagestoreVersion = 1
const usagestoreApplicationID = 1668178037

// A JSONReport is a single stored report record.
type JSONReport []byte

// A Store holds one report record per analysis run.
type Store struct {
	cursor *sqlite.Conn
	schema *jsonschema.RootSchema
}

var ErrStoreExists = fmt.Errorf("store already exists")
var ErrStoreNotExists = fmt.Errorf("store does not exist")

// New creates a new usage store.
func New(url string) (*Store, error) {
	return open(url, true)
}

// Open opens an existing usage store.
func Open(url string) (*Store, error) {
	return open(url, false)
}

func open(url string, create bool) (*Store, error) {
	if url != ":memory:" {
		url = strings.TrimRight(url, "/")

		exists := true
		_, err := os.Stat(url)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			exists = false
		}

		if create && exists {
			return nil, ErrStoreExists
		}
		if !create && !exists {
			return nil, ErrStoreNotExists
		}

		if create {
			err = os.MkdirAll(path.Dir(url), 0750)
			if err != nil {
				return nil, err
			}

			log.Printf("Creating store %s", url)
			_, err := os.Create(url)
			if err != nil {
				return nil, err
			}
		}
	}

	store := &Store{}

	var err error
	store.cursor, err = sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, err
	}

	if create {
		err = setPragma(store.cursor, "application_id", usagestoreApplicationID)
		if err != nil {
			return nil, err
		}

		err = setPragma(store.cursor, "user_version", usagestoreVersion)
		if err != nil {
			return nil, err
		}

		err = store.exec("CREATE VIRTUAL TABLE `reports` " +
			"USING fts5(id UNINDEXED, json, insert_time UNINDEXED, tokenize=\"unicode61 tokenchars '/.'\")")
		if err != nil {
			return nil, err
		}
	} else {
		applicationID, err := pragma(store.cursor, "application_id")
		if err != nil {
			return nil, err
		}
		if applicationID != usagestoreApplicationID {
			msg := "wrong file format (application_id is %d, requires %d)"
			return nil, fmt.Errorf(msg, applicationID, usagestoreApplicationID)
		}

		version, err := pragma(store.cursor, "user_version")
		if err != nil {
			return nil, err
		}
		if version != usagestoreVersion {
			msg := "wrong file format (user_version is %d, requires %d)"
			return nil, fmt.Errorf(msg, version, usagestoreVersion)
		}
	}

	store.schema = &jsonschema.RootSchema{}
	if err := json.Unmarshal([]byte(reportSchema), store.schema); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal report schema")
	}

	return store, nil
}

/* ################################
#   API
################################ */

// InsertReport validates and stores a single report.
func (store *Store) InsertReport(report *cmdusage.Report) (string, error) {
	m := structs.Map(report)
	m = snakeKeys(m).(map[string]interface{})
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return store.Insert(b)
}

// Insert validates and stores a single raw report record.
func (store *Store) Insert(report JSONReport) (string, error) {
	valErr, err := store.validate(report)
	if err != nil {
		return "", errors.Wrap(err, "validation failed")
	}
	if len(valErr) > 0 {
		return "", fmt.Errorf("report could not be validated [%s]", strings.Join(valErr, ","))
	}

	id := gjson.GetBytes(report, "id").String()

	query := "INSERT INTO `reports` (id, json, insert_time) VALUES ($id, $json, $time)"
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("could not prepare statement %s", query))
	}
	stmt.SetText("$id", id)
	stmt.SetText("$json", string(report))
	stmt.SetText("$time", time.Now().Format("2006-01-02T15:04:05.000Z"))
	_, err = stmt.Step()
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprint("could not exec statement", query))
	}

	return id, nil
}

// Get retrieves a single report record.
func (store *Store) Get(id string) (JSONReport, error) {
	stmt, err := store.cursor.Prepare("SELECT json FROM `reports` WHERE id=?")
	if err != nil {
		return nil, err
	}

	stmt.BindText(1, id)

	reports, err := store.rowsToReports(stmt)
	if err != nil {
		return nil, err
	}
	if len(reports) > 0 {
		return reports[0], nil
	}
	return nil, errors.New("report does not exist")
}

// All returns every stored report record in insertion order.
func (store *Store) All() ([]JSONReport, error) {
	stmt, err := store.cursor.Prepare("SELECT json FROM `reports` ORDER BY insert_time")
	if err != nil {
		return nil, err
	}

	return store.rowsToReports(stmt)
}

// Search returns the report records mentioning a command name.
func (store *Store) Search(q string) ([]JSONReport, error) {
	stmt, err := store.cursor.Prepare("SELECT json FROM reports WHERE reports = $query")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$query", q)
	return store.rowsToReports(stmt)
}

// A Summary describes one stored report.
type Summary struct {
	ID            string `json:"id"`
	CollectedTime string `json:"collected_time"`
	TokenCount    int64  `json:"token_count"`
	Commands      int64  `json:"commands"`
}

// List returns a summary for every stored report in insertion order.
func (store *Store) List() ([]Summary, error) {
	reports, err := store.All()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, Summary{
			ID:            gjson.GetBytes(report, "id").String(),
			CollectedTime: gjson.GetBytes(report, "collected_time").String(),
			TokenCount:    gjson.GetBytes(report, "token_count").Int(),
			Commands:      gjson.GetBytes(report, "entries.#").Int(),
		})
	}
	return summaries, nil
}

// Close closes the database.
func (store *Store) Close() error {
	return store.cursor.Close()
}

/* ################################
#   Intern
################################ */

func (store *Store) validate(report JSONReport) ([]string, error) {
	errs, err := store.schema.ValidateBytes(report)
	if err != nil {
		return nil, err
	}

	var flaws []string
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate report: %s", verr))
	}
	return flaws, nil
}

func (store *Store) rowsToReports(stmt *sqlite.Stmt) ([]JSONReport, error) {
	reports := []JSONReport{}
	for {
		if hasRow, err := stmt.Step(); err != nil {
			return nil, err
		} else if !hasRow {
			break
		}
		reports = append(reports, JSONReport(stmt.GetText("json")))
	}
	return reports, stmt.Finalize()
}

func (store *Store) exec(query string) error {
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Step()
	if err != nil {
		return err
	}

	return stmt.Finalize()
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	_, err = stmt.Step()
	if err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare("PRAGMA " + name + " = " + fmt.Sprint(i))
	if err != nil {
		return err
	}
	_, err = stmt.Step()
	if err != nil {
		return err
	}
	return stmt.Finalize()
}

// snakeKeys converts all map keys to snake case and drops empty values so
// stored records use the same shape regardless of how they were built.
func snakeKeys(f interface{}) interface{} {
	switch f := f.(type) {
	case []interface{}:
		for i := range f {
			if !isEmptyValue(reflect.ValueOf(f[i])) {
				f[i] = snakeKeys(f[i])
			}
		}
		return f
	case map[string]interface{}:
		lf := make(map[string]interface{}, len(f))
		for k, v := range f {
			if !isEmptyValue(reflect.ValueOf(v)) {
				lf[strcase.ToSnake(k)] = snakeKeys(v)
			}
		}
		return lf
	default:
		return f
	}
}

func isEmptyValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
