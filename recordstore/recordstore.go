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

// Package recordstore keeps the normalized records of a run as JSON elements
// in a SQLite database, so they can be queried after the text reports are
// written.
package recordstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const storeVersion = 1
const applicationID = 1869838450
const discriminator = "type"

// TimeFormat is the layout of the insert_time column.
const TimeFormat = "2006-01-02T15:04:05.000Z"

var ErrStoreExists = fmt.Errorf("store already exists")
var ErrStoreNotExists = fmt.Errorf("store does not exist")

// The Store holds one element per extracted record. The connection is shared
// by all workers of a run, every access is serialized.
type Store struct {
	mu     sync.Mutex
	cursor *sqlite.Conn
	types  *typeMap
}

// New creates a new record store.
func New(url string) (*Store, error) {
	return open(url, true)
}

// Open opens an existing record store.
func Open(url string) (*Store, error) {
	return open(url, false)
}

func open(url string, create bool) (*Store, error) { // nolint:gocyclo
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
			if err := os.MkdirAll(filepath.Dir(url), 0750); err != nil {
				return nil, err
			}
		}
	}

	cursor, err := sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, errors.Wrap(err, "could not open store")
	}
	store := &Store{cursor: cursor, types: newTypeMap()}

	if create {
		err = store.setup()
	} else {
		err = store.check()
	}
	if err != nil {
		_ = cursor.Close()
		return nil, err
	}
	return store, nil
}

func (store *Store) setup() error {
	if err := store.exec(fmt.Sprintf("PRAGMA application_id = %d", applicationID)); err != nil {
		return err
	}
	if err := store.exec(fmt.Sprintf("PRAGMA user_version = %d", storeVersion)); err != nil {
		return err
	}
	return store.exec("CREATE VIRTUAL TABLE `elements` " +
		"USING fts5(id UNINDEXED, json, insert_time UNINDEXED, tokenize=\"unicode61 tokenchars '/.'\")")
}

func (store *Store) check() error {
	id, err := store.pragma("application_id")
	if err != nil {
		return err
	}
	if id != applicationID {
		return fmt.Errorf("wrong file format (application_id is %d, requires %d)", id, applicationID)
	}

	version, err := store.pragma("user_version")
	if err != nil {
		return err
	}
	if version != storeVersion {
		return fmt.Errorf("wrong file format (user_version is %d, requires %d)", version, storeVersion)
	}
	return nil
}

/* ################################
#   API
################################ */

// Insert adds a single element. Elements without id get one derived from
// their type.
func (store *Store) Insert(element JSONElement) (string, error) {
	elementType := gjson.GetBytes(element, discriminator)
	if elementType.Type != gjson.String || elementType.String() == "" {
		return "", errors.New("element requires type")
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(element, &fields); err != nil {
		return "", errors.Wrap(err, "could not unmarshal element")
	}

	id, ok := fields["id"].(string)
	if !ok {
		id = elementType.String() + "--" + uuid.New().String()
		fields["id"] = id

		var err error
		element, err = json.Marshal(fields)
		if err != nil {
			return "", err
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.types.addAll(elementType.String(), fields)

	query := "INSERT INTO `elements` (id, json, insert_time) VALUES ($id, $json, $time)"
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return "", errors.Wrapf(err, "could not prepare statement %s", query)
	}
	stmt.SetText("$id", id)
	stmt.SetText("$json", string(element))
	stmt.SetText("$time", time.Now().UTC().Format(TimeFormat))
	if _, err := stmt.Step(); err != nil {
		return "", errors.Wrapf(err, "could not exec statement %s", query)
	}
	return id, stmt.Reset()
}

// InsertStruct converts a Go struct to a map with snake_case keys and
// inserts it.
func (store *Store) InsertStruct(element interface{}) (string, error) {
	m := lower(structs.Map(element)).(map[string]interface{})
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return store.Insert(b)
}

// Get retrieves a single element.
func (store *Store) Get(id string) (JSONElement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stmt, err := store.cursor.Prepare("SELECT json FROM `elements` WHERE id = $id")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$id", id)

	elements, err := rowsToElements(stmt)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, errors.New("element does not exist")
	}
	return elements[0], nil
}

// Select retrieves all elements of a type in insertion order.
func (store *Store) Select(elementType string) ([]JSONElement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stmt, err := store.cursor.Prepare("SELECT json FROM `elements` WHERE json_extract(json, '$." +
		discriminator + "') = $type ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$type", elementType)
	return rowsToElements(stmt)
}

// Search runs a full text query over all elements.
func (store *Store) Search(q string) ([]JSONElement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stmt, err := store.cursor.Prepare("SELECT json FROM elements WHERE elements = $query")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$query", q)
	return rowsToElements(stmt)
}

// All returns every element.
func (store *Store) All() ([]JSONElement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stmt, err := store.cursor.Prepare("SELECT json FROM `elements` ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	return rowsToElements(stmt)
}

// Close creates one view per element type and closes the database.
func (store *Store) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.types.changed {
		if err := store.createViews(); err != nil {
			_ = store.cursor.Close()
			return err
		}
	}
	return store.cursor.Close()
}

/* ################################
#   Intern
################################ */

func (store *Store) createViews() error {
	for typeName, fields := range store.types.all() {
		if err := store.exec(fmt.Sprintf("DROP VIEW IF EXISTS '%s'", typeName)); err != nil {
			return err
		}
		var columns []string
		for field := range fields {
			columns = append(columns, fmt.Sprintf("json_extract(json, '$.%s') as '%s'", field, field))
		}
		sort.Strings(columns)
		err := store.exec(fmt.Sprintf("CREATE VIEW '%s' AS SELECT %s FROM elements WHERE json_extract(json, '$.%s') = '%s'",
			typeName, strings.Join(columns, ", "), discriminator, typeName))
		if err != nil {
			return errors.Wrapf(err, "could not create view %s", typeName)
		}
	}
	return nil
}

func rowsToElements(stmt *sqlite.Stmt) ([]JSONElement, error) {
	elements := []JSONElement{}
	for {
		if hasRow, err := stmt.Step(); err != nil {
			_ = stmt.Finalize()
			return nil, err
		} else if !hasRow {
			break
		}
		elements = append(elements, JSONElement(stmt.GetText("json")))
	}
	return elements, stmt.Finalize()
}

func (store *Store) pragma(name string) (int64, error) {
	stmt, err := store.cursor.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	if _, err := stmt.Step(); err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func (store *Store) exec(query string) error {
	stmt, err := store.cursor.Prepare(query)
	if err != nil {
		return err
	}
	if _, err := stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}
