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

package datasource

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Row is a single result row keyed by lower case column name. NULL columns
// are not part of the row.
type Row map[string]interface{}

// Value returns a column value.
func (r Row) Value(column string) (interface{}, bool) {
	v, ok := r[strings.ToLower(column)]
	return v, ok
}

// Float returns a real column, integers are widened.
func (r Row) Float(column string) (float64, bool) {
	v, ok := r.Value(column)
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Database is a SQLite database opened from a temporary copy of the source.
type Database struct {
	conn  *sqlite.Conn
	paths []string
}

// OpenDatabase copies name (and its write-ahead log if present) out of fs and
// opens the copy.
func OpenDatabase(fs afero.Fs, name string) (*Database, error) {
	tmp, err := ioutil.TempFile("", "osxripper-*.sqlite")
	if err != nil {
		return nil, errors.Wrap(err, "could not create temporary database")
	}
	db := &Database{paths: []string{tmp.Name(), tmp.Name() + "-wal", tmp.Name() + "-shm", tmp.Name() + "-journal"}}

	err = copyFrom(fs, name, tmp)
	tmp.Close() // nolint:errcheck
	if err != nil {
		db.cleanup()
		return nil, err
	}

	if IsFile(fs, name+"-wal") {
		wal, err := os.Create(tmp.Name() + "-wal")
		if err != nil {
			db.cleanup()
			return nil, err
		}
		err = copyFrom(fs, name+"-wal", wal)
		wal.Close() // nolint:errcheck
		if err != nil {
			db.cleanup()
			return nil, err
		}
	}

	db.conn, err = sqlite.OpenConn(tmp.Name(), sqlite.SQLITE_OPEN_READWRITE|sqlite.SQLITE_OPEN_NOMUTEX)
	if err != nil {
		db.cleanup()
		return nil, errors.Wrapf(err, "could not open %s", name)
	}
	return db, nil
}

func copyFrom(fs afero.Fs, name string, dst io.Writer) error {
	src, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return errors.Wrapf(err, "could not copy %s", name)
}

// Query runs a fixed query and returns all rows.
func (db *Database) Query(query string) (rows []Row, err error) {
	stmt, err := db.conn.Prepare(query)
	if err != nil {
		return nil, errors.Wrapf(err, "could not prepare statement %s", query)
	}
	defer func() {
		if ferr := stmt.Finalize(); err == nil && ferr != nil {
			err = ferr
		}
	}()

	for {
		if hasRow, err := stmt.Step(); err != nil {
			return nil, err
		} else if !hasRow {
			break
		}
		rows = append(rows, scanRow(stmt))
	}
	return rows, nil
}

func scanRow(stmt *sqlite.Stmt) Row {
	row := Row{}
	for i := 0; i < stmt.ColumnCount(); i++ {
		name := strings.ToLower(stmt.ColumnName(i))
		switch stmt.ColumnType(i) {
		case sqlite.SQLITE_INTEGER:
			row[name] = stmt.ColumnInt64(i)
		case sqlite.SQLITE_FLOAT:
			row[name] = stmt.ColumnFloat(i)
		case sqlite.SQLITE_TEXT:
			row[name] = stmt.ColumnText(i)
		case sqlite.SQLITE_BLOB:
			buf := make([]byte, stmt.ColumnLen(i))
			stmt.ColumnBytes(i, buf)
			row[name] = buf
		}
	}
	return row
}

// Close closes the connection and removes the temporary copy.
func (db *Database) Close() error {
	var err error
	if db.conn != nil {
		err = db.conn.Close()
	}
	db.cleanup()
	return err
}

func (db *Database) cleanup() {
	for _, p := range db.paths {
		_ = os.Remove(p)
	}
}
