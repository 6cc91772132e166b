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

package osxripper

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"crawshaw.io/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

const (
	accountsSchema     = "CREATE TABLE zaccount (z_pk INTEGER PRIMARY KEY, zaccounttype INTEGER, zusername TEXT, zactive INTEGER, zauthenticated INTEGER, zvisible INTEGER, zdate TIMESTAMP, zaccountdescription TEXT, zowningbundleid TEXT)"
	accountTypesSchema = "CREATE TABLE zaccounttype (z_pk INTEGER PRIMARY KEY, zaccounttypedescription TEXT)"
)

func writePlist(t *testing.T, fs afero.Fs, name string, v interface{}) {
	b, err := plist.Marshal(v, plist.BinaryFormat)
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, afero.WriteFile(fs, name, b, 0644))
}

func writeDatabase(t *testing.T, fs afero.Fs, name string, statements ...string) {
	dir, err := ioutil.TempDir("", "osxripper")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	dbPath := filepath.Join(dir, "db.sqlite")
	conn, err := sqlite.OpenConn(dbPath, 0)
	require.NoError(t, err)
	for _, statement := range statements {
		stmt, err := conn.Prepare(statement)
		require.NoError(t, err, statement)
		_, err = stmt.Step()
		require.NoError(t, err, statement)
		require.NoError(t, stmt.Finalize())
	}
	require.NoError(t, conn.Close())

	b, err := ioutil.ReadFile(dbPath)
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, afero.WriteFile(fs, name, b, 0644))
}

func newJob(fs afero.Fs, release Release, user, source string) Job {
	return Job{Fs: fs, Release: release, ReleaseTag: release.String(), User: user, Source: source, Log: testLogger()}
}

// field formats an aligned record line.
func field(width int, label, value string) string {
	return fmt.Sprintf("%-*s: %s", width, label, value)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
