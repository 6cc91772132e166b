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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/osxripper/datasource"
)

// sharedUser is the pseudo account for files shared between all users.
const sharedUser = "Shared"

// Locator finds the user directories and artifact paths of a filesystem tree.
type Locator struct {
	fs   afero.Fs
	root string
	log  zerolog.Logger
}

// NewLocator creates a Locator for the tree below root.
func NewLocator(fs afero.Fs, root string, log zerolog.Logger) *Locator {
	return &Locator{fs: fs, root: root, log: log}
}

// UsersPath is the directory that holds the home directories.
func (l *Locator) UsersPath() string {
	return filepath.Join(l.root, "Users")
}

// Users lists the home directory names in enumeration order, "Shared" and
// plain files are skipped. ok is false if the Users directory is missing.
func (l *Locator) Users() (users []string, ok bool) {
	usersPath := l.UsersPath()
	names, err := datasource.ListDir(l.fs, usersPath)
	if err != nil {
		l.log.Warn().Err(err).Str("path", usersPath).Msg("source directory missing")
		return []string{}, false
	}

	users = []string{}
	for _, name := range names {
		if name == sharedUser || !datasource.IsDir(l.fs, filepath.Join(usersPath, name)) {
			continue
		}
		users = append(users, name)
	}
	return users, true
}

// UserPath returns the location of elem below the home directory of user.
// Existence is not checked.
func (l *Locator) UserPath(user string, elem ...string) string {
	return filepath.Join(append([]string{l.UsersPath(), user}, elem...)...)
}

// HostPath returns the location of elem below the root.
func (l *Locator) HostPath(elem ...string) string {
	return filepath.Join(append([]string{l.root}, elem...)...)
}
