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

package report

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Writer appends sections to report files below a directory. Writes to the
// same file are serialized, a section is never interleaved with another.
type Writer struct {
	fs    afero.Fs
	dir   string
	locks *lockMap
}

// NewWriter creates a Writer for the output directory dir.
func NewWriter(fs afero.Fs, dir string) (*Writer, error) {
	if err := fs.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrapf(err, "could not create output directory %s", dir)
	}
	return &Writer{fs: fs, dir: dir, locks: newLockMap()}, nil
}

// Path returns the location of the report file name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Append writes section to the end of the report file name. The file is
// created if needed and always closed before Append returns.
func (w *Writer) Append(name string, section Section) (err error) {
	lock := w.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	f, err := w.fs.OpenFile(w.Path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return errors.Wrapf(err, "could not open report %s", name)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "could not close report %s", name)
		}
	}()

	_, err = f.WriteString(section.Render())
	return errors.Wrapf(err, "could not write report %s", name)
}

type lockMap struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockMap() *lockMap {
	return &lockMap{locks: map[string]*sync.Mutex{}}
}

func (lm *lockMap) get(name string) *sync.Mutex {
	lm.Lock()
	defer lm.Unlock()
	if _, ok := lm.locks[name]; !ok {
		lm.locks[name] = &sync.Mutex{}
	}
	return lm.locks[name]
}
