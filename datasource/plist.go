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

// Package datasource reads the structured files found in a macOS filesystem
// tree: property lists (binary, XML or OpenStep) and SQLite databases.
//
// Property lists are decoded into a JSON document and queried with gjson
// paths, so a missing key is an ordinary result (Result.Exists() == false)
// and never an error. SQLite databases are queried from a temporary copy,
// the evidence file itself is only read.
package datasource

import (
	"encoding/json"
	"io/ioutil"
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"howett.net/plist"
)

// ErrNotDirectory is returned when a directory listing is requested for a file.
var ErrNotDirectory = errors.New("not a directory")

// ErrNotDictionary is returned for property lists without a dictionary root.
var ErrNotDictionary = errors.New("plist root is not a dictionary")

// Document is a decoded property list.
type Document struct {
	tree interface{}
	raw  []byte
}

// LoadPlist reads and decodes a property list from fs.
func LoadPlist(fs afero.Fs, name string) (*Document, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", name)
	}
	doc, err := DecodePlist(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", name)
	}
	return doc, nil
}

// DecodePlist decodes a property list in any of the supported formats.
func DecodePlist(data []byte) (*Document, error) {
	var tree interface{}
	if _, err := plist.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	// a single bare word is a valid OpenStep plist, artifacts are dictionaries
	if _, ok := tree.(map[string]interface{}); !ok {
		return nil, ErrNotDictionary
	}
	tree = normalize(tree)

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "could not convert plist")
	}
	return &Document{tree: tree, raw: raw}, nil
}

// Get looks up a gjson path, e.g. "SessionWindows.0.TabStates".
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Tree returns the decoded values (maps, slices and scalars).
func (d *Document) Tree() interface{} {
	return d.tree
}

// Close implements the handle contract of the extraction engine.
func (d *Document) Close() error {
	return nil
}

// normalize replaces values that cannot be represented in JSON.
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		for key, value := range v {
			v[key] = normalize(value)
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = normalize(v[i])
		}
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		return normalize(float64(v))
	case plist.UID:
		return uint64(v)
	default:
		return v
	}
}

// ListDir returns the names in a directory in enumeration order.
func ListDir(fs afero.Fs, name string) ([]string, error) {
	info, err := fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Wrap(ErrNotDirectory, name)
	}

	dir, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.Readdirnames(-1)
}

// IsFile reports whether name exists and is a regular file.
func IsFile(fs afero.Fs, name string) bool {
	info, err := fs.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether name exists and is a directory.
func IsDir(fs afero.Fs, name string) bool {
	info, err := fs.Stat(name)
	return err == nil && info.IsDir()
}
