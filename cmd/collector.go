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
	"github.com/forensicanalysis/osxripper"
	"github.com/forensicanalysis/osxripper/recordstore"
)

// storeCollector writes every extracted record into a record store.
type storeCollector struct {
	store *recordstore.Store
}

func (c *storeCollector) Collect(origin osxripper.Origin, record osxripper.Record) error {
	fields := map[string]interface{}{}
	for _, field := range record.Fields {
		if field.Value.Present() {
			fields[field.Label] = field.Value.Raw()
		}
	}

	_, err := c.store.InsertStruct(recordstore.Record{
		Type:    origin.Family.Slug(),
		Release: origin.Release.String(),
		User:    origin.User,
		Source:  origin.Source,
		Group:   origin.Group,
		Fields:  fields,
	})
	return err
}
