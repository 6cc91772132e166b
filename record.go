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
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/osxripper/cocoatime"
)

// Value is an optional scalar. The zero Value is absent.
type Value struct {
	v  interface{}
	ok bool
}

// Absent returns a missing value.
func Absent() Value {
	return Value{}
}

// ValueOf wraps v, nil is absent.
func ValueOf(v interface{}) Value {
	if v == nil {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// OptionalValue wraps the result of a lookup that may have failed.
func OptionalValue(v interface{}, ok bool) Value {
	if !ok {
		return Value{}
	}
	return ValueOf(v)
}

// Present reports whether the value exists.
func (v Value) Present() bool {
	return v.ok
}

// Raw returns the wrapped value.
func (v Value) Raw() interface{} {
	return v.v
}

func (v Value) String() string {
	if !v.ok {
		return ""
	}
	switch s := v.v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case []byte:
		return fmt.Sprintf("%x", s)
	case time.Time:
		return s.UTC().Format(cocoatime.Layout)
	default:
		return fmt.Sprint(s)
	}
}

// jsonValue converts a document lookup into a Value.
func jsonValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Absent()
	case gjson.String:
		return ValueOf(r.String())
	case gjson.True, gjson.False:
		return ValueOf(r.Bool())
	default:
		return ValueOf(r.Raw)
	}
}

// Field is a labeled value of a record.
type Field struct {
	Label string
	Value Value
}

// Record is one extracted item, fields keep the order of the era's layout.
type Record struct {
	Fields []Field
}

// Get returns the value of the field with label.
func (r Record) Get(label string) Value {
	for _, field := range r.Fields {
		if field.Label == label {
			return field.Value
		}
	}
	return Absent()
}

// Group is a sequence of records below an optional heading line, e.g. the tabs
// of one Safari window.
type Group struct {
	Heading string
	Notices []string
	Records []Record
}

// layout describes how the records of an era are printed.
type layout struct {
	labels   []string
	indent   string
	align    bool // pad labels to the widest label
	separate bool // blank line after each record
	bare     bool // values only
}

func (l layout) record(values ...Value) Record {
	record := Record{Fields: make([]Field, len(l.labels))}
	for i, label := range l.labels {
		var value Value
		if i < len(values) {
			value = values[i]
		}
		record.Fields[i] = Field{Label: label, Value: value}
	}
	return record
}

func (l layout) width() int {
	width := 0
	if !l.align {
		return width
	}
	for _, label := range l.labels {
		if len(label) > width {
			width = len(label)
		}
	}
	return width
}

func (l layout) render(groups []Group) []string {
	var lines []string
	width := l.width()
	for _, group := range groups {
		if group.Heading != "" {
			lines = append(lines, group.Heading)
		}
		lines = append(lines, group.Notices...)
		for _, record := range group.Records {
			for _, field := range record.Fields {
				if !field.Value.Present() {
					continue
				}
				if l.bare {
					lines = append(lines, l.indent+field.Value.String())
					continue
				}
				label := field.Label
				if n := width - len(label); n > 0 {
					label += strings.Repeat(" ", n)
				}
				lines = append(lines, fmt.Sprintf("%s%s: %s", l.indent, label, field.Value))
			}
			if l.separate {
				lines = append(lines, "")
			}
		}
	}
	return lines
}
