// Copyright (c) 2019 Nguyễn Quốc Đính
// Copyright (c) 2019 Siemens AG
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
// Author(s): Nguyễn Quốc Đính, Jonas Plum
//
// This code was adapted from
// https://github.com/nqd/flat/blob/master/flat.go
// Package goflatten flattens nested Go maps and slices into a single level
// map with dotted keys, e.g. {"a": [{"b": 1}]} becomes {"a.0.b": 1}.
package goflatten

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Delimiter joins the path elements of a flattened key.
const Delimiter = "."

// Flatten the value, it returns a map one level deep regardless of how
// nested the original value was. Nil values and empty containers produce no
// keys. A scalar root is stored under the empty key.
func Flatten(nested interface{}) (flatmap map[string]interface{}, err error) {
	flatmap = map[string]interface{}{}
	return flatmap, flatten(flatmap, "", nested)
}

func flatten(flatmap map[string]interface{}, prefix string, nested interface{}) error {
	if nested == nil {
		return nil
	}
	if _, ok := nested.([]byte); ok {
		flatmap[prefix] = nested
		return nil
	}

	value := reflect.ValueOf(nested)
	switch value.Kind() {
	case reflect.Map:
		for _, k := range value.MapKeys() {
			if err := flatten(flatmap, join(prefix, fmt.Sprint(k.Interface())), value.MapIndex(k).Interface()); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := flatten(flatmap, join(prefix, strconv.Itoa(i)), value.Index(i).Interface()); err != nil {
				return err
			}
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("cannot flatten %s at %q", value.Kind(), prefix)
	default:
		flatmap[prefix] = nested
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Delimiter + key
}

// Keys returns the keys of flatmap in natural order, numeric path elements
// are compared by value ("a.2" before "a.10").
func Keys(flatmap map[string]interface{}) []string {
	keys := make([]string, 0, len(flatmap))
	for key := range flatmap {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return less(keys[i], keys[j])
	})
	return keys
}

func less(a, b string) bool {
	as, bs := strings.Split(a, Delimiter), strings.Split(b, Delimiter)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return ai < bi
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}

// Lines renders flatmap as "key: value" lines in Keys order. Byte slices are
// printed as hex.
func Lines(flatmap map[string]interface{}) []string {
	lines := make([]string, 0, len(flatmap))
	for _, key := range Keys(flatmap) {
		value := flatmap[key]
		if b, ok := value.([]byte); ok {
			value = fmt.Sprintf("%x", b)
		}
		lines = append(lines, fmt.Sprintf("%s: %v", key, value))
	}
	return lines
}
