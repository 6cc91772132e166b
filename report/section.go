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

// Package report writes framed, append-only text sections. Every line ends
// with CRLF regardless of the host platform.
package report

import (
	"strings"
)

// Newline terminates every line of a report.
const Newline = "\r\n"

// Source labels.
const (
	SourceFile      = "Source File"
	SourceDirectory = "Source Directory"
)

// Section is one framed block of a report.
type Section struct {
	Title       string
	SourceLabel string
	SourcePath  string
	Lines       []string
}

// Render returns the complete section text.
func (s Section) Render() string {
	label := s.SourceLabel
	if label == "" {
		label = SourceFile
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 10) + " " + s.Title + " " + strings.Repeat("=", 10) + Newline)
	b.WriteString(Newline)
	b.WriteString(label + ": " + s.SourcePath + Newline)
	b.WriteString(Newline)
	for _, line := range s.Lines {
		b.WriteString(line + Newline)
	}
	b.WriteString(strings.Repeat("=", 40) + Newline)
	b.WriteString(Newline)
	return b.String()
}
