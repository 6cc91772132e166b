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

// Package cocoatime converts timestamps stored relative to the Cocoa reference
// date (2001-01-01T00:00:00Z) into calendar time strings.
package cocoatime

import (
	"math"
	"time"
)

// Layout is the format of every converted timestamp.
const Layout = "2006-01-02T15:04:05.000Z"

// NoTimestamp is returned for missing values.
const NoTimestamp = "No Timestamp"

// Epoch is the Cocoa reference date.
var Epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC) // nolint:gochecknoglobals

// Offsets outside of years 0001 to 9999 are clamped, so the layout always
// renders a four digit year and ordering is preserved.
const (
	minOffset = -63113904000
	maxOffset = 252423993599
)

// ToCalendarTime converts seconds since Epoch into a UTC timestamp string.
func ToCalendarTime(seconds float64) string {
	if math.IsNaN(seconds) {
		return NoTimestamp
	}
	seconds = math.Max(minOffset, math.Min(maxOffset, seconds))

	whole := math.Floor(seconds)
	nanos := int64(math.Round((seconds - whole) * float64(time.Second)))
	return time.Unix(Epoch.Unix()+int64(whole), nanos).UTC().Format(Layout)
}

// Optional converts a possibly missing value.
func Optional(seconds *float64) string {
	if seconds == nil {
		return NoTimestamp
	}
	return ToCalendarTime(*seconds)
}
