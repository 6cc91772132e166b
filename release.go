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

import "strings"

// Release is a macOS release the extraction can be configured for.
type Release int

// Known releases, oldest first. ReleaseUnknown stands for any tag that is not
// part of this list.
const (
	ReleaseUnknown Release = iota
	SnowLeopard
	Lion
	MountainLion
	Mavericks
	Yosemite
	ElCapitan
	Sierra
	HighSierra
	Mojave
	Catalina
	BigSur
	releaseCount
)

var releaseTags = [releaseCount]string{ // nolint:gochecknoglobals
	ReleaseUnknown: "unknown",
	SnowLeopard:    "snow_leopard",
	Lion:           "lion",
	MountainLion:   "mountain_lion",
	Mavericks:      "mavericks",
	Yosemite:       "yosemite",
	ElCapitan:      "el_capitan",
	Sierra:         "sierra",
	HighSierra:     "high_sierra",
	Mojave:         "mojave",
	Catalina:       "catalina",
	BigSur:         "big_sur",
}

// ParseRelease maps a tag like "el_capitan" to its Release. Unknown tags
// return ReleaseUnknown.
func ParseRelease(tag string) Release {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for r := SnowLeopard; r < releaseCount; r++ {
		if releaseTags[r] == tag {
			return r
		}
	}
	return ReleaseUnknown
}

// Releases returns all known releases.
func Releases() []Release {
	releases := make([]Release, 0, releaseCount-1)
	for r := SnowLeopard; r < releaseCount; r++ {
		releases = append(releases, r)
	}
	return releases
}

// Known is false for ReleaseUnknown and out of range values.
func (r Release) Known() bool {
	return r > ReleaseUnknown && r < releaseCount
}

func (r Release) String() string {
	if !r.Known() {
		return releaseTags[ReleaseUnknown]
	}
	return releaseTags[r]
}
