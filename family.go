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
	"strings"

	"github.com/stoewer/go-strcase"
)

// Family is a category of forensic data that is extracted into one kind of
// report section.
type Family int

// Artifact families.
const (
	SystemVersion Family = iota
	Accounts
	UserContainers
	SafariLastSession
	SafariWebBookmarks
	familyCount
)

var familyNames = [familyCount]string{ // nolint:gochecknoglobals
	SystemVersion:      "SystemVersion",
	Accounts:           "Accounts",
	UserContainers:     "UserContainers",
	SafariLastSession:  "SafariLastSession",
	SafariWebBookmarks: "SafariWebBookmarks",
}

// Families returns all artifact families.
func Families() []Family {
	families := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		families = append(families, f)
	}
	return families
}

// ParseFamily accepts the name ("SafariLastSession") or the slug
// ("safari-last-session") of a family.
func ParseFamily(s string) (Family, bool) {
	for _, f := range Families() {
		if strings.EqualFold(f.String(), s) || f.Slug() == strings.ToLower(s) {
			return f, true
		}
	}
	return 0, false
}

func (f Family) String() string {
	if f < 0 || f >= familyCount {
		return "Unknown"
	}
	return familyNames[f]
}

// Slug is the command line name of the family.
func (f Family) Slug() string {
	return strcase.KebabCase(f.String())
}
