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
)

// Era is a layout variant of an artifact family, shared by one or more
// consecutive releases.
type Era string

// Eras of all families. NotApplicable marks releases that do not contain
// the artifact.
const (
	NotApplicable Era = "not-applicable"

	EraAccountsZAccount     Era = "accounts-zaccount"
	EraAccountsZAccountType Era = "accounts-zaccounttype"
	EraSessionBackForward   Era = "session-backforward"
	EraSessionTabStates     Era = "session-tabstates"
	EraBookmarksWebBookmark Era = "bookmarks-webbookmark"
	EraContainersListing    Era = "containers-listing"
	EraSystemVersionPlist   Era = "systemversion-plist"
)

// ResolutionKind tells whether an extraction can take place.
type ResolutionKind int

// Resolution outcomes.
const (
	Supported ResolutionKind = iota
	NotInRelease
	Unrecognized
)

// Resolution is the outcome of Resolve.
type Resolution struct {
	Kind ResolutionKind
	Era  Era
}

// eraTables partitions every known release per family. Each table must
// list every release, which is checked in init.
var eraTables = map[Family]map[Release]Era{ // nolint:gochecknoglobals
	SystemVersion: {
		SnowLeopard:  EraSystemVersionPlist,
		Lion:         EraSystemVersionPlist,
		MountainLion: EraSystemVersionPlist,
		Mavericks:    EraSystemVersionPlist,
		Yosemite:     EraSystemVersionPlist,
		ElCapitan:    EraSystemVersionPlist,
		Sierra:       EraSystemVersionPlist,
		HighSierra:   EraSystemVersionPlist,
		Mojave:       EraSystemVersionPlist,
		Catalina:     EraSystemVersionPlist,
		BigSur:       EraSystemVersionPlist,
	},
	Accounts: {
		SnowLeopard:  NotApplicable,
		Lion:         NotApplicable,
		MountainLion: EraAccountsZAccount,
		Mavericks:    EraAccountsZAccount,
		Yosemite:     EraAccountsZAccountType,
		ElCapitan:    EraAccountsZAccountType,
		Sierra:       NotApplicable,
		HighSierra:   NotApplicable,
		Mojave:       NotApplicable,
		Catalina:     NotApplicable,
		BigSur:       NotApplicable,
	},
	UserContainers: {
		SnowLeopard:  NotApplicable,
		Lion:         EraContainersListing,
		MountainLion: EraContainersListing,
		Mavericks:    EraContainersListing,
		Yosemite:     EraContainersListing,
		ElCapitan:    EraContainersListing,
		Sierra:       EraContainersListing,
		HighSierra:   EraContainersListing,
		Mojave:       EraContainersListing,
		Catalina:     EraContainersListing,
		BigSur:       EraContainersListing,
	},
	SafariLastSession: {
		SnowLeopard:  EraSessionBackForward,
		Lion:         EraSessionTabStates,
		MountainLion: EraSessionTabStates,
		Mavericks:    EraSessionTabStates,
		Yosemite:     EraSessionTabStates,
		ElCapitan:    EraSessionTabStates,
		Sierra:       EraSessionTabStates,
		HighSierra:   EraSessionTabStates,
		Mojave:       EraSessionTabStates,
		Catalina:     EraSessionTabStates,
		BigSur:       EraSessionTabStates,
	},
	SafariWebBookmarks: {
		SnowLeopard:  EraBookmarksWebBookmark,
		Lion:         EraBookmarksWebBookmark,
		MountainLion: EraBookmarksWebBookmark,
		Mavericks:    EraBookmarksWebBookmark,
		Yosemite:     EraBookmarksWebBookmark,
		ElCapitan:    EraBookmarksWebBookmark,
		Sierra:       EraBookmarksWebBookmark,
		HighSierra:   NotApplicable,
		Mojave:       NotApplicable,
		Catalina:     NotApplicable,
		BigSur:       NotApplicable,
	},
}

func init() { // nolint:gochecknoinits
	if err := checkEraTables(eraTables); err != nil {
		panic(err)
	}
}

func checkEraTables(tables map[Family]map[Release]Era) error {
	for _, family := range Families() {
		table, ok := tables[family]
		if !ok {
			return fmt.Errorf("no era table for %s", family)
		}
		for _, release := range Releases() {
			if era, ok := table[release]; !ok || era == "" {
				return fmt.Errorf("era table of %s misses %s", family, release)
			}
		}
		if len(table) != len(Releases()) {
			return fmt.Errorf("era table of %s contains unknown releases", family)
		}
	}
	return nil
}

// Resolve selects the era of family for release.
func Resolve(family Family, release Release) Resolution {
	if !release.Known() {
		return Resolution{Kind: Unrecognized}
	}
	era := eraTables[family][release]
	if era == NotApplicable {
		return Resolution{Kind: NotInRelease, Era: NotApplicable}
	}
	return Resolution{Kind: Supported, Era: era}
}
