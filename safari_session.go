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
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/osxripper/datasource"
)

var tabLayout = layout{ // nolint:gochecknoglobals
	labels:   []string{"Tab URL", "Tab Title"},
	indent:   "\t",
	align:    true,
	separate: true,
}

func safariLastSessionPlugin() Plugin {
	return &artifact[*datasource.Document]{
		family:       SafariLastSession,
		title:        "User Safari Last Session",
		description:  "Parse information from /Users/username/Library/Safari/LastSession.plist",
		scope:        PerUser,
		path:         []string{"Library", "Safari", "LastSession.plist"},
		output:       "_Safari_Last_Session",
		notInRelease: msgNotSupported,
		noData:       "No Safari session information found",
		open:         datasource.LoadPlist,
		eras: map[Era]Extractor[*datasource.Document]{
			EraSessionBackForward: strategy[*datasource.Document]{layout: tabLayout, extract: sessionWindows(backForwardTab)},
			EraSessionTabStates:   strategy[*datasource.Document]{layout: tabLayout, extract: sessionWindows(tabStateTab)},
		},
	}
}

// sessionWindows walks SessionWindows[].TabStates[] and builds one group per
// window and one record per tab, tab converts a single tab state.
func sessionWindows(tab func(l layout, state gjson.Result) Record) func(*datasource.Document, layout, zerolog.Logger) ([]Group, error) {
	return func(doc *datasource.Document, l layout, log zerolog.Logger) ([]Group, error) {
		windows := doc.Get("SessionWindows")
		if !windows.IsArray() {
			log.Debug().Msg("no session windows")
			return nil, nil
		}

		var groups []Group
		for _, window := range windows.Array() {
			states := window.Get("TabStates")
			if !states.IsArray() {
				continue
			}
			group := Group{Heading: "Tabs:"}
			for _, state := range states.Array() {
				group.Records = append(group.Records, tab(l, state))
			}
			groups = append(groups, group)
		}
		return groups, nil
	}
}

// tabStateTab reads URL and title stored directly in the tab state.
func tabStateTab(l layout, state gjson.Result) Record {
	return l.record(jsonValue(state.Get("TabURL")), jsonValue(state.Get("TabTitle")))
}

// backForwardTab reads URL and title of the current back-forward list entry.
func backForwardTab(l layout, state gjson.Result) Record {
	entry := currentEntry(state)
	return l.record(jsonValue(entry.Get("URL")), jsonValue(entry.Get("Title")))
}

// currentEntry selects the entry at BackForwardListCurrentIndex, or the last
// entry if the index is missing or out of range.
func currentEntry(state gjson.Result) gjson.Result {
	list := state.Get("BackForwardList")
	if !list.IsArray() {
		return gjson.Result{}
	}
	entries := list.Array()
	if len(entries) == 0 {
		return gjson.Result{}
	}

	index := state.Get("BackForwardListCurrentIndex")
	if index.Type == gjson.Number {
		if i := index.Int(); i >= 0 && i < int64(len(entries)) {
			return entries[i]
		}
	}
	return entries[len(entries)-1]
}
