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

	"github.com/forensicanalysis/osxripper/datasource"
)

// systemVersionKeys are the plist keys in output order.
var systemVersionKeys = []string{ // nolint:gochecknoglobals
	"ProductBuildVersion",
	"ProductCopyright",
	"ProductName",
	"ProductUserVisibleVersion",
	"ProductVersion",
}

func systemVersionPlugin() Plugin {
	return &artifact[*datasource.Document]{
		family:       SystemVersion,
		title:        "System Version",
		description:  "Get the OSX version from /System/Library/CoreServices/SystemVersion.plist",
		scope:        Host,
		path:         []string{"System", "Library", "CoreServices", "SystemVersion.plist"},
		output:       "SystemVersion.txt",
		notInRelease: msgNotSupported,
		noData:       "No System Version information found",
		open:         datasource.LoadPlist,
		eras: map[Era]Extractor[*datasource.Document]{
			EraSystemVersionPlist: strategy[*datasource.Document]{
				layout: layout{
					labels: []string{
						"Product Build Version",
						"Product Copyright",
						"Product Name",
						"Product User Visible Version",
						"Product Version",
					},
					align: true,
				},
				extract: systemVersion,
			},
		},
	}
}

func systemVersion(doc *datasource.Document, l layout, _ zerolog.Logger) ([]Group, error) {
	values := make([]Value, len(systemVersionKeys))
	found := false
	for i, key := range systemVersionKeys {
		values[i] = jsonValue(doc.Get(key))
		found = found || values[i].Present()
	}
	if !found {
		return nil, nil
	}
	return []Group{{Records: []Record{l.record(values...)}}}, nil
}
