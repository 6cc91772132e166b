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
)

func containersPlugin() Plugin {
	return &artifact[*directory]{
		family:       UserContainers,
		title:        "User Sandbox Containers",
		description:  "List application sandboxes under /Users/username/Library/Containers",
		scope:        PerUser,
		directory:    true,
		path:         []string{"Library", "Containers"},
		notInRelease: msgNotSupported,
		noData:       "No Containers found",
		open:         openDirectory,
		eras: map[Era]Extractor[*directory]{
			EraContainersListing: strategy[*directory]{
				layout:  layout{labels: []string{"Container"}, indent: "\t", bare: true},
				extract: listContainers,
			},
		},
	}
}

func listContainers(dir *directory, l layout, _ zerolog.Logger) ([]Group, error) {
	if len(dir.names) == 0 {
		return nil, nil
	}
	group := Group{}
	for _, name := range dir.names {
		group.Records = append(group.Records, l.record(ValueOf(name)))
	}
	return []Group{group}, nil
}
