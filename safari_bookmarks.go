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
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/forensicanalysis/osxripper/datasource"
)

func safariWebBookmarksPlugin() Plugin {
	return &artifact[*directory]{
		family:       SafariWebBookmarks,
		title:        "User Safari Web Bookmarks",
		description:  "Parse information from /Users/username/Library/Caches/Metadata/Safari/Bookmarks/*.webbookmark plists",
		scope:        PerUser,
		directory:    true,
		path:         []string{"Library", "Caches", "Metadata", "Safari", "Bookmarks"},
		output:       "_Safari_Web_Bookmarks",
		notInRelease: "[INFO] File: Bookmarks files not in this version.",
		noData:       "No Bookmark information found",
		open:         openDirectory,
		eras: map[Era]Extractor[*directory]{
			EraBookmarksWebBookmark: strategy[*directory]{
				layout:  layout{labels: []string{"Name", "URL"}, separate: true},
				extract: webBookmarks,
			},
		},
	}
}

// webBookmarks decodes every file of the directory on its own, a broken file
// is reported in its group and does not stop the others.
func webBookmarks(dir *directory, l layout, log zerolog.Logger) ([]Group, error) {
	var groups []Group
	for _, name := range dir.names {
		p := filepath.Join(dir.path, name)
		group := Group{Heading: "Bookmark Plist: " + p}

		if !datasource.IsFile(dir.fs, p) {
			notice := fmt.Sprintf("[WARNING] File: %s does not exist or cannot be found.", p)
			log.Warn().Str("path", p).Msg("bookmark is not a file")
			group.Notices = append(group.Notices, notice)
			groups = append(groups, group)
			continue
		}

		doc, err := datasource.LoadPlist(dir.fs, p)
		if err != nil {
			log.Error().Err(err).Str("path", p).Msg("could not read bookmark")
			group.Notices = append(group.Notices, fmt.Sprintf("[ERROR] %s", err))
			groups = append(groups, group)
			continue
		}

		group.Records = append(group.Records, l.record(jsonValue(doc.Get("Name")), jsonValue(doc.Get("URL"))))
		groups = append(groups, group)
	}
	return groups, nil
}
