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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookmarksPath = "/Users/carol/Library/Caches/Metadata/Safari/Bookmarks"

func TestSafariWebBookmarks(t *testing.T) {
	fs := afero.NewMemMapFs()
	first := filepath.Join(bookmarksPath, "A.webbookmark")
	broken := filepath.Join(bookmarksPath, "B.webbookmark")
	untitled := filepath.Join(bookmarksPath, "C.webbookmark")
	writePlist(t, fs, first, plistMap{"Name": "Example", "URL": "http://example.com"})
	require.NoError(t, afero.WriteFile(fs, broken, []byte("garbage"), 0644))
	writePlist(t, fs, untitled, plistMap{"URL": "http://untitled.example"})

	section := safariWebBookmarksPlugin().Section(newJob(fs, Sierra, "carol", bookmarksPath))

	assert.Equal(t, "Source Directory", section.SourceLabel)
	require.Len(t, section.Lines, 9)
	assert.Equal(t, []string{
		"Bookmark Plist: " + first,
		"Name: Example",
		"URL: http://example.com",
		"",
		"Bookmark Plist: " + broken,
	}, section.Lines[:5])
	assert.Contains(t, section.Lines[5], "[ERROR] ")
	assert.Equal(t, []string{
		"Bookmark Plist: " + untitled,
		"URL: http://untitled.example",
		"",
	}, section.Lines[6:9])
}

func TestSafariWebBookmarksReleases(t *testing.T) {
	tests := []struct {
		name    string
		release Release
		want    []string
	}{
		{"High Sierra", HighSierra, []string{"[INFO] File: Bookmarks files not in this version."}},
		{"Big Sur", BigSur, []string{"[INFO] File: Bookmarks files not in this version."}},
		{"Unknown", ReleaseUnknown, []string{msgUnknownRelease}},
		{"Missing directory", Yosemite, []string{"[WARNING] Directory: " + bookmarksPath + " does not exist or cannot be found."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := safariWebBookmarksPlugin().Section(newJob(afero.NewMemMapFs(), tt.release, "carol", bookmarksPath))
			assert.Equal(t, tt.want, section.Lines)
		})
	}
}

func TestSafariWebBookmarksEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(bookmarksPath, 0755))

	section := safariWebBookmarksPlugin().Section(newJob(fs, Lion, "carol", bookmarksPath))
	assert.Equal(t, []string{"No Bookmark information found"}, section.Lines)
}
