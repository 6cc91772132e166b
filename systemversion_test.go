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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

const systemVersionPath = "/System/Library/CoreServices/SystemVersion.plist"

func TestSystemVersion(t *testing.T) {
	w := len("Product User Visible Version")
	tests := []struct {
		name    string
		release Release
		plist   plistMap
		want    []string
	}{
		{"Complete", ElCapitan, plistMap{
			"ProductBuildVersion":       "15G31",
			"ProductCopyright":          "1983-2016 Apple Inc.",
			"ProductName":               "Mac OS X",
			"ProductUserVisibleVersion": "10.11.6",
			"ProductVersion":            "10.11.6",
		}, []string{
			field(w, "Product Build Version", "15G31"),
			field(w, "Product Copyright", "1983-2016 Apple Inc."),
			field(w, "Product Name", "Mac OS X"),
			field(w, "Product User Visible Version", "10.11.6"),
			field(w, "Product Version", "10.11.6"),
		}},
		{"Partial", Lion, plistMap{
			"ProductName":    "Mac OS X",
			"ProductVersion": "10.7.5",
		}, []string{
			field(w, "Product Name", "Mac OS X"),
			field(w, "Product Version", "10.7.5"),
		}},
		{"Empty", Catalina, plistMap{"Build": "x"}, []string{"No System Version information found"}},
		{"Unknown", ReleaseUnknown, plistMap{"ProductName": "Mac OS X"}, []string{msgUnknownRelease}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writePlist(t, fs, systemVersionPath, tt.plist)

			plugin := systemVersionPlugin()
			section := plugin.Section(newJob(fs, tt.release, "", systemVersionPath))
			assert.Equal(t, tt.want, section.Lines)
			assert.Equal(t, "SystemVersion.txt", plugin.Output(""))
			assert.Equal(t, Host, plugin.Scope())
		})
	}
}

func TestSystemVersionTruncated(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, systemVersionPath, []byte("truncated"), 0644))

	section := systemVersionPlugin().Section(newJob(fs, ElCapitan, "", systemVersionPath))
	if assert.Len(t, section.Lines, 1) {
		assert.Contains(t, section.Lines[0], "[ERROR] ")
		assert.Contains(t, section.Lines[0], "plist root is not a dictionary")
	}
}
