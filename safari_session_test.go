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

const sessionPath = "/Users/bob/Library/Safari/LastSession.plist"

type plistMap = map[string]interface{}

func TestSafariLastSession(t *testing.T) {
	tests := []struct {
		name    string
		release Release
		session plistMap
		want    []string
	}{
		{"Back forward list", SnowLeopard, plistMap{
			"SessionWindows": []interface{}{
				plistMap{"TabStates": []interface{}{
					plistMap{"BackForwardList": []interface{}{
						plistMap{"URL": "http://example.com", "Title": "Example"},
					}},
				}},
			},
		}, []string{
			"Tabs:",
			"\tTab URL  : http://example.com",
			"\tTab Title: Example",
			"",
		}},
		{"Back forward current index", SnowLeopard, plistMap{
			"SessionWindows": []interface{}{
				plistMap{"TabStates": []interface{}{
					plistMap{
						"BackForwardListCurrentIndex": 0,
						"BackForwardList": []interface{}{
							plistMap{"URL": "http://first.example", "Title": "First"},
							plistMap{"URL": "http://second.example", "Title": "Second"},
						},
					},
					plistMap{
						"BackForwardListCurrentIndex": 7,
						"BackForwardList": []interface{}{
							plistMap{"URL": "http://third.example"},
							plistMap{"URL": "http://fourth.example", "Title": "Fourth"},
						},
					},
				}},
			},
		}, []string{
			"Tabs:",
			"\tTab URL  : http://first.example",
			"\tTab Title: First",
			"",
			"\tTab URL  : http://fourth.example",
			"\tTab Title: Fourth",
			"",
		}},
		{"Tab states", Catalina, plistMap{
			"SessionWindows": []interface{}{
				plistMap{"TabStates": []interface{}{
					plistMap{"TabURL": "https://a.example", "TabTitle": "A"},
					plistMap{"TabURL": "https://b.example"},
				}},
				plistMap{"TabStates": []interface{}{
					plistMap{"TabURL": "https://c.example", "TabTitle": "C"},
				}},
			},
		}, []string{
			"Tabs:",
			"\tTab URL  : https://a.example",
			"\tTab Title: A",
			"",
			"\tTab URL  : https://b.example",
			"",
			"Tabs:",
			"\tTab URL  : https://c.example",
			"\tTab Title: C",
			"",
		}},
		{"No windows", Lion, plistMap{"Version": "1.0"}, []string{"No Safari session information found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writePlist(t, fs, sessionPath, tt.session)

			section := safariLastSessionPlugin().Section(newJob(fs, tt.release, "bob", sessionPath))
			assert.Equal(t, "User Safari Last Session", section.Title)
			assert.Equal(t, tt.want, section.Lines)
		})
	}
}

func TestSafariLastSessionErrors(t *testing.T) {
	tests := []struct {
		name    string
		release Release
		content []byte
		want    string
	}{
		{"Unknown release", ReleaseUnknown, []byte("garbage"), msgUnknownRelease},
		{"Broken plist", Mojave, []byte("garbage"), "[ERROR] "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll(filepath.Dir(sessionPath), 0755))
			require.NoError(t, afero.WriteFile(fs, sessionPath, tt.content, 0644))

			section := safariLastSessionPlugin().Section(newJob(fs, tt.release, "bob", sessionPath))
			require.Len(t, section.Lines, 1)
			assert.Contains(t, section.Lines[0], tt.want)
		})
	}
}

func TestSafariLastSessionOutput(t *testing.T) {
	plugin := safariLastSessionPlugin()
	loc := NewLocator(afero.NewMemMapFs(), "/mnt", testLogger())
	assert.Equal(t, "Users_bob_Safari_Last_Session.txt", plugin.Output("bob"))
	assert.Equal(t, filepath.Join("/mnt", "Users", "bob", "Library", "Safari", "LastSession.plist"), plugin.Source(loc, "bob"))
	assert.Equal(t, PerUser, plugin.Scope())
}
