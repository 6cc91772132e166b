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
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readReport(t *testing.T, fs afero.Fs, name string) string {
	b, err := afero.ReadFile(fs, filepath.Join("/out", name))
	require.NoError(t, err)
	return string(b)
}

func runnerFixture(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	writePlist(t, fs, "/mnt"+systemVersionPath, plistMap{"ProductName": "Mac OS X", "ProductVersion": "10.6.8"})
	writePlist(t, fs, "/mnt/Users/bob/Library/Safari/LastSession.plist", plistMap{
		"SessionWindows": []interface{}{
			plistMap{"TabStates": []interface{}{
				plistMap{"BackForwardList": []interface{}{
					plistMap{"URL": "http://example.com", "Title": "Example"},
				}},
			}},
		},
	})
	require.NoError(t, fs.MkdirAll("/mnt/Users/Shared", 0755))
	require.NoError(t, fs.MkdirAll("/mnt/Users/alice", 0755))
	return fs
}

func TestRunSnowLeopard(t *testing.T) {
	fs := runnerFixture(t)

	summary, err := NewRunner(fs, testLogger()).Run(context.Background(), Options{
		Release:   "snow_leopard",
		InputDir:  "/mnt",
		OutputDir: "/out",
	})
	require.NoError(t, err)
	assert.Equal(t, SnowLeopard, summary.Release)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 9, summary.Sections) // 1 host section, 4 families for 2 users
	assert.Zero(t, summary.Failed)

	session := readReport(t, fs, "Users_bob_Safari_Last_Session.txt")
	assert.Equal(t, strings.Join([]string{
		"========== User Safari Last Session ==========",
		"",
		"Source File: /mnt/Users/bob/Library/Safari/LastSession.plist",
		"",
		"Tabs:",
		"\tTab URL  : http://example.com",
		"\tTab Title: Example",
		"",
		strings.Repeat("=", 40),
		"",
	}, "\r\n")+"\r\n", session)
	assert.Equal(t, 1, strings.Count(session, "http://example.com"))

	alice := readReport(t, fs, "Users_alice_Safari_Last_Session.txt")
	assert.Contains(t, alice, "[WARNING] File: /mnt/Users/alice/Library/Safari/LastSession.plist does not exist or cannot be found.")

	accounts := readReport(t, fs, "Users_alice.txt")
	assert.Contains(t, accounts, "========== User Accounts3 ==========\r\n")
	assert.Contains(t, accounts, "========== User Sandbox Containers ==========\r\n")
	assert.Equal(t, 2, strings.Count(accounts, msgNotSupported))

	_, err = fs.Stat("/out/Users_Shared.txt")
	assert.Error(t, err)

	assert.Contains(t, readReport(t, fs, "SystemVersion.txt"), field(len("Product User Visible Version"), "Product Version", "10.6.8"))
}

func TestRunAppends(t *testing.T) {
	fs := runnerFixture(t)
	runner := NewRunner(fs, testLogger())
	opts := Options{Release: "lion", InputDir: "/mnt", OutputDir: "/out", Families: []Family{SystemVersion}}

	_, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	once := readReport(t, fs, "SystemVersion.txt")

	_, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, once+once, readReport(t, fs, "SystemVersion.txt"))
}

func TestRunUnknownRelease(t *testing.T) {
	fs := runnerFixture(t)
	// unreadable sources must not be touched
	require.NoError(t, afero.WriteFile(fs, "/mnt/Users/alice/Library/Accounts/Accounts3.sqlite", []byte("garbage"), 0644))

	summary, err := NewRunner(fs, testLogger()).Run(context.Background(), Options{
		Release:   "monterey",
		InputDir:  "/mnt",
		OutputDir: "/out",
	})
	require.NoError(t, err)
	assert.Equal(t, ReleaseUnknown, summary.Release)

	for _, name := range []string{"SystemVersion.txt", "Users_alice.txt", "Users_bob.txt", "Users_bob_Safari_Last_Session.txt", "Users_alice_Safari_Web_Bookmarks.txt"} {
		report := readReport(t, fs, name)
		assert.Contains(t, report, msgUnknownRelease, name)
		assert.NotContains(t, report, "[ERROR]", name)
		assert.NotContains(t, report, "Tab URL", name)
	}
}

func TestRunMissingUsers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePlist(t, fs, "/mnt"+systemVersionPath, plistMap{"ProductName": "Mac OS X"})

	summary, err := NewRunner(fs, testLogger()).Run(context.Background(), Options{
		Release:   "mojave",
		InputDir:  "/mnt",
		OutputDir: "/out",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Sections)

	users := readReport(t, fs, UsersReport)
	assert.Equal(t, 4, strings.Count(users, "[WARNING] Directory: /mnt/Users does not exist or cannot be found.\r\n"))
	assert.Contains(t, users, "Source Directory: /mnt/Users")

	files, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestRunUnknownReleaseMissingUsers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePlist(t, fs, "/mnt"+systemVersionPath, plistMap{"ProductName": "Mac OS X"})

	summary, err := NewRunner(fs, testLogger()).Run(context.Background(), Options{
		Release:   "monterey",
		InputDir:  "/mnt",
		OutputDir: "/out",
	})
	require.NoError(t, err)
	assert.Equal(t, ReleaseUnknown, summary.Release)
	assert.Equal(t, 5, summary.Sections)

	users := readReport(t, fs, UsersReport)
	assert.Equal(t, 4, strings.Count(users, msgUnknownRelease+"\r\n"))
	assert.NotContains(t, users, "[WARNING] Directory:")
	assert.Contains(t, users, "Source Directory: /mnt/Users")
}

type syncCollector struct {
	mu      sync.Mutex
	records map[Family]int
}

func (c *syncCollector) Collect(origin Origin, _ Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[origin.Family]++
	return nil
}

func TestRunWorkers(t *testing.T) {
	fs := afero.NewMemMapFs()
	var users []string
	for _, user := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		users = append(users, user)
		writePlist(t, fs, "/mnt/Users/"+user+"/Library/Safari/LastSession.plist", plistMap{
			"SessionWindows": []interface{}{
				plistMap{"TabStates": []interface{}{plistMap{"TabURL": "https://" + user + ".example", "TabTitle": user}}},
			},
		})
		require.NoError(t, fs.MkdirAll("/mnt/Users/"+user+"/Library/Containers/com.apple.mail", 0755))
	}

	collector := &syncCollector{records: map[Family]int{}}
	summary, err := NewRunner(fs, testLogger()).Run(context.Background(), Options{
		Release:   "catalina",
		InputDir:  "/mnt",
		OutputDir: "/out",
		Workers:   4,
		Families:  []Family{SafariLastSession, UserContainers},
		Collector: collector,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, summary.Sections)
	assert.Equal(t, 6, collector.records[SafariLastSession])
	assert.Equal(t, 6, collector.records[UserContainers])

	for _, user := range users {
		report := readReport(t, fs, "Users_"+user+"_Safari_Last_Session.txt")
		assert.True(t, strings.HasPrefix(report, "========== User Safari Last Session ==========\r\n"))
		assert.True(t, strings.HasSuffix(report, strings.Repeat("=", 40)+"\r\n\r\n"))
		assert.Contains(t, report, "\tTab Title: "+user+"\r\n")
		assert.Contains(t, readReport(t, fs, "Users_"+user+".txt"), "\tcom.apple.mail\r\n")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(runnerFixture(t), testLogger()).Run(ctx, Options{Release: "lion", InputDir: "/mnt", OutputDir: "/out"})
	assert.ErrorIs(t, err, context.Canceled)
}
