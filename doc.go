// Copyright (c) 2019 Siemens AG
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

// Package osxripper extracts forensic artifacts from a copied or mounted
// macOS filesystem tree and writes them into text reports.
//
// # Release dispatch
//
// The same artifact is stored differently across macOS releases. Every
// artifact family owns a table that maps each known release to an era (a
// layout variant) or marks the artifact as not present in that release.
// Tables are checked for completeness when the package is loaded.
//
// # Reports
//
// Reports are plain text with CRLF line endings and are only appended to:
//
//	out/
//	├── SystemVersion.txt
//	├── Users_alice.txt
//	├── Users_alice_Safari_Last_Session.txt
//	├── Users_alice_Safari_Web_Bookmarks.txt
//	└── ...
//
// Each extraction appends one framed section:
//
//	========== User Accounts3 ==========
//
//	Source File: /mnt/image/Users/alice/Library/Accounts/Accounts3.sqlite
//
//	Username           : alice@example.com
//	...
//	========================================
//
// Missing files, unsupported releases and unreadable sources are reported
// inside the section, a run never stops because of a single artifact.
package osxripper
