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

	"github.com/forensicanalysis/osxripper/cocoatime"
	"github.com/forensicanalysis/osxripper/datasource"
)

const (
	queryZAccount = "SELECT zusername,zactive,zauthenticated,zdate," +
		"zaccountdescription,zowningbundleid FROM zaccount"
	queryZAccountType = "SELECT zat.zaccounttypedescription,za.zusername,za.zactive,za.zauthenticated,za.zvisible," +
		"za.zdate,za.zaccountdescription,za.zowningbundleid " +
		"FROM zaccount za,zaccounttype zat WHERE za.zaccounttype = zat.z_pk"
)

// column maps a result column to a record field.
type column struct {
	label string
	name  string
	date  bool
}

func accountsPlugin() Plugin {
	return &artifact[*datasource.Database]{
		family:       Accounts,
		title:        "User Accounts3",
		description:  "Parse information from /Users/<username>/Library/Accounts/Accounts3.sqlite",
		scope:        PerUser,
		path:         []string{"Library", "Accounts", "Accounts3.sqlite"},
		notInRelease: msgNotSupported,
		noData:       "No Account information found",
		open:         datasource.OpenDatabase,
		eras: map[Era]Extractor[*datasource.Database]{
			EraAccountsZAccount: queryStrategy(queryZAccount,
				column{label: "Username", name: "zusername"},
				column{label: "Active", name: "zactive"},
				column{label: "Authenticated", name: "zauthenticated"},
				column{label: "Date", name: "zdate", date: true},
				column{label: "Account Description", name: "zaccountdescription"},
				column{label: "Owning Bundle ID", name: "zowningbundleid"},
			),
			EraAccountsZAccountType: queryStrategy(queryZAccountType,
				column{label: "Account", name: "zaccounttypedescription"},
				column{label: "Username", name: "zusername"},
				column{label: "Active", name: "zactive"},
				column{label: "Authenticated", name: "zauthenticated"},
				column{label: "Visible", name: "zvisible"},
				column{label: "Date", name: "zdate", date: true},
				column{label: "Account Description", name: "zaccountdescription"},
				column{label: "Owning Bundle ID", name: "zowningbundleid"},
			),
		},
	}
}

// queryStrategy turns every row of query into one record. Date columns hold
// Cocoa seconds, a NULL date is printed as cocoatime.NoTimestamp.
func queryStrategy(query string, columns ...column) Extractor[*datasource.Database] {
	l := layout{align: true, separate: true}
	for _, c := range columns {
		l.labels = append(l.labels, c.label)
	}

	return strategy[*datasource.Database]{
		layout: l,
		extract: func(db *datasource.Database, l layout, log zerolog.Logger) ([]Group, error) {
			rows, err := db.Query(query)
			if err != nil {
				return nil, err
			}
			if len(rows) == 0 {
				return nil, nil
			}

			group := Group{}
			for _, row := range rows {
				values := make([]Value, len(columns))
				for i, c := range columns {
					if c.date {
						values[i] = ValueOf(cocoatime.Optional(dateColumn(row, c.name)))
						continue
					}
					values[i] = OptionalValue(row.Value(c.name))
				}
				group.Records = append(group.Records, l.record(values...))
			}
			log.Debug().Int("rows", len(rows)).Msg("accounts extracted")
			return []Group{group}, nil
		},
	}
}

func dateColumn(row datasource.Row, name string) *float64 {
	seconds, ok := row.Float(name)
	if !ok {
		return nil
	}
	return &seconds
}
