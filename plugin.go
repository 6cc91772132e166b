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

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/osxripper/datasource"
	"github.com/forensicanalysis/osxripper/report"
)

// Inline messages shared by all artifacts.
const (
	msgUnknownRelease = "[WARNING] Not a known OSX version."
	msgNotSupported   = "[INFO] This version of OSX is not supported by this plugin."
)

// Scope tells whether an artifact exists once per host or once per user.
type Scope int

// Artifact scopes.
const (
	PerUser Scope = iota
	Host
)

// Handle is an opened artifact source.
type Handle interface {
	Close() error
}

// Extractor reads the records of one era from an opened source and knows
// how to print them.
type Extractor[H Handle] interface {
	Extract(source H, log zerolog.Logger) ([]Group, error)
	Lines(groups []Group) []string
}

type strategy[H Handle] struct {
	layout
	extract func(source H, l layout, log zerolog.Logger) ([]Group, error)
}

func (s strategy[H]) Extract(source H, log zerolog.Logger) ([]Group, error) {
	return s.extract(source, s.layout, log)
}

func (s strategy[H]) Lines(groups []Group) []string {
	return s.render(groups)
}

// Origin describes where a record was found.
type Origin struct {
	Family  Family
	Release Release
	User    string
	Source  string
	Group   string
}

// Collector receives every extracted record in addition to the text report.
type Collector interface {
	Collect(origin Origin, record Record) error
}

// Job is the extraction of one artifact for one user or for the host.
type Job struct {
	Fs         afero.Fs
	Release    Release
	ReleaseTag string
	User       string
	Source     string
	Log        zerolog.Logger
	Collector  Collector
}

// Plugin extracts one artifact family.
type Plugin interface {
	Family() Family
	Title() string
	Description() string
	Scope() Scope
	SourceLabel() string
	Output(user string) string
	Source(loc *Locator, user string) string
	Section(job Job) report.Section
}

type artifact[H Handle] struct {
	family       Family
	title        string
	description  string
	scope        Scope
	directory    bool
	path         []string
	output       string
	notInRelease string
	noData       string
	open         func(fs afero.Fs, name string) (H, error)
	eras         map[Era]Extractor[H]
}

func (a *artifact[H]) Family() Family      { return a.family }
func (a *artifact[H]) Title() string       { return a.title }
func (a *artifact[H]) Description() string { return a.description }
func (a *artifact[H]) Scope() Scope        { return a.scope }

func (a *artifact[H]) SourceLabel() string {
	if a.directory {
		return report.SourceDirectory
	}
	return report.SourceFile
}

// Output returns the report file name. Host artifacts ignore user.
func (a *artifact[H]) Output(user string) string {
	if a.scope == Host {
		return a.output
	}
	return "Users_" + user + a.output + ".txt"
}

func (a *artifact[H]) Source(loc *Locator, user string) string {
	if a.scope == Host {
		return loc.HostPath(a.path...)
	}
	return loc.UserPath(user, a.path...)
}

// Section runs the job and returns the framed result. Every failure is
// reported inside the section.
func (a *artifact[H]) Section(job Job) report.Section {
	log := job.Log.With().Str("artifact", a.family.String()).Str("source", job.Source).Logger()
	if job.User != "" {
		log = log.With().Str("user", job.User).Logger()
	}
	return report.Section{
		Title:       a.title,
		SourceLabel: a.SourceLabel(),
		SourcePath:  job.Source,
		Lines:       a.lines(job, log),
	}
}

func (a *artifact[H]) lines(job Job, log zerolog.Logger) []string {
	resolution := Resolve(a.family, job.Release)
	switch resolution.Kind {
	case Unrecognized:
		log.Warn().Str("release", job.ReleaseTag).Msg("not a known OSX version")
		return []string{msgUnknownRelease}
	case NotInRelease:
		log.Info().Str("release", job.Release.String()).Msg("artifact not present in this release")
		return []string{a.notInRelease}
	}

	if !a.exists(job.Fs, job.Source) {
		line := a.missing(job.Source)
		log.Warn().Msg(line)
		return []string{line}
	}

	extractor, ok := a.eras[resolution.Era]
	if !ok {
		return failure(log, fmt.Errorf("no extractor for era %s", resolution.Era))
	}

	groups, err := a.extract(job, extractor, log)
	if err != nil {
		return failure(log, err)
	}
	if len(groups) == 0 {
		return []string{a.noData}
	}
	collect(job, a.family, groups, log)
	return extractor.Lines(groups)
}

func (a *artifact[H]) extract(job Job, extractor Extractor[H], log zerolog.Logger) (groups []Group, err error) {
	defer func() {
		if r := recover(); r != nil {
			groups, err = nil, fmt.Errorf("extraction failed: %v", r)
		}
	}()

	source, err := a.open(job.Fs, job.Source)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	return extractor.Extract(source, log)
}

func (a *artifact[H]) exists(fs afero.Fs, name string) bool {
	if a.directory {
		return datasource.IsDir(fs, name)
	}
	return datasource.IsFile(fs, name)
}

func (a *artifact[H]) missing(name string) string {
	if a.directory {
		return fmt.Sprintf("[WARNING] Directory: %s does not exist or cannot be found.", name)
	}
	return fmt.Sprintf("[WARNING] File: %s does not exist or cannot be found.", name)
}

func failure(log zerolog.Logger, err error) []string {
	log.Error().Err(err).Msg("could not read source")
	return []string{fmt.Sprintf("[ERROR] %s", err)}
}

func collect(job Job, family Family, groups []Group, log zerolog.Logger) {
	if job.Collector == nil {
		return
	}
	for _, group := range groups {
		origin := Origin{Family: family, Release: job.Release, User: job.User, Source: job.Source, Group: group.Heading}
		for _, record := range group.Records {
			if err := job.Collector.Collect(origin, record); err != nil {
				log.Error().Err(err).Msg("could not store record")
			}
		}
	}
}

// directory is the handle of directory based artifacts.
type directory struct {
	fs    afero.Fs
	path  string
	names []string
}

func openDirectory(fs afero.Fs, name string) (*directory, error) {
	names, err := datasource.ListDir(fs, name)
	if err != nil {
		return nil, err
	}
	return &directory{fs: fs, path: name, names: names}, nil
}

func (d *directory) Close() error {
	return nil
}

// Plugins returns all artifact plugins in report order.
func Plugins() []Plugin {
	return []Plugin{
		systemVersionPlugin(),
		accountsPlugin(),
		containersPlugin(),
		safariLastSessionPlugin(),
		safariWebBookmarksPlugin(),
	}
}

// PluginFor returns the plugin of family.
func PluginFor(family Family) (Plugin, bool) {
	for _, plugin := range Plugins() {
		if plugin.Family() == family {
			return plugin, true
		}
	}
	return nil, false
}
