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
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/forensicanalysis/osxripper/report"
)

// UsersReport receives the sections of per-user artifacts when the tree has
// no Users directory.
const UsersReport = "Users.txt"

// Options configure a run.
type Options struct {
	Release   string
	InputDir  string
	OutputDir string
	Families  []Family
	Workers   int
	Collector Collector
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Release  Release
	Sections int
	Failed   int
}

// Runner extracts artifacts from a filesystem tree into text reports.
type Runner struct {
	fs  afero.Fs
	log zerolog.Logger
}

// NewRunner creates a Runner that reads and writes through fs and sends
// diagnostics to log.
func NewRunner(fs afero.Fs, log zerolog.Logger) *Runner {
	return &Runner{fs: fs, log: log}
}

type task struct {
	output  string
	section func() report.Section
}

// Run writes one section per artifact and target. Extraction problems are
// reported inside the sections, only setup errors and cancellation of ctx
// are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	writer, err := report.NewWriter(r.fs, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: uuid.New().String(), Release: ParseRelease(opts.Release)}
	log := r.log.With().Str("run", summary.RunID).Logger()
	if !summary.Release.Known() {
		log.Warn().Str("release", opts.Release).Msg("not a known OSX version")
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)
	for _, t := range r.plan(opts, summary.Release, log) {
		if ctx.Err() != nil {
			break
		}
		t := t
		g.Go(func() error {
			err := writer.Append(t.output, t.section())

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("report", t.output).Msg("could not write section")
				summary.Failed++
				return nil
			}
			summary.Sections++
			return nil
		})
	}
	_ = g.Wait()

	log.Info().Int("sections", summary.Sections).Int("failed", summary.Failed).Msg("run finished")
	return summary, ctx.Err()
}

func (r *Runner) plan(opts Options, release Release, log zerolog.Logger) []task {
	loc := NewLocator(r.fs, opts.InputDir, log)

	var users []string
	listed, usersFound := false, false

	var tasks []task
	for _, plugin := range selectPlugins(opts.Families) {
		plugin := plugin
		job := Job{Fs: r.fs, Release: release, ReleaseTag: opts.Release, Log: log, Collector: opts.Collector}

		if plugin.Scope() == Host {
			job.Source = plugin.Source(loc, "")
			tasks = append(tasks, task{output: plugin.Output(""), section: func() report.Section { return plugin.Section(job) }})
			continue
		}

		if !listed {
			users, usersFound = loc.Users()
			listed = true
		}
		if !usersFound {
			tasks = append(tasks, task{output: UsersReport, section: func() report.Section {
				return missingUsers(plugin, release, loc.UsersPath())
			}})
			continue
		}

		for _, user := range users {
			userJob := job
			userJob.User = user
			userJob.Source = plugin.Source(loc, user)
			tasks = append(tasks, task{output: plugin.Output(user), section: func() report.Section { return plugin.Section(userJob) }})
		}
	}
	return tasks
}

// missingUsers reports a per-user family when the Users directory is absent.
// An unrecognised release is reported first, as every family would do.
func missingUsers(plugin Plugin, release Release, usersPath string) report.Section {
	line := msgUnknownRelease
	if release.Known() {
		line = fmt.Sprintf("[WARNING] Directory: %s does not exist or cannot be found.", usersPath)
	}
	return report.Section{
		Title:       plugin.Title(),
		SourceLabel: report.SourceDirectory,
		SourcePath:  usersPath,
		Lines:       []string{line},
	}
}

func selectPlugins(families []Family) []Plugin {
	if len(families) == 0 {
		return Plugins()
	}
	wanted := map[Family]bool{}
	for _, family := range families {
		wanted[family] = true
	}

	var plugins []Plugin
	for _, plugin := range Plugins() {
		if wanted[plugin.Family()] {
			plugins = append(plugins, plugin)
		}
	}
	return plugins
}
