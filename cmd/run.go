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

package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/osxripper"
	"github.com/forensicanalysis/osxripper/config"
	"github.com/forensicanalysis/osxripper/recordstore"
)

// Run is the osxripper run commandline subcommand.
func Run() *cobra.Command {
	var configFile string
	flags := config.Config{}

	runCommand := &cobra.Command{
		Use:   "run",
		Short: "Extract artifacts from a macOS filesystem tree into text reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, cfg)
		},
	}
	runCommand.Flags().StringVarP(&flags.Input, "input", "i", "", "root of the macOS filesystem tree")
	runCommand.Flags().StringVarP(&flags.Output, "output", "o", "", "report directory")
	runCommand.Flags().StringVar(&flags.Release, "os-version", "", "OS release of the tree, see the releases command")
	runCommand.Flags().StringSliceVar(&flags.Artifacts, "artifacts", nil, "artifacts to extract (default all)")
	runCommand.Flags().IntVar(&flags.Workers, "workers", 0, "number of parallel extractions (default 1)")
	runCommand.Flags().StringVar(&flags.Store, "store", "", "also write all records into this SQLite file")
	runCommand.Flags().StringVar(&flags.Log.Level, "log-level", "", "debug, info, warn or error (default info)")
	runCommand.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	return runCommand
}

func loadConfig(configFile string, flags config.Config) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(afero.NewOsFs(), configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if err := cfg.Override(flags); err != nil {
		return nil, errors.Wrap(err, "could not apply flags")
	}
	return &cfg, cfg.Validate()
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	families, err := parseFamilies(cfg.Artifacts)
	if err != nil {
		return err
	}

	log, logFile, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts := osxripper.Options{
		Release:   cfg.Release,
		InputDir:  cfg.Input,
		OutputDir: cfg.Output,
		Families:  families,
		Workers:   cfg.Workers,
	}

	if cfg.Store != "" {
		store, err := recordstore.New(cfg.Store)
		if err != nil {
			return errors.Wrapf(err, "could not create store %s", cfg.Store)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("could not close store")
			}
		}()
		opts.Collector = &storeCollector{store: store}
	}

	fs := afero.NewOsFs()
	if _, err := fs.Stat(cfg.Input); err != nil {
		log.Warn().Err(err).Str("input", cfg.Input).Msg("input directory not accessible")
	}

	summary, err := osxripper.NewRunner(fs, log).Run(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d sections written to %s (run %s)\n", summary.Sections, cfg.Output, summary.RunID)
	if summary.Failed > 0 {
		return fmt.Errorf("%d sections could not be written", summary.Failed)
	}
	return nil
}

func parseFamilies(names []string) ([]osxripper.Family, error) {
	var families []osxripper.Family
	for _, name := range names {
		family, ok := osxripper.ParseFamily(name)
		if !ok {
			return nil, fmt.Errorf("unknown artifact %s, see the artifacts command", name)
		}
		families = append(families, family)
	}
	return families, nil
}
