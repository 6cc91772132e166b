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

// Package config holds the settings of an extraction run. Settings are read
// from an optional YAML file, completed with defaults and overridden by
// command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config of a run.
type Config struct {
	Input     string   `yaml:"input" validate:"required"`
	Output    string   `yaml:"output" validate:"required"`
	Release   string   `yaml:"release,omitempty"`
	Artifacts []string `yaml:"artifacts,omitempty" validate:"dive,required"`
	Workers   int      `yaml:"workers,omitempty" validate:"min=1"`
	Store     string   `yaml:"store,omitempty"`
	Log       Log      `yaml:"log,omitempty"`
}

// Log configures the log file written to the output directory.
type Log struct {
	Level      string `yaml:"level,omitempty" validate:"loglevel"`
	File       string `yaml:"file,omitempty" validate:"required"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups,omitempty" validate:"min=0"`
}

// Default returns the settings used for everything not configured.
func Default() Config {
	return Config{
		Workers: 1,
		Log: Log{
			Level:      "info",
			File:       "osxripper.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a YAML configuration file and fills unset values with the
// defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %s", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %s", path)
	}
	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, errors.Wrap(err, "could not apply defaults")
	}
	return cfg, nil
}

// Override replaces the values of cfg with all values set in overrides.
func (cfg *Config) Override(overrides Config) error {
	return mergo.Merge(cfg, overrides, mergo.WithOverride)
}

// Validate checks that the configuration can be run. The release is not
// checked, an unknown release is reported in the output.
func (cfg *Config) Validate() error {
	validate := validator.New()
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "debug", "info", "warn", "error":
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errors.Wrap(err, "configuration validation error")
	}
	var messages []string
	for _, e := range errs {
		msg := fmt.Sprintf("'%s' failed rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, ", "))
}
