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
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/forensicanalysis/osxripper/config"
)

// newLogger writes human readable messages to console and JSON lines to the
// rotated log file in the output directory.
func newLogger(cfg *config.Config, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrapf(err, "invalid log level %s", cfg.Log.Level)
	}

	if err := os.MkdirAll(cfg.Output, 0750); err != nil {
		return zerolog.Nop(), nil, errors.Wrapf(err, "could not create output directory %s", cfg.Output)
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Output, cfg.Log.File),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		LocalTime:  true,
	}

	writer := zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: console, NoColor: true}, file)
	log := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return log, file, nil
}
