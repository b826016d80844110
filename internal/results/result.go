// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package results

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Paths of the engine outputs, relative to its output directory.
var (
	TimelineTXTPath = filepath.Join("timeLine", "timeline.log")
	TimelineCSVPath = filepath.Join("timeLine", "timeline.csv")
	CurvesPath      = filepath.Join("curves", "curves.csv")
)

// Result is everything read back from one run.
type Result struct {
	Timeline []TimelineEvent
	Curves   []Curve
}

// Curve returns the curve with the given name.
func (r *Result) Curve(name string) (Curve, bool) {
	for _, c := range r.Curves {
		if c.Name == name {
			return c, true
		}
	}
	return Curve{}, false
}

// Load reads the outputs found in dir. Missing files are not an error: a
// run without curves has no curves file.
func Load(dir string) (*Result, error) {
	res := &Result{}

	var err error
	if res.Timeline, err = parseIfExists(filepath.Join(dir, TimelineTXTPath), ParseTimelineTXT); err != nil {
		return nil, err
	}
	if res.Timeline == nil {
		if res.Timeline, err = parseIfExists(filepath.Join(dir, TimelineCSVPath), ParseTimelineCSV); err != nil {
			return nil, err
		}
	}
	if res.Curves, err = parseIfExists(filepath.Join(dir, CurvesPath), ParseCurvesCSV); err != nil {
		return nil, err
	}
	return res, nil
}

func parseIfExists[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
