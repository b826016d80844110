// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrNoSamples = errors.New("curve has no samples")

// Curve is one output variable over time. Name is `<model>_<variable>`.
type Curve struct {
	Name   string
	Times  []float64
	Values []float64
}

// Min returns the smallest value, NaN for an empty curve.
func (c Curve) Min() float64 {
	if len(c.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(c.Values)
}

// Max returns the largest value, NaN for an empty curve.
func (c Curve) Max() float64 {
	if len(c.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(c.Values)
}

// Final returns the last value.
func (c Curve) Final() (float64, error) {
	if len(c.Values) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoSamples, c.Name)
	}
	return c.Values[len(c.Values)-1], nil
}

// At returns the value at the last sample not after t.
func (c Curve) At(t float64) (float64, error) {
	if len(c.Times) == 0 || t < c.Times[0] {
		return 0, fmt.Errorf("%w: %s at %g", ErrNoSamples, c.Name, t)
	}
	v := c.Values[0]
	for i, ts := range c.Times {
		if ts > t {
			break
		}
		v = c.Values[i]
	}
	return v, nil
}

// ParseCurvesCSV reads the engine's curves table: a `time;<curve>;...`
// header followed by one row per time step. A trailing separator is allowed.
func ParseCurvesCSV(r io.Reader) ([]Curve, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("curves csv header: %w", err)
	}
	header = trimTrailing(header)
	if len(header) == 0 || strings.TrimSpace(header[0]) != "time" {
		return nil, errors.New("curves csv: first column must be \"time\"")
	}

	curves := make([]Curve, len(header)-1)
	for i, name := range header[1:] {
		curves[i].Name = strings.TrimSpace(name)
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("curves csv row %d: %w", row, err)
		}
		row++
		record = trimTrailing(record)
		if len(record) != len(header) {
			return nil, fmt.Errorf("curves csv row %d: %d fields, header has %d", row, len(record), len(header))
		}
		values := make([]float64, len(record))
		for i, field := range record {
			if values[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				return nil, fmt.Errorf("curves csv row %d column %d: %w", row, i+1, err)
			}
		}
		for i := range curves {
			curves[i].Times = append(curves[i].Times, values[0])
			curves[i].Values = append(curves[i].Values, values[i+1])
		}
	}
	return curves, nil
}

func trimTrailing(record []string) []string {
	if n := len(record); n > 0 && strings.TrimSpace(record[n-1]) == "" {
		return record[:n-1]
	}
	return record
}
