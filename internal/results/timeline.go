// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package results

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// TimelineEvent is one line of the engine's timeline.
type TimelineEvent struct {
	Time    float64 `csv:"time"`
	Model   string  `csv:"modelName"`
	Message string  `csv:"message"`
}

func (e TimelineEvent) String() string {
	return fmt.Sprintf("%g | %s | %s", e.Time, e.Model, e.Message)
}

// ParseTimelineTXT reads `time | model | message` lines. Blank lines are
// skipped; the message may itself contain '|'.
func ParseTimelineTXT(r io.Reader) ([]TimelineEvent, error) {
	var events []TimelineEvent
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parts := strings.SplitN(text, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("timeline line %d: expected 3 fields, got %d", line, len(parts))
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("timeline line %d: %w", line, err)
		}
		events = append(events, TimelineEvent{
			Time:    t,
			Model:   strings.TrimSpace(parts[1]),
			Message: strings.TrimSpace(parts[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// ParseTimelineCSV reads a ';'-separated timeline with a
// `time;modelName;message` header.
func ParseTimelineCSV(r io.Reader) ([]TimelineEvent, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	var rows []*TimelineEvent
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("timeline csv: %w", err)
	}
	events := make([]TimelineEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, *row)
	}
	return events, nil
}
