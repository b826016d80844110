// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath     string // hcl files
	LibrariesPath string // extra library manifests
	OutputDir     string // one work directory per run is created inside

	EngineConfig string // engine .properties file
	RunEngine    bool
	Flatten      bool
	Timeline     string // txt or csv

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	switch cfg.Timeline {
	case "":
		cfg.Timeline = "txt"
	case "txt", "csv":
	default:
		return nil, fmt.Errorf("invalid timeline format %q: must be 'txt' or 'csv'", cfg.Timeline)
	}
	return &cfg, nil
}
