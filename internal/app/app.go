// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/engine"
	"github.com/vk/dyngridgo/internal/library"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	cfg       *Config
	libraries *library.Registry
	model     *config.Model
	runner    engine.Runner
}

// Option customizes an App.
type Option func(*App)

// WithRunner replaces the engine runner built from the engine properties.
func WithRunner(r engine.Runner) Option {
	return func(a *App) { a.runner = r }
}

// NewApp loads the libraries and the input files. Problems in user input are
// returned; a broken embedded library set is a programmer error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	libs, err := library.NewDefault(ctx)
	if err != nil {
		panic(fmt.Errorf("embedded library manifests are invalid: %w", err))
	}
	if cfg.LibrariesPath != "" {
		if err := libs.LoadDir(ctx, cfg.LibrariesPath); err != nil {
			return nil, fmt.Errorf("failed to load libraries: %w", err)
		}
		if err := libs.Validate(); err != nil {
			return nil, fmt.Errorf("invalid libraries: %w", err)
		}
	}
	logger.Debug("Libraries loaded.", "count", libs.Len())

	model, err := loader.Load(ctx, cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into unified model.")

	a := &App{outW: outW, logger: logger, cfg: cfg, libraries: libs, model: model}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.RunEngine && a.runner == nil {
		props, err := engine.LoadProperties(cfg.EngineConfig)
		if err != nil {
			return nil, err
		}
		a.runner = engine.NewExecRunner(props)
	}
	return a, nil
}

// Libraries returns the application's library registry. This is primarily for testing.
func (a *App) Libraries() *library.Registry {
	return a.libraries
}
