// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/parstore"
	"github.com/vk/dyngridgo/internal/resolve"
)

// Bundle is everything needed to write one simulation's input files.
type Bundle struct {
	Name       string
	Context    *resolve.Context
	Store      parstore.Store
	Simulation *config.Simulation
	Curves     []Curve
	Timeline   TimelineFormat
	// Flatten additionally writes every macro connect as concrete connects.
	Flatten bool
}

// File is one rendered file.
type File struct {
	Name string
	Data []byte
}

// Render renders every file of the bundle, in a fixed order.
func Render(ctx context.Context, b Bundle) ([]File, error) {
	logger := ctxlog.FromContext(ctx)
	if b.Context == nil || b.Store == nil {
		return nil, errors.New("emit: context and parameter store are required")
	}
	sim := b.Simulation
	if sim == nil {
		sim = config.DefaultSimulation()
	}

	var files []File
	add := func(name string, data []byte, err error) error {
		if err != nil {
			return err
		}
		files = append(files, File{Name: name, Data: data})
		return nil
	}

	dyd, err := RenderDYD(b.Context, b.Flatten)
	if err := add(DYDFile, dyd, err); err != nil {
		return nil, err
	}

	modelSets, err := ModelSets(b.Context, b.Store)
	if err != nil {
		return nil, fmt.Errorf("collecting model parameters: %w", err)
	}
	par, err := RenderPAR(ModelsParFile, modelSets)
	if err := add(ModelsParFile, par, err); err != nil {
		return nil, err
	}

	network, err := namedSet(b.Store, sim.NetworkParameterSet, defaultNetworkParameters())
	if err != nil {
		return nil, err
	}
	par, err = RenderPAR(NetworkParFile, []*parstore.Set{network})
	if err := add(NetworkParFile, par, err); err != nil {
		return nil, err
	}

	solver, err := namedSet(b.Store, sim.SolverParameterSet, defaultSolverParameters())
	if err != nil {
		return nil, err
	}
	par, err = RenderPAR(SolversParFile, []*parstore.Set{solver})
	if err := add(SolversParFile, par, err); err != nil {
		return nil, err
	}

	jobData, err := RenderJob(b.Name, sim, b.Timeline, len(b.Curves) > 0)
	if err := add(JobFile, jobData, err); err != nil {
		return nil, err
	}

	if len(b.Curves) > 0 {
		crv, err := RenderCRV(b.Curves)
		if err := add(CurvesFile, crv, err); err != nil {
			return nil, err
		}
	}

	logger.Debug("Files rendered.", "count", len(files), "model_sets", len(modelSets))
	return files, nil
}

// WriteAll renders the bundle and writes it into dir, which is created if
// needed. It returns the written paths. Nothing is written unless every file
// rendered; files already written are removed if a later write fails.
func WriteAll(ctx context.Context, dir string, b Bundle) ([]string, error) {
	files, err := Render(ctx, b)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			for _, p := range written {
				_ = os.Remove(p)
			}
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}

	ctxlog.FromContext(ctx).Info("Simulation files written.", "dir", dir, "files", len(written))
	return written, nil
}
