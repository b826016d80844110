// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/dsl"
	"github.com/vk/dyngridgo/internal/emit"
	"github.com/vk/dyngridgo/internal/report"
	"github.com/vk/dyngridgo/internal/resolve"
	"github.com/vk/dyngridgo/internal/results"
)

// Summary describes one completed run.
type Summary struct {
	RunID        string
	WorkDir      string
	Files        []string
	Models       int
	Connectors   int
	Instructions int
	Warnings     []report.Warning
	Diagnostics  hcl.Diagnostics
	// Result is nil unless the engine was run.
	Result *results.Result
}

// Run executes the pipeline once. Nothing is written unless resolution and
// rendering both succeed.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	net, err := dsl.BuildNetwork(a.model.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}
	store, err := dsl.BuildParameters(a.model.ParameterSets)
	if err != nil {
		return nil, fmt.Errorf("failed to load parameter sets: %w", err)
	}

	reporter := report.New()
	models, err := dsl.BuildModels(ctx, dsl.Input{
		Declarations: a.model.Declarations,
		Network:      net,
		Libraries:    a.libraries,
		Reporter:     reporter,
	})
	if err != nil {
		return nil, err
	}

	rc, err := resolve.Build(ctx, resolve.Input{
		Network:   net,
		Libraries: a.libraries,
		Models:    models,
		Reporter:  reporter,
	})
	if err != nil {
		return nil, err
	}

	var curves []emit.Curve
	for _, c := range dsl.BuildCurves(ctx, a.model.Curves, rc.Models(), net, reporter) {
		curves = append(curves, emit.Curve{Model: c.Model, Variable: c.Variable})
	}

	runID := uuid.New().String()
	workDir := filepath.Join(a.cfg.OutputDir, runID)
	files, err := emit.WriteAll(ctx, workDir, emit.Bundle{
		Name:       runID,
		Context:    rc,
		Store:      store,
		Simulation: a.model.Simulation,
		Curves:     curves,
		Timeline:   timelineFormat(a.cfg.Timeline),
		Flatten:    a.cfg.Flatten,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write simulation files: %w", err)
	}

	summary := &Summary{
		RunID:        runID,
		WorkDir:      workDir,
		Files:        files,
		Models:       len(rc.Models()),
		Connectors:   len(rc.Connectors()),
		Instructions: len(rc.Instructions()),
		Warnings:     reporter.Warnings(),
		Diagnostics:  reporter.Diagnostics(),
	}

	if a.runner != nil && a.cfg.RunEngine {
		if err := a.runner.Run(ctx, filepath.Join(workDir, emit.JobFile)); err != nil {
			return summary, err
		}
		res, err := results.Load(filepath.Join(workDir, emit.OutputsDir))
		if err != nil {
			return summary, fmt.Errorf("failed to read engine outputs: %w", err)
		}
		summary.Result = res
		a.logResult(res)
	}

	a.logger.Info("Run finished.",
		"run_id", runID,
		"work_dir", workDir,
		"models", summary.Models,
		"connectors", summary.Connectors,
		"instructions", summary.Instructions,
		"warnings", len(summary.Warnings),
	)
	if len(summary.Diagnostics) > 0 {
		a.logger.Warn("Some declarations were skipped.", "count", len(summary.Diagnostics))
		a.writeDiagnostics(summary.Diagnostics)
	}
	return summary, nil
}

// writeDiagnostics prints diagnostics with the offending source lines.
func (a *App) writeDiagnostics(diags hcl.Diagnostics) {
	wr := hcl.NewDiagnosticTextWriter(a.outW, a.model.Files, 78, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to write diagnostics.", "error", err)
	}
}

func (a *App) logResult(res *results.Result) {
	a.logger.Info("Engine outputs read.", "timeline_events", len(res.Timeline), "curves", len(res.Curves))
	for _, c := range res.Curves {
		final, err := c.Final()
		if err != nil {
			continue
		}
		a.logger.Info("Curve.", "name", c.Name, "min", c.Min(), "max", c.Max(), "final", final)
	}
}

func timelineFormat(s string) emit.TimelineFormat {
	if s == "csv" {
		return emit.TimelineCSV
	}
	return emit.TimelineTXT
}
