// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/dyngridgo/internal/ctxlog"
)

var ErrEngineFailed = errors.New("simulation engine failed")

// Runner executes one job file.
type Runner interface {
	Run(ctx context.Context, jobFile string) error
}

// ExecRunner starts the engine launcher as a child process:
// `<launcher> jobs <jobFile>`, in the job file's directory.
type ExecRunner struct {
	props DynawoProperties
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates a runner for the given installation.
func NewExecRunner(p *Properties) *ExecRunner {
	return &ExecRunner{props: p.Dynawo}
}

// Run blocks until the engine exits, the timeout expires or ctx is done.
// Standard error is captured and returned with the failure.
func (r *ExecRunner) Run(ctx context.Context, jobFile string) error {
	logger := ctxlog.FromContext(ctx)
	if r.props.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.props.Timeout)
		defer cancel()
	}

	launcher := r.props.LauncherPath()
	cmd := exec.CommandContext(ctx, launcher, "jobs", filepath.Base(jobFile))
	cmd.Dir = filepath.Dir(jobFile)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	logger.Info("Starting simulation engine.", "launcher", launcher, "job", jobFile)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrEngineFailed, err)
	}
	r.forward(ctx, stdout)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrEngineFailed, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		logger.Error("Simulation engine failed.", "error", err, "stderr", msg)
		return fmt.Errorf("%w: %w: %s", ErrEngineFailed, err, msg)
	}
	logger.Info("Simulation engine finished.")
	return nil
}

// forward logs the engine's output in debug mode and drains it otherwise.
func (r *ExecRunner) forward(ctx context.Context, out io.Reader) {
	if !r.props.Debug {
		_, _ = io.Copy(io.Discard, out)
		return
	}
	logger := ctxlog.FromContext(ctx)
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		logger.Debug("engine", "line", scanner.Text())
	}
	_, _ = io.Copy(io.Discard, out)
}
