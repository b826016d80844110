package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/testutil"
)

func TestLoadProperties(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"engine.properties": `
			dynawo.homeDir = /opt/dynawo
			dynawo.debug = true
			dynawo.timeout = 90s
		`,
	})

	p, err := LoadProperties(filepath.Join(dir, "engine.properties"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/dynawo", p.Dynawo.HomeDir)
	assert.True(t, p.Dynawo.Debug)
	assert.Equal(t, 90*time.Second, p.Dynawo.Timeout)
	assert.Equal(t, "/opt/dynawo/dynawo.sh", p.Dynawo.LauncherPath())
}

func TestLoadProperties_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DYNGRID_DYNAWO_TIMEOUT", "5m")
	t.Setenv("DYNGRID_DYNAWO_LAUNCHER", "/usr/bin/dynawo")

	p, err := LoadProperties("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, p.Dynawo.Timeout)
	assert.False(t, p.Dynawo.Debug)
	assert.Equal(t, "/usr/bin/dynawo", p.Dynawo.LauncherPath())
}

func TestLoadProperties_MissingFile(t *testing.T) {
	_, err := LoadProperties(filepath.Join(t.TempDir(), "nope.properties"))
	assert.Error(t, err)
}

// fakeLauncher writes a shell script standing in for the engine.
func fakeLauncher(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dynawo.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestExecRunner_Run(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	launcher := fakeLauncher(t, `echo "running $1 $2"; touch ran`)
	work := t.TempDir()
	job := filepath.Join(work, "simulation.jobs")

	r := NewExecRunner(&Properties{Dynawo: DynawoProperties{Launcher: launcher, Debug: true}})
	require.NoError(t, r.Run(ctx, job))

	assert.FileExists(t, filepath.Join(work, "ran"), "the engine runs in the job directory")
	assert.Contains(t, logs.String(), "running jobs simulation.jobs")
}

func TestExecRunner_Failure(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	launcher := fakeLauncher(t, `echo "bad job" >&2; exit 3`)

	r := NewExecRunner(&Properties{Dynawo: DynawoProperties{Launcher: launcher}})
	err := r.Run(ctx, filepath.Join(t.TempDir(), "simulation.jobs"))
	require.ErrorIs(t, err, ErrEngineFailed)
	assert.Contains(t, err.Error(), "bad job")
}

func TestExecRunner_Timeout(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	launcher := fakeLauncher(t, `exec sleep 5`)

	r := NewExecRunner(&Properties{Dynawo: DynawoProperties{Launcher: launcher, Timeout: 50 * time.Millisecond}})
	err := r.Run(ctx, filepath.Join(t.TempDir(), "simulation.jobs"))
	require.ErrorIs(t, err, ErrEngineFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
