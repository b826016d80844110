package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		dynamic_model "GeneratorPQ" "GEN1" {
		  static_id = "GEN1"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-output", filepath.Join(tempDir, "out"), filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_WritesFiles(t *testing.T) {
	t.Parallel()

	input := `
network "grid" {
  bus "B1" {}
  load "LOAD1" { bus = "B1" }
}
dynamic_model "LoadAlphaBeta" "LOAD1_DYN" {
  static_id     = "LOAD1"
  parameter_set = "LAB"
}
parameter_set "LAB" { load_alpha = 2 }
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(input), 0o600))
	outDir := filepath.Join(tempDir, "out")

	err := run(context.Background(), &bytes.Buffer{}, []string{"-output", outDir, filePath})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "one work directory per run")
	require.FileExists(t, filepath.Join(outDir, entries[0].Name(), "models.dyd"))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
