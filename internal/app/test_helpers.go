// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/testutil"
)

// SetupAppTest writes the given input files into a temporary directory and
// creates an app reading them. Output goes to another temporary directory.
// Set DYNGRID_TEST_LOGS=true to print the captured log of each test.
func SetupAppTest(t *testing.T, cfg Config, loader config.Loader, files map[string]string, opts ...Option) (*App, *testutil.SafeBuffer, error) {
	t.Helper()

	cfg.InputPath = testutil.WriteFiles(t, files)
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appCfg, err := NewConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	logBuffer := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("DYNGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	testApp, err := NewApp(logBuffer, appCfg, loader, opts...)
	return testApp, logBuffer, err
}
