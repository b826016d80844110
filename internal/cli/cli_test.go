package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantExit   bool
		wantCode   int
		wantInput  string
		wantRun    bool
		wantFormat string
	}{
		{name: "positional input", args: []string{"grid/"}, wantInput: "grid/", wantFormat: "text"},
		{name: "input flag wins", args: []string{"-input", "a.hcl", "b.hcl"}, wantInput: "a.hcl", wantFormat: "text"},
		{name: "shorthand", args: []string{"-i", "a.hcl", "-run", "-log-format", "JSON"}, wantInput: "a.hcl", wantRun: true, wantFormat: "json"},
		{name: "no input prints usage", args: nil, wantExit: true},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "bad log format", args: []string{"-log-format", "xml", "a.hcl"}, wantCode: 2},
		{name: "bad log level", args: []string{"-log-level", "loud", "a.hcl"}, wantCode: 2},
		{name: "bad timeline", args: []string{"-timeline", "xml", "a.hcl"}, wantCode: 2},
		{name: "unknown flag", args: []string{"-nope"}, wantCode: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.wantInput, cfg.InputPath)
			assert.Equal(t, tc.wantRun, cfg.RunEngine)
			assert.Equal(t, tc.wantFormat, cfg.LogFormat)
			assert.Equal(t, "out", cfg.OutputDir)
			assert.Equal(t, "txt", cfg.Timeline)
		})
	}
}
