package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/emit"
	"github.com/vk/dyngridgo/internal/hcl"
	"github.com/vk/dyngridgo/internal/report"
	"github.com/vk/dyngridgo/internal/resolve"
)

const gridHCL = `
	network "grid" {
	  bus "B1" {}
	  bus "B2" {}
	  generator "GEN1" { bus = "B1" }
	  generator "GEN2" { bus = "B2" }
	  load "LOAD1" { bus = "B2" }
	  line "L1" {
	    bus1 = "B1"
	    bus2 = "B2"
	  }
	}
`

const modelsHCL = `
	dynamic_model "GeneratorSynchronousFourWindingsProportionalRegulations" "GEN1_DYN" {
	  static_id     = "GEN1"
	  parameter_set = "GSFWPR"
	}
	dynamic_model "GeneratorSynchronousFourWindingsProportionalRegulations" "GEN2_DYN" {
	  static_id     = "GEN2"
	  parameter_set = "GSFWPR"
	  controllable  = true
	}
	event "Disconnection" "EV1" {
	  static_id            = "L1"
	  start_time           = 1
	  disconnect_extremity = false
	}
	event "ActivePowerVariation" "EV2" {
	  static_id  = "GEN2"
	  start_time = 2
	  delta_p    = 0.1
	}
	parameter_set "GSFWPR" {
	  generator_H    = 5
	  generator_SNom = 100
	}
	curve "GEN1" { variables = ["generator_omegaPu"] }
	simulation { stop_time = 10 }
`

// fakeRunner stands in for the engine and writes canned outputs.
type fakeRunner struct {
	jobs []string
}

func (f *fakeRunner) Run(_ context.Context, jobFile string) error {
	f.jobs = append(f.jobs, jobFile)
	out := filepath.Join(filepath.Dir(jobFile), emit.OutputsDir)
	if err := os.MkdirAll(filepath.Join(out, "timeLine"), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(out, "curves"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, "timeLine", "timeline.log"), []byte("1 | EV1 | opening\n"), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "curves", "curves.csv"),
		[]byte("time;GEN1_DYN_generator_omegaPu;\n0;1;\n5;0.99;\n10;1.001;\n"), 0o644)
}

func TestApp_Run(t *testing.T) {
	a, _, err := SetupAppTest(t, Config{}, hcl.NewLoader(), map[string]string{
		"grid.hcl":   gridHCL,
		"models.hcl": modelsHCL,
	})
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, summary.Files, 6, "dyd, three par files, job and crv")
	assert.Equal(t, 5, summary.Models, "four declared models and the frequency aggregator")
	assert.Empty(t, summary.Warnings)
	assert.Nil(t, summary.Result)
	assert.DirExists(t, summary.WorkDir)
	assert.Equal(t, summary.RunID, filepath.Base(summary.WorkDir))

	dyd, err := os.ReadFile(filepath.Join(summary.WorkDir, emit.DYDFile))
	require.NoError(t, err)
	assert.Contains(t, string(dyd), `id="OMEGA_REF"`)
	assert.Contains(t, string(dyd), `lib="EventQuadripoleDisconnection"`)
	assert.Contains(t, string(dyd), `governor_deltaPmRefPu`)

	par, err := os.ReadFile(filepath.Join(summary.WorkDir, emit.ModelsParFile))
	require.NoError(t, err)
	assert.Contains(t, string(par), `name="weight_gen_1" value="500"`)
	assert.Contains(t, string(par), `name="event_disconnectExtremity" value="false"`)

	crv, err := os.ReadFile(filepath.Join(summary.WorkDir, emit.CurvesFile))
	require.NoError(t, err)
	assert.Contains(t, string(crv), `model="GEN1_DYN" variable="generator_omegaPu"`)
}

func TestApp_RunEngine(t *testing.T) {
	runner := &fakeRunner{}
	a, logs, err := SetupAppTest(t, Config{RunEngine: true}, hcl.NewLoader(), map[string]string{
		"grid.hcl":   gridHCL,
		"models.hcl": modelsHCL,
	}, WithRunner(runner))
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runner.jobs, 1)
	assert.Equal(t, filepath.Join(summary.WorkDir, emit.JobFile), runner.jobs[0])

	require.NotNil(t, summary.Result)
	assert.Len(t, summary.Result.Timeline, 1)
	c, ok := summary.Result.Curve("GEN1_DYN_generator_omegaPu")
	require.True(t, ok)
	assert.Equal(t, 0.99, c.Min())
	assert.Contains(t, logs.String(), "Curve.")
}

func TestApp_Warnings(t *testing.T) {
	a, logs, err := SetupAppTest(t, Config{}, hcl.NewLoader(), map[string]string{
		"grid.hcl": gridHCL,
		"models.hcl": `
			dynamic_model "LoadAlphaBeta" "LOAD1_DYN" {
			  static_id     = "LOAD1"
			  parameter_set = "LAB"
			}
			dynamic_model "NoSuchLibrary" "X" { static_id = "GEN1" }
			parameter_set "LAB" { load_alpha = 2 }
			curve "GHOST" { variables = ["v"] }
		`,
	})
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Warnings, 2)
	assert.Equal(t, report.UnknownLibrary, summary.Warnings[0].Kind)
	assert.Equal(t, report.UnknownCurveTarget, summary.Warnings[1].Kind)
	assert.Contains(t, logs.String(), "Declaration skipped.")

	// Each skipped declaration is located in its source file.
	require.NotNil(t, summary.Warnings[0].Subject)
	assert.Equal(t, "models.hcl", filepath.Base(summary.Warnings[0].Subject.Filename))
	assert.Equal(t, 5, summary.Warnings[0].Subject.Start.Line)
	assert.Equal(t, 7, summary.Warnings[1].Subject.Start.Line)

	require.Len(t, summary.Diagnostics, 2)
	assert.Contains(t, logs.String(), "Warning: Unknown library")
	assert.Contains(t, logs.String(), "models.hcl line 5")
	assert.Contains(t, logs.String(), `dynamic_model "NoSuchLibrary" "X"`, "source line is quoted")
}

func TestApp_DuplicateIDWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	a, _, err := SetupAppTest(t, Config{OutputDir: out}, hcl.NewLoader(), map[string]string{
		"grid.hcl": gridHCL,
		"models.hcl": `
			dynamic_model "LoadAlphaBeta" "DUP" {
			  static_id     = "LOAD1"
			  parameter_set = "LAB"
			}
			event "Disconnection" "DUP" {
			  static_id  = "L1"
			  start_time = 1
			}
		`,
	})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.ErrorIs(t, err, resolve.ErrDuplicateModel)
	assert.NoDirExists(t, out)
}

func TestNewApp_Errors(t *testing.T) {
	_, _, err := SetupAppTest(t, Config{}, hcl.NewLoader(), map[string]string{"bad.hcl": `network "x" {`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	_, err = NewConfig(Config{})
	assert.Error(t, err)

	_, err = NewConfig(Config{InputPath: "x", Timeline: "xml"})
	assert.ErrorContains(t, err, "invalid timeline format")
}
