package emit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/inmemorystore"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/parstore"
	"github.com/vk/dyngridgo/internal/resolve"
	"github.com/vk/dyngridgo/internal/testutil"
)

const genLib = "GeneratorSynchronousFourWindingsProportionalRegulations"

type fixture struct {
	ctx   context.Context
	libs  *library.Registry
	net   *network.Network
	store *inmemorystore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	libs, err := library.NewDefault(ctx)
	require.NoError(t, err)
	net, err := network.NewBuilder("grid", network.BusBreaker).
		Bus("B1").Bus("B2").
		Injection(network.KindGenerator, "GEN1", "B1").
		Injection(network.KindLoad, "LOAD1", "B2").
		Branch(network.KindLine, "L1", "B1", "B2").
		Build()
	require.NoError(t, err)

	store := inmemorystore.New()
	require.NoError(t, store.Add(&parstore.Set{ID: "GSFWPR", Parameters: []parstore.Parameter{
		parstore.Double("generator_H", 5.4),
		parstore.Double("generator_SNom", 1000),
	}}))
	return &fixture{ctx: ctx, libs: libs, net: net, store: store}
}

func (f *fixture) resolve(t *testing.T, genParSet string) *resolve.Context {
	t.Helper()
	lib, err := f.libs.Lookup(genLib)
	require.NoError(t, err)
	models := []*blackbox.Model{
		blackbox.MustNew(blackbox.Spec{
			ID:             "GEN1_DYN",
			Kind:           blackbox.KindGenerator,
			Library:        lib,
			ParameterSetID: genParSet,
			Equipment:      blackbox.EquipmentRef{Kind: network.KindGenerator, StaticID: "GEN1"},
		}),
		blackbox.MustNew(blackbox.Spec{
			ID:   "EV1",
			Kind: blackbox.KindEvent,
			Event: &blackbox.EventSpec{
				Type: blackbox.EventDisconnection, StartTime: 1,
				DisconnectOrigin: true, DisconnectExtremity: true,
			},
			Targets: []blackbox.Target{{
				Role:      blackbox.RoleTarget,
				Equipment: blackbox.EquipmentRef{Kind: network.KindLine, StaticID: "L1"},
			}},
		}),
	}
	rc, err := resolve.Build(f.ctx, resolve.Input{Network: f.net, Libraries: f.libs, Models: models})
	require.NoError(t, err)
	return rc
}

func fileMap(files []File) map[string]string {
	m := make(map[string]string, len(files))
	for _, f := range files {
		m[f.Name] = string(f.Data)
	}
	return m
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	files, err := Render(f.ctx, Bundle{
		Name:    "run",
		Context: f.resolve(t, "GSFWPR"),
		Store:   f.store,
	})
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{DYDFile, ModelsParFile, NetworkParFile, SolversParFile, JobFile}, names)

	out := fileMap(files)
	dyd := out[DYDFile]
	assert.True(t, strings.HasPrefix(dyd, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, dyd, `<dyn:dynamicModelsArchitecture xmlns:dyn="http://www.rte-france.com/dynawo">`)
	assert.Contains(t, dyd, `<dyn:blackBoxModel id="GEN1_DYN" lib="`+genLib+`" parFile="models.par" parId="GSFWPR" staticId="GEN1">`)
	assert.Contains(t, dyd, `<dyn:macroStaticRef id="MSR_`+genLib+`">`)
	assert.Contains(t, dyd, `<dyn:macroStaticReference id="MSR_`+genLib+`">`)
	assert.Contains(t, dyd, `<dyn:blackBoxModel id="EV1" lib="EventQuadripoleDisconnection" parFile="models.par" parId="EV1">`)
	assert.Contains(t, dyd, `<dyn:blackBoxModel id="OMEGA_REF" lib="DYNModelOmegaRef" parFile="models.par" parId="OMEGA_REF">`)
	assert.NotContains(t, dyd, `<dyn:blackBoxModel id="NETWORK"`)
	assert.Contains(t, dyd, `<dyn:macroConnect connector="MC_`)
	assert.Contains(t, dyd, `name1="B1"`)
	assert.Contains(t, dyd, `index1="0"`)
	assert.NotContains(t, dyd, `<dyn:connect id1=`, "flattened connects are opt-in")

	par := out[ModelsParFile]
	assert.Less(t, strings.Index(par, `<set id="GSFWPR">`), strings.Index(par, `<set id="EV1">`))
	assert.Less(t, strings.Index(par, `<set id="EV1">`), strings.Index(par, `<set id="OMEGA_REF">`))
	assert.Contains(t, par, `<par type="DOUBLE" name="generator_H" value="5.4"></par>`)
	assert.Contains(t, par, `<par type="INT" name="nbGen" value="1"></par>`)
	assert.Contains(t, par, `<par type="DOUBLE" name="weight_gen_0" value="5400"></par>`)
	assert.Contains(t, par, `<par type="BOOL" name="event_disconnectOrigin" value="true"></par>`)

	assert.Contains(t, out[SolversParFile], `<set id="IDA">`)
	assert.Contains(t, out[NetworkParFile], `<set id="Network">`)

	jobs := out[JobFile]
	assert.Contains(t, jobs, `<dyn:job name="run">`)
	assert.Contains(t, jobs, `<dyn:solver lib="dynawo_SolverIDA" parFile="solvers.par" parId="IDA">`)
	assert.Contains(t, jobs, `<dyn:dynModels dydFile="models.dyd">`)
	assert.Contains(t, jobs, `<dyn:simulation startTime="0" stopTime="100" precision="1e-06">`)
	assert.NotContains(t, jobs, "dyn:curves")
}

func TestRender_CurvesAndFlatten(t *testing.T) {
	f := newFixture(t)
	files, err := Render(f.ctx, Bundle{
		Name:       "run",
		Context:    f.resolve(t, "GSFWPR"),
		Store:      f.store,
		Simulation: &config.Simulation{StopTime: 10, Solver: "dynawo_SolverSIM", SolverParameterSet: "SIM", NetworkParameterSet: "Network", IIDMFile: "grid.iidm"},
		Curves:     []Curve{{Model: "GEN1_DYN", Variable: "generator_omegaPu"}},
		Timeline:   TimelineCSV,
		Flatten:    true,
	})
	require.NoError(t, err)

	out := fileMap(files)
	assert.Contains(t, out[CurvesFile], `<curve model="GEN1_DYN" variable="generator_omegaPu"></curve>`)
	assert.Contains(t, out[JobFile], `<dyn:curves inputFile="models.crv" exportMode="CSV">`)
	assert.Contains(t, out[JobFile], `<dyn:timeline exportMode="CSV">`)
	assert.Contains(t, out[JobFile], `iidmFile="grid.iidm"`)
	assert.Contains(t, out[SolversParFile], `<set id="SIM">`)
	assert.Contains(t, out[DYDFile], `<dyn:connect id1="NETWORK" var1="B1_ACPIN" id2="GEN1_DYN" var2="generator_terminal">`)
}

func TestWriteAll(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "work")

	paths, err := WriteAll(f.ctx, dir, Bundle{Name: "run", Context: f.resolve(t, "GSFWPR"), Store: f.store})
	require.NoError(t, err)
	require.Len(t, paths, 5)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestWriteAll_MissingSetWritesNothing(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "work")

	_, err := WriteAll(f.ctx, dir, Bundle{Name: "run", Context: f.resolve(t, "NOPE"), Store: f.store})
	require.Error(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "no output directory is created on failure")
}
