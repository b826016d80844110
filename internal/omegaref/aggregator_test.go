package omegaref

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/endpoint"
	"github.com/vk/dyngridgo/internal/inmemorystore"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/macro"
	"github.com/vk/dyngridgo/internal/parstore"
	"github.com/vk/dyngridgo/internal/testutil"
)

const genLib = "GeneratorSynchronousFourWindingsProportionalRegulations"

type fixture struct {
	libs   *library.Registry
	agg    *Aggregator
	reg    *macro.Registry
	instrs *macro.Instructions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	libs, err := library.NewDefault(ctx)
	require.NoError(t, err)
	def, err := libs.Aggregator()
	require.NoError(t, err)
	return &fixture{libs: libs, agg: New(def), reg: macro.NewRegistry(), instrs: &macro.Instructions{}}
}

func (f *fixture) generator(t *testing.T, id, lib, parSet string) *blackbox.Model {
	t.Helper()
	def, err := f.libs.Lookup(lib)
	require.NoError(t, err)
	return blackbox.MustNew(blackbox.Spec{ID: id, Kind: blackbox.KindGenerator, Library: def, ParameterSetID: parSet})
}

func defaultBus(name string) *BusPartner {
	return &BusPartner{Endpoint: endpoint.Named("NETWORK", name), Role: "DefaultBus", Numcc: "@NAME@_numcc"}
}

func TestJoin_SlotsAndStates(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Uninitialized, f.agg.State())
	assert.Nil(t, f.agg.Model())

	for i, id := range []string{"GEN-A", "GEN-B", "GEN-C"} {
		slot, err := f.agg.Join(f.reg, f.instrs, f.generator(t, id, genLib, "GSFWPR_"+id), defaultBus("B1"))
		require.NoError(t, err)
		assert.Equal(t, i, slot)
		if i == 0 {
			assert.Equal(t, FirstSeen, f.agg.State())
			require.NotNil(t, f.agg.Model())
		} else {
			assert.Equal(t, Indexed, f.agg.State())
		}
	}

	// Two connectors regardless of the number of generators.
	assert.Equal(t, 2, f.reg.Len())
	assert.Equal(t, 6, f.instrs.Len())

	// Joining again is a no-op.
	slot, err := f.agg.Join(f.reg, f.instrs, f.generator(t, "GEN-B", genLib, "GSFWPR_GEN-B"), defaultBus("B1"))
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	assert.Equal(t, 6, f.instrs.Len())

	m := f.agg.Close()
	require.NotNil(t, m)
	assert.Equal(t, ModelID, m.ID())
	assert.Equal(t, blackbox.KindAggregator, m.Kind())
	assert.Equal(t, Closed, f.agg.State())
	assert.Equal(t, 3, f.agg.NbGen())

	_, err = f.agg.Join(f.reg, f.instrs, f.generator(t, "GEN-D", genLib, "X"), nil)
	require.ErrorIs(t, err, ErrClosed)
}

func TestJoin_Instructions(t *testing.T) {
	f := newFixture(t)
	_, err := f.agg.Join(f.reg, f.instrs, f.generator(t, "GEN1", genLib, "P"), defaultBus("B1"))
	require.NoError(t, err)
	_, err = f.agg.Join(f.reg, f.instrs, f.generator(t, "GEN2", genLib, "P"), nil)
	require.NoError(t, err)

	connects, err := macro.FlattenAll(f.reg, f.instrs)
	require.NoError(t, err)
	want := []macro.Connect{
		{ID1: "OMEGA_REF", Var1: "omega_grp_0", ID2: "GEN1", Var2: "generator_omegaPu"},
		{ID1: "OMEGA_REF", Var1: "omegaRef_grp_0", ID2: "GEN1", Var2: "generator_omegaRefPu"},
		{ID1: "OMEGA_REF", Var1: "running_grp_0", ID2: "GEN1", Var2: "generator_running"},
		{ID1: "OMEGA_REF", Var1: "numcc_node_0", ID2: "NETWORK", Var2: "B1_numcc"},
		{ID1: "OMEGA_REF", Var1: "omega_grp_1", ID2: "GEN2", Var2: "generator_omegaPu"},
		{ID1: "OMEGA_REF", Var1: "omegaRef_grp_1", ID2: "GEN2", Var2: "generator_omegaRefPu"},
		{ID1: "OMEGA_REF", Var1: "running_grp_1", ID2: "GEN2", Var2: "generator_running"},
	}
	if diff := cmp.Diff(want, connects); diff != "" {
		t.Errorf("connects mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin_RejectsNonContributor(t *testing.T) {
	f := newFixture(t)
	_, err := f.agg.Join(f.reg, f.instrs, f.generator(t, "PQ", "GeneratorPQ", "P"), nil)
	require.ErrorIs(t, err, ErrNotContributor)
	assert.Equal(t, Uninitialized, f.agg.State())
}

func TestClose_Empty(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.agg.Close())
	assert.Equal(t, Closed, f.agg.State())
}

func TestParameters_Weights(t *testing.T) {
	f := newFixture(t)
	store := inmemorystore.New()
	inputs := []struct {
		id      string
		h, sNom float64
	}{{"GEN-A", 5.4, 1000}, {"GEN-B", 6, 500}, {"GEN-C", 2, 250}}
	for _, in := range inputs {
		require.NoError(t, store.Add(&parstore.Set{ID: "set_" + in.id, Parameters: []parstore.Parameter{
			parstore.Double("generator_H", in.h),
			parstore.Double("generator_SNom", in.sNom),
		}}))
		_, err := f.agg.Join(f.reg, f.instrs, f.generator(t, in.id, genLib, "set_"+in.id), nil)
		require.NoError(t, err)
	}
	f.agg.Close()

	params, err := f.agg.Parameters(store)
	require.NoError(t, err)
	require.Len(t, params, 4)
	assert.Equal(t, "nbGen", params[0].Name)
	assert.Equal(t, "3", params[0].Text())
	for i, in := range inputs {
		p := params[i+1]
		assert.Equal(t, fmt.Sprintf("weight_gen_%d", i), p.Name)
		w, err := p.Float()
		require.NoError(t, err)
		assert.InDelta(t, in.h*in.sNom, w, 1e-9)
	}
}

func TestParameters_MissingWeight(t *testing.T) {
	f := newFixture(t)
	store := inmemorystore.New()
	require.NoError(t, store.Add(&parstore.Set{ID: "P", Parameters: []parstore.Parameter{parstore.Double("generator_H", 5)}}))
	_, err := f.agg.Join(f.reg, f.instrs, f.generator(t, "GEN1", genLib, "P"), nil)
	require.NoError(t, err)

	_, err = f.agg.Parameters(store)
	require.ErrorIs(t, err, ErrMissingWeightParameter)
	require.ErrorIs(t, err, parstore.ErrMissingParameter)
	assert.Contains(t, err.Error(), `model "GEN1"`)
	assert.Contains(t, err.Error(), `parameter "generator_SNom"`)
}
