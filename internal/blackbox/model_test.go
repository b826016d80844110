package blackbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/parstore"
	"github.com/vk/dyngridgo/internal/testutil"
)

func registry(t *testing.T) *library.Registry {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	reg, err := library.NewDefault(ctx)
	require.NoError(t, err)
	return reg
}

func lookup(t *testing.T, reg *library.Registry, name string) *library.Definition {
	t.Helper()
	def, err := reg.Lookup(name)
	require.NoError(t, err)
	return def
}

func TestNew_Validation(t *testing.T) {
	reg := registry(t)
	gen := lookup(t, reg, "GeneratorSynchronousFourWindingsProportionalRegulations")
	pq := lookup(t, reg, "GeneratorPQ")

	testCases := []struct {
		name        string
		spec        Spec
		errContains string
	}{
		{"empty id", Spec{Kind: KindGenerator, Library: gen}, "empty id"},
		{"no library", Spec{ID: "G", Kind: KindGenerator}, "has no library"},
		{"event without settings", Spec{ID: "E", Kind: KindEvent}, "no event settings"},
		{"category mismatch", Spec{ID: "G", Kind: KindLoad, Library: gen}, "cannot back a load model"},
		{"controllable unsupported", Spec{ID: "G", Kind: KindGenerator, Library: pq, Controllable: true}, "does not support controllable"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.spec)
			require.ErrorIs(t, err, ErrInvalidModel)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestModel_ControllableVarsAndRole(t *testing.T) {
	reg := registry(t)
	gen := lookup(t, reg, "GeneratorSynchronousFourWindingsProportionalRegulations")

	plain := MustNew(Spec{ID: "GEN1", Kind: KindGenerator, Library: gen,
		Equipment: EquipmentRef{Kind: network.KindGenerator, StaticID: "GEN1"}})
	ctrl := MustNew(Spec{ID: "GEN2", Kind: KindGenerator, Library: gen, Controllable: true,
		Equipment: EquipmentRef{Kind: network.KindGenerator, StaticID: "GEN2"}})

	v, _ := plain.Var(library.DeltaP, library.SideNone)
	assert.Equal(t, "generator_deltaPmRefPu_value", v)
	v, _ = ctrl.Var(library.DeltaP, library.SideNone)
	assert.Equal(t, "governor_deltaPmRefPu", v)

	// Terminal wiring is the same for both.
	t1, _ := plain.Var(library.Terminal, library.SideNone)
	t2, _ := ctrl.Var(library.Terminal, library.SideNone)
	assert.Equal(t, t1, t2)

	assert.Equal(t, gen.Name, plain.Role(library.DeltaP))
	assert.Equal(t, gen.Name+"_controllable", ctrl.Role(library.DeltaP))
	assert.Equal(t, gen.Name, ctrl.Role(library.Terminal))
	assert.NotEmpty(t, plain.StaticVarMapping())
}

func TestModel_WithLibrary(t *testing.T) {
	reg := registry(t)
	ev := MustNew(Spec{ID: "EV1", Kind: KindEvent,
		Targets: []Target{{Role: RoleTarget, Equipment: EquipmentRef{Kind: network.KindLine, StaticID: "L1"}}},
		Event:   &EventSpec{Type: EventDisconnection, StartTime: 1}})
	assert.Equal(t, "", ev.Library())

	lib := lookup(t, reg, "EventQuadripoleDisconnection")
	fin := ev.WithLibrary(lib, []parstore.Parameter{parstore.Double("event_tEvent", 1)})

	assert.Equal(t, "", ev.Library(), "original must stay untouched")
	assert.Equal(t, "EventQuadripoleDisconnection", fin.Library())
	assert.Equal(t, "EV1", fin.ParameterSetID())
	assert.Len(t, fin.Parameters(), 1)
	assert.Equal(t, ev.Targets(), fin.Targets())
}

func TestSides(t *testing.T) {
	assert.Equal(t, []library.Side{library.SideOne, library.SideTwo}, BothSides.List())
	assert.Equal(t, []library.Side{library.SideTwo}, SidesOf(library.SideTwo).List())
	assert.False(t, SideOneOnly.Has(library.SideTwo))
	assert.False(t, BothSides.Has(library.SideNone))

	reg := registry(t)
	line := MustNew(Spec{ID: "L1", Kind: KindBranch, Library: lookup(t, reg, "Line")})
	assert.Equal(t, BothSides, line.Sides(), "branches default to both sides")
}

func TestVarConnection_Reversed(t *testing.T) {
	c := VarConnection{Var1: "a", Var2: "b"}
	assert.Equal(t, VarConnection{Var1: "b", Var2: "a"}, c.Reversed())
	assert.Equal(t, c, c.Reversed().Reversed())
}
