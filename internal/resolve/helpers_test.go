package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/testutil"
)

const (
	genLib  = "GeneratorSynchronousFourWindingsProportionalRegulations"
	loadLib = "LoadAlphaBeta"
)

type harness struct {
	t    *testing.T
	libs *library.Registry
	net  *network.Network
}

func newHarness(t *testing.T, net *network.Network) *harness {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	libs, err := library.NewDefault(ctx)
	require.NoError(t, err)
	return &harness{t: t, libs: libs, net: net}
}

func (h *harness) lib(name string) *library.Definition {
	h.t.Helper()
	def, err := h.libs.Lookup(name)
	require.NoError(h.t, err)
	return def
}

func (h *harness) equipmentModel(kind blackbox.Kind, id, lib, staticID string, opts ...func(*blackbox.Spec)) *blackbox.Model {
	h.t.Helper()
	eq, ok := h.net.Equipment(staticID)
	require.True(h.t, ok, "fixture references unknown equipment %s", staticID)
	spec := blackbox.Spec{
		ID:             id,
		Kind:           kind,
		Library:        h.lib(lib),
		ParameterSetID: id,
		Equipment:      blackbox.EquipmentRef{Kind: eq.Kind, StaticID: staticID},
	}
	for _, o := range opts {
		o(&spec)
	}
	m, err := blackbox.New(spec)
	require.NoError(h.t, err)
	return m
}

func (h *harness) gen(id, staticID string, opts ...func(*blackbox.Spec)) *blackbox.Model {
	return h.equipmentModel(blackbox.KindGenerator, id, genLib, staticID, opts...)
}

func (h *harness) event(id string, ev blackbox.EventSpec, staticID string, side library.Side) *blackbox.Model {
	h.t.Helper()
	eq, ok := h.net.Equipment(staticID)
	if !ok {
		eq = &network.Equipment{ID: staticID}
	}
	return blackbox.MustNew(blackbox.Spec{
		ID:      id,
		Kind:    blackbox.KindEvent,
		Event:   &ev,
		Targets: []blackbox.Target{{Role: blackbox.RoleTarget, Equipment: blackbox.EquipmentRef{Kind: eq.Kind, StaticID: staticID}, Side: side}},
	})
}

func controllable(s *blackbox.Spec) { s.Controllable = true }

func parSet(id string) func(*blackbox.Spec) {
	return func(s *blackbox.Spec) { s.ParameterSetID = id }
}

// twoBusGrid: B1 - L1 - B2, GEN1/GEN2/GEN3 and LOAD1/LOAD2.
func twoBusGrid(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.NewBuilder("grid", network.BusBreaker).
		Bus("B1").Bus("B2").
		Injection(network.KindGenerator, "GEN1", "B1").
		Injection(network.KindGenerator, "GEN2", "B2").
		Injection(network.KindGenerator, "GEN3", "B2").
		Injection(network.KindLoad, "LOAD1", "B2").
		Injection(network.KindLoad, "LOAD2", "B2").
		Branch(network.KindLine, "L1", "B1", "B2").
		Branch(network.KindLine, "L2", "B1", "B2").
		Build()
	require.NoError(t, err)
	return n
}

// hvdcGrid: B1 - L1 - B2, and HVDC1 between CS1 on B1 and CS2 on B2.
func hvdcGrid(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.NewBuilder("grid", network.BusBreaker).
		Bus("B1").Bus("B2").
		Branch(network.KindLine, "L1", "B1", "B2").
		Injection(network.KindConverterStation, "CS1", "B1").
		Injection(network.KindConverterStation, "CS2", "B2").
		Hvdc("HVDC1", "CS1", "CS2").
		Build()
	require.NoError(t, err)
	return n
}

func connectorByID(ctx *Context, id string) bool {
	_, err := ctx.Registry().Lookup(id)
	return err == nil
}
