package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busBreakerFixture(t *testing.T) *Network {
	t.Helper()
	n, err := NewBuilder("grid", BusBreaker).
		Bus("B1").Bus("B2").Bus("B3").
		Injection(KindGenerator, "GEN1", "B1").
		Injection(KindLoad, "LOAD1", "B2").
		Branch(KindLine, "L1", "B1", "B2").
		Branch(KindTransformer, "T1", "B2", "B3").
		Injection(KindConverterStation, "CS1", "B1").
		Injection(KindConverterStation, "CS2", "B3").
		Hvdc("HVDC1", "CS1", "CS2").
		Build()
	require.NoError(t, err)
	return n
}

func TestNetwork_BusBreaker(t *testing.T) {
	n := busBreakerFixture(t)

	bus, err := n.ConnectionBus("GEN1")
	require.NoError(t, err)
	assert.Equal(t, "B1", bus)

	bus, err = n.ConnectionBus("B3")
	require.NoError(t, err)
	assert.Equal(t, "B3", bus)

	b1, b2, err := n.BranchBuses("T1")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "B3"}, []string{b1, b2})

	b1, b2, err = n.HvdcBuses("HVDC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B3"}, []string{b1, b2})

	ids := func(eqs []*Equipment) []string {
		var out []string
		for _, e := range eqs {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []string{"B1", "B2", "B3"}, ids(n.Buses()))
	assert.Equal(t, []string{"L1", "T1"}, ids(n.Branches()))
	assert.Equal(t, 10, n.Len())
}

func TestNetwork_LookupErrors(t *testing.T) {
	n := busBreakerFixture(t)

	_, err := n.ConnectionBus("NOPE")
	require.ErrorIs(t, err, ErrUnknownEquipment)

	_, err = n.ConnectionBus("L1")
	require.ErrorIs(t, err, ErrWrongKind)

	_, _, err = n.HvdcBuses("L1")
	require.ErrorIs(t, err, ErrWrongKind)

	_, err = n.SideBus("GEN1", 1)
	require.ErrorIs(t, err, ErrWrongKind)

	_, err = n.SideBus("L1", 3)
	require.Error(t, err)
}

func TestNetwork_NodeBreaker(t *testing.T) {
	n, err := NewBuilder("grid", NodeBreaker).
		Bus("VL1_0").Bus("VL2_0").
		AddVoltageLevel("VL1", map[int]string{0: "VL1_0", 1: "VL1_0"}).
		AddVoltageLevel("VL2", map[int]string{0: "VL2_0"}).
		Add(Equipment{ID: "GEN1", Kind: KindGenerator, Terminal: Terminal{VoltageLevel: "VL1", Node: 1}}).
		Add(Equipment{ID: "L1", Kind: KindLine,
			Terminal1: Terminal{VoltageLevel: "VL1", Node: 0},
			Terminal2: Terminal{VoltageLevel: "VL2", Node: 0}}).
		Build()
	require.NoError(t, err)

	bus, err := n.ConnectionBus("GEN1")
	require.NoError(t, err)
	assert.Equal(t, "VL1_0", bus)

	b1, b2, err := n.BranchBuses("L1")
	require.NoError(t, err)
	assert.Equal(t, "VL1_0", b1)
	assert.Equal(t, "VL2_0", b2)
}

func TestBuilder_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		build   func() (*Network, error)
		wantErr error
	}{
		{
			name: "duplicate id",
			build: func() (*Network, error) {
				return NewBuilder("g", BusBreaker).Bus("B1").Bus("B1").Build()
			},
			wantErr: ErrDuplicateEquipment,
		},
		{
			name: "unknown bus",
			build: func() (*Network, error) {
				return NewBuilder("g", BusBreaker).Injection(KindLoad, "LOAD1", "B9").Build()
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "hvdc without converter station",
			build: func() (*Network, error) {
				return NewBuilder("g", BusBreaker).Bus("B1").
					Injection(KindConverterStation, "CS1", "B1").
					Hvdc("H", "CS1", "CS2").Build()
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "node breaker missing node",
			build: func() (*Network, error) {
				return NewBuilder("g", NodeBreaker).Bus("B").
					AddVoltageLevel("VL", map[int]string{0: "B"}).
					Add(Equipment{ID: "G", Kind: KindGenerator, Terminal: Terminal{VoltageLevel: "VL", Node: 4}}).
					Build()
			},
			wantErr: ErrDanglingReference,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
