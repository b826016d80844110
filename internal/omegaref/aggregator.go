// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package omegaref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/endpoint"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/macro"
	"github.com/vk/dyngridgo/internal/parstore"
)

// ModelID is the id of the shared frequency reference model.
const ModelID = "OMEGA_REF"

var (
	ErrMissingWeightParameter = errors.New("missing frequency weight parameter")
	ErrClosed                 = errors.New("frequency aggregator is closed")
	ErrNotContributor         = errors.New("model cannot join the frequency aggregator")
)

// State of the aggregator.
type State int

const (
	Uninitialized State = iota
	FirstSeen
	Indexed
	Closed
)

func (s State) String() string {
	switch s {
	case FirstSeen:
		return "first-seen"
	case Indexed:
		return "indexed"
	case Closed:
		return "closed"
	}
	return "uninitialized"
}

// frequencyCapabilities are wired between a generator and its slot.
var frequencyCapabilities = []library.Capability{library.OmegaPu, library.OmegaRefPu, library.Running}

// Contributor is one generator holding a slot.
type Contributor struct {
	ModelID        string
	ParameterSetID string
	Weight         []string
	Slot           int
}

// BusPartner is the bus model the generator is connected to. Its numcc
// variable feeds the slot's topology input.
type BusPartner struct {
	Endpoint endpoint.Endpoint
	Role     string
	Numcc    string
}

// Aggregator is the accumulator for one simulation context.
type Aggregator struct {
	def          *library.Definition
	state        State
	model        *blackbox.Model
	contributors []Contributor
	slots        map[string]int
}

// New creates an Uninitialized aggregator backed by the given library.
func New(def *library.Definition) *Aggregator {
	return &Aggregator{def: def, slots: make(map[string]int)}
}

func (a *Aggregator) State() State { return a.state }

// NbGen is the number of contributors so far.
func (a *Aggregator) NbGen() int { return len(a.contributors) }

// Contributors returns the contributors in slot order.
func (a *Aggregator) Contributors() []Contributor {
	out := make([]Contributor, len(a.contributors))
	copy(out, a.contributors)
	return out
}

// Slot returns the slot of a model, if it joined.
func (a *Aggregator) Slot(modelID string) (int, bool) {
	s, ok := a.slots[modelID]
	return s, ok
}

// Join assigns the next slot to gen and appends its instructions. Joining
// twice returns the existing slot without new instructions. bus may be nil
// when the generator's bus exposes no numcc variable.
func (a *Aggregator) Join(reg *macro.Registry, instrs *macro.Instructions, gen *blackbox.Model, bus *BusPartner) (int, error) {
	if a.state == Closed {
		return 0, fmt.Errorf("%w: cannot add %q", ErrClosed, gen.ID())
	}
	if slot, ok := a.slots[gen.ID()]; ok {
		return slot, nil
	}
	genDef := gen.Definition()
	if genDef == nil || !genDef.OmegaRef {
		return 0, fmt.Errorf("%w: %s", ErrNotContributor, gen)
	}

	conns := make([]blackbox.VarConnection, 0, len(frequencyCapabilities))
	for _, c := range frequencyCapabilities {
		gv, ok := gen.Var(c, library.SideNone)
		if !ok {
			return 0, fmt.Errorf("%w: %s has no %q variable", ErrNotContributor, gen, c)
		}
		av, ok := a.def.Var(c, library.SideNone)
		if !ok {
			return 0, fmt.Errorf("aggregator library %q has no %q variable", a.def.Name, c)
		}
		conns = append(conns, blackbox.VarConnection{Var1: gv, Var2: av})
	}

	if a.state == Uninitialized {
		m, err := blackbox.New(blackbox.Spec{
			ID:             ModelID,
			Kind:           blackbox.KindAggregator,
			Library:        a.def,
			ParameterSetID: ModelID,
		})
		if err != nil {
			return 0, err
		}
		a.model = m
		a.state = FirstSeen
	} else {
		a.state = Indexed
	}

	slot := len(a.contributors)
	self := endpoint.Indexed(ModelID, slot)

	conn, orient, err := reg.GetOrCreate(gen.Library(), a.def.Name, conns)
	if err != nil {
		return 0, err
	}
	if _, err := instrs.Append(conn, orient, endpoint.New(gen.ID()), self); err != nil {
		return 0, err
	}

	if bus != nil {
		av, ok := a.def.Var(library.Numcc, library.SideNone)
		if !ok {
			return 0, fmt.Errorf("aggregator library %q has no %q variable", a.def.Name, library.Numcc)
		}
		conn, orient, err := reg.GetOrCreate(a.def.Name, bus.Role, []blackbox.VarConnection{{Var1: av, Var2: bus.Numcc}})
		if err != nil {
			return 0, err
		}
		if _, err := instrs.Append(conn, orient, self, bus.Endpoint); err != nil {
			return 0, err
		}
	}

	a.slots[gen.ID()] = slot
	a.contributors = append(a.contributors, Contributor{
		ModelID:        gen.ID(),
		ParameterSetID: gen.ParameterSetID(),
		Weight:         genDef.Weight,
		Slot:           slot,
	})
	return slot, nil
}

// Close freezes the aggregator and returns its descriptor, or nil when no
// generator joined.
func (a *Aggregator) Close() *blackbox.Model {
	a.state = Closed
	if len(a.contributors) == 0 {
		return nil
	}
	return a.model
}

// Model returns the shared descriptor, nil before the first Join.
func (a *Aggregator) Model() *blackbox.Model { return a.model }

// Parameters computes the aggregator's parameter set: the contributor count
// followed by one weight per slot, each the product of the contributor's
// weight parameters.
func (a *Aggregator) Parameters(store parstore.Store) ([]parstore.Parameter, error) {
	params := []parstore.Parameter{parstore.Int(a.def.CountParameter, len(a.contributors))}
	for _, c := range a.contributors {
		w := 1.0
		for _, name := range c.Weight {
			v, err := store.Double(c.ParameterSetID, name)
			if err != nil {
				return nil, fmt.Errorf("%w: model %q, parameter %q (set %q): %w",
					ErrMissingWeightParameter, c.ModelID, name, c.ParameterSetID, err)
			}
			w *= v
		}
		name := strings.ReplaceAll(a.def.WeightParameter, endpoint.IndexPlaceholder, strconv.Itoa(c.Slot))
		params = append(params, parstore.Double(name, w))
	}
	return params, nil
}
