// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package network

import (
	"errors"
	"fmt"
)

// Builder accumulates equipment and produces a validated Network.
type Builder struct {
	net  *Network
	errs []error
}

// NewBuilder starts a network with the given id and topology kind.
func NewBuilder(id string, topology Topology) *Builder {
	return &Builder{net: &Network{
		id:            id,
		topology:      topology,
		equipment:     make(map[string]*Equipment),
		voltageLevels: make(map[string]*VoltageLevel),
	}}
}

// AddVoltageLevel declares a voltage level (node-breaker only).
func (b *Builder) AddVoltageLevel(id string, nodes map[int]string) *Builder {
	if _, dup := b.net.voltageLevels[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: voltage level %q", ErrDuplicateEquipment, id))
		return b
	}
	cp := make(map[int]string, len(nodes))
	for k, v := range nodes {
		cp[k] = v
	}
	b.net.voltageLevels[id] = &VoltageLevel{ID: id, Nodes: cp}
	return b
}

// Add declares one element. Errors are collected and reported by Build.
func (b *Builder) Add(eq Equipment) *Builder {
	if eq.ID == "" {
		b.errs = append(b.errs, fmt.Errorf("%s with empty id", eq.Kind))
		return b
	}
	if _, dup := b.net.equipment[eq.ID]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateEquipment, eq.ID))
		return b
	}
	e := eq
	b.net.equipment[eq.ID] = &e
	b.net.order = append(b.net.order, eq.ID)
	return b
}

// Bus is a shorthand for Add with a bus element.
func (b *Builder) Bus(id string) *Builder {
	return b.Add(Equipment{ID: id, Kind: KindBus})
}

// Injection adds a bus-breaker generator, load or converter station.
func (b *Builder) Injection(kind Kind, id, bus string) *Builder {
	return b.Add(Equipment{ID: id, Kind: kind, Terminal: Terminal{Bus: bus}})
}

// Branch adds a bus-breaker line or transformer.
func (b *Builder) Branch(kind Kind, id, bus1, bus2 string) *Builder {
	return b.Add(Equipment{ID: id, Kind: kind, Terminal1: Terminal{Bus: bus1}, Terminal2: Terminal{Bus: bus2}})
}

// Hvdc adds an HVDC line between two converter stations.
func (b *Builder) Hvdc(id, cs1, cs2 string) *Builder {
	return b.Add(Equipment{ID: id, Kind: KindHvdcLine, ConverterStation1: cs1, ConverterStation2: cs2})
}

// Build validates every reference and returns the network.
func (b *Builder) Build() (*Network, error) {
	errs := append([]error(nil), b.errs...)
	n := b.net

	if n.topology != BusBreaker && n.topology != NodeBreaker {
		errs = append(errs, fmt.Errorf("unknown topology kind %q", n.topology))
	}

	for _, vl := range n.voltageLevels {
		for node, bus := range vl.Nodes {
			if !n.isKind(bus, KindBus) {
				errs = append(errs, fmt.Errorf("%w: node %d of voltage level %q maps to unknown bus %q", ErrDanglingReference, node, vl.ID, bus))
			}
		}
	}

	for _, id := range n.order {
		eq := n.equipment[id]
		switch {
		case eq.Kind == KindBus:
		case eq.Kind.IsInjection():
			errs = append(errs, n.checkTerminal(eq.ID, eq.Terminal)...)
		case eq.Kind.IsBranch():
			errs = append(errs, n.checkTerminal(eq.ID, eq.Terminal1)...)
			errs = append(errs, n.checkTerminal(eq.ID, eq.Terminal2)...)
		case eq.Kind == KindHvdcLine:
			for _, cs := range []string{eq.ConverterStation1, eq.ConverterStation2} {
				if !n.isKind(cs, KindConverterStation) {
					errs = append(errs, fmt.Errorf("%w: hvdc line %q references unknown converter station %q", ErrDanglingReference, eq.ID, cs))
				}
			}
		default:
			errs = append(errs, fmt.Errorf("equipment %q has unknown kind %q", eq.ID, eq.Kind))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid network %q: %w", n.id, err)
	}
	return n, nil
}

func (n *Network) isKind(id string, k Kind) bool {
	eq, ok := n.equipment[id]
	return ok && eq.Kind == k
}

func (n *Network) checkTerminal(owner string, t Terminal) []error {
	if n.topology == NodeBreaker {
		if _, err := n.resolveTerminal(t); err != nil {
			return []error{fmt.Errorf("%q: %w", owner, err)}
		}
		return nil
	}
	if !n.isKind(t.Bus, KindBus) {
		return []error{fmt.Errorf("%w: %q references unknown bus %q", ErrDanglingReference, owner, t.Bus)}
	}
	return nil
}
