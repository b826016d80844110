// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package network

import (
	"errors"
	"fmt"
)

// Kind is the type of a piece of network equipment.
type Kind string

const (
	KindBus              Kind = "bus"
	KindGenerator        Kind = "generator"
	KindLoad             Kind = "load"
	KindLine             Kind = "line"
	KindTransformer      Kind = "transformer"
	KindConverterStation Kind = "converter_station"
	KindHvdcLine         Kind = "hvdc_line"
)

// IsInjection reports whether the kind connects to exactly one bus.
func (k Kind) IsInjection() bool {
	return k == KindGenerator || k == KindLoad || k == KindConverterStation
}

// IsBranch reports whether the kind connects two buses.
func (k Kind) IsBranch() bool {
	return k == KindLine || k == KindTransformer
}

// Topology is the way equipment references its connection bus.
type Topology string

const (
	BusBreaker  Topology = "bus_breaker"
	NodeBreaker Topology = "node_breaker"
)

var (
	ErrUnknownEquipment   = errors.New("unknown equipment")
	ErrDuplicateEquipment = errors.New("duplicate equipment id")
	ErrDanglingReference  = errors.New("dangling reference")
	ErrWrongKind          = errors.New("equipment has the wrong kind")
)

// Terminal is one connection point: a bus (bus-breaker) or a voltage level
// node (node-breaker).
type Terminal struct {
	Bus          string
	VoltageLevel string
	Node         int
}

// Equipment is one static network element.
type Equipment struct {
	ID   string
	Kind Kind

	// Terminal is used by injections. Terminal1/Terminal2 by branches.
	Terminal  Terminal
	Terminal1 Terminal
	Terminal2 Terminal

	// Converter stations at both ends of an HVDC line.
	ConverterStation1 string
	ConverterStation2 string
}

// VoltageLevel maps node numbers onto bus ids in a node-breaker network.
type VoltageLevel struct {
	ID    string
	Nodes map[int]string
}

// Network is an immutable topology snapshot.
type Network struct {
	id            string
	topology      Topology
	equipment     map[string]*Equipment
	order         []string
	voltageLevels map[string]*VoltageLevel
}

// ID is the network identifier.
func (n *Network) ID() string { return n.id }

// Topology is the topology kind of the network.
func (n *Network) Topology() Topology { return n.topology }

// Equipment returns the element with the given id.
func (n *Network) Equipment(id string) (*Equipment, bool) {
	eq, ok := n.equipment[id]
	return eq, ok
}

// All returns every element in declaration order.
func (n *Network) All() []*Equipment {
	out := make([]*Equipment, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.equipment[id])
	}
	return out
}

// OfKind returns the elements of one kind in declaration order.
func (n *Network) OfKind(k Kind) []*Equipment {
	var out []*Equipment
	for _, id := range n.order {
		if eq := n.equipment[id]; eq.Kind == k {
			out = append(out, eq)
		}
	}
	return out
}

func (n *Network) Buses() []*Equipment      { return n.OfKind(KindBus) }
func (n *Network) Generators() []*Equipment { return n.OfKind(KindGenerator) }
func (n *Network) Loads() []*Equipment      { return n.OfKind(KindLoad) }
func (n *Network) HvdcLines() []*Equipment  { return n.OfKind(KindHvdcLine) }

// Branches returns lines and transformers in declaration order.
func (n *Network) Branches() []*Equipment {
	var out []*Equipment
	for _, id := range n.order {
		if eq := n.equipment[id]; eq.Kind.IsBranch() {
			out = append(out, eq)
		}
	}
	return out
}

// Len is the number of elements.
func (n *Network) Len() int { return len(n.order) }

// ConnectionBus returns the bus an injection is connected to.
func (n *Network) ConnectionBus(id string) (string, error) {
	eq, err := n.lookup(id)
	if err != nil {
		return "", err
	}
	switch {
	case eq.Kind == KindBus:
		return eq.ID, nil
	case eq.Kind.IsInjection():
		return n.resolveTerminal(eq.Terminal)
	}
	return "", fmt.Errorf("%w: %s %q has no single connection bus", ErrWrongKind, eq.Kind, id)
}

// SideBus returns the bus at one side (1 or 2) of a branch or HVDC line.
// For an HVDC line this is the bus of the converter station at that side.
func (n *Network) SideBus(id string, side int) (string, error) {
	eq, err := n.lookup(id)
	if err != nil {
		return "", err
	}
	if side != 1 && side != 2 {
		return "", fmt.Errorf("invalid side %d for %q", side, id)
	}
	switch {
	case eq.Kind.IsBranch():
		t := eq.Terminal1
		if side == 2 {
			t = eq.Terminal2
		}
		return n.resolveTerminal(t)
	case eq.Kind == KindHvdcLine:
		cs := eq.ConverterStation1
		if side == 2 {
			cs = eq.ConverterStation2
		}
		return n.ConnectionBus(cs)
	}
	return "", fmt.Errorf("%w: %s %q is not two-sided", ErrWrongKind, eq.Kind, id)
}

// BranchBuses returns both buses of a branch.
func (n *Network) BranchBuses(id string) (string, string, error) {
	return n.bothSides(id, KindLine, KindTransformer)
}

// HvdcBuses returns the converter-station buses of an HVDC line.
func (n *Network) HvdcBuses(id string) (string, string, error) {
	return n.bothSides(id, KindHvdcLine)
}

func (n *Network) bothSides(id string, kinds ...Kind) (string, string, error) {
	eq, err := n.lookup(id)
	if err != nil {
		return "", "", err
	}
	ok := false
	for _, k := range kinds {
		ok = ok || eq.Kind == k
	}
	if !ok {
		return "", "", fmt.Errorf("%w: %q is a %s", ErrWrongKind, id, eq.Kind)
	}
	b1, err := n.SideBus(id, 1)
	if err != nil {
		return "", "", err
	}
	b2, err := n.SideBus(id, 2)
	if err != nil {
		return "", "", err
	}
	return b1, b2, nil
}

func (n *Network) lookup(id string) (*Equipment, error) {
	eq, ok := n.equipment[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, id)
	}
	return eq, nil
}

func (n *Network) resolveTerminal(t Terminal) (string, error) {
	if n.topology == BusBreaker {
		return t.Bus, nil
	}
	vl, ok := n.voltageLevels[t.VoltageLevel]
	if !ok {
		return "", fmt.Errorf("%w: voltage level %q", ErrDanglingReference, t.VoltageLevel)
	}
	bus, ok := vl.Nodes[t.Node]
	if !ok {
		return "", fmt.Errorf("%w: node %d of voltage level %q", ErrDanglingReference, t.Node, t.VoltageLevel)
	}
	return bus, nil
}
