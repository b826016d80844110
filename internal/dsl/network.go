// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"errors"
	"fmt"

	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/network"
)

var ErrNoNetwork = errors.New("no network block")

// BuildNetwork converts the network block. Any problem is fatal: the
// network is the ground truth every other declaration is checked against.
func BuildNetwork(cfg *config.Network) (*network.Network, error) {
	if cfg == nil {
		return nil, ErrNoNetwork
	}

	topology := network.Topology(cfg.Topology)
	switch topology {
	case network.BusBreaker, network.NodeBreaker:
	default:
		return nil, fmt.Errorf("network %q: unknown topology %q", cfg.ID, cfg.Topology)
	}

	b := network.NewBuilder(cfg.ID, topology)
	for _, vl := range cfg.VoltageLevels {
		b.AddVoltageLevel(vl.ID, vl.Nodes)
	}

	var errs []error
	for _, eq := range cfg.Equipment {
		e, err := equipment(topology, eq)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s %q: %w", eq.Range, eq.Kind, eq.ID, err))
			continue
		}
		b.Add(e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	net, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.ID, err)
	}
	return net, nil
}

func equipment(topology network.Topology, eq *config.Equipment) (network.Equipment, error) {
	a := newAttributes(eq.Attributes)
	e := network.Equipment{ID: eq.ID, Kind: network.Kind(eq.Kind)}

	var err error
	switch {
	case e.Kind == network.KindBus:
	case e.Kind.IsInjection():
		e.Terminal, err = terminal(topology, a, "")
	case e.Kind.IsBranch():
		if e.Terminal1, err = terminal(topology, a, "1"); err == nil {
			e.Terminal2, err = terminal(topology, a, "2")
		}
	case e.Kind == network.KindHvdcLine:
		if e.ConverterStation1, err = required(a, "converter_station1"); err == nil {
			e.ConverterStation2, err = required(a, "converter_station2")
		}
	default:
		return e, fmt.Errorf("unknown equipment kind %q", eq.Kind)
	}
	if err != nil {
		return e, err
	}
	if extra := a.unused(); len(extra) > 0 {
		return e, fmt.Errorf("unsupported attributes %v", extra)
	}
	return e, nil
}

// terminal reads `bus<suffix>` for bus-breaker networks and
// `voltage_level<suffix>` plus `node<suffix>` for node-breaker ones.
func terminal(topology network.Topology, a *attributes, suffix string) (network.Terminal, error) {
	if topology == network.BusBreaker {
		bus, err := required(a, "bus"+suffix)
		return network.Terminal{Bus: bus}, err
	}

	vl, err := required(a, "voltage_level"+suffix)
	if err != nil {
		return network.Terminal{}, err
	}
	node, ok, err := a.number("node" + suffix)
	if err != nil {
		return network.Terminal{}, err
	}
	if !ok {
		return network.Terminal{}, fmt.Errorf("missing attribute %q", "node"+suffix)
	}
	if node < 0 || node != float64(int(node)) {
		return network.Terminal{}, fmt.Errorf("node%s: %g is not a node number", suffix, node)
	}
	return network.Terminal{VoltageLevel: vl, Node: int(node)}, nil
}

func required(a *attributes, name string) (string, error) {
	s, ok, err := a.string(name)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", fmt.Errorf("missing attribute %q", name)
	}
	return s, nil
}
