// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package macro

import (
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
)

// Registry owns every connector of one simulation context. It only grows.
type Registry struct {
	byKey map[string]*Connector
	byID  map[string]*Connector
	order []*Connector
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]*Connector),
		byID:  make(map[string]*Connector),
	}
}

// GetOrCreate returns the connector for the shape (roleA, roleB, conns),
// creating it on first use. The Orientation tells whether roleA ended up on
// the connector's second side.
func (r *Registry) GetOrCreate(roleA, roleB string, conns []blackbox.VarConnection) (*Connector, Orientation, error) {
	if err := validateShape(roleA, roleB, conns); err != nil {
		return nil, AsGiven, err
	}

	r1, r2, oriented, orient, key := canonicalize(roleA, roleB, conns)
	if c, ok := r.byKey[key]; ok {
		return c, orient, nil
	}

	id := ConnectorID(r1, r2)
	if prev, ok := r.byID[id]; ok {
		return nil, AsGiven, fmt.Errorf("%w: %s wires %v, cannot also wire %v", ErrConnectorConflict, id, prev.connections, oriented)
	}

	c := &Connector{id: id, role1: r1, role2: r2, connections: oriented, key: key}
	r.byKey[key] = c
	r.byID[id] = c
	r.order = append(r.order, c)
	return c, orient, nil
}

// Lookup returns a connector by id.
func (r *Registry) Lookup(id string) (*Connector, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, id)
}

// Connectors lists connectors in creation order.
func (r *Registry) Connectors() []*Connector {
	out := make([]*Connector, len(r.order))
	copy(out, r.order)
	return out
}

// Len is the number of connectors.
func (r *Registry) Len() int { return len(r.order) }
