// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"context"
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/endpoint"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/macro"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/omegaref"
	"github.com/vk/dyngridgo/internal/report"
)

// state is the accumulator threaded through the passes of one Build.
type state struct {
	net      *network.Network
	libs     *library.Registry
	reporter *report.Reporter

	models      []*blackbox.Model
	byID        map[string]*blackbox.Model
	byEquipment map[string]*blackbox.Model

	defaults     map[string]*blackbox.Model
	defaultOrder []*blackbox.Model

	registry *macro.Registry
	instrs   *macro.Instructions
	agg      *omegaref.Aggregator
}

func newState(in Input) *state {
	return &state{
		net:         in.Network,
		libs:        in.Libraries,
		reporter:    in.Reporter,
		byID:        make(map[string]*blackbox.Model),
		byEquipment: make(map[string]*blackbox.Model),
		defaults:    make(map[string]*blackbox.Model),
		registry:    macro.NewRegistry(),
		instrs:      &macro.Instructions{},
	}
}

// partner is the model on the other end of a wire, with the endpoint the
// instruction must use for it.
type partner struct {
	model *blackbox.Model
	ep    endpoint.Endpoint
}

// role is the connector role of the partner for capability c on a side.
func (p partner) role(c library.Capability, side library.Side) string {
	return p.model.Role(c) + side.Suffix()
}

// roleOf is the partner role for a connector carrying several
// capabilities. A controllable variant of any of them makes it controllable.
func (p partner) roleOf(caps []library.Capability, side library.Side) string {
	plain := p.model.Library() + side.Suffix()
	for _, c := range caps {
		if r := p.role(c, side); r != plain {
			return r
		}
	}
	return plain
}

// equipment looks up a network equipment by static id.
func (s *state) equipment(staticID string) (*network.Equipment, error) {
	eq, ok := s.net.Equipment(staticID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, staticID)
	}
	return eq, nil
}

// partnerFor returns the explicit dynamic model bound to staticID, or the
// network default standing in for it.
func (s *state) partnerFor(staticID string) (partner, error) {
	if m, ok := s.byEquipment[staticID]; ok {
		return partner{model: m, ep: endpoint.New(m.ID())}, nil
	}
	eq, err := s.equipment(staticID)
	if err != nil {
		return partner{}, err
	}
	def, err := s.defaultModel(eq.Kind)
	if err != nil {
		return partner{}, err
	}
	return partner{model: def, ep: endpoint.Named(blackbox.NetworkID, staticID)}, nil
}

// busPartner resolves the bus model a connection point ends on.
func (s *state) busPartner(bus string) (partner, error) {
	return s.partnerFor(bus)
}

// defaultModel returns the network default for an equipment kind, creating
// it on first use.
func (s *state) defaultModel(kind network.Kind) (*blackbox.Model, error) {
	lib, err := s.libs.Default(string(kind))
	if err != nil {
		return nil, err
	}
	if m, ok := s.defaults[lib.Name]; ok {
		return m, nil
	}
	m, err := blackbox.New(blackbox.Spec{
		ID:      blackbox.NetworkID,
		Kind:    blackbox.KindNetworkDefault,
		Library: lib,
	})
	if err != nil {
		return nil, err
	}
	s.defaults[lib.Name] = m
	s.defaultOrder = append(s.defaultOrder, m)
	return m, nil
}

// connect registers the shape and appends one instruction from → to.
func (s *state) connect(ctx context.Context, roleFrom string, from endpoint.Endpoint, roleTo string, to endpoint.Endpoint, conns []blackbox.VarConnection) error {
	c, orient, err := s.registry.GetOrCreate(roleFrom, roleTo, conns)
	if err != nil {
		return err
	}
	ins, err := s.instrs.Append(c, orient, from, to)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Macro connect appended.",
		"connector", c.ID(), "id1", ins.ID1.String(), "id2", ins.ID2.String(), "orientation", orient.String())
	return nil
}

// pairs builds the variable connections for the given capabilities,
// keeping only those both sides expose.
func pairs(caps []library.Capability, from *blackbox.Model, fromSide library.Side, to *blackbox.Model, toSide library.Side) []blackbox.VarConnection {
	var out []blackbox.VarConnection
	for _, c := range caps {
		v1, ok1 := from.Var(c, fromSide)
		v2, ok2 := to.Var(c, toSide)
		if ok1 && ok2 {
			out = append(out, blackbox.VarConnection{Var1: v1, Var2: v2})
		}
	}
	return out
}
