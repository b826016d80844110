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
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/parstore"
)

// Event library names.
const (
	LibEventSetPointBoolean         = "EventSetPointBoolean"
	LibEventConnectedStatus         = "EventConnectedStatus"
	LibEventQuadripoleDisconnection = "EventQuadripoleDisconnection"
	LibStep                         = "Step"
	LibNodeFault                    = "NodeFault"
)

// finalizeEvents is pass 2. The event's library depends on whether its
// target has a dynamic model, which is only known once pass 1 has indexed
// every model.
func (s *state) finalizeEvents(ctx context.Context) error {
	for i, m := range s.models {
		if m.Kind() != blackbox.KindEvent {
			continue
		}
		fin, err := s.finalizeEvent(m)
		if err != nil {
			return err
		}
		s.models[i] = fin
		s.byID[fin.ID()] = fin
		ctxlog.FromContext(ctx).Debug("Event finalized.", "model_id", fin.ID(), "lib", fin.Library())
	}
	return nil
}

func (s *state) finalizeEvent(m *blackbox.Model) (*blackbox.Model, error) {
	ev := m.Event()
	target := m.Targets()[0]
	eq, err := s.equipment(target.Equipment.StaticID)
	if err != nil {
		return nil, &ConstructionError{ModelID: m.ID(), Err: err}
	}
	_, hasDynamic := s.byEquipment[eq.ID]

	var libName string
	var params []parstore.Parameter

	switch ev.Type {
	case blackbox.EventDisconnection:
		switch {
		case eq.Kind == network.KindBus:
			return nil, constructionErr(m.ID(), "%w: buses cannot be disconnected", ErrInvalidTarget)
		case twoSided(eq.Kind) && !ev.DisconnectOrigin && !ev.DisconnectExtremity:
			return nil, constructionErr(m.ID(), "%w: neither origin nor extremity is disconnected", ErrUnsupportedSide)
		case !twoSided(eq.Kind) && (ev.DisconnectOrigin || ev.DisconnectExtremity) && !(ev.DisconnectOrigin && ev.DisconnectExtremity):
			return nil, constructionErr(m.ID(), "%w: %s %q has a single terminal", ErrUnsupportedSide, eq.Kind, eq.ID)
		case hasDynamic:
			libName = LibEventSetPointBoolean
			params = []parstore.Parameter{
				parstore.Double("event_tEvent", ev.StartTime),
				parstore.Bool("event_stateEvent1", true),
			}
		case twoSided(eq.Kind):
			libName = LibEventQuadripoleDisconnection
			params = []parstore.Parameter{
				parstore.Double("event_tEvent", ev.StartTime),
				parstore.Bool("event_disconnectOrigin", ev.DisconnectOrigin),
				parstore.Bool("event_disconnectExtremity", ev.DisconnectExtremity),
			}
		default:
			libName = LibEventConnectedStatus
			params = []parstore.Parameter{
				parstore.Double("event_tEvent", ev.StartTime),
				parstore.Bool("event_open", true),
			}
		}

	case blackbox.EventActivePowerVariation:
		if eq.Kind != network.KindGenerator && eq.Kind != network.KindLoad {
			return nil, constructionErr(m.ID(), "%w: active power variation on %s %q", ErrInvalidTarget, eq.Kind, eq.ID)
		}
		libName = LibStep
		params = []parstore.Parameter{
			parstore.Double("step_Value0", 0),
			parstore.Double("step_Height", ev.DeltaP),
			parstore.Double("step_tStep", ev.StartTime),
		}

	case blackbox.EventNodeFault:
		if eq.Kind != network.KindBus {
			return nil, constructionErr(m.ID(), "%w: node fault on %s %q", ErrInvalidTarget, eq.Kind, eq.ID)
		}
		libName = LibNodeFault
		params = []parstore.Parameter{
			parstore.Double("fault_RPu", ev.RPu),
			parstore.Double("fault_XPu", ev.XPu),
			parstore.Double("fault_tBegin", ev.StartTime),
			parstore.Double("fault_tEnd", ev.StartTime+ev.FaultTime),
		}

	default:
		return nil, constructionErr(m.ID(), "unknown event type %q", ev.Type)
	}

	lib, err := s.libs.Lookup(libName)
	if err != nil {
		return nil, &ConstructionError{ModelID: m.ID(), Err: err}
	}
	return m.WithLibrary(lib, params), nil
}

// disconnectedSides lists the sides an event disconnects on two-sided equipment.
func disconnectedSides(ev *blackbox.EventSpec) blackbox.Sides {
	var sides blackbox.Sides
	if ev.DisconnectOrigin {
		sides |= blackbox.SideOneOnly
	}
	if ev.DisconnectExtremity {
		sides |= blackbox.SideTwoOnly
	}
	return sides
}

// sidesSuffix qualifies the event role when only part of the equipment is
// disconnected, so partial and full disconnections never share a connector id.
func sidesSuffix(sides blackbox.Sides) string {
	switch sides {
	case blackbox.SideOneOnly:
		return library.SideOne.Suffix()
	case blackbox.SideTwoOnly:
		return library.SideTwo.Suffix()
	}
	return ""
}

// resolveEvent wires a finalized event to its target.
func (s *state) resolveEvent(ctx context.Context, m *blackbox.Model) error {
	ev := m.Event()
	target := m.Targets()[0]
	staticID := target.Equipment.StaticID
	eq, err := s.equipment(staticID)
	if err != nil {
		return err
	}
	self := endpoint.New(m.ID())

	p, err := s.partnerFor(staticID)
	if err != nil {
		return err
	}

	switch ev.Type {
	case blackbox.EventDisconnection:
		return s.resolveDisconnection(ctx, m, ev, eq, p)

	case blackbox.EventActivePowerVariation:
		conns := pairs([]library.Capability{library.DeltaP}, m, library.SideNone, p.model, library.SideNone)
		if len(conns) == 0 {
			return fmt.Errorf("%w: %q cannot receive an active power variation", ErrMissingCapability, p.model.Library())
		}
		return s.connect(ctx, m.Library(), self, p.role(library.DeltaP, library.SideNone), p.ep, conns)

	case blackbox.EventNodeFault:
		conns := pairs([]library.Capability{library.Terminal}, m, library.SideNone, p.model, library.SideNone)
		if len(conns) == 0 {
			return fmt.Errorf("%w: bus model %q has no terminal", ErrMissingCapability, p.model.Library())
		}
		return s.connect(ctx, m.Library(), self, p.role(library.Terminal, library.SideNone), p.ep, conns)
	}
	return fmt.Errorf("unknown event type %q", ev.Type)
}

func (s *state) resolveDisconnection(ctx context.Context, m *blackbox.Model, ev *blackbox.EventSpec, eq *network.Equipment, p partner) error {
	self := endpoint.New(m.ID())
	eventVar := func(side library.Side) (string, error) {
		v, ok := m.Var(library.StateValue, side)
		if !ok {
			return "", fmt.Errorf("%w: %q has no %q variable", ErrMissingCapability, m.Library(), library.StateValue)
		}
		return v, nil
	}

	// Target capability: a dynamic model is switched off through its event
	// input, the network through its state variable.
	targetCap := library.StateValue
	if !p.model.IsDefault() {
		targetCap = library.SwitchOffEvent
	}

	if !twoSided(eq.Kind) {
		ev1, err := eventVar(library.SideNone)
		if err != nil {
			return err
		}
		tv, ok := p.model.Var(targetCap, library.SideNone)
		if !ok {
			return fmt.Errorf("%w: %q has no %q variable", ErrMissingCapability, p.model.Library(), targetCap)
		}
		return s.connect(ctx, m.Library(), self, p.role(targetCap, library.SideNone), p.ep,
			[]blackbox.VarConnection{{Var1: ev1, Var2: tv}})
	}

	sides := disconnectedSides(ev)
	var conns []blackbox.VarConnection
	for _, side := range sides.List() {
		ev1, err := eventVar(side)
		if err != nil {
			return err
		}
		tv, ok := p.model.Var(targetCap, side)
		if !ok {
			return fmt.Errorf("%w: %q has no %q variable on side %s", ErrMissingCapability, p.model.Library(), targetCap, side)
		}
		conns = append(conns, blackbox.VarConnection{Var1: ev1, Var2: tv})
	}
	return s.connect(ctx, m.Library()+sidesSuffix(sides), self, p.role(targetCap, library.SideNone), p.ep, conns)
}
