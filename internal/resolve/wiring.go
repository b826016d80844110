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
	"github.com/vk/dyngridgo/internal/omegaref"
	"github.com/vk/dyngridgo/internal/report"
)

// terminalCapabilities are wired between an equipment model and its bus.
var terminalCapabilities = []library.Capability{library.Terminal, library.SwitchOffNode}

// resolveInjection wires a generator or load to its connection bus and, for
// frequency-producing generators, to the frequency aggregator.
func (s *state) resolveInjection(ctx context.Context, m *blackbox.Model) error {
	staticID := m.Equipment().StaticID
	bus, err := s.net.ConnectionBus(staticID)
	if err != nil {
		return err
	}
	p, err := s.busPartner(bus)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Connection bus found.", "static_id", staticID, "bus", bus, "partner", p.ep.String())

	conns := pairs(terminalCapabilities, m, library.SideNone, p.model, library.SideNone)
	if !hasPair(conns, m, library.Terminal, library.SideNone) {
		return fmt.Errorf("%w: %q has no %q variable towards bus %q (%s)",
			ErrMissingCapability, m.Library(), library.Terminal, bus, p.model.Library())
	}
	if err := s.connect(ctx, m.Library(), endpoint.New(m.ID()), p.role(library.Terminal, library.SideNone), p.ep, conns); err != nil {
		return err
	}

	if m.Definition().OmegaRef {
		return s.joinFrequencyReference(ctx, m, p)
	}
	return nil
}

func (s *state) joinFrequencyReference(ctx context.Context, m *blackbox.Model, bus partner) error {
	if s.agg == nil {
		return fmt.Errorf("%q joins the frequency reference but no aggregator library is registered", m.Library())
	}
	var bp *omegaref.BusPartner
	if numcc, ok := bus.model.Var(library.Numcc, library.SideNone); ok {
		bp = &omegaref.BusPartner{Endpoint: bus.ep, Role: bus.role(library.Numcc, library.SideNone), Numcc: numcc}
	} else {
		s.reporter.Warn(ctx, report.Warning{
			Kind:      report.MissingCapability,
			ModelType: m.Kind().String(),
			ModelID:   m.ID(),
			Message:   fmt.Sprintf("bus model %q has no %q variable, frequency reference slot is not tied to a connected component", bus.model.Library(), library.Numcc),
		})
	}
	slot, err := s.agg.Join(s.registry, s.instrs, m, bp)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Joined frequency reference.", "slot", slot)
	return nil
}

// resolveTwoSided wires every selected side of a branch or HVDC line to the
// bus at that side. HVDC sides end on the converter stations' buses.
func (s *state) resolveTwoSided(ctx context.Context, m *blackbox.Model) error {
	staticID := m.Equipment().StaticID
	for _, side := range m.Sides().List() {
		bus, err := s.net.SideBus(staticID, int(side))
		if err != nil {
			return err
		}
		p, err := s.busPartner(bus)
		if err != nil {
			return err
		}
		conns := pairs(terminalCapabilities, m, side, p.model, library.SideNone)
		if !hasPair(conns, m, library.Terminal, side) {
			return fmt.Errorf("%w: %q has no %q variable on side %s", ErrMissingCapability, m.Library(), library.Terminal, side)
		}
		role := m.Library() + side.Suffix()
		if err := s.connect(ctx, role, endpoint.New(m.ID()), p.role(library.Terminal, library.SideNone), p.ep, conns); err != nil {
			return err
		}
	}
	return nil
}

// hasPair reports whether the capability of m made it into conns.
func hasPair(conns []blackbox.VarConnection, m *blackbox.Model, c library.Capability, side library.Side) bool {
	v, ok := m.Var(c, side)
	if !ok {
		return false
	}
	for _, vc := range conns {
		if vc.Var1 == v {
			return true
		}
	}
	return false
}

// twoSided reports whether equipment of kind k has two sides.
func twoSided(k network.Kind) bool {
	return k.IsBranch() || k == network.KindHvdcLine
}
