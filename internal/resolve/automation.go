// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"context"
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/endpoint"
	"github.com/vk/dyngridgo/internal/library"
)

// automationCapabilities are the capabilities wired for each target role.
var automationCapabilities = map[string][]library.Capability{
	blackbox.RoleMonitored:  {library.IMonitored, library.UMonitored},
	blackbox.RoleControlled: {library.StateValue, library.SwitchOffAutomaton, library.Tap},
}

// resolveAutomation wires an automation system to each of its targets, in
// target declaration order.
func (s *state) resolveAutomation(ctx context.Context, m *blackbox.Model) error {
	self := endpoint.New(m.ID())
	for _, t := range m.Targets() {
		caps, ok := automationCapabilities[t.Role]
		if !ok {
			return fmt.Errorf("%w: unknown target role %q", ErrInvalidTarget, t.Role)
		}
		eq, err := s.equipment(t.Equipment.StaticID)
		if err != nil {
			return err
		}
		p, err := s.partnerFor(eq.ID)
		if err != nil {
			return err
		}

		side := t.Side
		if side == library.SideNone && t.Role == blackbox.RoleMonitored && twoSided(eq.Kind) {
			side = library.SideOne
		}

		conns := pairs(caps, m, library.SideNone, p.model, side)
		if len(conns) == 0 {
			return fmt.Errorf("%w: %q and %q share no %s capability for %q",
				ErrMissingCapability, m.Library(), p.model.Library(), t.Role, eq.ID)
		}
		role := m.Library() + "_" + t.Role
		if err := s.connect(ctx, role, self, p.roleOf(caps, side), p.ep, conns); err != nil {
			return err
		}
	}
	return nil
}
