// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"context"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/report"
	"github.com/vk/dyngridgo/internal/resolve"
)

// eventTargets lists the equipment kinds each event type can act on.
var eventTargets = map[blackbox.EventType][]network.Kind{
	blackbox.EventDisconnection: {
		network.KindGenerator, network.KindLoad, network.KindConverterStation,
		network.KindLine, network.KindTransformer, network.KindHvdcLine,
	},
	blackbox.EventActivePowerVariation: {network.KindGenerator, network.KindLoad},
	blackbox.EventNodeFault:            {network.KindBus},
}

func (b *builder) event(ctx context.Context, d *config.Declaration, a *attributes) (*blackbox.Model, error) {
	typ := blackbox.EventType(d.Type)
	accepted, ok := eventTargets[typ]
	if !ok {
		return nil, b.skip(ctx, d, report.UnknownLibrary, "", "unknown event type %q", d.Type)
	}

	staticID, err := b.requiredString(ctx, d, a, "static_id")
	if err != nil {
		return nil, err
	}
	eq, err := b.lookupEquipment(ctx, d, "static_id", staticID)
	if err != nil {
		return nil, err
	}
	if !kindAccepted(eq.Kind, accepted) {
		return nil, b.skip(ctx, d, report.IncompatibleEquipment, "static_id",
			"%s events cannot target %s %q", typ, eq.Kind, eq.ID)
	}

	ev := blackbox.EventSpec{Type: typ}
	if ev.StartTime, err = b.requiredNumber(ctx, d, a, "start_time"); err != nil {
		return nil, err
	}

	switch typ {
	case blackbox.EventDisconnection:
		if err := b.disconnection(ctx, d, a, eq, &ev); err != nil {
			return nil, err
		}
	case blackbox.EventActivePowerVariation:
		if ev.DeltaP, err = b.requiredNumber(ctx, d, a, "delta_p"); err != nil {
			return nil, err
		}
	case blackbox.EventNodeFault:
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"fault_time", &ev.FaultTime},
			{"r_pu", &ev.RPu},
			{"x_pu", &ev.XPu},
		} {
			if *f.dst, err = b.requiredNumber(ctx, d, a, f.name); err != nil {
				return nil, err
			}
		}
	}

	m, err := blackbox.New(blackbox.Spec{
		ID:    d.ID,
		Kind:  blackbox.KindEvent,
		Event: &ev,
		Targets: []blackbox.Target{{
			Role:      blackbox.RoleTarget,
			Equipment: blackbox.EquipmentRef{Kind: eq.Kind, StaticID: eq.ID},
		}},
	})
	if err != nil {
		return nil, &resolve.ConstructionError{ModelID: d.ID, Err: err}
	}
	return m, nil
}

// disconnection reads the side flags. Both default to true; setting either
// on a single-terminal equipment is a construction error.
func (b *builder) disconnection(ctx context.Context, d *config.Declaration, a *attributes, eq *network.Equipment, ev *blackbox.EventSpec) error {
	ev.DisconnectOrigin, ev.DisconnectExtremity = true, true
	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{"disconnect_origin", &ev.DisconnectOrigin},
		{"disconnect_extremity", &ev.DisconnectExtremity},
	} {
		v, ok, err := a.boolean(f.name)
		if err != nil {
			return b.skip(ctx, d, report.InvalidValue, f.name, "%v", err)
		}
		if !ok {
			continue
		}
		if !twoSided(eq.Kind) {
			return fail(d, resolve.ErrUnsupportedSide, "%s on %s %q", f.name, eq.Kind, eq.ID)
		}
		*f.dst = v
	}
	return nil
}
