// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"context"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/report"
	"github.com/vk/dyngridgo/internal/resolve"
)

// modelEquipment lists the network kinds each equipment-bound model accepts.
var modelEquipment = map[blackbox.Kind][]network.Kind{
	blackbox.KindGenerator: {network.KindGenerator},
	blackbox.KindLoad:      {network.KindLoad},
	blackbox.KindBus:       {network.KindBus},
	blackbox.KindBranch:    {network.KindLine, network.KindTransformer},
	blackbox.KindHvdc:      {network.KindHvdcLine},
}

func (b *builder) dynamicModel(ctx context.Context, d *config.Declaration, a *attributes) (*blackbox.Model, error) {
	lib, err := b.in.Libraries.Lookup(d.Type)
	if err != nil {
		return nil, b.skip(ctx, d, report.UnknownLibrary, "", "%v", err)
	}
	kind, _ := blackbox.KindForCategory(lib.Category)
	accepted, ok := modelEquipment[kind]
	if !ok {
		return nil, b.skip(ctx, d, report.UnknownLibrary, "",
			"library %q is a %s library, not a dynamic model", lib.Name, lib.Category)
	}

	staticID, err := b.requiredString(ctx, d, a, "static_id")
	if err != nil {
		return nil, err
	}
	eq, err := b.lookupEquipment(ctx, d, "static_id", staticID)
	if err != nil {
		return nil, err
	}
	if !kindAccepted(eq.Kind, accepted) || (lib.Equipment != "" && lib.Equipment != string(eq.Kind)) {
		return nil, b.skip(ctx, d, report.IncompatibleEquipment, "static_id",
			"%q is a %s, library %q cannot model it", staticID, eq.Kind, lib.Name)
	}

	parSet, err := b.requiredString(ctx, d, a, "parameter_set")
	if err != nil {
		return nil, err
	}

	controllable, _, err := a.boolean("controllable")
	if err != nil {
		return nil, b.skip(ctx, d, report.InvalidValue, "controllable", "%v", err)
	}
	if controllable && !lib.SupportsControllable() {
		return nil, b.skip(ctx, d, report.UnsupportedOption, "controllable",
			"library %q has no controllable variant", lib.Name)
	}

	var sides blackbox.Sides
	if a.has("connected_sides") {
		if !twoSided(eq.Kind) {
			return nil, fail(d, resolve.ErrUnsupportedSide, "connected_sides on %s %q", eq.Kind, eq.ID)
		}
		sides, err = b.sides(ctx, d, a)
		if err != nil {
			return nil, err
		}
	}

	m, err := blackbox.New(blackbox.Spec{
		ID:             d.ID,
		Kind:           kind,
		Library:        lib,
		ParameterSetID: parSet,
		Equipment:      blackbox.EquipmentRef{Kind: eq.Kind, StaticID: eq.ID},
		Controllable:   controllable,
		Sides:          sides,
	})
	if err != nil {
		return nil, &resolve.ConstructionError{ModelID: d.ID, Err: err}
	}
	return m, nil
}

func (b *builder) sides(ctx context.Context, d *config.Declaration, a *attributes) (blackbox.Sides, error) {
	raw, _, err := a.strings("connected_sides")
	if err != nil {
		return 0, b.skip(ctx, d, report.InvalidValue, "connected_sides", "%v", err)
	}
	var list []library.Side
	for _, s := range raw {
		side, err := library.ParseSide(s)
		if err != nil || side == library.SideNone {
			return 0, b.skip(ctx, d, report.InvalidValue, "connected_sides", "%q is not a side", s)
		}
		list = append(list, side)
	}
	if len(list) == 0 {
		return 0, b.skip(ctx, d, report.InvalidValue, "connected_sides", "at least one side is required")
	}
	return blackbox.SidesOf(list...), nil
}

func kindAccepted(k network.Kind, kinds []network.Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
