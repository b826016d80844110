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

// targetAttribute is an automation attribute naming an equipment. The
// shorthand attributes (generator, transformer) both monitor and control
// their equipment.
type targetAttribute struct {
	name  string
	roles []string
	kind  network.Kind
}

var targetAttributes = []targetAttribute{
	{name: "monitored", roles: []string{blackbox.RoleMonitored}},
	{name: "controlled", roles: []string{blackbox.RoleControlled}},
	{name: "generator", roles: []string{blackbox.RoleMonitored, blackbox.RoleControlled}, kind: network.KindGenerator},
	{name: "transformer", roles: []string{blackbox.RoleMonitored, blackbox.RoleControlled}, kind: network.KindTransformer},
}

func (b *builder) automationSystem(ctx context.Context, d *config.Declaration, a *attributes) (*blackbox.Model, error) {
	lib, err := b.in.Libraries.Lookup(d.Type)
	if err != nil {
		return nil, b.skip(ctx, d, report.UnknownLibrary, "", "%v", err)
	}
	if lib.Category != library.CategoryAutomation {
		return nil, b.skip(ctx, d, report.UnknownLibrary, "",
			"library %q is a %s library, not an automation system", lib.Name, lib.Category)
	}

	parSet, err := b.requiredString(ctx, d, a, "parameter_set")
	if err != nil {
		return nil, err
	}

	side, err := b.monitoredSide(ctx, d, a)
	if err != nil {
		return nil, err
	}

	var targets []blackbox.Target
	for _, ta := range targetAttributes {
		staticID, ok, err := a.string(ta.name)
		if err != nil {
			return nil, b.skip(ctx, d, report.InvalidValue, ta.name, "%v", err)
		}
		if !ok {
			continue
		}
		eq, err := b.lookupEquipment(ctx, d, ta.name, staticID)
		if err != nil {
			return nil, err
		}
		if ta.kind != "" && eq.Kind != ta.kind {
			return nil, b.skip(ctx, d, report.IncompatibleEquipment, ta.name,
				"%q is a %s, expected a %s", staticID, eq.Kind, ta.kind)
		}
		ref := blackbox.EquipmentRef{Kind: eq.Kind, StaticID: eq.ID}
		for _, role := range ta.roles {
			t := blackbox.Target{Role: role, Equipment: ref}
			if ta.name == "monitored" {
				if side != library.SideNone && !twoSided(eq.Kind) {
					return nil, fail(d, resolve.ErrUnsupportedSide, "monitored_side on %s %q", eq.Kind, eq.ID)
				}
				t.Side = side
			}
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil, b.skip(ctx, d, report.MissingField, "monitored", "automation system has no target")
	}
	if side != library.SideNone && !a.has("monitored") {
		return nil, b.skip(ctx, d, report.UnsupportedOption, "monitored_side", "monitored_side requires monitored")
	}

	m, err := blackbox.New(blackbox.Spec{
		ID:             d.ID,
		Kind:           blackbox.KindAutomationSystem,
		Library:        lib,
		ParameterSetID: parSet,
		Targets:        targets,
	})
	if err != nil {
		return nil, &resolve.ConstructionError{ModelID: d.ID, Err: err}
	}
	return m, nil
}

func (b *builder) monitoredSide(ctx context.Context, d *config.Declaration, a *attributes) (library.Side, error) {
	raw, ok, err := a.string("monitored_side")
	if err != nil {
		return library.SideNone, b.skip(ctx, d, report.InvalidValue, "monitored_side", "%v", err)
	}
	if !ok {
		return library.SideNone, nil
	}
	side, err := library.ParseSide(raw)
	if err != nil || side == library.SideNone {
		return library.SideNone, b.skip(ctx, d, report.InvalidValue, "monitored_side", "%q is not a side", raw)
	}
	return side, nil
}
