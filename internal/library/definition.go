// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package library

import (
	"slices"
)

// StaticRef maps a library variable onto a static network output, used only
// when exporting results.
type StaticRef struct {
	Var    string
	Static string
}

// Definition is the variable contract of one simulation library.
type Definition struct {
	Name        string
	Category    Category
	Description string

	// Equipment is the network kind this library binds to. For the network
	// category it is the kind the default stands in for.
	Equipment string

	// OmegaRef marks generators that join the frequency aggregator.
	OmegaRef bool
	// Weight lists the parameter names multiplied together to weight a
	// contributor in the frequency aggregator.
	Weight []string

	// Aggregator-only parameter names.
	WeightParameter string
	CountParameter  string

	Variables    map[Side]map[Capability]string
	Controllable map[Capability]string
	StaticRefs   []StaticRef

	// Source is the manifest file the definition was read from.
	Source string
}

// Var returns the variable playing capability c on the given side. A side
// specific variable wins over a side independent one.
func (d *Definition) Var(c Capability, side Side) (string, bool) {
	if side != SideNone {
		if v, ok := d.Variables[side][c]; ok {
			return v, true
		}
	}
	v, ok := d.Variables[SideNone][c]
	return v, ok
}

// ControllableVar is Var for a model declared controllable.
func (d *Definition) ControllableVar(c Capability, side Side) (string, bool) {
	if v, ok := d.Controllable[c]; ok {
		return v, true
	}
	return d.Var(c, side)
}

// SupportsControllable reports whether the library has a controllable variant.
func (d *Definition) SupportsControllable() bool {
	return len(d.Controllable) > 0
}

// Has reports whether capability c is available on the given side.
func (d *Definition) Has(c Capability, side Side) bool {
	_, ok := d.Var(c, side)
	return ok
}

// Sided reports whether the library declares side-specific variables.
func (d *Definition) Sided() bool {
	return len(d.Variables[SideOne]) > 0 || len(d.Variables[SideTwo]) > 0
}

// CapabilitiesOn lists the capabilities available on a side, in canonical order.
func (d *Definition) CapabilitiesOn(side Side) []Capability {
	var out []Capability
	for _, c := range allCapabilities {
		if d.Has(c, side) {
			out = append(out, c)
		}
	}
	return out
}

// IsDefault reports whether the definition is a network-side stand-in.
func (d *Definition) IsDefault() bool {
	return d.Category == CategoryNetwork
}

func (d *Definition) clone() *Definition {
	c := *d
	c.Weight = slices.Clone(d.Weight)
	c.StaticRefs = slices.Clone(d.StaticRefs)
	c.Variables = make(map[Side]map[Capability]string, len(d.Variables))
	for s, vars := range d.Variables {
		m := make(map[Capability]string, len(vars))
		for k, v := range vars {
			m[k] = v
		}
		c.Variables[s] = m
	}
	c.Controllable = make(map[Capability]string, len(d.Controllable))
	for k, v := range d.Controllable {
		c.Controllable[k] = v
	}
	return &c
}
