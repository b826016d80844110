// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package library

import (
	"fmt"
	"strings"
)

// requiredBySide lists the capabilities each category must expose, per side.
var requiredBySide = map[Category]map[Side][]Capability{
	CategoryGenerator: {SideNone: {Terminal}},
	CategoryLoad:      {SideNone: {Terminal}},
	CategoryBus:       {SideNone: {Terminal}},
	CategoryBranch:    {SideOne: {Terminal}, SideTwo: {Terminal}},
	CategoryHvdc:      {SideOne: {Terminal}, SideTwo: {Terminal}},
}

// equipmentByCategory restricts the equipment kind a category may bind to.
var equipmentByCategory = map[Category][]string{
	CategoryGenerator: {"generator"},
	CategoryLoad:      {"load"},
	CategoryBus:       {"bus"},
	CategoryBranch:    {"line", "transformer"},
	CategoryHvdc:      {"hvdc_line"},
	CategoryNetwork:   {"bus", "generator", "load", "line", "transformer", "converter_station", "hvdc_line"},
}

// Validate checks every definition against the rules of its category and
// returns all problems at once.
func (r *Registry) Validate() error {
	var errs []string
	for _, name := range r.order {
		def := r.defs[name]
		for _, msg := range validateDefinition(def) {
			errs = append(errs, fmt.Sprintf("library '%s' (%s): %s", def.Name, def.Source, msg))
		}
	}
	if r.aggregator == nil {
		errs = append(errs, "no library of category 'aggregator' is registered")
	}
	if len(errs) > 0 {
		return fmt.Errorf("library registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validateDefinition(def *Definition) []string {
	var errs []string

	if kinds, ok := equipmentByCategory[def.Category]; ok {
		found := false
		for _, k := range kinds {
			if k == def.Equipment {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("equipment %q is not valid for category %q (expected one of %s)",
				def.Equipment, def.Category, strings.Join(kinds, ", ")))
		}
	} else if def.Equipment != "" {
		errs = append(errs, fmt.Sprintf("category %q does not bind to equipment", def.Category))
	}

	for side, caps := range requiredBySide[def.Category] {
		for _, c := range caps {
			if _, ok := def.Variables[side][c]; !ok {
				errs = append(errs, fmt.Sprintf("missing required capability %q on side %s", c, side))
			}
		}
	}

	if def.OmegaRef {
		if def.Category != CategoryGenerator {
			errs = append(errs, "omega_ref is only valid for generators")
		}
		if len(def.Weight) == 0 {
			errs = append(errs, "omega_ref requires at least one weight parameter")
		}
		for _, c := range []Capability{OmegaPu, OmegaRefPu, Running} {
			if !def.Has(c, SideNone) {
				errs = append(errs, fmt.Sprintf("omega_ref requires capability %q", c))
			}
		}
	} else if len(def.Weight) > 0 {
		errs = append(errs, "weight is only meaningful with omega_ref = true")
	}

	if def.Category == CategoryAggregator {
		if def.WeightParameter == "" || def.CountParameter == "" {
			errs = append(errs, "aggregator requires weight_parameter and count_parameter")
		}
		for _, c := range []Capability{OmegaPu, OmegaRefPu, Running, Numcc} {
			if !def.Has(c, SideNone) {
				errs = append(errs, fmt.Sprintf("aggregator requires capability %q", c))
			}
		}
	}

	for c := range def.Controllable {
		if !def.Has(c, SideNone) {
			errs = append(errs, fmt.Sprintf("controllable capability %q has no regular counterpart", c))
		}
	}
	return errs
}
