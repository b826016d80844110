// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package blackbox

import (
	"fmt"

	"github.com/vk/dyngridgo/internal/library"
)

// Kind is the tagged variant a Model belongs to.
type Kind int

const (
	KindGenerator Kind = iota + 1
	KindLoad
	KindBus
	KindBranch
	KindHvdc
	KindAutomationSystem
	KindEvent
	KindNetworkDefault
	KindAggregator
)

var kindNames = map[Kind]string{
	KindGenerator:        "generator",
	KindLoad:             "load",
	KindBus:              "bus",
	KindBranch:           "branch",
	KindHvdc:             "hvdc",
	KindAutomationSystem: "automation_system",
	KindEvent:            "event",
	KindNetworkDefault:   "network_default",
	KindAggregator:       "aggregator",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindForCategory maps a library category onto the model variant that uses it.
func KindForCategory(c library.Category) (Kind, bool) {
	switch c {
	case library.CategoryGenerator:
		return KindGenerator, true
	case library.CategoryLoad:
		return KindLoad, true
	case library.CategoryBus:
		return KindBus, true
	case library.CategoryBranch:
		return KindBranch, true
	case library.CategoryHvdc:
		return KindHvdc, true
	case library.CategoryAutomation:
		return KindAutomationSystem, true
	case library.CategoryEvent:
		return KindEvent, true
	case library.CategoryNetwork:
		return KindNetworkDefault, true
	case library.CategoryAggregator:
		return KindAggregator, true
	}
	return 0, false
}

// Sides selects which ends of a two-sided equipment are connected.
type Sides uint8

const (
	SideOneOnly Sides = 1 << iota
	SideTwoOnly

	BothSides = SideOneOnly | SideTwoOnly
)

// Has reports whether side s is selected.
func (s Sides) Has(side library.Side) bool {
	switch side {
	case library.SideOne:
		return s&SideOneOnly != 0
	case library.SideTwo:
		return s&SideTwoOnly != 0
	}
	return false
}

// List returns the selected sides in order.
func (s Sides) List() []library.Side {
	var out []library.Side
	if s.Has(library.SideOne) {
		out = append(out, library.SideOne)
	}
	if s.Has(library.SideTwo) {
		out = append(out, library.SideTwo)
	}
	return out
}

// SidesOf builds a selection from individual sides.
func SidesOf(sides ...library.Side) Sides {
	var s Sides
	for _, side := range sides {
		switch side {
		case library.SideOne:
			s |= SideOneOnly
		case library.SideTwo:
			s |= SideTwoOnly
		}
	}
	return s
}
