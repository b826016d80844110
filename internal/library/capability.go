// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package library

import (
	"fmt"
	"slices"
)

// Capability names one connection role a library variable can play.
type Capability string

const (
	Terminal           Capability = "terminal"
	SwitchOffNode      Capability = "switchOffNode"
	SwitchOffEvent     Capability = "switchOffEvent"
	SwitchOffAutomaton Capability = "switchOffAutomaton"
	StateValue         Capability = "stateValue"
	DeltaP             Capability = "deltaP"
	Running            Capability = "running"
	OmegaPu            Capability = "omegaPu"
	OmegaRefPu         Capability = "omegaRefPu"
	Numcc              Capability = "numcc"
	IMonitored         Capability = "iMonitored"
	UMonitored         Capability = "uMonitored"
	Tap                Capability = "tap"
)

var allCapabilities = []Capability{
	Terminal, SwitchOffNode, SwitchOffEvent, SwitchOffAutomaton, StateValue,
	DeltaP, Running, OmegaPu, OmegaRefPu, Numcc, IMonitored, UMonitored, Tap,
}

// Capabilities returns every known capability in declaration order.
func Capabilities() []Capability {
	return slices.Clone(allCapabilities)
}

// ParseCapability maps a manifest attribute name onto a Capability.
func ParseCapability(s string) (Capability, error) {
	c := Capability(s)
	if slices.Contains(allCapabilities, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown capability %q", s)
}

// Category groups libraries by the kind of model they implement.
type Category string

const (
	CategoryGenerator  Category = "generator"
	CategoryLoad       Category = "load"
	CategoryBus        Category = "bus"
	CategoryBranch     Category = "branch"
	CategoryHvdc       Category = "hvdc"
	CategoryAutomation Category = "automation"
	CategoryEvent      Category = "event"
	CategoryNetwork    Category = "network"
	CategoryAggregator Category = "aggregator"
)

var allCategories = []Category{
	CategoryGenerator, CategoryLoad, CategoryBus, CategoryBranch, CategoryHvdc,
	CategoryAutomation, CategoryEvent, CategoryNetwork, CategoryAggregator,
}

// ParseCategory validates a manifest category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if slices.Contains(allCategories, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Side selects one end of a two-sided piece of equipment. SideNone is used
// for single-terminal equipment and for side-independent variables.
type Side int

const (
	SideNone Side = iota
	SideOne
	SideTwo
)

// ParseSide accepts "one"/"two" as well as "1"/"2". The empty string is SideNone.
func ParseSide(s string) (Side, error) {
	switch s {
	case "":
		return SideNone, nil
	case "one", "1":
		return SideOne, nil
	case "two", "2":
		return SideTwo, nil
	}
	return SideNone, fmt.Errorf("invalid side %q (expected \"one\" or \"two\")", s)
}

func (s Side) String() string {
	switch s {
	case SideOne:
		return "one"
	case SideTwo:
		return "two"
	}
	return "none"
}

// Suffix is the role qualifier used to keep per-side connector shapes apart.
func (s Side) Suffix() string {
	switch s {
	case SideOne:
		return "_Side1"
	case SideTwo:
		return "_Side2"
	}
	return ""
}
