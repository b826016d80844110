// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of all input files.
type Model struct {
	Network       *Network
	Declarations  []*Declaration
	ParameterSets []*ParameterSet
	Curves        []*Curve
	Simulation    *Simulation

	// Files are the parsed sources by file name, for rendering diagnostics.
	Files map[string]*hcl.File
}

// DeclarationBlock is the block type a declaration came from.
type DeclarationBlock string

const (
	BlockDynamicModel     DeclarationBlock = "dynamic_model"
	BlockEvent            DeclarationBlock = "event"
	BlockAutomationSystem DeclarationBlock = "automation_system"
)

// Declaration is one `dynamic_model`, `event` or `automation_system` block.
// Type is the first label: a library name, or an event type for events.
type Declaration struct {
	Block      DeclarationBlock
	Type       string
	ID         string
	Attributes map[string]cty.Value
	// AttributeRanges locates each attribute, keyed like Attributes.
	AttributeRanges map[string]hcl.Range
	// Range is the block header.
	Range hcl.Range
}

// Subject locates a field of the declaration in the source, or the block
// header when the field is empty or absent.
func (d *Declaration) Subject(field string) *hcl.Range {
	if r, ok := d.AttributeRanges[field]; ok {
		return r.Ptr()
	}
	return d.Range.Ptr()
}

// Network is the `network` block.
type Network struct {
	ID            string
	Topology      string
	VoltageLevels []*VoltageLevel
	Equipment     []*Equipment
}

// VoltageLevel maps node numbers onto bus ids (node-breaker networks).
type VoltageLevel struct {
	ID    string
	Nodes map[int]string
}

// Equipment is one element of the network block. Kind is the block type.
type Equipment struct {
	Kind       string
	ID         string
	Attributes map[string]cty.Value
	Range      hcl.Range
}

// NamedValue is an attribute kept in source order.
type NamedValue struct {
	Name  string
	Value cty.Value
	Range hcl.Range
}

// ParameterSet is a `parameter_set` block.
type ParameterSet struct {
	ID     string
	Values []NamedValue
}

// Curve requests output variables of a model or a static element.
type Curve struct {
	Target    string
	Variables []string
	Range     hcl.Range
}

// Simulation holds the `simulation` block settings.
type Simulation struct {
	StartTime           float64
	StopTime            float64
	Solver              string
	SolverParameterSet  string
	NetworkParameterSet string
	IIDMFile            string
	Precision           float64
}

// DefaultSimulation returns the settings used when no simulation block is given.
func DefaultSimulation() *Simulation {
	return &Simulation{
		StartTime:           0,
		StopTime:            100,
		Solver:              "dynawo_SolverIDA",
		SolverParameterSet:  "IDA",
		NetworkParameterSet: "Network",
		IIDMFile:            "network.iidm",
		Precision:           1e-6,
	}
}
