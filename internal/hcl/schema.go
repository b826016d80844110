// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// rootSchema lists every top-level block. Decoding through a schema rather
// than gohcl keeps blocks of different types in their source order.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "network", LabelNames: []string{"id"}},
		{Type: "dynamic_model", LabelNames: []string{"library", "id"}},
		{Type: "event", LabelNames: []string{"type", "id"}},
		{Type: "automation_system", LabelNames: []string{"library", "id"}},
		{Type: "parameter_set", LabelNames: []string{"id"}},
		{Type: "curve", LabelNames: []string{"target"}},
		{Type: "simulation"},
	},
}

// equipmentKinds are the element blocks accepted inside `network`.
var equipmentKinds = []string{
	"bus", "generator", "load", "line", "transformer", "converter_station", "hvdc_line",
}

func networkSchema() *hcl.BodySchema {
	s := &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "topology"}},
		Blocks:     []hcl.BlockHeaderSchema{{Type: "voltage_level", LabelNames: []string{"id"}}},
	}
	for _, kind := range equipmentKinds {
		s.Blocks = append(s.Blocks, hcl.BlockHeaderSchema{Type: kind, LabelNames: []string{"id"}})
	}
	return s
}

type voltageLevelBlock struct {
	Nodes map[string]string `hcl:"nodes,optional"`
}

type curveBlock struct {
	Variables []string `hcl:"variables"`
}

type simulationBlock struct {
	StartTime           *float64 `hcl:"start_time,optional"`
	StopTime            *float64 `hcl:"stop_time,optional"`
	Solver              *string  `hcl:"solver,optional"`
	SolverParameterSet  *string  `hcl:"solver_parameter_set,optional"`
	NetworkParameterSet *string  `hcl:"network_parameter_set,optional"`
	IIDMFile            *string  `hcl:"iidm_file,optional"`
	Precision           *float64 `hcl:"precision,optional"`
}
