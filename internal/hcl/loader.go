// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths. A path may be a file or a
// directory. Parsing problems are returned as hcl.Diagnostics.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var all hcl.Blocks
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		all = append(all, content.Blocks...)
	}

	model, diags := decodeBlocks(all)
	if diags.HasErrors() {
		return nil, diags
	}
	model.Files = parser.Files()

	logger.Debug("HCL loader finished.",
		"declarations", len(model.Declarations),
		"parameter_sets", len(model.ParameterSets),
		"curves", len(model.Curves),
	)
	return model, nil
}

func decodeBlocks(blocks hcl.Blocks) (*config.Model, hcl.Diagnostics) {
	model := &config.Model{Simulation: config.DefaultSimulation()}

	netBlock, diags := findUniqueBlock(blocks, "network")
	simBlock, simDiags := findUniqueBlock(blocks, "simulation")
	diags = append(diags, simDiags...)

	if netBlock != nil {
		network, netDiags := decodeNetwork(netBlock)
		diags = append(diags, netDiags...)
		model.Network = network
	}
	if simBlock != nil {
		diags = append(diags, decodeSimulation(simBlock, model.Simulation)...)
	}

	for _, block := range blocks {
		switch block.Type {
		case "dynamic_model", "event", "automation_system":
			values, attrDiags := evalAttributes(block.Body)
			diags = append(diags, attrDiags...)
			model.Declarations = append(model.Declarations, &config.Declaration{
				Block:           config.DeclarationBlock(block.Type),
				Type:            block.Labels[0],
				ID:              block.Labels[1],
				Attributes:      attributeMap(values),
				AttributeRanges: attributeRanges(values),
				Range:           block.DefRange,
			})
		case "parameter_set":
			values, attrDiags := evalAttributes(block.Body)
			diags = append(diags, attrDiags...)
			model.ParameterSets = append(model.ParameterSets, &config.ParameterSet{
				ID:     block.Labels[0],
				Values: values,
			})
		case "curve":
			var c curveBlock
			diags = append(diags, gohcl.DecodeBody(block.Body, nil, &c)...)
			model.Curves = append(model.Curves, &config.Curve{
				Target:    block.Labels[0],
				Variables: c.Variables,
				Range:     block.DefRange,
			})
		}
	}
	return model, diags
}

func decodeNetwork(block *hcl.Block) (*config.Network, hcl.Diagnostics) {
	content, diags := block.Body.Content(networkSchema())
	if diags.HasErrors() {
		return nil, diags
	}

	network := &config.Network{ID: block.Labels[0], Topology: "bus_breaker"}
	if attr, ok := content.Attributes["topology"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &network.Topology)...)
	}

	for _, b := range content.Blocks {
		if b.Type == "voltage_level" {
			vl, vlDiags := decodeVoltageLevel(b)
			diags = append(diags, vlDiags...)
			if vl != nil {
				network.VoltageLevels = append(network.VoltageLevels, vl)
			}
			continue
		}
		values, attrDiags := evalAttributes(b.Body)
		diags = append(diags, attrDiags...)
		network.Equipment = append(network.Equipment, &config.Equipment{
			Kind:       b.Type,
			ID:         b.Labels[0],
			Attributes: attributeMap(values),
			Range:      b.DefRange,
		})
	}
	return network, diags
}

func decodeVoltageLevel(block *hcl.Block) (*config.VoltageLevel, hcl.Diagnostics) {
	var raw voltageLevelBlock
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	vl := &config.VoltageLevel{ID: block.Labels[0], Nodes: make(map[int]string, len(raw.Nodes))}
	for key, bus := range raw.Nodes {
		node, err := strconv.Atoi(key)
		if err != nil || node < 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid node number",
				Detail:   fmt.Sprintf("Voltage level %q: node key %q is not a non-negative integer.", vl.ID, key),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		vl.Nodes[node] = bus
	}
	return vl, diags
}

func decodeSimulation(block *hcl.Block, sim *config.Simulation) hcl.Diagnostics {
	var raw simulationBlock
	diags := gohcl.DecodeBody(block.Body, nil, &raw)
	if diags.HasErrors() {
		return diags
	}

	if raw.StartTime != nil {
		sim.StartTime = *raw.StartTime
	}
	if raw.StopTime != nil {
		sim.StopTime = *raw.StopTime
	}
	if raw.Solver != nil {
		sim.Solver = *raw.Solver
	}
	if raw.SolverParameterSet != nil {
		sim.SolverParameterSet = *raw.SolverParameterSet
	}
	if raw.NetworkParameterSet != nil {
		sim.NetworkParameterSet = *raw.NetworkParameterSet
	}
	if raw.IIDMFile != nil {
		sim.IIDMFile = *raw.IIDMFile
	}
	if raw.Precision != nil {
		sim.Precision = *raw.Precision
	}

	if sim.StopTime <= sim.StartTime {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid simulation window",
			Detail:   fmt.Sprintf("stop_time (%g) must be greater than start_time (%g).", sim.StopTime, sim.StartTime),
			Subject:  block.DefRange.Ptr(),
		})
	}
	return diags
}
