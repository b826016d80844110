// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// findUniqueBlock returns the only block of the given type, nil when there is
// none, and a diagnostic for every extra one.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed.",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}
	return found, diags
}

// evalAttributes evaluates every attribute of a body without variables.
// Attributes come back ordered by their position in the file.
func evalAttributes(body hcl.Body) ([]config.NamedValue, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	sorted := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sorted = append(sorted, attr)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Range.Start.Byte < sorted[j].Range.Start.Byte
	})

	values := make([]config.NamedValue, 0, len(sorted))
	for _, attr := range sorted {
		v, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		values = append(values, config.NamedValue{Name: attr.Name, Value: v, Range: attr.Range})
	}
	return values, diags
}

func attributeMap(values []config.NamedValue) map[string]cty.Value {
	m := make(map[string]cty.Value, len(values))
	for _, nv := range values {
		m[nv.Name] = nv.Value
	}
	return m
}

func attributeRanges(values []config.NamedValue) map[string]hcl.Range {
	m := make(map[string]hcl.Range, len(values))
	for _, nv := range values {
		m[nv.Name] = nv.Range
	}
	return m
}
