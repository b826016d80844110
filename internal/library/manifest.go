// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package library

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/dyngridgo/internal/ctxlog"
)

// manifestRootSchema is the top-level structure of a manifest file.
type manifestRootSchema struct {
	Libraries []*hclLibrary `hcl:"library,block"`
}

type hclLibrary struct {
	Name            string          `hcl:"name,label"`
	Category        string          `hcl:"category"`
	Equipment       string          `hcl:"equipment,optional"`
	Description     string          `hcl:"description,optional"`
	OmegaRef        bool            `hcl:"omega_ref,optional"`
	Weight          []string        `hcl:"weight,optional"`
	WeightParameter string          `hcl:"weight_parameter,optional"`
	CountParameter  string          `hcl:"count_parameter,optional"`
	Variables       []*hclVariables `hcl:"variables,block"`
	Controllable    []*hclVariables `hcl:"controllable,block"`
	StaticRefs      []*hclStaticRef `hcl:"static_ref,block"`
}

// hclVariables keeps the capability attributes in Remain so that the set of
// capabilities is driven by Capabilities() rather than by struct fields.
type hclVariables struct {
	Side   string   `hcl:"side,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type hclStaticRef struct {
	Var    string `hcl:"var"`
	Static string `hcl:"static"`
}

// ParseManifest decodes every `library` block of a parsed HCL file.
func ParseManifest(ctx context.Context, file *hcl.File, filename string) ([]*Definition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing library manifest.", "file", filename)

	if file == nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Manifest file is nil",
			Detail:   fmt.Sprintf("No HCL content for %s.", filename),
		}}
	}

	var root manifestRootSchema
	diags := gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	defs := make([]*Definition, 0, len(root.Libraries))
	for _, lib := range root.Libraries {
		def, libDiags := decodeLibrary(lib, filename)
		diags = append(diags, libDiags...)
		if libDiags.HasErrors() {
			continue
		}
		defs = append(defs, def)
	}
	return defs, diags
}

func decodeLibrary(lib *hclLibrary, filename string) (*Definition, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	category, err := ParseCategory(lib.Category)
	if err != nil {
		return nil, append(diags, libraryDiag(lib.Name, filename, err))
	}

	def := &Definition{
		Name:            lib.Name,
		Category:        category,
		Description:     lib.Description,
		Equipment:       lib.Equipment,
		OmegaRef:        lib.OmegaRef,
		Weight:          lib.Weight,
		WeightParameter: lib.WeightParameter,
		CountParameter:  lib.CountParameter,
		Variables:       make(map[Side]map[Capability]string),
		Controllable:    make(map[Capability]string),
		Source:          filename,
	}

	for _, block := range lib.Variables {
		side, err := ParseSide(block.Side)
		if err != nil {
			diags = append(diags, libraryDiag(lib.Name, filename, err))
			continue
		}
		vars, varDiags := decodeCapabilities(block.Remain)
		diags = append(diags, varDiags...)
		if def.Variables[side] == nil {
			def.Variables[side] = make(map[Capability]string)
		}
		for c, v := range vars {
			if _, dup := def.Variables[side][c]; dup {
				diags = append(diags, libraryDiag(lib.Name, filename,
					fmt.Errorf("capability %q declared twice on side %s", c, side)))
				continue
			}
			def.Variables[side][c] = v
		}
	}

	for _, block := range lib.Controllable {
		if block.Side != "" {
			diags = append(diags, libraryDiag(lib.Name, filename,
				fmt.Errorf("controllable variables are side independent")))
			continue
		}
		vars, varDiags := decodeCapabilities(block.Remain)
		diags = append(diags, varDiags...)
		for c, v := range vars {
			def.Controllable[c] = v
		}
	}

	for _, ref := range lib.StaticRefs {
		def.StaticRefs = append(def.StaticRefs, StaticRef{Var: ref.Var, Static: ref.Static})
	}

	return def, diags
}

func decodeCapabilities(body hcl.Body) (map[Capability]string, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	out := make(map[Capability]string, len(attrs))
	for name, attr := range attrs {
		c, err := ParseCapability(name)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown capability",
				Detail:   err.Error(),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		var v string
		valDiags := gohcl.DecodeExpression(attr.Expr, nil, &v)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		out[c] = v
	}
	return out, diags
}

func libraryDiag(name, filename string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid library definition",
		Detail:   fmt.Sprintf("library %q in %s: %s", name, filename, err),
	}
}
