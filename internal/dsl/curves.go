// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"context"
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/omegaref"
	"github.com/vk/dyngridgo/internal/report"
)

// CurveRef is one output variable requested from the engine.
type CurveRef struct {
	Model    string
	Variable string
}

func (c CurveRef) String() string { return c.Model + "_" + c.Variable }

// BuildCurves maps curve declarations onto model variables. A target may be
// a model id, or a static id: the variable then belongs to the model bound
// to that equipment, or to the network model when there is none.
// Duplicates are dropped.
func BuildCurves(ctx context.Context, curves []*config.Curve, models []*blackbox.Model, net *network.Network, r *report.Reporter) []CurveRef {
	byID := make(map[string]*blackbox.Model, len(models))
	byEquipment := make(map[string]*blackbox.Model, len(models))
	for _, m := range models {
		byID[m.ID()] = m
		if ref := m.Equipment(); !ref.IsZero() {
			byEquipment[ref.StaticID] = m
		}
	}

	seen := make(map[CurveRef]bool)
	var out []CurveRef
	add := func(c CurveRef) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	for _, c := range curves {
		var model, prefix string
		switch {
		case byID[c.Target] != nil || c.Target == omegaref.ModelID:
			model = c.Target
		case byEquipment[c.Target] != nil:
			model = byEquipment[c.Target].ID()
		case hasEquipment(net, c.Target):
			model, prefix = blackbox.NetworkID, c.Target+"_"
		default:
			r.Warn(ctx, report.Warning{
				Kind:      report.UnknownCurveTarget,
				ModelType: "curve",
				ModelID:   c.Target,
				Message:   fmt.Sprintf("no model or equipment %q", c.Target),
				Subject:   c.Range.Ptr(),
			})
			continue
		}
		for _, v := range c.Variables {
			add(CurveRef{Model: model, Variable: prefix + v})
		}
	}
	return out
}

func hasEquipment(net *network.Network, id string) bool {
	_, ok := net.Equipment(id)
	return ok
}
