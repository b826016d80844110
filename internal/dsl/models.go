// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/report"
	"github.com/vk/dyngridgo/internal/resolve"
)

// Input is everything BuildModels consumes.
type Input struct {
	Declarations []*config.Declaration
	Network      *network.Network
	Libraries    *library.Registry
	Reporter     *report.Reporter
}

// errSkip marks a declaration that was reported and left out.
var errSkip = errors.New("declaration skipped")

// builder carries one BuildModels run.
type builder struct {
	in Input
}

// BuildModels converts declarations into model descriptors, in declaration
// order.
func BuildModels(ctx context.Context, in Input) ([]*blackbox.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if in.Network == nil || in.Libraries == nil {
		return nil, errors.New("dsl: network and libraries are required")
	}

	seen := make(map[string]*config.Declaration, len(in.Declarations))
	for _, d := range in.Declarations {
		if prev, dup := seen[d.ID]; dup {
			return nil, &resolve.ConstructionError{
				ModelID: d.ID,
				Err:     fmt.Errorf("%w: declared at %s and %s", resolve.ErrDuplicateModel, prev.Range, d.Range),
			}
		}
		seen[d.ID] = d
	}

	b := &builder{in: in}
	models := make([]*blackbox.Model, 0, len(in.Declarations))
	for _, d := range in.Declarations {
		dctx := ctxlog.With(ctx, "model_id", d.ID, "declaration", string(d.Block))
		m, err := b.declaration(dctx, d)
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	logger.Debug("Declarations converted.", "models", len(models), "skipped", len(in.Declarations)-len(models))
	return models, nil
}

func (b *builder) declaration(ctx context.Context, d *config.Declaration) (*blackbox.Model, error) {
	a := newAttributes(d.Attributes)

	var (
		m   *blackbox.Model
		err error
	)
	switch d.Block {
	case config.BlockDynamicModel:
		m, err = b.dynamicModel(ctx, d, a)
	case config.BlockEvent:
		m, err = b.event(ctx, d, a)
	case config.BlockAutomationSystem:
		m, err = b.automationSystem(ctx, d, a)
	default:
		return nil, fmt.Errorf("%s: unexpected declaration block %q", d.Range, d.Block)
	}
	if err != nil {
		return nil, err
	}

	if extra := a.unused(); len(extra) > 0 {
		return nil, b.skip(ctx, d, report.UnsupportedOption, extra[0], "attribute is not supported here")
	}
	return m, nil
}

// skip reports a warning and returns errSkip.
func (b *builder) skip(ctx context.Context, d *config.Declaration, kind report.Kind, field, format string, args ...any) error {
	b.in.Reporter.Warn(ctx, report.Warning{
		Kind:      kind,
		ModelType: d.Type,
		ModelID:   d.ID,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
		Subject:   d.Subject(field),
	})
	return errSkip
}

// fail builds a construction error for the declaration.
func fail(d *config.Declaration, err error, format string, args ...any) error {
	return &resolve.ConstructionError{
		ModelID: d.ID,
		Err:     fmt.Errorf("%w: %s (%s)", err, fmt.Sprintf(format, args...), d.Range),
	}
}

// requiredString reads a mandatory string attribute.
func (b *builder) requiredString(ctx context.Context, d *config.Declaration, a *attributes, name string) (string, error) {
	s, ok, err := a.string(name)
	if err != nil {
		return "", b.skip(ctx, d, report.InvalidValue, name, "%v", err)
	}
	if !ok || s == "" {
		return "", b.skip(ctx, d, report.MissingField, name, "required attribute is missing")
	}
	return s, nil
}

// requiredNumber reads a mandatory number attribute.
func (b *builder) requiredNumber(ctx context.Context, d *config.Declaration, a *attributes, name string) (float64, error) {
	f, ok, err := a.number(name)
	if err != nil {
		return 0, b.skip(ctx, d, report.InvalidValue, name, "%v", err)
	}
	if !ok {
		return 0, b.skip(ctx, d, report.MissingField, name, "required attribute is missing")
	}
	return f, nil
}

// lookupEquipment resolves a static id named by attribute field.
func (b *builder) lookupEquipment(ctx context.Context, d *config.Declaration, field, staticID string) (*network.Equipment, error) {
	eq, ok := b.in.Network.Equipment(staticID)
	if !ok {
		return nil, b.skip(ctx, d, report.UnknownEquipment, field, "no equipment %q in network %q", staticID, b.in.Network.ID())
	}
	return eq, nil
}

func twoSided(k network.Kind) bool {
	return k.IsBranch() || k == network.KindHvdcLine
}
