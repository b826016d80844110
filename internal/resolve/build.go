// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/omegaref"
	"github.com/vk/dyngridgo/internal/report"
)

// Input is everything Build consumes.
type Input struct {
	Network   *network.Network
	Libraries *library.Registry
	Models    []*blackbox.Model
	// Reporter receives non-fatal findings. Optional.
	Reporter *report.Reporter
}

// Build resolves every model and returns the simulation context.
func Build(ctx context.Context, in Input) (*Context, error) {
	logger := ctxlog.FromContext(ctx)
	if in.Network == nil || in.Libraries == nil {
		return nil, errors.New("resolve: network and libraries are required")
	}
	logger.Debug("Resolving models.", "models", len(in.Models), "equipment", in.Network.Len())

	s := newState(in)
	aggDef, err := in.Libraries.Aggregator()
	if err == nil {
		s.agg = omegaref.New(aggDef)
	}

	if err := s.index(in.Models); err != nil {
		return nil, err
	}
	if err := s.finalizeEvents(ctx); err != nil {
		return nil, err
	}
	for _, m := range s.models {
		if err := s.resolveModel(ctxlog.With(ctx, "model_id", m.ID(), "lib", m.Library()), m); err != nil {
			return nil, err
		}
	}

	if s.agg != nil {
		if m := s.agg.Close(); m != nil {
			s.models = append(s.models, m)
			s.byID[m.ID()] = m
			logger.Debug("Frequency aggregator closed.", "nb_gen", s.agg.NbGen())
		}
	} else {
		s.agg = omegaref.New(&library.Definition{})
		s.agg.Close()
	}

	logger.Info("Models resolved.",
		"models", len(s.models),
		"defaults", len(s.defaultOrder),
		"connectors", s.registry.Len(),
		"instructions", s.instrs.Len(),
	)

	return &Context{
		network:      s.net,
		libraries:    s.libs,
		models:       s.models,
		byID:         s.byID,
		defaults:     s.defaultOrder,
		connectors:   s.registry,
		instructions: s.instrs,
		aggregator:   s.agg,
	}, nil
}

// equipmentKinds lists the network kinds each equipment-bound model kind accepts.
var equipmentKinds = map[blackbox.Kind][]network.Kind{
	blackbox.KindGenerator: {network.KindGenerator},
	blackbox.KindLoad:      {network.KindLoad},
	blackbox.KindBus:       {network.KindBus},
	blackbox.KindBranch:    {network.KindLine, network.KindTransformer},
	blackbox.KindHvdc:      {network.KindHvdcLine},
}

// index is pass 1.
func (s *state) index(models []*blackbox.Model) error {
	for _, m := range models {
		id := m.ID()
		if id == blackbox.NetworkID || id == omegaref.ModelID {
			return &ConstructionError{ModelID: id, Err: ErrReservedID}
		}
		if _, dup := s.byID[id]; dup {
			return &ConstructionError{ModelID: id, Err: ErrDuplicateModel}
		}
		s.byID[id] = m
		s.models = append(s.models, m)

		switch m.Kind() {
		case blackbox.KindEvent, blackbox.KindAutomationSystem:
			if err := s.checkTargets(m); err != nil {
				return err
			}
			continue
		case blackbox.KindNetworkDefault, blackbox.KindAggregator:
			return constructionErr(id, "%s models are created by the resolver", m.Kind())
		}

		ref := m.Equipment()
		if ref.IsZero() {
			return constructionErr(id, "%w: %s model has no equipment", ErrUnknownEquipment, m.Kind())
		}
		eq, ok := s.net.Equipment(ref.StaticID)
		if !ok {
			return constructionErr(id, "%w: %q", ErrUnknownEquipment, ref.StaticID)
		}
		if !kindIn(eq.Kind, equipmentKinds[m.Kind()]) || (m.Definition().Equipment != "" && m.Definition().Equipment != string(eq.Kind)) {
			return constructionErr(id, "%w: %q is a %s, library %q expects %s",
				ErrEquipmentKind, ref.StaticID, eq.Kind, m.Library(), m.Definition().Equipment)
		}
		if prev, ok := s.byEquipment[ref.StaticID]; ok {
			return constructionErr(id, "%w: %q is already modeled by %q", ErrEquipmentBoundTwice, ref.StaticID, prev.ID())
		}
		s.byEquipment[ref.StaticID] = m
	}
	return nil
}

func (s *state) checkTargets(m *blackbox.Model) error {
	targets := m.Targets()
	if len(targets) == 0 {
		return constructionErr(m.ID(), "%w: %s has no target", ErrInvalidTarget, m.Kind())
	}
	for _, t := range targets {
		eq, ok := s.net.Equipment(t.Equipment.StaticID)
		if !ok {
			return constructionErr(m.ID(), "%w: %q", ErrUnknownEquipment, t.Equipment.StaticID)
		}
		if t.Side != library.SideNone && !(eq.Kind.IsBranch() || eq.Kind == network.KindHvdcLine) {
			return constructionErr(m.ID(), "%w: side %s requested on %s %q", ErrUnsupportedSide, t.Side, eq.Kind, eq.ID)
		}
	}
	return nil
}

func kindIn(k network.Kind, kinds []network.Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

// resolveModel is pass 3 for one model.
func (s *state) resolveModel(ctx context.Context, m *blackbox.Model) error {
	ctxlog.FromContext(ctx).Debug("Resolving model.", "kind", m.Kind().String())
	var err error
	switch m.Kind() {
	case blackbox.KindGenerator, blackbox.KindLoad:
		err = s.resolveInjection(ctx, m)
	case blackbox.KindBus:
		// Buses are wired from the equipment connected to them.
	case blackbox.KindBranch, blackbox.KindHvdc:
		err = s.resolveTwoSided(ctx, m)
	case blackbox.KindEvent:
		err = s.resolveEvent(ctx, m)
	case blackbox.KindAutomationSystem:
		err = s.resolveAutomation(ctx, m)
	default:
		err = fmt.Errorf("unexpected model kind %s", m.Kind())
	}
	if err != nil {
		var ce *ConstructionError
		if errors.As(err, &ce) {
			return err
		}
		return &ConstructionError{ModelID: m.ID(), Err: err}
	}
	return nil
}
