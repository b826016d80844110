// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"fmt"
	"slices"

	"github.com/vk/dyngridgo/internal/blackbox"
	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/macro"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/omegaref"
	"github.com/vk/dyngridgo/internal/parstore"
)

// Context is the result of a successful Build.
type Context struct {
	network      *network.Network
	libraries    *library.Registry
	models       []*blackbox.Model
	byID         map[string]*blackbox.Model
	defaults     []*blackbox.Model
	connectors   *macro.Registry
	instructions *macro.Instructions
	aggregator   *omegaref.Aggregator
}

// Models returns the final descriptors: declared models in declaration order
// with events finalized, then the frequency aggregator if any generator
// joined it. Network defaults are not included.
func (c *Context) Models() []*blackbox.Model { return slices.Clone(c.models) }

// Model returns a final descriptor by id.
func (c *Context) Model(id string) (*blackbox.Model, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Defaults returns the network defaults created during resolution, one per
// default library, in creation order.
func (c *Context) Defaults() []*blackbox.Model { return slices.Clone(c.defaults) }

// Connectors returns the macro connectors in creation order.
func (c *Context) Connectors() []*macro.Connector { return c.connectors.Connectors() }

// Registry exposes the connector registry for lookups.
func (c *Context) Registry() *macro.Registry { return c.connectors }

// Instructions returns the macro-connect instructions in resolution order.
func (c *Context) Instructions() []macro.Instruction { return c.instructions.All() }

// InstructionList exposes the instruction list itself.
func (c *Context) InstructionList() *macro.Instructions { return c.instructions }

// Aggregator returns the frequency aggregator. It is closed.
func (c *Context) Aggregator() *omegaref.Aggregator { return c.aggregator }

// Libraries returns the library registry the context was built with.
func (c *Context) Libraries() *library.Registry { return c.libraries }

// Network returns the network snapshot.
func (c *Context) Network() *network.Network { return c.network }

// GeneratedSets returns the parameter sets produced by resolution: one per
// finalized event, then the aggregator's. Aggregator weights are read from
// store, so a missing weight parameter surfaces here.
func (c *Context) GeneratedSets(store parstore.Store) ([]*parstore.Set, error) {
	var sets []*parstore.Set
	for _, m := range c.models {
		if m.Kind() == blackbox.KindEvent && len(m.Parameters()) > 0 {
			sets = append(sets, &parstore.Set{ID: m.ParameterSetID(), Parameters: m.Parameters()})
		}
	}
	if agg := c.aggregator.Model(); agg != nil && c.aggregator.NbGen() > 0 {
		params, err := c.aggregator.Parameters(store)
		if err != nil {
			return nil, fmt.Errorf("computing frequency aggregator parameters: %w", err)
		}
		sets = append(sets, &parstore.Set{ID: agg.ParameterSetID(), Parameters: params})
	}
	return sets, nil
}
