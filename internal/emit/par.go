// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/vk/dyngridgo/internal/parstore"
	"github.com/vk/dyngridgo/internal/resolve"
)

type parDocument struct {
	XMLName xml.Name `xml:"parametersSet"`
	Xmlns   string   `xml:"xmlns,attr"`
	Sets    []parSet `xml:"set"`
}

type parSet struct {
	ID         string         `xml:"id,attr"`
	Parameters []parParameter `xml:"par"`
}

type parParameter struct {
	Type  string `xml:"type,attr"`
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// RenderPAR renders parameter sets in the given order.
func RenderPAR(name string, sets []*parstore.Set) ([]byte, error) {
	doc := parDocument{Xmlns: Namespace}
	for _, s := range sets {
		ps := parSet{ID: s.ID}
		for _, p := range s.Parameters {
			ps.Parameters = append(ps.Parameters, parParameter{Type: string(p.Type), Name: p.Name, Value: p.Text()})
		}
		doc.Sets = append(doc.Sets, ps)
	}
	return marshal(name, doc)
}

// ModelSets collects the sets referenced by the emitted models, in order of
// first reference. Generated sets take precedence over the store.
func ModelSets(c *resolve.Context, store parstore.Store) ([]*parstore.Set, error) {
	generated, err := c.GeneratedSets(store)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*parstore.Set, len(generated))
	for _, s := range generated {
		byID[s.ID] = s
	}

	var sets []*parstore.Set
	seen := make(map[string]bool)
	for _, m := range c.Models() {
		id := m.ParameterSetID()
		if m.IsDefault() || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := byID[id]; ok {
			sets = append(sets, s)
			continue
		}
		s, err := store.Set(id)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.ID(), err)
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// namedSet returns the store's set id, or fallback renamed to id when the
// store has none.
func namedSet(store parstore.Store, id string, fallback []parstore.Parameter) (*parstore.Set, error) {
	s, err := store.Set(id)
	if errors.Is(err, parstore.ErrMissingSet) {
		return &parstore.Set{ID: id, Parameters: fallback}, nil
	}
	return s, err
}

// defaultSolverParameters is used when the solver set is not declared.
func defaultSolverParameters() []parstore.Parameter {
	return []parstore.Parameter{
		parstore.Int("order", 2),
		parstore.Double("initStep", 1e-7),
		parstore.Double("minStep", 1e-7),
		parstore.Double("maxStep", 10),
		parstore.Double("absAccuracy", 1e-4),
		parstore.Double("relAccuracy", 1e-4),
	}
}

// defaultNetworkParameters is used when the network set is not declared.
func defaultNetworkParameters() []parstore.Parameter {
	return []parstore.Parameter{
		parstore.Double("capacitor_no_reclosing_delay", 300),
		parstore.Double("dangling_line_currentLimit_maxTimeOperation", 90),
		parstore.Double("line_currentLimit_maxTimeOperation", 90),
		parstore.Double("load_Tp", 90),
		parstore.Double("load_Tq", 90),
		parstore.Double("load_alpha", 1),
		parstore.Double("load_beta", 2),
		parstore.Bool("load_isControllable", false),
		parstore.Bool("load_isRestorative", false),
		parstore.Double("transformer_currentLimit_maxTimeOperation", 90),
	}
}
