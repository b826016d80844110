// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"fmt"

	"github.com/vk/dyngridgo/internal/config"
	"github.com/vk/dyngridgo/internal/inmemorystore"
	"github.com/vk/dyngridgo/internal/parstore"
)

// BuildParameters loads every parameter_set block into a new store, keeping
// the order of sets and of the values inside each set.
func BuildParameters(sets []*config.ParameterSet) (*inmemorystore.Store, error) {
	store := inmemorystore.New()
	for _, cs := range sets {
		set := &parstore.Set{ID: cs.ID}
		for _, nv := range cs.Values {
			p, err := parstore.FromCty(nv.Name, nv.Value)
			if err != nil {
				return nil, fmt.Errorf("parameter set %q: %w", cs.ID, err)
			}
			set.Parameters = append(set.Parameters, p)
		}
		if err := store.Add(set); err != nil {
			return nil, err
		}
	}
	return store, nil
}
