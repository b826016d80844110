// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inmemorystore

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vk/dyngridgo/internal/parstore"
)

// Store implements parstore.Store using a map and a mutex.
type Store struct {
	mu    sync.RWMutex
	sets  map[string]*parstore.Set
	order []string
}

var _ parstore.Store = (*Store)(nil)

// New creates a new, empty parameter store.
func New() *Store {
	return &Store{sets: make(map[string]*parstore.Set)}
}

// Add stores a parameter set. Ids are unique.
func (s *Store) Add(set *parstore.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sets[set.ID]; exists {
		return fmt.Errorf("%w: %q", parstore.ErrDuplicateSet, set.ID)
	}
	cp := &parstore.Set{ID: set.ID, Parameters: slices.Clone(set.Parameters)}
	s.sets[set.ID] = cp
	s.order = append(s.order, set.ID)
	return nil
}

// Set retrieves a parameter set by id.
func (s *Store) Set(id string) (*parstore.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", parstore.ErrMissingSet, id)
	}
	return set, nil
}

// Double returns a numeric parameter from a set.
func (s *Store) Double(setID, name string) (float64, error) {
	set, err := s.Set(setID)
	if err != nil {
		return 0, err
	}
	p, ok := set.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q in set %q", parstore.ErrMissingParameter, name, setID)
	}
	return p.Float()
}

// IDs lists set ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}
