// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package inmemorystore provides a thread-safe, in-memory implementation
// of the parstore.Store interface.
//
// Parameter sets are loaded once from the input declarations and are then
// read by the resolver (frequency-aggregator weights) and by the emitters.
// Reads dominate, so a single RWMutex guards the maps. Insertion order is
// kept so emitted PAR files are stable across runs.
package inmemorystore
