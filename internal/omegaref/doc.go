// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package omegaref wires every frequency-producing generator to the single
// shared frequency reference model.
//
// The Aggregator moves through four states. It starts Uninitialized. The
// first Join creates the shared descriptor (FirstSeen); every later Join
// takes the next slot (Indexed). Close freezes the contributor count
// (Closed). Slots follow first-seen order and are embedded into the
// aggregator's variable names through the @INDEX@ placeholder.
//
// Weights are not owned here. Parameters reads them from each contributor's
// own parameter set at write time.
package omegaref
