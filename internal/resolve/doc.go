// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package resolve turns validated model descriptors and a network snapshot
// into a simulation Context: the final descriptor list, the macro connectors
// and the ordered macro-connect instructions.
//
// # Passes
//
// Build runs four passes over an explicit accumulator:
//
//  1. Index: reject duplicate ids, unknown equipment, equipment bound to two
//     dynamic models and side selections on single-terminal equipment.
//  2. Finalize events: pick each event's library from the target's dynamic
//     model lookup and generate its parameters. This must happen before any
//     wiring because it changes the event's own library.
//  3. Resolve: walk the descriptors in declaration order and wire each one
//     to its partners. Equipment without a dynamic model is represented by a
//     lazily created network default with id NETWORK whose variables carry
//     the @NAME@ placeholder.
//  4. Close the frequency aggregator and append its descriptor.
//
// Any error aborts the build. Nothing is emitted from a failed build.
package resolve
