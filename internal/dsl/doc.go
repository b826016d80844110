// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dsl turns loaded declarations into the inputs of the resolver: a
// validated network, the parameter store, the model descriptors and the
// curve requests.
//
// Declarations are checked one at a time. A declaration that is incomplete
// or refers to something that does not exist is reported through the
// report.Reporter and left out; everything else is kept. Only input that
// cannot be made sense of (a duplicate id, a side on a single-terminal
// equipment) stops the build with a *resolve.ConstructionError.
package dsl
