// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package blackbox defines the Model descriptor: one dynamic-model instance
// with its library, parameter set and optional equipment binding.
//
// A Model never references another Model. Wiring between models is held in
// flat lists owned by the macro package. Models are immutable once built;
// WithLibrary returns a modified copy instead of mutating in place.
package blackbox
