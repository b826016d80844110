// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic model of a user's input: the
// network, the dynamic model declarations, parameter sets, curves and the
// simulation settings, along with the Loader interface that produces it.
//
// Attribute values are already evaluated into cty values. Interpreting them
// (required fields, types, cross references) is the job of the dsl package.
// The concrete HCL implementation lives in the hcl package.
package config
