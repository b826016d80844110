// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hcl is the HCL implementation of config.Loader. It reads the
// `network`, `dynamic_model`, `event`, `automation_system`, `parameter_set`,
// `curve` and `simulation` blocks from any number of files and merges them
// into a single config.Model.
//
// Files are visited in sorted path order and blocks in source order, so the
// declaration order seen by the resolver is reproducible across runs.
package hcl
