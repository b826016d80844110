// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package results reads what the simulation engine leaves in its output
// directory: the timeline, as text or CSV, and the curves CSV.
package results
