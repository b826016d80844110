// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app wires the pipeline together: load the input, build the
// network, parameters and models, resolve connections, write the engine's
// files into a fresh work directory and optionally run the engine.
package app
