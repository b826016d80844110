// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package library holds the table of simulation-library definitions.
//
// A library is an opaque, externally implemented dynamic model (for example
// "GeneratorSynchronousFourWindingsProportionalRegulations"). The only thing
// this repository needs to know about it is its variable contract: which
// variable name plays which connection capability ("terminal",
// "switchOffNode", "deltaP", ...), optionally per side for two-sided
// equipment. That contract is data, declared in HCL `library` blocks. The
// default set ships embedded in the binary; users may add their own
// manifests from a directory.
//
// The Registry is built once per run and passed by reference to every
// consumer. There is no package-level state.
package library
