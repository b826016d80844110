// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package network holds the static grid topology the dynamic models are bound
// to. A Network is assembled once through a Builder, which rejects duplicate
// ids and dangling references, and is read-only afterwards.
//
// Two topology kinds are supported. In a bus-breaker network every injection
// and branch side names its bus directly. In a node-breaker network they name
// a voltage level and a node, and the voltage level maps nodes onto buses.
// ConnectionBus and SideBus hide that difference from callers.
package network
