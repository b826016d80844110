// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package macro deduplicates wiring patterns between two model roles into
// reusable connectors and records the ordered list of their instantiations.
//
// # Connector identity
//
// A connector is identified by a canonical key computed from its two roles
// and its variable pairs:
//
//  1. The roles are ordered lexicographically. The first becomes role 1 and
//     owns Var1 of every pair. When the caller passed them the other way
//     round, every pair is reversed.
//  2. When both roles are equal, the orientation whose sorted pair list is
//     lexicographically smaller wins.
//  3. The key is the ordered role pair plus the sorted pair list, so neither
//     call-site direction nor the order connections were listed in change it.
//
// The stored connection list keeps the order of the first call, remapped to
// the canonical orientation. GetOrCreate reports whether the caller's
// orientation was swapped; the caller must then swap its endpoints too.
//
// The connector id is "MC_<role1>-<role2>". Two different shapes between the
// same two roles would share an id, which is reported as ErrConnectorConflict.
// Callers keep shapes apart by qualifying roles (per side, per controllable
// variant, per automation target role).
//
// # Instructions
//
// Instructions are appended in resolution order, which is part of the output
// contract. Neither the registry nor the instruction list supports removal.
package macro
