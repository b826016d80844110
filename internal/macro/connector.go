// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package macro

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/dyngridgo/internal/blackbox"
)

var (
	ErrEmptyConnector    = errors.New("connector has no variable connections")
	ErrEmptyVariable     = errors.New("variable connection has an empty side")
	ErrEmptyRole         = errors.New("connector role is empty")
	ErrConnectorConflict = errors.New("connector id already bound to another shape")
	ErrUnknownConnector  = errors.New("unknown connector")
)

// Orientation tells a caller how its arguments map onto the canonical form.
type Orientation int

const (
	AsGiven Orientation = iota
	Swapped
)

func (o Orientation) String() string {
	if o == Swapped {
		return "swapped"
	}
	return "as-given"
}

// Connector is a reusable wiring template between two roles.
type Connector struct {
	id          string
	role1       string
	role2       string
	connections []blackbox.VarConnection
	key         string
}

func (c *Connector) ID() string    { return c.id }
func (c *Connector) Role1() string { return c.role1 }
func (c *Connector) Role2() string { return c.role2 }
func (c *Connector) Len() int      { return len(c.connections) }

// Connections returns the canonical variable pairs in first-seen order.
func (c *Connector) Connections() []blackbox.VarConnection {
	return slices.Clone(c.connections)
}

// ConnectorID derives the id of the connector between two roles, in
// canonical role order.
func ConnectorID(roleA, roleB string) string {
	if roleB < roleA {
		roleA, roleB = roleB, roleA
	}
	return "MC_" + roleA + "-" + roleB
}

// canonicalize returns the oriented roles and connections plus the key.
func canonicalize(roleA, roleB string, conns []blackbox.VarConnection) (string, string, []blackbox.VarConnection, Orientation, string) {
	orient := AsGiven
	switch {
	case roleB < roleA:
		orient = Swapped
	case roleA == roleB:
		fwd := sortedPairs(conns, false)
		rev := sortedPairs(conns, true)
		if slices.Compare(rev, fwd) < 0 {
			orient = Swapped
		}
	}

	r1, r2 := roleA, roleB
	oriented := slices.Clone(conns)
	if orient == Swapped {
		r1, r2 = roleB, roleA
		for i, c := range oriented {
			oriented[i] = c.Reversed()
		}
	}

	var key strings.Builder
	key.WriteString(r1)
	key.WriteByte(0)
	key.WriteString(r2)
	for _, p := range sortedPairs(oriented, false) {
		key.WriteByte(0)
		key.WriteString(p)
	}
	return r1, r2, oriented, orient, key.String()
}

func sortedPairs(conns []blackbox.VarConnection, reversed bool) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		if reversed {
			c = c.Reversed()
		}
		out[i] = c.Var1 + "\x1f" + c.Var2
	}
	slices.Sort(out)
	return out
}

func validateShape(roleA, roleB string, conns []blackbox.VarConnection) error {
	if roleA == "" || roleB == "" {
		return fmt.Errorf("%w (%q, %q)", ErrEmptyRole, roleA, roleB)
	}
	if len(conns) == 0 {
		return fmt.Errorf("%w: no wiring defined between %q and %q", ErrEmptyConnector, roleA, roleB)
	}
	for i, c := range conns {
		if c.Var1 == "" || c.Var2 == "" {
			return fmt.Errorf("%w: connection %d between %q and %q is (%q, %q)", ErrEmptyVariable, i, roleA, roleB, c.Var1, c.Var2)
		}
	}
	return nil
}
