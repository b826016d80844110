// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package macro

import (
	"fmt"
	"strings"

	"github.com/vk/dyngridgo/internal/endpoint"
)

// Instruction instantiates a connector between two endpoints, written in the
// connector's canonical orientation.
type Instruction struct {
	Connector string
	ID1       endpoint.Endpoint
	ID2       endpoint.Endpoint
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %s -> %s", i.Connector, i.ID1, i.ID2)
}

// Instructions is the ordered instantiation list.
type Instructions struct {
	list []Instruction
}

// Append records one instantiation. from and to follow the order the roles
// were given to GetOrCreate; orient is what GetOrCreate returned.
func (l *Instructions) Append(c *Connector, orient Orientation, from, to endpoint.Endpoint) (Instruction, error) {
	if orient == Swapped {
		from, to = to, from
	}
	if err := checkPlaceholders(c, from, to); err != nil {
		return Instruction{}, err
	}
	ins := Instruction{Connector: c.ID(), ID1: from, ID2: to}
	l.list = append(l.list, ins)
	return ins, nil
}

// All returns a copy of the instructions in append order.
func (l *Instructions) All() []Instruction {
	out := make([]Instruction, len(l.list))
	copy(out, l.list)
	return out
}

// Len is the number of instructions.
func (l *Instructions) Len() int { return len(l.list) }

// String dumps one instruction per line.
func (l *Instructions) String() string {
	var sb strings.Builder
	for _, ins := range l.list {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// checkPlaceholders makes sure every template variable on a side has the
// qualifier it needs on the endpoint of that side.
func checkPlaceholders(c *Connector, e1, e2 endpoint.Endpoint) error {
	for _, vc := range c.connections {
		if err := checkTemplate(c.id, vc.Var1, e1); err != nil {
			return err
		}
		if err := checkTemplate(c.id, vc.Var2, e2); err != nil {
			return err
		}
	}
	return nil
}

func checkTemplate(connector, v string, e endpoint.Endpoint) error {
	if strings.Contains(v, endpoint.NamePlaceholder) && !e.HasName() {
		return fmt.Errorf("connector %s: variable %q needs a name on endpoint %s", connector, v, e)
	}
	if strings.Contains(v, endpoint.IndexPlaceholder) && !e.HasIndex() {
		return fmt.Errorf("connector %s: variable %q needs an index on endpoint %s", connector, v, e)
	}
	return nil
}
