// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package macro

// Connect is one concrete wire with every placeholder substituted.
type Connect struct {
	ID1  string
	Var1 string
	ID2  string
	Var2 string
}

// Flatten expands one instruction into concrete connects.
func Flatten(c *Connector, ins Instruction) []Connect {
	out := make([]Connect, 0, len(c.connections))
	for _, vc := range c.connections {
		out = append(out, Connect{
			ID1:  ins.ID1.ModelID,
			Var1: ins.ID1.Expand(vc.Var1),
			ID2:  ins.ID2.ModelID,
			Var2: ins.ID2.Expand(vc.Var2),
		})
	}
	return out
}

// FlattenAll expands every instruction in order.
func FlattenAll(r *Registry, l *Instructions) ([]Connect, error) {
	var out []Connect
	for _, ins := range l.list {
		c, err := r.Lookup(ins.Connector)
		if err != nil {
			return nil, err
		}
		out = append(out, Flatten(c, ins)...)
	}
	return out, nil
}
