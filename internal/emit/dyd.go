// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import (
	"encoding/xml"
	"strconv"

	"github.com/vk/dyngridgo/internal/endpoint"
	"github.com/vk/dyngridgo/internal/macro"
	"github.com/vk/dyngridgo/internal/resolve"
)

type dydDocument struct {
	XMLName          xml.Name                  `xml:"dyn:dynamicModelsArchitecture"`
	Xmlns            string                    `xml:"xmlns:dyn,attr"`
	BlackBoxModels   []dydBlackBoxModel        `xml:"dyn:blackBoxModel"`
	MacroConnectors  []dydMacroConnector       `xml:"dyn:macroConnector"`
	MacroStaticRefs  []dydMacroStaticReference `xml:"dyn:macroStaticReference"`
	MacroConnects    []dydMacroConnect         `xml:"dyn:macroConnect"`
	FlattenedConnect []dydConnect              `xml:"dyn:connect"`
}

type dydBlackBoxModel struct {
	ID             string             `xml:"id,attr"`
	Lib            string             `xml:"lib,attr"`
	ParFile        string             `xml:"parFile,attr,omitempty"`
	ParID          string             `xml:"parId,attr,omitempty"`
	StaticID       string             `xml:"staticId,attr,omitempty"`
	MacroStaticRef *dydMacroStaticRef `xml:"dyn:macroStaticRef,omitempty"`
}

type dydMacroStaticRef struct {
	ID string `xml:"id,attr"`
}

type dydMacroConnector struct {
	ID       string       `xml:"id,attr"`
	Connects []dydConnect `xml:"dyn:connect"`
}

type dydConnect struct {
	ID1  string `xml:"id1,attr,omitempty"`
	Var1 string `xml:"var1,attr"`
	ID2  string `xml:"id2,attr,omitempty"`
	Var2 string `xml:"var2,attr"`
}

type dydMacroStaticReference struct {
	ID         string         `xml:"id,attr"`
	StaticRefs []dydStaticRef `xml:"dyn:staticRef"`
}

type dydStaticRef struct {
	Var       string `xml:"var,attr"`
	StaticVar string `xml:"staticVar,attr"`
}

type dydMacroConnect struct {
	Connector string `xml:"connector,attr"`
	ID1       string `xml:"id1,attr"`
	Index1    string `xml:"index1,attr,omitempty"`
	Name1     string `xml:"name1,attr,omitempty"`
	ID2       string `xml:"id2,attr"`
	Index2    string `xml:"index2,attr,omitempty"`
	Name2     string `xml:"name2,attr,omitempty"`
}

// staticRefID names the macro static reference of a library.
func staticRefID(lib string) string { return "MSR_" + lib }

// RenderDYD renders the dynamic models file. Network-side defaults are
// described by the network itself and get no blackBoxModel entry.
func RenderDYD(c *resolve.Context, flatten bool) ([]byte, error) {
	doc := dydDocument{Xmlns: Namespace}

	seenRefs := make(map[string]bool)
	for _, m := range c.Models() {
		if m.IsDefault() {
			continue
		}
		bbm := dydBlackBoxModel{ID: m.ID(), Lib: m.Library()}
		if id := m.ParameterSetID(); id != "" {
			bbm.ParFile, bbm.ParID = ModelsParFile, id
		}
		ref := m.Equipment()
		if !ref.IsZero() {
			bbm.StaticID = ref.StaticID
		}
		if mapping := m.StaticVarMapping(); len(mapping) > 0 && !ref.IsZero() {
			id := staticRefID(m.Library())
			bbm.MacroStaticRef = &dydMacroStaticRef{ID: id}
			if !seenRefs[id] {
				seenRefs[id] = true
				msr := dydMacroStaticReference{ID: id}
				for _, vm := range mapping {
					msr.StaticRefs = append(msr.StaticRefs, dydStaticRef{Var: vm.Var, StaticVar: vm.Static})
				}
				doc.MacroStaticRefs = append(doc.MacroStaticRefs, msr)
			}
		}
		doc.BlackBoxModels = append(doc.BlackBoxModels, bbm)
	}

	for _, conn := range c.Connectors() {
		mc := dydMacroConnector{ID: conn.ID()}
		for _, vc := range conn.Connections() {
			mc.Connects = append(mc.Connects, dydConnect{Var1: vc.Var1, Var2: vc.Var2})
		}
		doc.MacroConnectors = append(doc.MacroConnectors, mc)
	}

	for _, ins := range c.Instructions() {
		doc.MacroConnects = append(doc.MacroConnects, macroConnect(ins))
	}

	if flatten {
		connects, err := macro.FlattenAll(c.Registry(), c.InstructionList())
		if err != nil {
			return nil, err
		}
		for _, fc := range connects {
			doc.FlattenedConnect = append(doc.FlattenedConnect, dydConnect{ID1: fc.ID1, Var1: fc.Var1, ID2: fc.ID2, Var2: fc.Var2})
		}
	}

	return marshal(DYDFile, doc)
}

func macroConnect(ins macro.Instruction) dydMacroConnect {
	mc := dydMacroConnect{Connector: ins.Connector, ID1: ins.ID1.ModelID, ID2: ins.ID2.ModelID}
	mc.Index1, mc.Name1 = qualifiers(ins.ID1)
	mc.Index2, mc.Name2 = qualifiers(ins.ID2)
	return mc
}

func qualifiers(e endpoint.Endpoint) (index, name string) {
	if e.HasIndex() {
		index = strconv.Itoa(e.Index)
	}
	return index, e.Name
}
