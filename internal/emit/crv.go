// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import "encoding/xml"

// Curve is one requested output variable.
type Curve struct {
	Model    string
	Variable string
}

type crvDocument struct {
	XMLName xml.Name   `xml:"curvesInput"`
	Xmlns   string     `xml:"xmlns,attr"`
	Curves  []crvCurve `xml:"curve"`
}

type crvCurve struct {
	Model    string `xml:"model,attr"`
	Variable string `xml:"variable,attr"`
}

// RenderCRV renders the curve request file.
func RenderCRV(curves []Curve) ([]byte, error) {
	doc := crvDocument{Xmlns: Namespace}
	for _, c := range curves {
		doc.Curves = append(doc.Curves, crvCurve{Model: c.Model, Variable: c.Variable})
	}
	return marshal(CurvesFile, doc)
}
