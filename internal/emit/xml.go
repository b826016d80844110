// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Namespace is the engine's XML namespace.
const Namespace = "http://www.rte-france.com/dynawo"

// File names written into the work directory.
const (
	DYDFile        = "models.dyd"
	ModelsParFile  = "models.par"
	NetworkParFile = "network.par"
	SolversParFile = "solvers.par"
	JobFile        = "simulation.jobs"
	CurvesFile     = "models.crv"
)

func marshal(name string, doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
