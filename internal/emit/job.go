// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package emit

import (
	"encoding/xml"

	"github.com/vk/dyngridgo/internal/config"
)

// OutputsDir is the engine's output directory, relative to the job file.
const OutputsDir = "outputs"

type jobDocument struct {
	XMLName xml.Name `xml:"dyn:jobs"`
	Xmlns   string   `xml:"xmlns:dyn,attr"`
	Job     job      `xml:"dyn:job"`
}

type job struct {
	Name       string     `xml:"name,attr"`
	Solver     jobSolver  `xml:"dyn:solver"`
	Modeler    jobModeler `xml:"dyn:modeler"`
	Simulation jobSim     `xml:"dyn:simulation"`
	Outputs    jobOutputs `xml:"dyn:outputs"`
}

type jobSolver struct {
	Lib     string `xml:"lib,attr"`
	ParFile string `xml:"parFile,attr"`
	ParID   string `xml:"parId,attr"`
}

type jobModeler struct {
	CompileDir  string          `xml:"compileDir,attr"`
	Network     jobNetwork      `xml:"dyn:network"`
	DynModels   jobDynModels    `xml:"dyn:dynModels"`
	Precompiled jobModelLibrary `xml:"dyn:precompiledModels"`
	Modelica    jobModelLibrary `xml:"dyn:modelicaModels"`
}

type jobNetwork struct {
	IIDMFile string `xml:"iidmFile,attr"`
	ParFile  string `xml:"parFile,attr"`
	ParID    string `xml:"parId,attr"`
}

type jobDynModels struct {
	DYDFile string `xml:"dydFile,attr"`
}

type jobModelLibrary struct {
	UseStandardModels bool `xml:"useStandardModels,attr"`
}

type jobSim struct {
	StartTime string `xml:"startTime,attr"`
	StopTime  string `xml:"stopTime,attr"`
	Precision string `xml:"precision,attr,omitempty"`
}

type jobOutputs struct {
	Directory string      `xml:"directory,attr"`
	Timeline  jobTimeline `xml:"dyn:timeline"`
	Curves    *jobCurves  `xml:"dyn:curves,omitempty"`
	Logs      jobLogs     `xml:"dyn:logs"`
}

type jobTimeline struct {
	ExportMode string `xml:"exportMode,attr"`
}

type jobCurves struct {
	InputFile  string `xml:"inputFile,attr"`
	ExportMode string `xml:"exportMode,attr"`
}

type jobLogs struct {
	Appender jobAppender `xml:"dyn:appender"`
}

type jobAppender struct {
	Tag       string `xml:"tag,attr"`
	File      string `xml:"file,attr"`
	LvlFilter string `xml:"lvlFilter,attr"`
}

// TimelineFormat is the timeline export mode requested from the engine.
type TimelineFormat string

const (
	TimelineTXT TimelineFormat = "TXT"
	TimelineCSV TimelineFormat = "CSV"
)

// RenderJob renders the job file. The curves section is present only when
// curves were requested.
func RenderJob(name string, sim *config.Simulation, timeline TimelineFormat, withCurves bool) ([]byte, error) {
	if timeline == "" {
		timeline = TimelineTXT
	}
	j := job{
		Name:   name,
		Solver: jobSolver{Lib: sim.Solver, ParFile: SolversParFile, ParID: sim.SolverParameterSet},
		Modeler: jobModeler{
			CompileDir:  OutputsDir + "/compilation",
			Network:     jobNetwork{IIDMFile: sim.IIDMFile, ParFile: NetworkParFile, ParID: sim.NetworkParameterSet},
			DynModels:   jobDynModels{DYDFile: DYDFile},
			Precompiled: jobModelLibrary{UseStandardModels: true},
			Modelica:    jobModelLibrary{UseStandardModels: false},
		},
		Simulation: jobSim{StartTime: formatFloat(sim.StartTime), StopTime: formatFloat(sim.StopTime)},
		Outputs: jobOutputs{
			Directory: OutputsDir,
			Timeline:  jobTimeline{ExportMode: string(timeline)},
			Logs:      jobLogs{Appender: jobAppender{Tag: "", File: "dynawo.log", LvlFilter: "INFO"}},
		},
	}
	if sim.Precision > 0 {
		j.Simulation.Precision = formatFloat(sim.Precision)
	}
	if withCurves {
		j.Outputs.Curves = &jobCurves{InputFile: CurvesFile, ExportMode: "CSV"}
	}
	return marshal(JobFile, jobDocument{Xmlns: Namespace, Job: j})
}
