// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package emit renders a resolved simulation context into the engine's input
// files: the dynamic models file (DYD), the parameter files (PAR), the job
// file (JOB) and the curve request file (CRV).
//
// Rendering is done entirely in memory. WriteAll touches the file system only
// once every file has rendered, so a failure leaves the output directory as
// it was.
package emit
