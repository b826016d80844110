// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package engine runs the external simulation engine on a written job file.
// Its installation is described by a properties file read with viper.
package engine
