// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DYNGRID_DYNAWO_HOMEDIR.
const EnvPrefix = "DYNGRID"

// Properties describes the engine installation.
type Properties struct {
	Dynawo DynawoProperties `mapstructure:"dynawo"`
}

type DynawoProperties struct {
	HomeDir  string        `mapstructure:"homeDir"`
	Launcher string        `mapstructure:"launcher"`
	Debug    bool          `mapstructure:"debug"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LauncherPath is the executable to start.
func (p DynawoProperties) LauncherPath() string {
	if p.HomeDir == "" || filepath.IsAbs(p.Launcher) {
		return p.Launcher
	}
	return filepath.Join(p.HomeDir, p.Launcher)
}

// LoadProperties reads a .properties file. An empty path uses defaults and
// environment overrides only.
func LoadProperties(path string) (*Properties, error) {
	v := viper.New()
	v.SetDefault("dynawo.homeDir", "")
	v.SetDefault("dynawo.launcher", "dynawo.sh")
	v.SetDefault("dynawo.debug", false)
	v.SetDefault("dynawo.timeout", "30m")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading engine properties %s: %w", path, err)
		}
	}

	var p Properties
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("error unmarshaling engine properties: %w", err)
	}
	if p.Dynawo.Timeout < 0 {
		return nil, fmt.Errorf("dynawo.timeout must not be negative, got %s", p.Dynawo.Timeout)
	}
	return &p, nil
}
