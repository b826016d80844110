// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package library

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dyngridgo/internal/ctxlog"
	"github.com/vk/dyngridgo/internal/fsutil"
)

//go:embed manifests/*.hcl
var embedded embed.FS

var (
	ErrUnknownLibrary   = errors.New("unknown library")
	ErrDuplicateLibrary = errors.New("duplicate library")
	ErrNoDefault        = errors.New("no default network model")
	ErrNoAggregator     = errors.New("no frequency aggregator library")
)

// Registry indexes library definitions by name.
type Registry struct {
	defs       map[string]*Definition
	order      []string
	defaults   map[string]*Definition
	aggregator *Definition
	parser     *hclparse.Parser
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		defs:     make(map[string]*Definition),
		defaults: make(map[string]*Definition),
		parser:   hclparse.NewParser(),
	}
}

// NewDefault returns a validated Registry holding the embedded manifests.
func NewDefault(ctx context.Context) (*Registry, error) {
	r := New()
	if err := r.LoadDefaults(ctx); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a definition. Names are unique; at most one network default
// per equipment kind and one aggregator may exist.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("library definition has no name")
	}
	if prev, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %q (already declared in %s)", ErrDuplicateLibrary, def.Name, prev.Source)
	}
	def = def.clone()
	switch def.Category {
	case CategoryNetwork:
		if prev, ok := r.defaults[def.Equipment]; ok {
			return fmt.Errorf("%w: %q and %q both stand in for %q", ErrDuplicateLibrary, prev.Name, def.Name, def.Equipment)
		}
		r.defaults[def.Equipment] = def
	case CategoryAggregator:
		if r.aggregator != nil {
			return fmt.Errorf("%w: aggregator %q already declared, cannot add %q", ErrDuplicateLibrary, r.aggregator.Name, def.Name)
		}
		r.aggregator = def
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// LoadDefaults loads the manifests embedded in the binary.
func (r *Registry) LoadDefaults(ctx context.Context) error {
	entries, err := fs.Glob(embedded, "manifests/*.hcl")
	if err != nil {
		return fmt.Errorf("listing embedded manifests: %w", err)
	}
	for _, name := range entries {
		src, err := embedded.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading embedded manifest %s: %w", name, err)
		}
		if err := r.LoadSource(ctx, path.Join("embedded", name), src); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir loads every .hcl manifest found under dir.
func (r *Registry) LoadDir(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading library manifests from directory.", "path", dir)

	files, err := fsutil.FindFilesByExtension(".hcl", dir)
	if err != nil {
		return fmt.Errorf("scanning library directory %s: %w", dir, err)
	}
	if len(files) == 0 {
		logger.Warn("No library manifests found.", "path", dir)
		return nil
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading library manifest %s: %w", f, err)
		}
		if err := r.LoadSource(ctx, f, src); err != nil {
			return err
		}
	}
	return nil
}

// LoadSource parses one manifest and registers its libraries.
func (r *Registry) LoadSource(ctx context.Context, filename string, src []byte) error {
	file, diags := r.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse library manifest %s: %w", filename, diags)
	}
	defs, diags := ParseManifest(ctx, file, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode library manifest %s: %w", filename, diags)
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Library manifest loaded.", "file", filename, "libraries", len(defs))
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, error) {
	if def, ok := r.defs[name]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLibrary, name)
}

// Default returns the network-side stand-in for an equipment kind.
func (r *Registry) Default(equipmentKind string) (*Definition, error) {
	if def, ok := r.defaults[equipmentKind]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w for equipment kind %q", ErrNoDefault, equipmentKind)
}

// Aggregator returns the frequency aggregator definition.
func (r *Registry) Aggregator() (*Definition, error) {
	if r.aggregator == nil {
		return nil, ErrNoAggregator
	}
	return r.aggregator, nil
}

// Names lists library names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len is the number of registered libraries.
func (r *Registry) Len() int { return len(r.order) }
