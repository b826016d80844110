// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package report collects resolution warnings: problems with one user
// declaration that cause the declaration to be skipped without aborting the
// run.
package report

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/dyngridgo/internal/ctxlog"
)

// Kind classifies a warning.
type Kind string

const (
	UnknownEquipment      Kind = "unknown_equipment"
	MissingField          Kind = "missing_field"
	UnknownLibrary        Kind = "unknown_library"
	IncompatibleEquipment Kind = "incompatible_equipment"
	UnsupportedOption     Kind = "unsupported_option"
	UnknownCurveTarget    Kind = "unknown_curve_target"
	MissingCapability     Kind = "missing_capability"
	InvalidValue          Kind = "invalid_value"
)

var summaries = map[Kind]string{
	UnknownEquipment:      "Unknown equipment",
	MissingField:          "Missing required field",
	UnknownLibrary:        "Unknown library",
	IncompatibleEquipment: "Incompatible equipment",
	UnsupportedOption:     "Unsupported option",
	UnknownCurveTarget:    "Unknown curve target",
	MissingCapability:     "Missing capability",
	InvalidValue:          "Invalid value",
}

// Warning identifies the offending declaration by its type tag and id.
// Subject locates it in the input when it came from a file.
type Warning struct {
	Kind      Kind
	ModelType string
	ModelID   string
	Field     string
	Message   string
	Subject   *hcl.Range
}

func (w Warning) String() string {
	var sb strings.Builder
	if loc := w.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(w.detail())
	return sb.String()
}

// Location is "file:line" of the subject, empty without one.
func (w Warning) Location() string {
	if w.Subject == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", w.Subject.Filename, w.Subject.Start.Line)
}

func (w Warning) detail() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %q: %s", w.ModelType, w.ModelID, w.Message)
	if w.Field != "" {
		fmt.Fprintf(&sb, " (field %q)", w.Field)
	}
	return sb.String()
}

// Diagnostic converts the warning into an HCL warning diagnostic.
func (w Warning) Diagnostic() *hcl.Diagnostic {
	summary, ok := summaries[w.Kind]
	if !ok {
		summary = string(w.Kind)
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  summary,
		Detail:   w.detail() + ". The declaration was skipped.",
		Subject:  w.Subject,
	}
}

// Reporter accumulates warnings. A nil Reporter drops them.
type Reporter struct {
	mu       sync.Mutex
	warnings []Warning
}

// New returns an empty Reporter.
func New() *Reporter { return &Reporter{} }

// Warn logs and records a warning.
func (r *Reporter) Warn(ctx context.Context, w Warning) {
	ctxlog.FromContext(ctx).Warn("Declaration skipped.",
		"kind", string(w.Kind),
		"model_type", w.ModelType,
		"model_id", w.ModelID,
		"field", w.Field,
		"reason", w.Message,
		"location", w.Location(),
	)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// Warnings returns a copy of the recorded warnings in order.
func (r *Reporter) Warnings() []Warning {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len is the number of recorded warnings.
func (r *Reporter) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

// Diagnostics returns the recorded warnings as HCL diagnostics, in order.
func (r *Reporter) Diagnostics() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, w := range r.Warnings() {
		diags = append(diags, w.Diagnostic())
	}
	return diags
}
