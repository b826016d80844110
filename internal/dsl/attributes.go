// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dsl

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// attributes reads typed values out of a declaration and remembers which
// ones were consumed.
type attributes struct {
	values map[string]cty.Value
	used   map[string]bool
}

func newAttributes(values map[string]cty.Value) *attributes {
	return &attributes{values: values, used: make(map[string]bool, len(values))}
}

func (a *attributes) has(name string) bool {
	v, ok := a.values[name]
	return ok && !v.IsNull()
}

// get converts the attribute to want and decodes it into out. It reports
// false when the attribute is absent.
func (a *attributes) get(name string, want cty.Type, out any) (bool, error) {
	a.used[name] = true
	v, ok := a.values[name]
	if !ok || v.IsNull() {
		return false, nil
	}
	converted, err := convert.Convert(v, want)
	if err != nil {
		return true, fmt.Errorf("%s: expected %s, got %s", name, want.FriendlyName(), v.Type().FriendlyName())
	}
	if err := gocty.FromCtyValue(converted, out); err != nil {
		return true, fmt.Errorf("%s: %w", name, err)
	}
	return true, nil
}

func (a *attributes) string(name string) (string, bool, error) {
	var s string
	ok, err := a.get(name, cty.String, &s)
	return s, ok, err
}

func (a *attributes) number(name string) (float64, bool, error) {
	var f float64
	ok, err := a.get(name, cty.Number, &f)
	return f, ok, err
}

func (a *attributes) boolean(name string) (bool, bool, error) {
	var b bool
	ok, err := a.get(name, cty.Bool, &b)
	return b, ok, err
}

func (a *attributes) strings(name string) ([]string, bool, error) {
	var s []string
	ok, err := a.get(name, cty.List(cty.String), &s)
	return s, ok, err
}

// unused returns the attributes nobody asked for, sorted.
func (a *attributes) unused() []string {
	var names []string
	for name := range a.values {
		if !a.used[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
