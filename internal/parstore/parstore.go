// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package parstore defines parameter sets and the store contract used to look
// them up by (set id, parameter name). Parameter values are cty values so
// they can come straight out of HCL attribute expressions.
package parstore

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	ErrMissingSet       = errors.New("parameter set not found")
	ErrMissingParameter = errors.New("parameter not found")
	ErrDuplicateSet     = errors.New("duplicate parameter set")
	ErrWrongType        = errors.New("parameter has the wrong type")
)

// Type is the engine-side type of a parameter.
type Type string

const (
	TypeDouble Type = "DOUBLE"
	TypeInt    Type = "INT"
	TypeBool   Type = "BOOL"
	TypeString Type = "STRING"
)

// Parameter is one named, typed value.
type Parameter struct {
	Name  string
	Type  Type
	Value cty.Value
}

func Double(name string, v float64) Parameter {
	return Parameter{Name: name, Type: TypeDouble, Value: cty.NumberFloatVal(v)}
}

func Int(name string, v int) Parameter {
	return Parameter{Name: name, Type: TypeInt, Value: cty.NumberIntVal(int64(v))}
}

func Bool(name string, v bool) Parameter {
	return Parameter{Name: name, Type: TypeBool, Value: cty.BoolVal(v)}
}

func String(name, v string) Parameter {
	return Parameter{Name: name, Type: TypeString, Value: cty.StringVal(v)}
}

// FromCty infers the parameter type from a cty value. Numbers are DOUBLE.
func FromCty(name string, v cty.Value) (Parameter, error) {
	if v.IsNull() || !v.IsKnown() {
		return Parameter{}, fmt.Errorf("parameter %q: value must be known and not null", name)
	}
	switch v.Type() {
	case cty.Number:
		return Parameter{Name: name, Type: TypeDouble, Value: v}, nil
	case cty.Bool:
		return Parameter{Name: name, Type: TypeBool, Value: v}, nil
	case cty.String:
		return Parameter{Name: name, Type: TypeString, Value: v}, nil
	}
	return Parameter{}, fmt.Errorf("parameter %q: unsupported type %s", name, v.Type().FriendlyName())
}

// Float returns the value as a float64. INT and DOUBLE parameters convert;
// numeric strings are accepted too.
func (p Parameter) Float() (float64, error) {
	v, err := convert.Convert(p.Value, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is %s", ErrWrongType, p.Name, p.Type)
	}
	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return 0, fmt.Errorf("parameter %q: %w", p.Name, err)
	}
	return f, nil
}

// Text renders the value the way the PAR format expects it.
func (p Parameter) Text() string {
	switch p.Type {
	case TypeBool:
		if p.Value.True() {
			return "true"
		}
		return "false"
	case TypeString:
		return p.Value.AsString()
	case TypeInt:
		bf := p.Value.AsBigFloat()
		i, _ := bf.Int(nil)
		return i.String()
	}
	v, _ := p.Value.AsBigFloat().Float64()
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Set is an ordered group of parameters referenced by id.
type Set struct {
	ID         string
	Parameters []Parameter
}

// Get returns the named parameter.
func (s *Set) Get(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Store resolves parameter sets by id.
type Store interface {
	Set(id string) (*Set, error)
	Double(setID, name string) (float64, error)
	IDs() []string
}
