// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package blackbox

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/dyngridgo/internal/library"
	"github.com/vk/dyngridgo/internal/network"
	"github.com/vk/dyngridgo/internal/parstore"
)

// NetworkID is the id shared by every network-side default model.
const NetworkID = "NETWORK"

var ErrInvalidModel = errors.New("invalid model")

// EquipmentRef binds a model to a static network element.
type EquipmentRef struct {
	Kind     network.Kind
	StaticID string
}

// IsZero reports whether the reference is empty.
func (r EquipmentRef) IsZero() bool { return r.StaticID == "" }

func (r EquipmentRef) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s %q", r.Kind, r.StaticID)
}

// Target roles for automation systems and events.
const (
	RoleTarget     = "target"
	RoleMonitored  = "monitored"
	RoleControlled = "controlled"
)

// Target is an equipment an automation system or event acts on.
type Target struct {
	Role      string
	Equipment EquipmentRef
	Side      library.Side
}

// EventType is the user-facing kind of an event.
type EventType string

const (
	EventDisconnection        EventType = "Disconnection"
	EventActivePowerVariation EventType = "ActivePowerVariation"
	EventNodeFault            EventType = "NodeFault"
)

// EventSpec carries the user settings of an event model.
type EventSpec struct {
	Type                EventType
	StartTime           float64
	DeltaP              float64
	FaultTime           float64
	RPu                 float64
	XPu                 float64
	DisconnectOrigin    bool
	DisconnectExtremity bool
}

// VarConnection is one wire between two models.
type VarConnection struct {
	Var1 string
	Var2 string
}

// Reversed swaps both ends.
func (c VarConnection) Reversed() VarConnection {
	return VarConnection{Var1: c.Var2, Var2: c.Var1}
}

// VarMapping maps a library variable onto a static network output.
type VarMapping struct {
	Var    string
	Static string
}

// Spec is the input of New.
type Spec struct {
	ID             string
	Kind           Kind
	Library        *library.Definition
	ParameterSetID string
	Equipment      EquipmentRef
	Controllable   bool
	Sides          Sides
	Targets        []Target
	Event          *EventSpec
	Parameters     []parstore.Parameter
}

// Model is an immutable dynamic-model descriptor.
type Model struct {
	id             string
	kind           Kind
	lib            *library.Definition
	parameterSetID string
	equipment      EquipmentRef
	controllable   bool
	sides          Sides
	targets        []Target
	event          *EventSpec
	parameters     []parstore.Parameter
}

// New validates a Spec and builds the Model. Events may be created without
// a library; it is chosen later with WithLibrary.
func New(s Spec) (*Model, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidModel)
	}
	if s.Library == nil && s.Kind != KindEvent {
		return nil, fmt.Errorf("%w: %s %q has no library", ErrInvalidModel, s.Kind, s.ID)
	}
	if s.Kind == KindEvent && s.Event == nil {
		return nil, fmt.Errorf("%w: event %q has no event settings", ErrInvalidModel, s.ID)
	}
	if s.Library != nil {
		if k, ok := KindForCategory(s.Library.Category); !ok || k != s.Kind {
			return nil, fmt.Errorf("%w: %q: library %q (%s) cannot back a %s model",
				ErrInvalidModel, s.ID, s.Library.Name, s.Library.Category, s.Kind)
		}
	}
	if s.Controllable && (s.Library == nil || !s.Library.SupportsControllable()) {
		return nil, fmt.Errorf("%w: %q: library does not support controllable", ErrInvalidModel, s.ID)
	}

	m := &Model{
		id:             s.ID,
		kind:           s.Kind,
		lib:            s.Library,
		parameterSetID: s.ParameterSetID,
		equipment:      s.Equipment,
		controllable:   s.Controllable,
		sides:          s.Sides,
		targets:        slices.Clone(s.Targets),
		parameters:     slices.Clone(s.Parameters),
	}
	if s.Event != nil {
		ev := *s.Event
		m.event = &ev
	}
	if m.sides == 0 && (s.Kind == KindBranch || s.Kind == KindHvdc) {
		m.sides = BothSides
	}
	return m, nil
}

// MustNew is New for fixtures known to be valid.
func MustNew(s Spec) *Model {
	m, err := New(s)
	if err != nil {
		panic(err)
	}
	return m
}

// WithLibrary returns a copy bound to another library with generated
// parameters. The copy uses its own id as parameter set id when params are given.
func (m *Model) WithLibrary(lib *library.Definition, params []parstore.Parameter) *Model {
	c := *m
	c.lib = lib
	c.targets = slices.Clone(m.targets)
	c.parameters = slices.Clone(params)
	if len(params) > 0 {
		c.parameterSetID = m.id
	}
	return &c
}

func (m *Model) ID() string                       { return m.id }
func (m *Model) Kind() Kind                       { return m.kind }
func (m *Model) Definition() *library.Definition  { return m.lib }
func (m *Model) ParameterSetID() string           { return m.parameterSetID }
func (m *Model) Equipment() EquipmentRef          { return m.equipment }
func (m *Model) Controllable() bool               { return m.controllable }
func (m *Model) Sides() Sides                     { return m.sides }
func (m *Model) Targets() []Target                { return slices.Clone(m.targets) }
func (m *Model) Parameters() []parstore.Parameter { return slices.Clone(m.parameters) }

// Library is the library name, empty for an unfinalized event.
func (m *Model) Library() string {
	if m.lib == nil {
		return ""
	}
	return m.lib.Name
}

// Event returns a copy of the event settings, nil for non-events.
func (m *Model) Event() *EventSpec {
	if m.event == nil {
		return nil
	}
	ev := *m.event
	return &ev
}

// Role is the connector role used when wiring capability c. Controllable
// models get a qualified role for the capabilities whose variable differs
// from the plain variant, so those connectors never collide. Everything
// else shares the plain library role.
func (m *Model) Role(c library.Capability) string {
	if m.controllable && m.lib != nil {
		if _, ok := m.lib.Controllable[c]; ok {
			return m.lib.Name + "_controllable"
		}
	}
	return m.Library()
}

// Var returns the variable playing capability c on a side, honoring the
// controllable variant.
func (m *Model) Var(c library.Capability, side library.Side) (string, bool) {
	if m.lib == nil {
		return "", false
	}
	if m.controllable {
		return m.lib.ControllableVar(c, side)
	}
	return m.lib.Var(c, side)
}

// StaticVarMapping lists the library's static references.
func (m *Model) StaticVarMapping() []VarMapping {
	if m.lib == nil {
		return nil
	}
	out := make([]VarMapping, 0, len(m.lib.StaticRefs))
	for _, r := range m.lib.StaticRefs {
		out = append(out, VarMapping{Var: r.Var, Static: r.Static})
	}
	return out
}

// IsDefault reports whether the model is a network-side stand-in.
func (m *Model) IsDefault() bool { return m.kind == KindNetworkDefault }

func (m *Model) String() string {
	return fmt.Sprintf("%s %q (%s)", m.kind, m.id, m.Library())
}
