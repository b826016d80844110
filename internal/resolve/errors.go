// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateModel      = errors.New("duplicate model id")
	ErrReservedID          = errors.New("model id is reserved")
	ErrUnknownEquipment    = errors.New("equipment not found in network")
	ErrEquipmentKind       = errors.New("equipment kind does not match the model")
	ErrEquipmentBoundTwice = errors.New("equipment already bound to a dynamic model")
	ErrUnsupportedSide     = errors.New("side not supported by equipment")
	ErrMissingCapability   = errors.New("library lacks a required capability")
	ErrInvalidTarget       = errors.New("invalid target")
)

// ConstructionError is a fatal problem tied to one model.
type ConstructionError struct {
	ModelID string
	Err     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("model %q: %v", e.ModelID, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func constructionErr(id string, format string, args ...any) error {
	return &ConstructionError{ModelID: id, Err: fmt.Errorf(format, args...)}
}
