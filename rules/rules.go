// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rules defines the error kinds reported by htm components.

A Violation means an operation was attempted in a state that forbids it
(learning after inference, learning differently-shaped inputs, learning
after a layer is trained). It is a usage error: the same call must not be
retried without changing state.

Precondition and NotFound mean required configuration or resources are
missing (no training folder set, folder does not exist), and are reported
for the caller to correct.
*/
package rules

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// Kinds of errors
type Kinds int32

//go:generate stringer -type=Kinds

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Violation is an operation attempted in a state that forbids it
	Violation Kinds = iota

	// Precondition is required configuration that was never set
	Precondition

	// NotFound is a configured resource that does not exist
	NotFound

	KindsN
)

// Error is an htm error of a given Kind, raised by operation Op.
type Error struct {
	Kind Kinds
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match for errors.Is when target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks on the kind of error
var (
	ErrViolation    = &Error{Kind: Violation}
	ErrPrecondition = &Error{Kind: Precondition}
	ErrNotFound     = &Error{Kind: NotFound}
)

// Violationf returns a Violation error for given operation
func Violationf(op, format string, args ...any) error {
	return &Error{Kind: Violation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Preconditionf returns a Precondition error for given operation
func Preconditionf(op, format string, args ...any) error {
	return &Error{Kind: Precondition, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundErr returns a NotFound error for given operation, wrapping cause
func NotFoundErr(op, msg string, cause error) error {
	return &Error{Kind: NotFound, Op: op, Msg: msg, Err: cause}
}
