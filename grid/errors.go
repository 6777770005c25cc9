// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Kind classifies a core failure so callers can decide on exit codes
// and recovery policy without string-matching error messages.
type Kind int

const (
	// InvalidInput marks malformed or contradictory parameters.
	InvalidInput Kind = iota
	// OutOfBounds marks a coordinate outside the grid extent.
	OutOfBounds
	// CFLViolation marks a configured dt exceeding the Courant limit.
	CFLViolation
	// CorruptGeometry marks an ID array referencing a missing material.
	CorruptGeometry
	// NumericalInstability marks NaN/Inf detected in a field.
	NumericalInstability
	// IOFailure marks a failed output/snapshot write.
	IOFailure
	// DispersionWarning marks fewer than 10 cells per minimum wavelength.
	DispersionWarning
)

// String names a Kind for logging.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case OutOfBounds:
		return "OutOfBounds"
	case CFLViolation:
		return "CFLViolation"
	case CorruptGeometry:
		return "CorruptGeometry"
	case NumericalInstability:
		return "NumericalInstability"
	case IOFailure:
		return "IOFailure"
	case DispersionWarning:
		return "DispersionWarning"
	}
	return "Unknown"
}

// Error wraps a Kind around a chk-produced error so the caller can recover
// the classification with errors.As while still getting gofem-style
// formatted messages.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return io.Sf("%s: %v", e.Kind, e.err) }
func (e *Error) Unwrap() error { return e.err }

// Errf builds a classified Error using gosl/chk's formatter.
func Errf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, err: chk.Err(format, args...)}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
