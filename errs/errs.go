// Package errs defines the closed error surface shared by every layer of
// the algebraic query core: the matrix engine, the expression builder, the
// operator pipeline, and the plan runtime all return *errs.Error rather than
// ad-hoc sentinels, so a caller at the query boundary can always recover a
// single Kind to report.
package errs

import (
	"fmt"
	"sync"
)

// Kind enumerates the closed set of error categories the core can raise.
type Kind int

const (
	Syntax Kind = iota
	DomainMismatch
	DimensionMismatch
	TypeMismatch
	UnknownFunction
	UnknownProcedure
	UnknownLabel
	UnknownProperty
	EmptyScalar
	DivisionByZero
	InvalidParameter
	OutOfMemory
	MemoryCap
	InternalPanic
)

// String returns the human-readable name of the Kind, used both in error
// messages and in tests that assert on the reported category.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case DomainMismatch:
		return "DomainMismatch"
	case DimensionMismatch:
		return "DimensionMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case UnknownFunction:
		return "UnknownFunction"
	case UnknownProcedure:
		return "UnknownProcedure"
	case UnknownLabel:
		return "UnknownLabel"
	case UnknownProperty:
		return "UnknownProperty"
	case EmptyScalar:
		return "EmptyScalar"
	case DivisionByZero:
		return "DivisionByZero"
	case InvalidParameter:
		return "InvalidParameter"
	case OutOfMemory:
		return "OutOfMemory"
	case MemoryCap:
		return "MemoryCap"
	case InternalPanic:
		return "InternalPanic"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across package boundaries.
// Wrapped, when non-nil, supports errors.Unwrap/errors.Is/errors.As so
// callers can still reach an underlying cause (e.g. a context.Canceled).
type Error struct {
	Kind    Kind
	Msg     string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New builds an *Error of the given Kind with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given Kind around an existing error.
func Wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Wrapped: err}
}

// Breakpoint is the single outermost error-capture point a top-level
// RunPlan call installs once, replacing the source's pervasive
// longjmp-based "breakpoint" exits: any operator along the DAG that
// hits a runtime error calls Trip, and the top-level caller checks Err
// after the pull loop returns.
type Breakpoint struct {
	mu  sync.Mutex
	err error
}

// Trip records err if this is the first error tripped; later calls are
// no-ops so the first failure along the DAG wins.
func (b *Breakpoint) Trip(err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first tripped error, or nil if none was ever tripped.
func (b *Breakpoint) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Is reports whether err carries the given Kind, unwrapping as needed.
func Is(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == k
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
