// Package semiring implements the parameterized (⊕, ⊗, identity, terminal)
// runtime the matrix kernels evaluate against. A Semiring is a monoid ⊕
// with identity 0, a compatible multiplier ⊗, and an optional terminal
// value that lets a dot-product kernel exit early once the accumulator
// can no longer change (e.g. ANY_PAIR's terminal is "true").
package semiring

import "math"

// Type tags the scalar domain a Semiring operates over. Matrices and
// semirings must agree on Type for MxM/EWiseAdd to be well-formed.
type Type int

const (
	Bool Type = iota
	Int64
	Float64
)

// Value is the tagged scalar a semiring's Add/Mul operate on. Using a
// single concrete type (rather than interface{}) keeps the hot kernel
// loops allocation-free.
type Value struct {
	Typ Type
	B   bool
	I   int64
	F   float64
}

func FromBool(b bool) Value    { return Value{Typ: Bool, B: b} }
func FromInt64(i int64) Value  { return Value{Typ: Int64, I: i} }
func FromFloat64(f float64) Value { return Value{Typ: Float64, F: f} }

// Semiring bundles the additive monoid, the multiplier, and their shared
// identity/terminal. XType/YType/ZType record the input/output domains,
// mirroring GraphBLAS's typed semiring signature; built-ins use the same
// type on all three, user semirings may not.
type Semiring struct {
	Name        string
	Add         func(a, b Value) Value
	Mul         func(a, b Value) Value
	Identity    Value
	Terminal    Value
	HasTerminal bool
	XType       Type
	YType       Type
	ZType       Type
}

// IsTerminal reports whether acc equals the semiring's terminal value, the
// signal a dot-product kernel uses to break out of its inner scan early.
func (s Semiring) IsTerminal(acc Value) bool {
	if !s.HasTerminal {
		return false
	}
	return equal(acc, s.Terminal)
}

func equal(a, b Value) bool {
	if a.Typ != b.Typ {
		return false
	}
	switch a.Typ {
	case Bool:
		return a.B == b.B
	case Int64:
		return a.I == b.I
	case Float64:
		return a.F == b.F
	default:
		return false
	}
}

// AnyPair is the Boolean "reachability" semiring: ⊕ = OR, ⊗ = AND,
// identity = false, terminal = true. This is the default semiring for
// label-selector and adjacency traversal, where only pattern matters.
var AnyPair = Semiring{
	Name: "ANY_PAIR",
	Add:  func(a, b Value) Value { return FromBool(a.B || b.B) },
	Mul:  func(a, b Value) Value { return FromBool(a.B && b.B) },
	Identity:    FromBool(false),
	Terminal:    FromBool(true),
	HasTerminal: true,
	XType:       Bool, YType: Bool, ZType: Bool,
}

// Boolean is an alias of AnyPair kept for readability at call sites that
// are building a pure pattern (no weights) rather than doing reachability
// analysis specifically.
var Boolean = AnyPair

// PlusTimesInt64 is the conventional counting semiring over int64.
var PlusTimesInt64 = Semiring{
	Name: "PLUS_TIMES_INT64",
	Add:  func(a, b Value) Value { return FromInt64(a.I + b.I) },
	Mul:  func(a, b Value) Value { return FromInt64(a.I * b.I) },
	Identity: FromInt64(0),
	XType:    Int64, YType: Int64, ZType: Int64,
}

// PlusTimesFloat64 is the conventional weighted-path semiring over
// float64.
var PlusTimesFloat64 = Semiring{
	Name: "PLUS_TIMES_FLOAT64",
	Add:  func(a, b Value) Value { return FromFloat64(a.F + b.F) },
	Mul:  func(a, b Value) Value { return FromFloat64(a.F * b.F) },
	Identity: FromFloat64(0),
	XType:    Float64, YType: Float64, ZType: Float64,
}

// MinPlusFloat64 is the tropical semiring used for shortest-path style
// accumulation: ⊕ = min, ⊗ = +, identity = +Inf.
var MinPlusFloat64 = Semiring{
	Name: "MIN_PLUS_FLOAT64",
	Add: func(a, b Value) Value {
		if a.F < b.F {
			return a
		}
		return b
	},
	Mul:      func(a, b Value) Value { return FromFloat64(a.F + b.F) },
	Identity: FromFloat64(posInf),
	XType:    Float64, YType: Float64, ZType: Float64,
}

// MinMinFloat64 is the semiring used for connectivity-style extrema:
// ⊕ = min, ⊗ = min, identity = +Inf, terminal = -Inf.
var MinMinFloat64 = Semiring{
	Name: "MIN_MIN_FLOAT64",
	Add: func(a, b Value) Value {
		if a.F < b.F {
			return a
		}
		return b
	},
	Mul: func(a, b Value) Value {
		if a.F < b.F {
			return a
		}
		return b
	},
	Identity:    FromFloat64(posInf),
	Terminal:    FromFloat64(negInf),
	HasTerminal: true,
	XType:       Float64, YType: Float64, ZType: Float64,
}

// LxorEqBool is the logical-xor/equality semiring over bool, used by
// parity-style matching.
var LxorEqBool = Semiring{
	Name: "LXOR_EQ_BOOL",
	Add:  func(a, b Value) Value { return FromBool(a.B != b.B) },
	Mul:  func(a, b Value) Value { return FromBool(a.B == b.B) },
	Identity: FromBool(false),
	XType:    Bool, YType: Bool, ZType: Bool,
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)
