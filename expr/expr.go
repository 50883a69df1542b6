// Package expr implements the scalar-expression mini-language that
// Filter, Project, and Aggregate evaluate per record: literals, record
// slot references, and the arithmetic/comparison/boolean operators
// Cypher layers over SIValue. Parsing an expression from source text is
// out of scope (the AST is assumed pre-validated); this package only
// evaluates an already-built tree.
package expr

import (
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// Expr is a scalar expression node.
type Expr interface {
	Eval(r *record.Record) (sival.Value, error)
}

// Literal evaluates to a fixed value.
type Literal struct{ Val sival.Value }

func (l Literal) Eval(*record.Record) (sival.Value, error) { return l.Val, nil }

// Slot reads a record slot by its plan-build-time index.
type Slot struct{ Idx int }

func (s Slot) Eval(r *record.Record) (sival.Value, error) { return r.Get(s.Idx), nil }

// BinOp tags a Binary node's operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

// Binary is a two-operand expression.
type Binary struct {
	Op   BinOp
	L, R Expr
}

func (b Binary) Eval(r *record.Record) (sival.Value, error) {
	l, err := b.L.Eval(r)
	if err != nil {
		return sival.Null(), err
	}
	rv, err := b.R.Eval(r)
	if err != nil {
		return sival.Null(), err
	}
	switch b.Op {
	case OpAdd:
		return sival.Add(l, rv)
	case OpSub:
		return sival.Sub(l, rv)
	case OpMul:
		return sival.Mul(l, rv)
	case OpDiv:
		return sival.Div(l, rv)
	case OpEq:
		return compareEq(l, rv, false)
	case OpNeq:
		return compareEq(l, rv, true)
	case OpLt:
		return compareOrd(l, rv, func(c int) bool { return c < 0 })
	case OpLte:
		return compareOrd(l, rv, func(c int) bool { return c <= 0 })
	case OpGt:
		return compareOrd(l, rv, func(c int) bool { return c > 0 })
	case OpGte:
		return compareOrd(l, rv, func(c int) bool { return c >= 0 })
	case OpAnd:
		return logicalAnd(l, rv), nil
	case OpOr:
		return logicalOr(l, rv), nil
	default:
		return sival.Null(), errs.New(errs.InternalPanic, "unknown binary operator %d", b.Op)
	}
}

func compareEq(l, r sival.Value, negate bool) (sival.Value, error) {
	if l.IsNull() || r.IsNull() {
		return sival.Null(), nil
	}
	eq := sival.Equal(l, r)
	if negate {
		eq = !eq
	}
	return sival.BoolVal(eq), nil
}

func compareOrd(l, r sival.Value, pred func(int) bool) (sival.Value, error) {
	c, ok := sival.Compare(l, r)
	if !ok {
		return sival.Null(), nil
	}
	return sival.BoolVal(pred(c)), nil
}

// logicalAnd/logicalOr implement Cypher's three-valued boolean logic:
// Null behaves as "unknown", short-circuiting to a definite result only
// when the other operand already decides it (false AND unknown = false,
// true OR unknown = true).
func logicalAnd(l, r sival.Value) sival.Value {
	lb, lIsBool := l.Bool()
	rb, rIsBool := r.Bool()
	if lIsBool && !lb {
		return sival.BoolVal(false)
	}
	if rIsBool && !rb {
		return sival.BoolVal(false)
	}
	if l.IsNull() || r.IsNull() {
		return sival.Null()
	}
	return sival.BoolVal(lb && rb)
}

func logicalOr(l, r sival.Value) sival.Value {
	lb, lIsBool := l.Bool()
	rb, rIsBool := r.Bool()
	if lIsBool && lb {
		return sival.BoolVal(true)
	}
	if rIsBool && rb {
		return sival.BoolVal(true)
	}
	if l.IsNull() || r.IsNull() {
		return sival.Null()
	}
	return sival.BoolVal(lb || rb)
}

// Not implements Cypher's unary NOT; Null propagates to Null.
type Not struct{ X Expr }

func (n Not) Eval(r *record.Record) (sival.Value, error) {
	v, err := n.X.Eval(r)
	if err != nil {
		return sival.Null(), err
	}
	if v.IsNull() {
		return sival.Null(), nil
	}
	b, ok := v.Bool()
	if !ok {
		return sival.Null(), errs.New(errs.TypeMismatch, "NOT requires a boolean operand, got %s", v.Type())
	}
	return sival.BoolVal(!b), nil
}

// EvalBool evaluates e and coerces the result to a bool, treating Null
// and any non-bool result as false, matching Filter's predicate
// semantics (Cypher's three-valued WHERE: only TRUE passes rows).
func EvalBool(e Expr, r *record.Record) (bool, error) {
	v, err := e.Eval(r)
	if err != nil {
		return false, err
	}
	b, ok := v.Bool()
	return ok && b, nil
}
