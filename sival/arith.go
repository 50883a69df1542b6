package sival

import (
	"math"

	"github.com/graphalg/acore/errs"
)

// Add implements Cypher's `+` for numeric, string, and array operands.
// Null propagates: any operand that IsNull yields Null, matching the
// runtime's Null-propagation rule. String/array concatenation is
// supported alongside numeric addition since Cypher overloads `+` for
// both.
func Add(a, b Value) (Value, error) {
	if a.IsNull() || b.IsNull() {
		return Null(), nil
	}
	if a.typ == TypeString || b.typ == TypeString {
		return StringVal(a.GoString() + b.GoString()), nil
	}
	if a.typ == TypeArray || b.typ == TypeArray {
		out := append(append([]Value{}, valuesOf(a)...), valuesOf(b)...)
		return ArrayVal(out), nil
	}
	return numericBinOp(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}

func valuesOf(v Value) []Value {
	if arr, ok := v.Array(); ok {
		return arr
	}
	return []Value{v}
}

// Sub implements Cypher's `-`.
func Sub(a, b Value) (Value, error) {
	if a.IsNull() || b.IsNull() {
		return Null(), nil
	}
	return numericBinOp(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}

// Mul implements Cypher's `*`.
func Mul(a, b Value) (Value, error) {
	if a.IsNull() || b.IsNull() {
		return Null(), nil
	}
	return numericBinOp(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}

// Div implements Cypher's `/`. Division by zero on either the integer
// or float domain raises errs.DivisionByZero rather than propagating
// Inf/NaN, per the runtime's invariant.
func Div(a, b Value) (Value, error) {
	if a.IsNull() || b.IsNull() {
		return Null(), nil
	}
	if a.typ == TypeInt64 && b.typ == TypeInt64 {
		if b.i == 0 {
			return Null(), errs.New(errs.DivisionByZero, "integer division by zero")
		}
		return Int64Val(a.i / b.i), nil
	}
	fa, aok := a.Float64()
	fb, bok := b.Float64()
	if !aok || !bok {
		return Null(), errs.New(errs.TypeMismatch, "division requires numeric operands, got %s / %s", a.Type(), b.Type())
	}
	if fb == 0 {
		return Null(), errs.New(errs.DivisionByZero, "float division by zero")
	}
	return Float64Val(fa / fb), nil
}

func numericBinOp(a, b Value, iop func(int64, int64) int64, fop func(float64, float64) float64) (Value, error) {
	if a.typ == TypeInt64 && b.typ == TypeInt64 {
		return Int64Val(iop(a.i, b.i)), nil
	}
	fa, aok := a.Float64()
	fb, bok := b.Float64()
	if !aok || !bok {
		return Null(), errs.New(errs.TypeMismatch, "arithmetic requires numeric operands, got %s and %s", a.Type(), b.Type())
	}
	return Float64Val(fop(fa, fb)), nil
}

// Coalesce returns the first non-Null argument, or Null if all are Null
// or the list is empty. This is the one arithmetic-adjacent function
// whose specification pins a non-propagating result for Null inputs.
func Coalesce(vs ...Value) Value {
	for _, v := range vs {
		if !v.IsNull() {
			return v
		}
	}
	return Null()
}

// RunningMean accumulates a numeric sequence using the shift-mean
// identity mean_new = mean_old + (x - mean_old) / n, which avoids the
// overflow a naive sum/count division suffers when individual values
// approach the float's range limits.
type RunningMean struct {
	n    int64
	mean float64
}

// Add folds x into the running mean.
func (r *RunningMean) Add(x float64) {
	r.n++
	r.mean += (x - r.mean) / float64(r.n)
}

// Count returns the number of values folded in so far.
func (r *RunningMean) Count() int64 { return r.n }

// Mean returns the current running mean, or 0 if no values were added.
func (r *RunningMean) Mean() float64 { return r.mean }

// Welford accumulates mean and variance in a single pass using
// Welford's online algorithm, the basis for both the sample (n-1
// denominator) and population (n denominator) standard deviation.
type Welford struct {
	n    int64
	mean float64
	m2   float64
}

// Add folds x into the accumulator.
func (w *Welford) Add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	delta2 := x - w.mean
	w.m2 += delta * delta2
}

// Count returns the number of values folded in so far.
func (w *Welford) Count() int64 { return w.n }

// Mean returns the running mean.
func (w *Welford) Mean() float64 { return w.mean }

// SampleStdev returns the sample standard deviation (n-1 denominator).
// Returns 0 when fewer than two samples have been accumulated.
func (w *Welford) SampleStdev() float64 {
	if w.n < 2 {
		return 0.0
	}
	return math.Sqrt(w.m2 / float64(w.n-1))
}

// PopulationStdev returns the population standard deviation (n
// denominator). Returns 0 when fewer than two samples have been
// accumulated.
func (w *Welford) PopulationStdev() float64 {
	if w.n < 2 {
		return 0.0
	}
	return math.Sqrt(w.m2 / float64(w.n))
}
