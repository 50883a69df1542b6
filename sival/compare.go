package sival

// Equal reports whether a and b are the same type and value, except that
// Int64 and Float64 values compare numerically across the two types;
// Path values never compare equal. Null is
// equal only to Null, matching Cypher's `IS NULL`-style identity rather
// than SQL's three-valued `NULL = NULL` (the `=` operator layered on top
// of this, in package expr, handles the three-valued-logic distinction
// by special-casing IsNull before calling Equal).
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		if a.IsNumeric() && b.IsNumeric() {
			fa, _ := a.Float64()
			fb, _ := b.Float64()
			return fa == fb
		}
		return false
	}
	switch a.typ {
	case TypeNull:
		return true
	case TypeBool:
		return a.b == b.b
	case TypeInt64:
		return a.i == b.i
	case TypeFloat64:
		return a.f == b.f
	case TypeString:
		return a.s == b.s
	case TypeArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case TypeNode:
		return a.node.ID == b.node.ID
	case TypeEdge:
		return a.edge.ID == b.edge.ID
	default:
		return false
	}
}

// Compare orders two numeric or string values: -1, 0, 1 for a<b, a==b,
// a>b. ok is false when the pair is not ordinally comparable (e.g.
// mixed string/node, or either operand Null), in which case Cypher's
// comparison operators evaluate to Null rather than a bool.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.IsNull() || b.IsNull() {
		return 0, false
	}
	if a.typ == TypeString && b.typ == TypeString {
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	}
	fa, aok := a.Float64()
	fb, bok := b.Float64()
	if !aok || !bok {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	default:
		return 0, true
	}
}
