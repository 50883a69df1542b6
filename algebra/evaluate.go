package algebra

import (
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/semiring"
)

// Evaluate walks expr.Root right-to-left under sr, producing a single
// concrete matrix. A Reusable operand (marked by sum-of-products
// normalization) is materialized once and cached by pointer identity
// across both branches that reference it.
func Evaluate(expr *Expr, sr semiring.Semiring) (*gbmat.Matrix, error) {
	cache := make(map[*Operand]*gbmat.Matrix)
	return evalExpr(expr.Root, sr, cache)
}

func evalExpr(e Expression, sr semiring.Semiring, cache map[*Operand]*gbmat.Matrix) (*gbmat.Matrix, error) {
	switch n := e.(type) {
	case *Operand:
		return evalOperand(n, cache)
	case *Operation:
		return evalOperation(n, sr, cache)
	default:
		return nil, errEmptySegment
	}
}

// evalOperand materializes a lazy transpose exactly once: the flag is
// cleared after the first materialization so a Reusable operand visited
// from a second branch returns the already-transposed matrix as-is.
func evalOperand(n *Operand, cache map[*Operand]*gbmat.Matrix) (*gbmat.Matrix, error) {
	if n.Reusable {
		if m, ok := cache[n]; ok {
			return m, nil
		}
	}
	m := n.Matrix
	if n.Transpose {
		m = gbmat.Transpose(m)
		n.Matrix = m
		n.Transpose = false
	}
	if n.Reusable {
		cache[n] = m
	}
	return m, nil
}

func evalOperation(n *Operation, sr semiring.Semiring, cache map[*Operand]*gbmat.Matrix) (*gbmat.Matrix, error) {
	switch n.Op {
	case Transpose:
		child, err := evalExpr(n.Children[0], sr, cache)
		if err != nil {
			return nil, err
		}
		return gbmat.Transpose(child), nil
	case Add:
		left, err := evalExpr(n.Children[0], sr, cache)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(n.Children[1], sr, cache)
		if err != nil {
			return nil, err
		}
		return gbmat.EWiseAdd(sr, left, right, gbmat.Descriptor{})
	case Mul:
		// Right-to-left: the right subtree is the rest of the chain and
		// is evaluated first, matching the column-compressed kernels'
		// natural access order.
		right, err := evalExpr(n.Children[1], sr, cache)
		if err != nil {
			return nil, err
		}
		left, err := evalExpr(n.Children[0], sr, cache)
		if err != nil {
			return nil, err
		}
		if lo, ok := n.Children[0].(*Operand); ok && lo.Diagonal {
			return gbmat.ScaleRows(sr, left, right), nil
		}
		if ro, ok := n.Children[1].(*Operand); ok && ro.Diagonal {
			return gbmat.ScaleCols(sr, left, right), nil
		}
		return gbmat.MxM(sr, left, right, gbmat.Descriptor{})
	default:
		return nil, errEmptySegment
	}
}
