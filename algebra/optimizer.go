package algebra

// Optimizer rewrites an expression tree in place: transpose hoisting,
// sum-of-products normalization (marking the shared operand Reusable),
// and diagonal detection (left to Evaluate, which consults the
// Diagonal flag Builder already set on every label operand).
type Optimizer struct{}

// Optimize applies every rewrite to expr.Root.
func (Optimizer) Optimize(expr *Expr) {
	expr.Root = hoistTransposes(expr.Root)
	expr.Root = distribute(expr.Root)
}

// WrapTranspose wraps e in an explicit TRANSPOSE node, e.g. for a
// caller that needs a whole chain's transpose rather than a single
// operand's. Optimize always rewrites this away via hoistTransposes.
func WrapTranspose(e Expression) Expression {
	return &Operation{Op: Transpose, Children: [2]Expression{e, nil}}
}

// hoistTransposes walks the tree, pushing any TRANSPOSE node down to
// the leaves per `(A·B)ᵀ → Bᵀ·Aᵀ` / `(A+B)ᵀ → Aᵀ+Bᵀ`, and canceling a
// transpose of a transpose.
func hoistTransposes(e Expression) Expression {
	switch n := e.(type) {
	case *Operand:
		return n
	case *Operation:
		if n.Op == Transpose {
			return hoistTransposes(pushTranspose(n))
		}
		n.Children[0] = hoistTransposes(n.Children[0])
		n.Children[1] = hoistTransposes(n.Children[1])
		return n
	default:
		return e
	}
}

func pushTranspose(t *Operation) Expression {
	child := t.Children[0]
	switch c := child.(type) {
	case *Operand:
		c.Transpose = !c.Transpose
		return c
	case *Operation:
		switch c.Op {
		case Mul:
			newLeft := &Operation{Op: Transpose, Children: [2]Expression{c.Children[1], nil}}
			newRight := &Operation{Op: Transpose, Children: [2]Expression{c.Children[0], nil}}
			return &Operation{Op: Mul, Children: [2]Expression{newLeft, newRight}}
		case Add:
			newLeft := &Operation{Op: Transpose, Children: [2]Expression{c.Children[0], nil}}
			newRight := &Operation{Op: Transpose, Children: [2]Expression{c.Children[1], nil}}
			return &Operation{Op: Add, Children: [2]Expression{newLeft, newRight}}
		case Transpose:
			return c.Children[0]
		}
	}
	return child
}

// distribute rewrites A·(B+C) → A·B + A·C and (B+C)·A → B·A + C·A,
// marking the shared operand A Reusable so Evaluate materializes it
// once and reuses it across both branches. A shared A that is itself an
// Operation rather than a single *Operand is not marked.
func distribute(e Expression) Expression {
	op, ok := e.(*Operation)
	if !ok {
		return e
	}
	op.Children[0] = distribute(op.Children[0])
	op.Children[1] = distribute(op.Children[1])

	if op.Op != Mul {
		return op
	}
	if addNode, ok := op.Children[1].(*Operation); ok && addNode.Op == Add {
		markReusable(op.Children[0])
		left := &Operation{Op: Mul, Children: [2]Expression{op.Children[0], addNode.Children[0]}}
		right := &Operation{Op: Mul, Children: [2]Expression{op.Children[0], addNode.Children[1]}}
		return distribute(&Operation{Op: Add, Children: [2]Expression{left, right}})
	}
	if addNode, ok := op.Children[0].(*Operation); ok && addNode.Op == Add {
		markReusable(op.Children[1])
		left := &Operation{Op: Mul, Children: [2]Expression{addNode.Children[0], op.Children[1]}}
		right := &Operation{Op: Mul, Children: [2]Expression{addNode.Children[1], op.Children[1]}}
		return distribute(&Operation{Op: Add, Children: [2]Expression{left, right}})
	}
	return op
}

func markReusable(e Expression) {
	if op, ok := e.(*Operand); ok {
		op.Reusable = true
	}
}
