package plan

import "github.com/graphalg/acore/record"

// Operator is implemented by every node of the pull-based pipeline DAG.
// Consume returning (nil, nil) signals exhaustion; any non-nil error
// trips the owning Context's Breakpoint and unwinds the pull loop.
type Operator interface {
	Init(ctx *Context) error
	Consume() (*record.Record, error)
	Reset() error
	Clone(p *Plan) Operator
	Free()
}

// Base is embedded by every concrete operator for the child-list
// plumbing shared across the whole library, the same walker-holds-
// shared-state structuring a traversal visitor callback uses instead of
// reimplementing bookkeeping per algorithm.
type Base struct {
	Ctx      *Context
	Children []Operator
}

// InitChildren runs Init on every child in order, stopping at the
// first error.
func (b *Base) InitChildren(ctx *Context) error {
	b.Ctx = ctx
	for _, c := range b.Children {
		if err := c.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ResetChildren runs Reset on every child in order, stopping at the
// first error.
func (b *Base) ResetChildren() error {
	for _, c := range b.Children {
		if err := c.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// FreeChildren frees every child; unlike Init/Reset this never stops
// early, so a free of one sibling never leaks another's resources.
func (b *Base) FreeChildren() {
	for _, c := range b.Children {
		c.Free()
	}
}

// CloneChildren returns a deep clone of every child, for an operator's
// own Clone implementation to attach to its copy.
func (b *Base) CloneChildren(p *Plan) []Operator {
	if len(b.Children) == 0 {
		return nil
	}
	out := make([]Operator, len(b.Children))
	for i, c := range b.Children {
		out[i] = c.Clone(p)
	}
	return out
}

// Child0 returns the single child operators with exactly one upstream
// rely on (traverse, filter, project, ...); panics if none, matching
// the invariant that a build-time-wired DAG never omits a required
// child.
func (b *Base) Child0() Operator { return b.Children[0] }

// Pull is a small helper most single-child operators use: it retrieves
// the next record from the sole child, or (nil, nil) at exhaustion.
func (b *Base) Pull() (*record.Record, error) {
	return b.Child0().Consume()
}
