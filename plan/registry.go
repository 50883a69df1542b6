package plan

import "github.com/graphalg/acore/errs"

// BuilderFunc constructs the Operator for one ASTNode, given its
// already-built upstream children (zero or one, except a future binary
// operator such as UNION) and the query's fixed record width (needed by
// any operator that allocates fresh Records, e.g. a scan). Package ops
// registers one BuilderFunc per NodeTag in its init(), the same
// registration-by-side-effect idiom the standard library uses for
// image formats and sql drivers — it is what lets plan stay ignorant of
// ops's concrete operator types and avoids an import cycle (ops already
// must import plan for Context/Operator).
type BuilderFunc func(node ASTNode, children []Operator, width int) (Operator, error)

var registry = make(map[NodeTag]BuilderFunc)

// RegisterOperator installs the builder for tag. Called from package
// ops's init(); a second registration for the same tag overwrites the
// first, which only matters to a caller deliberately replacing the
// default operator library.
func RegisterOperator(tag NodeTag, fn BuilderFunc) {
	registry[tag] = fn
}

// BuildPlan lowers ast into an executable Plan: a pure, bottom-up walk
// of the clause chain starting at the innermost (source) clause,
// feeding each already-built operator to its downstream consumer as its
// sole child.
func BuildPlan(ast AST) (*Plan, error) {
	width := ast.RecordWidth()
	root := ast.Root()
	if root != nil && root.Tag() == TagAllShortestPaths {
		return nil, errs.New(errs.Syntax, "allShortestPaths is valid only directly before a projection clause")
	}
	built, err := buildChain(root, width)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Root:        built,
		RecordWidth: width,
		graph:       ast.Graph(),
		sring:       ast.Semiring(),
		config:      ast.Config(),
	}, nil
}

func buildChain(node ASTNode, width int) (Operator, error) {
	if node == nil {
		return nil, errs.New(errs.InvalidParameter, "empty clause chain")
	}
	var children []Operator
	if up := node.Next(); up != nil {
		if up.Tag() == TagAllShortestPaths && node.Tag() != TagProject {
			return nil, errs.New(errs.Syntax, "allShortestPaths is valid only directly before a projection clause")
		}
		child, err := buildChain(up, width)
		if err != nil {
			return nil, err
		}
		children = []Operator{child}
	}
	fn, ok := registry[node.Tag()]
	if !ok {
		return nil, errs.New(errs.InvalidParameter, "no operator registered for clause tag %d", node.Tag())
	}
	return fn(node, children, width)
}
