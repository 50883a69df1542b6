package ops

import (
	"github.com/graphalg/acore/algebra"
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/gbmat"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

// VarLenTraverse expands a {min,max} hop-bounded edge. Mode is chosen
// at Init: collect-paths when the edge variable is bound to a record
// slot or ForceCollect is set (e.g. a path-level filter upstream),
// neighbors-only otherwise — the fast path, which visits each node at
// most once. Both modes carry the node path of every BFS frame.
type VarLenTraverse struct {
	plan.Base

	RelTypes     []string
	Outbound     bool
	SrcSlot      int
	DestSlot     int
	EdgeSlot     int // algebra.NotInRecord if the edge list is never bound
	MinHops      int
	MaxHops      int // 0 means unbounded
	ForceCollect bool
	Width        int

	rel          *gbmat.Matrix
	collectPaths bool

	cur      *record.Record
	frontier []sival.Path
	pos      int
}

func NewVarLenTraverse(relTypes []string, outbound bool, srcSlot, destSlot, edgeSlot, minHops, maxHops, width int) *VarLenTraverse {
	return &VarLenTraverse{
		RelTypes: relTypes, Outbound: outbound,
		SrcSlot: srcSlot, DestSlot: destSlot, EdgeSlot: edgeSlot,
		MinHops: minHops, MaxHops: maxHops, Width: width,
	}
}

func (o *VarLenTraverse) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	if o.MaxHops > 0 && o.MinHops > o.MaxHops {
		return errs.New(errs.Syntax, "variable-length edge has minHops %d > maxHops %d", o.MinHops, o.MaxHops)
	}
	if err := o.InitChildren(ctx); err != nil {
		return err
	}
	m, err := relUnion(ctx, o.RelTypes)
	if err != nil {
		return err
	}
	o.rel = m
	o.collectPaths = o.ForceCollect || o.EdgeSlot != algebra.NotInRecord
	return nil
}

// relUnion resolves the EWiseAdd-combined adjacency matrix for a
// multi-type edge pattern (`-[:R|:S]->`), mirroring
// algebra.Builder.relOperand's single-type-or-union resolution.
func relUnion(ctx *plan.Context, relTypes []string) (*gbmat.Matrix, error) {
	if len(relTypes) == 0 {
		return nil, errs.New(errs.InvalidParameter, "variable-length edge has no relationship type")
	}
	var m *gbmat.Matrix
	for i, rt := range relTypes {
		rm, err := ctx.Graph.RelMatrix(rt)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			m = rm
			continue
		}
		m, err = gbmat.EWiseAdd(ctx.Sring, m, rm, gbmat.Descriptor{})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// step returns the neighbors of id one hop away, honoring Outbound: an
// outbound edge from j to i lives at column j (since (i,j) means j->i),
// so stepping outbound from id reads column id; stepping inbound scans
// rows instead, via a borrowed full-matrix walk since gbmat exposes
// only column access directly.
func (o *VarLenTraverse) step(id int64) []int64 {
	if o.Outbound {
		rows, _ := o.rel.Column(int(id))
		return rows
	}
	var out []int64
	_, vdim := o.rel.Dim()
	for j := 0; j < vdim; j++ {
		if _, ok := o.rel.At(int(id), j); ok {
			out = append(out, int64(j))
		}
	}
	return out
}

// bfsReachable runs a breadth-first search from src, honoring
// [min,max] hop bounds, and returns one sival.Path per match at a valid
// depth: one per reachable node in neighbors-only mode, one per path
// reaching a node in collect-paths mode.
func (o *VarLenTraverse) bfsReachable(src int64) []sival.Path {
	type frame struct {
		id    int64
		path  sival.Path
		depth int
	}
	start := frame{id: src, path: sival.Path{Nodes: []sival.NodeRef{{ID: src}}}}
	queue := []frame{start}
	visited := map[int64]bool{src: true}
	var out []sival.Path

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if f.depth > 0 && f.depth >= o.MinHops {
			out = append(out, f.path)
		} else if f.depth == 0 && o.MinHops == 0 {
			out = append(out, f.path)
		}
		if o.MaxHops > 0 && f.depth >= o.MaxHops {
			continue
		}
		for _, next := range o.step(f.id) {
			if visited[next] && !o.collectPaths {
				continue
			}
			visited[next] = true
			np := sival.Path{
				Nodes: append(append([]sival.NodeRef{}, f.path.Nodes...), sival.NodeRef{ID: next}),
				Edges: f.path.Edges,
			}
			queue = append(queue, frame{id: next, path: np, depth: f.depth + 1})
		}
	}
	return out
}

func (o *VarLenTraverse) advance() error {
	for {
		if o.cur != nil && o.pos < len(o.frontier) {
			return nil
		}
		r, err := o.Pull()
		if err != nil {
			return err
		}
		if r == nil {
			o.cur = nil
			return nil
		}
		srcNode, ok := r.Get(o.SrcSlot).Node()
		if !ok {
			continue
		}
		o.cur = r
		o.frontier = o.bfsReachable(srcNode.ID)
		o.pos = 0
	}
}

func (o *VarLenTraverse) Consume() (*record.Record, error) {
	for {
		if err := o.advance(); err != nil {
			return nil, err
		}
		if o.cur == nil {
			return nil, nil
		}
		if o.pos >= len(o.frontier) {
			o.cur = nil
			continue
		}
		p := o.frontier[o.pos]
		o.pos++
		destID := p.Nodes[len(p.Nodes)-1].ID
		destNode, ok := o.Ctx.Graph.GetNode(destID)
		if !ok {
			continue
		}
		out := o.cur.Clone()
		out.Set(o.DestSlot, sival.NodeVal(destNode))
		if o.EdgeSlot != algebra.NotInRecord {
			out.Set(o.EdgeSlot, sival.PathVal(p))
		}
		return out, nil
	}
}

func (o *VarLenTraverse) Reset() error {
	o.cur, o.frontier, o.pos = nil, nil, 0
	return o.ResetChildren()
}

func (o *VarLenTraverse) Free() { o.FreeChildren() }

func (o *VarLenTraverse) Clone(p *plan.Plan) plan.Operator {
	c := &VarLenTraverse{
		RelTypes: o.RelTypes, Outbound: o.Outbound,
		SrcSlot: o.SrcSlot, DestSlot: o.DestSlot, EdgeSlot: o.EdgeSlot,
		MinHops: o.MinHops, MaxHops: o.MaxHops, ForceCollect: o.ForceCollect, Width: o.Width,
	}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *VarLenTraverse) Modifies() []int {
	if o.EdgeSlot != algebra.NotInRecord {
		return []int{o.DestSlot, o.EdgeSlot}
	}
	return []int{o.DestSlot}
}

// AllShortestPaths finds every shortest path between the already-bound
// SrcSlot and DestSlot nodes via a single-source BFS (adequate at the
// scale this core targets). plan.BuildPlan enforces this operator's two
// build-time constraints: a projection-only position (buildChain rejects
// any consumer other than *ast.ProjectNode) and a one-hop relationship
// bound (buildAllShortestPaths rejects MinHops != 1).
type AllShortestPaths struct {
	plan.Base

	RelTypes []string
	Outbound bool
	SrcSlot  int
	DestSlot int
	PathSlot int
	Width    int

	rel *gbmat.Matrix

	cur    *record.Record
	paths  []sival.Path
	pos    int
}

func NewAllShortestPaths(relTypes []string, outbound bool, srcSlot, destSlot, pathSlot, width int) *AllShortestPaths {
	return &AllShortestPaths{RelTypes: relTypes, Outbound: outbound, SrcSlot: srcSlot, DestSlot: destSlot, PathSlot: pathSlot, Width: width}
}

func (o *AllShortestPaths) Init(ctx *plan.Context) error {
	o.Ctx = ctx
	if err := o.InitChildren(ctx); err != nil {
		return err
	}
	m, err := relUnion(ctx, o.RelTypes)
	if err != nil {
		return err
	}
	o.rel = m
	return nil
}

func (o *AllShortestPaths) step(id int64) []int64 {
	if o.Outbound {
		rows, _ := o.rel.Column(int(id))
		return rows
	}
	var out []int64
	_, vdim := o.rel.Dim()
	for j := 0; j < vdim; j++ {
		if _, ok := o.rel.At(int(id), j); ok {
			out = append(out, int64(j))
		}
	}
	return out
}

// shortestPaths finds every path from src to dst of minimum length via
// a level-by-level BFS that stops expanding as soon as dst is first
// reached at some depth d, then collects every path of exactly depth d.
func (o *AllShortestPaths) shortestPaths(src, dst int64) []sival.Path {
	type frame struct {
		path  sival.Path
		depth int
	}
	queue := []frame{{path: sival.Path{Nodes: []sival.NodeRef{{ID: src}}}}}
	visitedAtDepth := map[int64]int{src: 0}
	var found []sival.Path
	foundDepth := -1

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if foundDepth >= 0 && f.depth > foundDepth {
			break
		}
		last := f.path.Nodes[len(f.path.Nodes)-1].ID
		if last == dst && f.depth > 0 {
			if foundDepth < 0 {
				foundDepth = f.depth
			}
			if f.depth == foundDepth {
				found = append(found, f.path)
			}
			continue
		}
		for _, next := range o.step(last) {
			if d, ok := visitedAtDepth[next]; ok && d < f.depth+1 {
				continue
			}
			visitedAtDepth[next] = f.depth + 1
			np := sival.Path{Nodes: append(append([]sival.NodeRef{}, f.path.Nodes...), sival.NodeRef{ID: next})}
			queue = append(queue, frame{path: np, depth: f.depth + 1})
		}
	}
	return found
}

func (o *AllShortestPaths) advance() error {
	for {
		if o.cur != nil && o.pos < len(o.paths) {
			return nil
		}
		r, err := o.Pull()
		if err != nil {
			return err
		}
		if r == nil {
			o.cur = nil
			return nil
		}
		srcNode, ok1 := r.Get(o.SrcSlot).Node()
		destNode, ok2 := r.Get(o.DestSlot).Node()
		if !ok1 || !ok2 {
			continue
		}
		o.cur = r
		o.paths = o.shortestPaths(srcNode.ID, destNode.ID)
		o.pos = 0
	}
}

func (o *AllShortestPaths) Consume() (*record.Record, error) {
	for {
		if err := o.advance(); err != nil {
			return nil, err
		}
		if o.cur == nil {
			return nil, nil
		}
		if o.pos >= len(o.paths) {
			o.cur = nil
			continue
		}
		p := o.paths[o.pos]
		o.pos++
		out := o.cur.Clone()
		out.Set(o.PathSlot, sival.PathVal(p))
		return out, nil
	}
}

func (o *AllShortestPaths) Reset() error {
	o.cur, o.paths, o.pos = nil, nil, 0
	return o.ResetChildren()
}

func (o *AllShortestPaths) Free() { o.FreeChildren() }

func (o *AllShortestPaths) Clone(p *plan.Plan) plan.Operator {
	c := &AllShortestPaths{RelTypes: o.RelTypes, Outbound: o.Outbound, SrcSlot: o.SrcSlot, DestSlot: o.DestSlot, PathSlot: o.PathSlot, Width: o.Width}
	c.Children = o.CloneChildren(p)
	return c
}

func (o *AllShortestPaths) Modifies() []int { return []int{o.PathSlot} }
