package gbmat

import (
	"sort"

	"github.com/graphalg/acore/semiring"
)

// Build constructs a Sparse or Hypersparse Matrix from coordinate
// triplets (I, J, X). Duplicate (i, j) pairs are combined with dup,
// mirroring the ⊕dup parameter GraphBLAS build contracts expose (e.g.
// pass an Add-style combiner to sum parallel-edge weights, or a
// first/last-wins combiner to collapse them).
func Build(vlen, vdim int, I, J []int64, X []semiring.Value, dup func(a, b semiring.Value) semiring.Value, hyper bool) *Matrix {
	n := len(I)
	order := make([]int, n)
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := order[a], order[b]
		if J[ka] != J[kb] {
			return J[ka] < J[kb]
		}
		return I[ka] < I[kb]
	})

	outI := make([]int64, 0, n)
	outX := make([]semiring.Value, 0, n)
	colCount := make([]int64, vdim)

	var k int
	for k < n {
		idx := order[k]
		col, row, val := J[idx], I[idx], X[idx]
		k++
		for k < n && J[order[k]] == col && I[order[k]] == row {
			val = dup(val, X[order[k]])
			k++
		}
		outI = append(outI, row)
		outX = append(outX, val)
		colCount[col]++
	}

	p := make([]int64, vdim+1)
	for j := 0; j < vdim; j++ {
		p[j+1] = p[j] + colCount[j]
	}

	m := &Matrix{vlen: vlen, vdim: vdim, format: Sparse, typ: inferType(outX), p: p, i: outI, x: outX, nvecNonempty: -1}
	if hyper {
		return m.toHypersparse()
	}
	return m
}

func inferType(x []semiring.Value) semiring.Type {
	if len(x) == 0 {
		return semiring.Bool
	}
	return x[0].Typ
}

func (m *Matrix) toHypersparse() *Matrix {
	h := make([]int64, 0, m.Nvec())
	p := make([]int64, 0, m.Nvec()+1)
	p = append(p, 0)
	for j := 0; j < m.vdim; j++ {
		if m.p[j+1] > m.p[j] {
			h = append(h, int64(j))
			p = append(p, m.p[j+1])
		}
	}
	m.format = Hypersparse
	m.h = h
	m.p = p
	m.nvecNonempty = len(h)
	return m
}

// ExtractTuples returns the coordinate form (I, J, X) of m, in the same
// column-major, row-ascending order the Sparse/Hypersparse storage keeps
// internally.
func (m *Matrix) ExtractTuples() (I, J []int64, X []semiring.Value) {
	nnz := m.Nnz()
	I = make([]int64, 0, nnz)
	J = make([]int64, 0, nnz)
	X = make([]semiring.Value, 0, nnz)
	switch m.format {
	case Sparse:
		for j := 0; j < m.vdim; j++ {
			rows, vals := m.Column(j)
			for idx, r := range rows {
				I = append(I, r)
				J = append(J, int64(j))
				X = append(X, vals[idx])
			}
		}
	case Hypersparse:
		for _, j := range m.h {
			rows, vals := m.Column(int(j))
			for idx, r := range rows {
				I = append(I, r)
				J = append(J, j)
				X = append(X, vals[idx])
			}
		}
	case Bitmap, Full:
		for j := 0; j < m.vdim; j++ {
			for i := 0; i < m.vlen; i++ {
				if v, ok := m.At(i, j); ok {
					I = append(I, int64(i))
					J = append(J, int64(j))
					X = append(X, v)
				}
			}
		}
	}
	return I, J, X
}
