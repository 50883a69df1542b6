package gbmat

import (
	"github.com/graphalg/acore/semiring"
	"modernc.org/mathutil"
)

// builderTransposeThreshold is the log2(nnz) crossover above which the
// tuple-sort builder transpose beats the bucket-sort transpose: building
// (i, j, x) tuples and sorting them has better cache behavior than
// scattering into precomputed buckets once nnz is large enough that the
// scatter pattern blows the working set.
const builderTransposeThreshold = 20

// Transpose returns C = Aᵀ. Two algorithms back this: a bucket-sort
// transpose (row counts become column pointers, one scatter pass) used
// for small-to-medium nnz, and a tuple-sort builder transpose used once
// log2(nnz) reaches builderTransposeThreshold, where a single sort dominates a
// scatter into many small buckets.
func Transpose(A *Matrix) *Matrix {
	nnz := A.Nnz()
	if nnz > 0 && mathutil.Log2Uint64(uint64(nnz)) >= builderTransposeThreshold {
		return builderTranspose(A)
	}
	return bucketTranspose(A)
}

// bucketTranspose implements the three-phase bucket-sort transpose:
// count rows (these become the transposed matrix's column pointers),
// prefix-sum them, then scatter each (i, j, x) into its destination
// slot. Runs in O(vlen + nvec + nnz). The single-threaded form is the
// only one implemented here; a many-threads-atomic-counter approach and
// per-thread-workspace variants are a performance refinement this core
// does not need to match the kernel's externally-visible behavior.
func bucketTranspose(A *Matrix) *Matrix {
	vlen, vdim := A.Dim()
	rowCount := make([]int64, vlen)

	forEachEntry(A, func(i, j int, v semiring.Value) {
		rowCount[i]++
	})

	p := make([]int64, vlen+1)
	for r := 0; r < vlen; r++ {
		p[r+1] = p[r] + rowCount[r]
	}

	nnz := p[vlen]
	outJ := make([]int64, nnz)
	outX := make([]semiring.Value, nnz)
	cursor := make([]int64, vlen)
	copy(cursor, p[:vlen])

	forEachEntry(A, func(i, j int, v semiring.Value) {
		dst := cursor[i]
		outJ[dst] = int64(j)
		outX[dst] = v
		cursor[i]++
	})

	C := &Matrix{vlen: vdim, vdim: vlen, format: Sparse, typ: A.typ, p: p, i: outJ, x: outX, nvecNonempty: -1}
	return C
}

// builderTranspose produces (i, j, x) tuples with i/j swapped and runs
// them back through Build, which sorts by (column, row) — equivalent in
// result to the bucket transpose but dominated by a single sort instead
// of a scatter, which wins at very large nnz.
func builderTranspose(A *Matrix) *Matrix {
	I, J, X := A.ExtractTuples()
	vlen, vdim := A.Dim()
	return Build(vdim, vlen, J, I, X, func(a, b semiring.Value) semiring.Value { return b }, A.format == Hypersparse)
}

// forEachEntry walks every structurally present (i, j, v) of A in
// column-ascending, row-ascending order.
func forEachEntry(A *Matrix, f func(i, j int, v semiring.Value)) {
	switch A.format {
	case Sparse:
		for j := 0; j < A.vdim; j++ {
			rows, vals := A.Column(j)
			for idx, r := range rows {
				f(int(r), j, vals[idx])
			}
		}
	case Hypersparse:
		for _, j := range A.h {
			rows, vals := A.Column(int(j))
			for idx, r := range rows {
				f(int(r), int(j), vals[idx])
			}
		}
	case Bitmap, Full:
		for j := 0; j < A.vdim; j++ {
			for i := 0; i < A.vlen; i++ {
				if v, ok := A.At(i, j); ok {
					f(i, j, v)
				}
			}
		}
	}
}
