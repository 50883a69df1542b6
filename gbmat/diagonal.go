package gbmat

import "github.com/graphalg/acore/semiring"

// IsDiagonal reports whether every structurally present entry of m lies
// on the main diagonal — the shape a label selector matrix always has.
// algebra.Evaluate does not call it: it routes a multiply through
// ScaleRows/ScaleCols on the Operand.Diagonal flag the Builder sets.
func IsDiagonal(m *Matrix) bool {
	ok := true
	forEachEntry(m, func(i, j int, _ semiring.Value) {
		if i != j {
			ok = false
		}
	})
	return ok
}

// ScaleRows computes C = D*A for diagonal D without allocating a new
// output pattern: row i of A survives iff D(i, i) is present and
// truthy, scaled by sr.Mul(d_ii, a_ij). C's pattern is a subset of A's.
func ScaleRows(sr semiring.Semiring, D, A *Matrix) *Matrix {
	outP := make([]int64, A.vdim+1)
	var outI []int64
	var outX []semiring.Value

	for j := 0; j < A.vdim; j++ {
		rows, vals := A.Column(j)
		for idx, i := range rows {
			d, ok := D.At(int(i), int(i))
			if !ok || !isTruthy(d) {
				continue
			}
			outI = append(outI, i)
			outX = append(outX, sr.Mul(d, vals[idx]))
		}
		outP[j+1] = int64(len(outI))
	}
	return &Matrix{vlen: A.vlen, vdim: A.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}
}

// ScaleCols computes C = A*D for diagonal D without allocating a new
// output pattern: column j of A survives iff D(j, j) is present and
// truthy, scaled by sr.Mul(a_ij, d_jj).
func ScaleCols(sr semiring.Semiring, A, D *Matrix) *Matrix {
	outP := make([]int64, A.vdim+1)
	var outI []int64
	var outX []semiring.Value

	for j := 0; j < A.vdim; j++ {
		d, ok := D.At(j, j)
		if !ok || !isTruthy(d) {
			outP[j+1] = int64(len(outI))
			continue
		}
		rows, vals := A.Column(j)
		for idx, i := range rows {
			outI = append(outI, i)
			outX = append(outX, sr.Mul(vals[idx], d))
		}
		outP[j+1] = int64(len(outI))
	}
	return &Matrix{vlen: A.vlen, vdim: A.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}
}
