package gbmat

import (
	"sort"

	"github.com/graphalg/acore/semiring"
)

// dotEntry computes C(i, j) = ⊕_k A(k, i) ⊗ B(k, j) by
// merging the sorted row lists of A's column i and B's column j — i.e.
// Aᵀ·B restricted to a single cell, since column i of a column-
// compressed A already holds A(:, i). Returns (value, ok=false) if the
// merge produces no contribution (a "zombie": the cell is in the mask
// pattern but the product is empty), matching the dot3 tombstone
// behavior semiring dot products require.
func dotEntry(A, B *Matrix, sr semiring.Semiring, i, j int) (semiring.Value, bool) {
	aRows, aVals := A.Column(i)
	bRows, bVals := B.Column(j)

	var acc semiring.Value
	have := false
	ai, bi := 0, 0
	for ai < len(aRows) && bi < len(bRows) {
		switch {
		case aRows[ai] < bRows[bi]:
			ai++
		case aRows[ai] > bRows[bi]:
			bi++
		default:
			contrib := sr.Mul(aVals[ai], bVals[bi])
			if !have {
				acc = contrib
				have = true
			} else {
				acc = sr.Add(acc, contrib)
			}
			if sr.IsTerminal(acc) {
				return acc, true
			}
			ai++
			bi++
		}
	}
	return acc, have
}

// dot3 computes C<mask> = Aᵀ·B by visiting exactly the (i, j) pairs the
// mask's pattern names, so the output's nonzero pattern never exceeds
// the mask's. Entries whose merge yields no contribution are dropped
// (equivalent to compacting zombies immediately, consistent with this
// engine's eager-update design decision in DESIGN.md).
func dot3(A, B *Matrix, sr semiring.Semiring, mask *Matrix, complement, structural bool) *Matrix {
	outP := make([]int64, mask.vdim+1)
	var outI []int64
	var outX []semiring.Value

	for j := 0; j < mask.vdim; j++ {
		rows := maskRowsOrdered(mask, j, complement, structural)
		for _, i := range rows {
			v, ok := dotEntry(A, B, sr, i, j)
			if !ok {
				continue
			}
			outI = append(outI, int64(i))
			outX = append(outX, v)
		}
		outP[j+1] = int64(len(outI))
	}

	return &Matrix{vlen: A.vdim, vdim: B.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}
}

func maskRowsOrdered(mask *Matrix, j int, complement, structural bool) []int {
	set := maskRowSet(mask, j, complement, structural)
	rows := make([]int, 0, len(set))
	for r := range set {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// dot2 computes every cell of C = Aᵀ·B densely (no mask): used when the
// output is expected to be Bitmap/Full and each (i, j) cell is an
// independent, embarrassingly parallel computation. Returned as Bitmap
// since that is the natural home for a dot2 result.
func dot2(A, B *Matrix, sr semiring.Semiring) *Matrix {
	vlen, vdim := A.vdim, B.vdim
	C := NewBitmap(vlen, vdim, sr.ZType)
	for j := 0; j < vdim; j++ {
		for i := 0; i < vlen; i++ {
			v, ok := dotEntry(A, B, sr, i, j)
			if ok {
				C.Set(i, j, v)
			}
		}
	}
	return C
}
