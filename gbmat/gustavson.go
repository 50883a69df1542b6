package gbmat

import (
	"sort"

	"github.com/graphalg/acore/semiring"
)

// gustavson computes C = A*B (or C<mask> = A*B) one column of B at a
// time: for each nonzero b_kj, scan column k of A and scatter
// sr.Mul(a_ik, b_kj) into a dense accumulator (the Sauna) keyed by row
// index i, combining repeated hits with sr.Add. Two passes per output
// column: a symbolic pass that deposits the row pattern (bounded by the
// mask, when present, so nnz(C(:,j)) <= nnz(mask(:,j))), then a numeric
// pass that fills values for exactly the deposited rows.
//
// Chosen by the method-selection layer (chooseAndRun) for every
// untransposed product except an unmasked one whose operands are both
// small hypersparse matrices, which goes to heapSaxpy.
func gustavson(A, B *Matrix, sr semiring.Semiring, mask *Matrix, maskComplement, maskStructural bool) *Matrix {
	vlen := A.vlen
	sauna := AcquireSauna(vlen)
	defer ReleaseSauna(sauna)

	outP := make([]int64, B.vdim+1)
	var outI []int64
	var outX []semiring.Value

	for j := 0; j < B.vdim; j++ {
		sauna.Reset(vlen)
		bRows, bVals := B.Column(j)

		var maskSet map[int]bool
		if mask != nil {
			maskSet = maskRowSet(mask, j, maskComplement, maskStructural)
		}

		// Symbolic pass: deposit the pattern.
		rowsInCol := make([]int, 0, len(bRows))
		for _, k := range bRows {
			aRows, _ := A.Column(int(k))
			for _, i := range aRows {
				if maskSet != nil && !maskSet[int(i)] {
					continue
				}
				if !sauna.seen(int(i)) {
					sauna.markDeposit(int(i))
					rowsInCol = append(rowsInCol, int(i))
				}
			}
		}
		sort.Ints(rowsInCol)

		// Numeric pass: fill values for exactly the deposited rows.
		for idx, k := range bRows {
			bkj := bVals[idx]
			aRows, aVals := A.Column(int(k))
			for ridx, i := range aRows {
				if maskSet != nil && !maskSet[int(i)] {
					continue
				}
				contrib := sr.Mul(aVals[ridx], bkj)
				if sauna.seenOnce(int(i)) {
					sauna.Work[i] = contrib
					sauna.markAccumulate(int(i))
				} else {
					sauna.Work[i] = sr.Add(sauna.Work[i], contrib)
				}
			}
		}

		for _, i := range rowsInCol {
			outI = append(outI, int64(i))
			outX = append(outX, sauna.Work[i])
		}
		outP[j+1] = int64(len(outI))
	}

	return &Matrix{vlen: A.vlen, vdim: B.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}
}

// maskRowSet returns the set of rows row i for which mask(i, j) applies,
// honoring structural-vs-valued and complement semantics.
func maskRowSet(mask *Matrix, j int, complement, structural bool) map[int]bool {
	rows, vals := mask.Column(j)
	set := make(map[int]bool, len(rows))
	for idx, r := range rows {
		ok := true
		if !structural {
			ok = isTruthy(vals[idx])
		}
		if ok {
			set[int(r)] = true
		}
	}
	if !complement {
		return set
	}
	full := make(map[int]bool)
	for i := 0; i < mask.vlen; i++ {
		if !set[i] {
			full[i] = true
		}
	}
	return full
}

func isTruthy(v semiring.Value) bool {
	switch v.Typ {
	case semiring.Bool:
		return v.B
	case semiring.Int64:
		return v.I != 0
	case semiring.Float64:
		return v.F != 0
	default:
		return true
	}
}
