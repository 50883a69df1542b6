package gbmat

import "github.com/graphalg/acore/semiring"

// EWiseAdd computes C = A ⊕ B over the union of A and B's patterns,
// combining a cell present in both with sr.Add and passing through a
// cell present in only one unchanged. This is what the sum-of-products
// normalization in the algebra package folds sibling ADD branches with
// once each has been reduced to a matrix.
func EWiseAdd(sr semiring.Semiring, A, B *Matrix, desc Descriptor) (*Matrix, error) {
	if A.vlen != B.vlen || A.vdim != B.vdim {
		return nil, ErrDimensionMismatch
	}

	outP := make([]int64, A.vdim+1)
	var outI []int64
	var outX []semiring.Value

	var maskSet func(j int) map[int]bool
	if desc.Mask != nil {
		maskSet = func(j int) map[int]bool {
			return maskRowSet(desc.Mask, j, desc.MaskComplement, desc.MaskStructural)
		}
	}

	for j := 0; j < A.vdim; j++ {
		aRows, aVals := A.Column(j)
		bRows, bVals := B.Column(j)

		var allow map[int]bool
		if maskSet != nil {
			allow = maskSet(j)
		}

		ai, bi := 0, 0
		for ai < len(aRows) || bi < len(bRows) {
			switch {
			case bi >= len(bRows) || (ai < len(aRows) && aRows[ai] < bRows[bi]):
				if allow == nil || allow[int(aRows[ai])] {
					outI = append(outI, aRows[ai])
					outX = append(outX, aVals[ai])
				}
				ai++
			case ai >= len(aRows) || bRows[bi] < aRows[ai]:
				if allow == nil || allow[int(bRows[bi])] {
					outI = append(outI, bRows[bi])
					outX = append(outX, bVals[bi])
				}
				bi++
			default:
				if allow == nil || allow[int(aRows[ai])] {
					outI = append(outI, aRows[ai])
					outX = append(outX, sr.Add(aVals[ai], bVals[bi]))
				}
				ai++
				bi++
			}
		}
		outP[j+1] = int64(len(outI))
	}

	return &Matrix{vlen: A.vlen, vdim: A.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}, nil
}
