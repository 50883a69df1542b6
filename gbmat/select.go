package gbmat

import "github.com/graphalg/acore/semiring"

// heapSaxpyNvecThreshold is the Nvec() ceiling below which both operands
// are considered to have "few non-empty columns" for the purposes of
// choosing the heap-saxpy kernel over Gustavson's dense accumulator, per
// the method-selection rule below.
const heapSaxpyNvecThreshold = 64

// chooseAndRun picks among the Gustavson, dot, and heap-saxpy kernels and
// runs it, honoring desc's transpose/mask toggles. The transpose case is
// routed to the dot family directly rather than materializing Aᵀ first
// (except when both operands are small hypersparse matrices, where
// heapSaxpyTransposed materializes Aᵀ):
// dotEntry already computes a cell of Aᵀ·B from A's own columns, which is
// exactly the product the dot kernels were built for and exactly the
// shape an inbound-direction traversal operand produces.
func chooseAndRun(A, B *Matrix, sr semiring.Semiring, desc Descriptor) *Matrix {
	bEff := B
	if desc.TransposeB {
		bEff = Transpose(B)
	}

	if desc.TransposeA {
		switch {
		case desc.Mask != nil:
			return dot3(A, bEff, sr, desc.Mask, desc.MaskComplement, desc.MaskStructural)
		case isSmallHypersparse(A) && isSmallHypersparse(bEff):
			return heapSaxpyTransposed(A, bEff, sr)
		default:
			return dot2(A, bEff, sr)
		}
	}

	switch {
	case desc.Mask != nil:
		return gustavson(A, bEff, sr, desc.Mask, desc.MaskComplement, desc.MaskStructural)
	case isSmallHypersparse(A) && isSmallHypersparse(bEff):
		return heapSaxpy(A, bEff, sr)
	default:
		return gustavson(A, bEff, sr, nil, false, false)
	}
}

func isSmallHypersparse(m *Matrix) bool {
	return m.format == Hypersparse && m.Nvec() <= heapSaxpyNvecThreshold
}

// heapSaxpyTransposed computes C = Aᵀ*B. Both operands are already
// hypersparse with few columns here, so materializing Aᵀ is cheap and
// lets the same heapSaxpy merge logic serve both the transposed and
// untransposed cases instead of duplicating it.
func heapSaxpyTransposed(A, B *Matrix, sr semiring.Semiring) *Matrix {
	return heapSaxpy(Transpose(A), B, sr)
}
