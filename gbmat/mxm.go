package gbmat

import "github.com/graphalg/acore/semiring"

// MxM computes C = A*B under sr, honoring desc's transpose and mask
// toggles, and returns the result rather than writing in place: the
// algebra package's evaluator treats every intermediate as a fresh value
// and relies on the matrix engine, not the caller, to pick the storage
// format and kernel. Dimension mismatches are reported rather than
// panicking since they can originate from a malformed query pattern, not
// just a programming error.
func MxM(sr semiring.Semiring, A, B *Matrix, desc Descriptor) (*Matrix, error) {
	aVlen, aVdim := A.vlen, A.vdim
	if desc.TransposeA {
		aVlen, aVdim = aVdim, aVlen
	}
	bVlen, bVdim := B.vlen, B.vdim
	if desc.TransposeB {
		bVlen, bVdim = bVdim, bVlen
	}
	if aVdim != bVlen {
		return nil, ErrDimensionMismatch
	}
	if desc.Mask != nil {
		mVlen, mVdim := desc.Mask.Dim()
		if mVlen != aVlen || mVdim != bVdim {
			return nil, ErrDimensionMismatch
		}
	}

	return chooseAndRun(A, B, sr, desc), nil
}
