// Package gbmat implements the sparse-matrix evaluation engine: the
// storage variants (sparse, hypersparse, bitmap, full), the semiring
// kernels (Gustavson, dot, heap-saxpy), transpose, masking, and
// type-casting the algebraic expression layer evaluates against.
//
// Matrices follow the column-compressed convention used throughout the
// rest of the core: entry (i, j) of an adjacency matrix is present iff
// an edge of the matched relation goes from node j to node i, so a
// column is a vector of in-neighbors and MxM composes traversals
// right-to-left.
package gbmat

import "github.com/graphalg/acore/semiring"

// Format is the storage variant a Matrix is currently held in.
type Format int

const (
	// Sparse is compressed-sparse-column: p[0..vdim] column pointers,
	// i[0..nnz) row indices (sorted within each column unless Jumbled),
	// x[0..nnz) values (a single stored value in x[0] when Iso).
	Sparse Format = iota
	// Hypersparse additionally stores h, the list of non-empty column
	// indices, so p has len(h)+1 entries instead of vdim+1.
	Hypersparse
	// Bitmap stores a dense vlen*vdim presence bitmap alongside a dense
	// value array; cheap random access, O(vlen*vdim) memory.
	Bitmap
	// Full has every cell present; no presence tracking at all.
	Full
)

func (f Format) String() string {
	switch f {
	case Sparse:
		return "sparse"
	case Hypersparse:
		return "hypersparse"
	case Bitmap:
		return "bitmap"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Matrix is the vlen x vdim sparse/dense matrix the rest of the core
// operates on. Exactly one storage variant is active at a time, tracked
// by Format. A Matrix may be Iso (every present value equals the single
// stored constant in x[0]) or Shallow (one or more buffers are borrowed
// from a parent and must not be freed here).
type Matrix struct {
	vlen, vdim int
	format     Format
	typ        semiring.Type

	iso     bool
	jumbled bool

	// nvecNonempty caches the count of non-empty columns, or -1 when
	// unknown (e.g. immediately after a bulk Build that hasn't been
	// compacted). Nvec() recomputes lazily when -1.
	nvecNonempty int

	// Sparse / Hypersparse storage.
	p []int64          // column pointers: len(vdim)+1, or len(h)+1 if Hypersparse
	h []int64          // Hypersparse only: non-empty column indices, sorted ascending
	i []int64          // row indices, len == nnz
	x []semiring.Value // values, len == nnz, or len == 1 when Iso

	// Bitmap / Full storage.
	bitmap []bool
	bx     []semiring.Value

	// Per-buffer shallow (borrowed) flags. Free() must not release a
	// buffer whose flag is set; the owner of the parent buffer is
	// responsible for its lifetime instead.
	pShallow, hShallow, iShallow, xShallow, bitmapShallow, bxShallow bool
}

// NewSparse allocates an empty Sparse matrix of the given dimensions and
// scalar type.
func NewSparse(vlen, vdim int, typ semiring.Type) *Matrix {
	return &Matrix{
		vlen: vlen, vdim: vdim, format: Sparse, typ: typ,
		nvecNonempty: 0,
		p:            make([]int64, vdim+1),
	}
}

// NewHypersparse allocates an empty Hypersparse matrix.
func NewHypersparse(vlen, vdim int, typ semiring.Type) *Matrix {
	return &Matrix{
		vlen: vlen, vdim: vdim, format: Hypersparse, typ: typ,
		nvecNonempty: 0,
		p:            []int64{0},
		h:            []int64{},
	}
}

// NewBitmap allocates an empty Bitmap matrix.
func NewBitmap(vlen, vdim int, typ semiring.Type) *Matrix {
	return &Matrix{
		vlen: vlen, vdim: vdim, format: Bitmap, typ: typ,
		nvecNonempty: -1,
		bitmap:       make([]bool, vlen*vdim),
		bx:           make([]semiring.Value, vlen*vdim),
	}
}

// NewFull allocates a Full matrix with every cell initialized to fill.
func NewFull(vlen, vdim int, typ semiring.Type, fill semiring.Value) *Matrix {
	bx := make([]semiring.Value, vlen*vdim)
	for idx := range bx {
		bx[idx] = fill
	}
	return &Matrix{
		vlen: vlen, vdim: vdim, format: Full, typ: typ,
		nvecNonempty: vdim,
		bx:           bx,
	}
}

// Dim returns (vlen, vdim).
func (m *Matrix) Dim() (int, int) { return m.vlen, m.vdim }

// Format reports the active storage variant.
func (m *Matrix) Format() Format { return m.format }

// Type reports the scalar domain of stored values.
func (m *Matrix) Type() semiring.Type { return m.typ }

// Iso reports whether every present value equals a single stored constant.
func (m *Matrix) Iso() bool { return m.iso }

// Shallow reports whether any backing buffer is borrowed from a parent
// matrix; such a matrix must never be handed back to a caller that might
// free it, only used as a transient view (see ownership note in §9 of
// the design: this replaces the source's per-buffer shallow-free flags
// with an explicit check here and an all-or-nothing ShallowCopy/ Free
// contract for the wrapper as a whole).
func (m *Matrix) Shallow() bool {
	return m.pShallow || m.hShallow || m.iShallow || m.xShallow || m.bitmapShallow || m.bxShallow
}

// Nnz returns the number of stored (structurally present) entries.
func (m *Matrix) Nnz() int {
	switch m.format {
	case Sparse, Hypersparse:
		return len(m.i)
	case Bitmap:
		n := 0
		for _, b := range m.bitmap {
			if b {
				n++
			}
		}
		return n
	case Full:
		return m.vlen * m.vdim
	default:
		return 0
	}
}

// Nvec returns the number of non-empty columns (vectors).
func (m *Matrix) Nvec() int {
	switch m.format {
	case Hypersparse:
		return len(m.h)
	case Sparse:
		if m.nvecNonempty >= 0 {
			return m.nvecNonempty
		}
		n := 0
		for j := 0; j < m.vdim; j++ {
			if m.p[j+1] > m.p[j] {
				n++
			}
		}
		m.nvecNonempty = n
		return n
	case Bitmap, Full:
		return m.vdim
	default:
		return 0
	}
}

// Wait finalizes any pending work. The engine applies writes eagerly
// (see DESIGN.md), so Wait is a structural no-op kept for symmetry with
// its build contract.
func (m *Matrix) Wait() error { return nil }

// Free releases m's owned buffers. Buffers flagged Shallow are left
// untouched since a parent matrix still owns them.
func (m *Matrix) Free() {
	if !m.pShallow {
		m.p = nil
	}
	if !m.hShallow {
		m.h = nil
	}
	if !m.iShallow {
		m.i = nil
	}
	if !m.xShallow {
		m.x = nil
	}
	if !m.bitmapShallow {
		m.bitmap = nil
	}
	if !m.bxShallow {
		m.bx = nil
	}
}

// ShallowCopy returns a new Matrix header sharing every backing buffer
// with m, with every buffer's shallow flag set. The result must never be
// mutated or returned to a caller that might Free it; it exists purely
// as a transient, allocation-free view (e.g. to pass a borrowed operand
// into a kernel without granting ownership).
func (m *Matrix) ShallowCopy() *Matrix {
	c := *m
	c.pShallow, c.hShallow, c.iShallow, c.xShallow, c.bitmapShallow, c.bxShallow = true, true, true, true, true, true
	return &c
}
