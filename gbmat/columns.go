package gbmat

import "github.com/graphalg/acore/semiring"

// Column returns the row indices and values stored in column j, in
// ascending row-index order: the native storage order for
// Sparse/Hypersparse; for Bitmap/Full it is synthesized by a linear
// scan. The returned slices must not be mutated — for Sparse/
// Hypersparse they alias the matrix's own backing arrays.
func (m *Matrix) Column(j int) (rows []int64, vals []semiring.Value) {
	switch m.format {
	case Sparse:
		lo, hi := m.p[j], m.p[j+1]
		return m.i[lo:hi], m.valuesSlice(lo, hi)
	case Hypersparse:
		hidx := m.hyperIndex(j)
		if hidx < 0 {
			return nil, nil
		}
		lo, hi := m.p[hidx], m.p[hidx+1]
		return m.i[lo:hi], m.valuesSlice(lo, hi)
	case Bitmap, Full:
		rows = make([]int64, 0, m.vlen)
		vals = make([]semiring.Value, 0, m.vlen)
		for r := 0; r < m.vlen; r++ {
			if m.present(r, j) {
				rows = append(rows, int64(r))
				vals = append(vals, m.bx[r*m.vdim+j])
			}
		}
		return rows, vals
	default:
		return nil, nil
	}
}

func (m *Matrix) valuesSlice(lo, hi int64) []semiring.Value {
	if m.iso {
		out := make([]semiring.Value, hi-lo)
		for idx := range out {
			out[idx] = m.x[0]
		}
		return out
	}
	return m.x[lo:hi]
}

// hyperIndex returns the position of column j within the Hypersparse
// hyperlist h, or -1 if j has no stored entries. h is kept sorted
// ascending so this is a binary search.
func (m *Matrix) hyperIndex(j int) int {
	lo, hi := 0, len(m.h)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.h[mid] < int64(j) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.h) && m.h[lo] == int64(j) {
		return lo
	}
	return -1
}

func (m *Matrix) present(r, j int) bool {
	switch m.format {
	case Bitmap:
		return m.bitmap[r*m.vdim+j]
	case Full:
		return true
	default:
		rows, _ := m.Column(j)
		for _, rr := range rows {
			if int(rr) == r {
				return true
			}
		}
		return false
	}
}

// At returns the value stored at (i, j) and whether it is structurally
// present.
func (m *Matrix) At(i, j int) (semiring.Value, bool) {
	switch m.format {
	case Bitmap:
		if !m.bitmap[i*m.vdim+j] {
			return semiring.Value{}, false
		}
		return m.bx[i*m.vdim+j], true
	case Full:
		return m.bx[i*m.vdim+j], true
	default:
		rows, vals := m.Column(j)
		for idx, r := range rows {
			if int(r) == i {
				return vals[idx], true
			}
		}
		return semiring.Value{}, false
	}
}

// Set assigns the value at (i, j), growing storage as needed. Set is
// the uniform mutation path used by Build and by the kernels' output
// writers; it is not optimized for random-access bulk loads (use Build
// for that).
func (m *Matrix) Set(i, j int, v semiring.Value) {
	switch m.format {
	case Bitmap:
		m.bitmap[i*m.vdim+j] = true
		m.bx[i*m.vdim+j] = v
		m.nvecNonempty = -1
		return
	case Full:
		m.bx[i*m.vdim+j] = v
		return
	default:
		m.setSparse(i, j, v)
	}
}

func (m *Matrix) setSparse(i, j int, v semiring.Value) {
	rows, _ := m.Column(j)
	for idx, r := range rows {
		if int(r) == i {
			lo := m.columnStart(j)
			m.x[lo+int64(idx)] = v
			return
		}
	}
	m.insertSparse(i, j, v)
}

func (m *Matrix) columnStart(j int) int64 {
	if m.format == Hypersparse {
		hidx := m.hyperIndex(j)
		if hidx < 0 {
			return -1
		}
		return m.p[hidx]
	}
	return m.p[j]
}

// insertSparse inserts (i, j, v) into a Sparse or Hypersparse matrix,
// maintaining ascending row order within the column. This rebuilds the
// backing arrays; callers doing bulk loads should prefer Build.
func (m *Matrix) insertSparse(i, j int, v semiring.Value) {
	I, J, X := m.ExtractTuples()
	I = append(I, int64(i))
	J = append(J, int64(j))
	X = append(X, v)
	rebuilt := Build(m.vlen, m.vdim, I, J, X, lastWins, m.format == Hypersparse)
	*m = *rebuilt
}

func lastWins(a, b semiring.Value) semiring.Value { return b }
