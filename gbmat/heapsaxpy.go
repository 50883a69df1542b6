package gbmat

import (
	"container/heap"

	"github.com/graphalg/acore/semiring"
)

// heapRow is one (row, column-of-A, value) tuple live in the merge heap;
// col tracks which of B's selected A-columns this row came from so the
// heap can advance that column's cursor after popping it.
type heapRow struct {
	row int64
	val semiring.Value
	col int // index into the active-columns slice
}

type rowHeap []heapRow

func (h rowHeap) Len() int            { return len(h) }
func (h rowHeap) Less(i, j int) bool  { return h[i].row < h[j].row }
func (h rowHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rowHeap) Push(x interface{}) { *h = append(*h, x.(heapRow)) }
func (h *rowHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapSaxpy computes C = A*B for hypersparse operands with few non-empty
// columns, using a min-heap merge instead of Gustavson's dense
// accumulator: for output column j, gather the active columns of A
// selected by B(:, j), push their current row cursors into a heap,
// repeatedly pop the smallest row and fold in its contribution, then
// advance that column's cursor. Lower peak memory than Gustavson for
// very sparse inputs since no vlen-sized workspace is touched.
func heapSaxpy(A, B *Matrix, sr semiring.Semiring) *Matrix {
	outP := make([]int64, B.vdim+1)
	var outI []int64
	var outX []semiring.Value

	for j := 0; j < B.vdim; j++ {
		bRows, bVals := B.Column(j)

		type cursor struct {
			rows []int64
			vals []semiring.Value
			pos  int
			mul  semiring.Value // B(k, j), the saxpy scalar for this A column
		}
		cursors := make([]*cursor, 0, len(bRows))
		for idx, k := range bRows {
			rows, vals := A.Column(int(k))
			if len(rows) == 0 {
				continue
			}
			cursors = append(cursors, &cursor{rows: rows, vals: vals, mul: bVals[idx]})
		}

		h := make(rowHeap, 0, len(cursors))
		for ci, c := range cursors {
			h = append(h, heapRow{row: c.rows[0], val: sr.Mul(c.vals[0], c.mul), col: ci})
		}
		heap.Init(&h)

		var curRow int64 = -1
		var acc semiring.Value
		haveAcc := false
		flush := func() {
			if haveAcc {
				outI = append(outI, curRow)
				outX = append(outX, acc)
			}
		}
		for h.Len() > 0 {
			top := heap.Pop(&h).(heapRow)
			if haveAcc && top.row == curRow {
				acc = sr.Add(acc, top.val)
			} else {
				flush()
				curRow = top.row
				acc = top.val
				haveAcc = true
			}

			c := cursors[top.col]
			c.pos++
			if c.pos < len(c.rows) {
				heap.Push(&h, heapRow{row: c.rows[c.pos], val: sr.Mul(c.vals[c.pos], c.mul), col: top.col})
			}
		}
		flush()
		outP[j+1] = int64(len(outI))
	}

	return &Matrix{vlen: A.vlen, vdim: B.vdim, format: Sparse, typ: sr.ZType, p: outP, i: outI, x: outX, nvecNonempty: -1}
}
