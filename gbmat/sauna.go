package gbmat

import (
	"sync"

	"github.com/graphalg/acore/semiring"
)

// Sauna is the per-worker Gustavson scratch workspace: a dense mark
// array and a dense value array, both keyed by row index. A
// monotonically increasing hiwater counter lets successive columns
// reuse the same Mark array without re-zeroing it between columns —
// row i was touched during the current column iff Mark[i] == hiwater
// (seen once) or hiwater+1 (seen and accumulated into).
type Sauna struct {
	Mark    []int64
	Work    []semiring.Value
	hiwater int64
}

// NewSauna allocates a Sauna sized for vectors of length vlen.
func NewSauna(vlen int) *Sauna {
	return &Sauna{Mark: make([]int64, vlen), Work: make([]semiring.Value, vlen)}
}

// Reset grows the Sauna to at least vlen, never shrinking it, and
// advances the hiwater mark so the previous column's entries read as
// unseen without a scan.
func (s *Sauna) Reset(vlen int) {
	if len(s.Mark) < vlen {
		newMark := make([]int64, vlen)
		copy(newMark, s.Mark)
		s.Mark = newMark
		newWork := make([]semiring.Value, vlen)
		copy(newWork, s.Work)
		s.Work = newWork
	}
	s.hiwater += 2
}

// seenOnce reports whether row i was deposited (symbolic pass) but not
// yet accumulated (numeric pass) during the current column.
func (s *Sauna) seenOnce(i int) bool { return s.Mark[i] == s.hiwater }

// seen reports whether row i has been touched at all during the current
// column (either phase).
func (s *Sauna) seen(i int) bool { return s.Mark[i] == s.hiwater || s.Mark[i] == s.hiwater+1 }

func (s *Sauna) markDeposit(i int) { s.Mark[i] = s.hiwater }
func (s *Sauna) markAccumulate(i int) { s.Mark[i] = s.hiwater + 1 }

// saunaPool amortizes Sauna allocation across operators on the same
// worker goroutine; sync.Pool is the idiomatic Go substitute for
// per-thread-local scratch storage.
var saunaPool = sync.Pool{New: func() any { return NewSauna(0) }}

// AcquireSauna checks out a Sauna sized for at least vlen from the pool,
// growing it monotonically if needed. Callers must call ReleaseSauna
// when done so the workspace can be reused by the next kernel call.
func AcquireSauna(vlen int) *Sauna {
	s := saunaPool.Get().(*Sauna)
	s.Reset(vlen)
	return s
}

// ReleaseSauna returns s to the pool.
func ReleaseSauna(s *Sauna) { saunaPool.Put(s) }
