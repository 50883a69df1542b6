// Package record implements the Record type that flows through the
// operator pipeline: an ordered array of SIValue slots whose indices are
// fixed at plan-build time. Records are not pooled.
package record

import "github.com/graphalg/acore/sival"

// Record is one row flowing through the pipeline. Slot indices are
// assigned once, at plan-build time; every operator only ever touches the
// indices in its own static Modifies() set.
type Record struct {
	slots []sival.Value
}

// New allocates a Record with n Null slots.
func New(n int) *Record {
	r := &Record{slots: make([]sival.Value, n)}
	for i := range r.slots {
		r.slots[i] = sival.Null()
	}
	return r
}

// Len returns the number of slots.
func (r *Record) Len() int { return len(r.slots) }

// Get returns the value at idx. idx must be within [0, Len()); callers
// that reach into a record via a plan-build-time index never need to
// bounds check, mirroring the "operators only touch their own indices"
// invariant.
func (r *Record) Get(idx int) sival.Value { return r.slots[idx] }

// Set assigns the value at idx.
func (r *Record) Set(idx int, v sival.Value) { r.slots[idx] = v }

// Clone returns an independent copy of r. The pipeline clones a record
// whenever a consumer fans out to more than one downstream operator
// (e.g. Merge's match/create branches, or a Cartesian join).
func (r *Record) Clone() *Record {
	c := &Record{slots: make([]sival.Value, len(r.slots))}
	copy(c.slots, r.slots)
	return c
}

// Sink is the external result-set collaborator: run_plan hands every
// produced Record to a Sink, which is responsible for formatting —
// deliberately left to the caller rather than built into this core.
type Sink interface {
	Emit(r *Record) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(r *Record) error

func (f SinkFunc) Emit(r *Record) error { return f(r) }

// Collector is a Sink that accumulates every emitted Record in memory;
// used by tests and by the CLI driver.
type Collector struct {
	Records []*Record
}

func (c *Collector) Emit(r *Record) error {
	c.Records = append(c.Records, r)
	return nil
}
