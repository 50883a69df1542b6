package ops

import (
	"github.com/graphalg/acore/expr"
	"github.com/graphalg/acore/plan"
	"github.com/graphalg/acore/record"
	"github.com/graphalg/acore/sival"
)

type writePhase int

const (
	phaseIngest writePhase = iota
	phaseCommit
	phaseDrain
	phaseDone
)

// writeBase implements the ingest→commit→drain state machine every
// write operator shares: every upstream
// record is pulled and staged during ingest, the concrete operator's
// commit applies every staged mutation to storage.Graph once while
// holding the single commit lock for the shortest possible span, and
// drain re-emits the produced records in LIFO order — last staged,
// first emitted, mirroring a call-stack unwind rather than a queue.
type writeBase struct {
	plan.Base
	phase   writePhase
	pending []*record.Record
	staged  []*record.Record
}

func (w *writeBase) resetMachine() {
	w.phase = phaseIngest
	w.pending = nil
	w.staged = nil
}

func (w *writeBase) ingest() error {
	for {
		r, err := w.Pull()
		if err != nil {
			return err
		}
		if r == nil {
			return nil
		}
		w.pending = append(w.pending, r)
	}
}

// drainNext pops the most recently staged record.
func (w *writeBase) drainNext() *record.Record {
	if len(w.staged) == 0 {
		return nil
	}
	last := w.staged[len(w.staged)-1]
	w.staged = w.staged[:len(w.staged)-1]
	return last
}

// runMachine drives phases ingest→commit, invoking commit exactly once
// under ctx.Graph.CommitLock, then returns the next drained record (or
// nil once both pending and staged are exhausted).
func (w *writeBase) runMachine(commit func() error) (*record.Record, error) {
	if w.phase == phaseIngest {
		if err := w.ingest(); err != nil {
			return nil, err
		}
		w.phase = phaseCommit
	}
	if w.phase == phaseCommit {
		lock := w.Ctx.Graph.CommitLock()
		lock.Lock()
		err := commit()
		lock.Unlock()
		if err != nil {
			w.Ctx.Logger.Error("write commit failed, no staged record will be emitted",
				"error", err, "pending", len(w.pending))
			return nil, err
		}
		w.Ctx.Logger.Debug("write commit succeeded", "staged", len(w.staged))
		w.phase = phaseDrain
	}
	r := w.drainNext()
	if r == nil {
		w.phase = phaseDone
	}
	return r, nil
}

// evalProps evaluates a property-expression map against r.
func evalProps(props map[string]expr.Expr, r *record.Record) (map[string]sival.Value, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make(map[string]sival.Value, len(props))
	for k, e := range props {
		v, err := e.Eval(r)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
