// Package plan builds and executes the operator DAG: Context bundles the
// per-query collaborators every operator needs (storage, semiring,
// memory accounting, cancellation), Plan wraps the built DAG root, and
// BuildPlan/RunPlan/Execute are the three external entry points this
// core exposes.
package plan

import (
	"context"
	"log/slog"

	"github.com/graphalg/acore/config"
	"github.com/graphalg/acore/errs"
	"github.com/graphalg/acore/semiring"
	"github.com/graphalg/acore/storage"
)

// Context is threaded through Init and held for the lifetime of one
// plan execution. It is not safe for concurrent Consume calls from more
// than one operator tree position unless those operators were produced
// by Clone, matching the single-reader-per-cloned-branch model.
type Context struct {
	Ctx    context.Context
	Graph  storage.Graph
	Sring  semiring.Semiring
	Config *config.Config
	Mem    *config.MemoryTracker

	// Breakpoint captures the first runtime error tripped by any
	// operator in the DAG; RunPlan checks it after the pull loop ends.
	Breakpoint *errs.Breakpoint

	// Logger receives structured events from the plan/write-operator
	// commit machinery. Defaults to slog.Default() since no pack
	// library offers structured logging (see DESIGN.md); an embedding
	// host can still get its own handler by building its own Context.
	Logger *slog.Logger
}

// NewContext builds a Context for one plan execution.
func NewContext(ctx context.Context, g storage.Graph, sr semiring.Semiring, cfg *config.Config) *Context {
	return &Context{
		Ctx:        ctx,
		Graph:      g,
		Sring:      sr,
		Config:     cfg,
		Mem:        config.NewMemoryTracker(cfg.QueryMemCap),
		Breakpoint: &errs.Breakpoint{},
		Logger:     slog.Default(),
	}
}

// Cancelled reports whether the context was cancelled or timed out,
// e.g. a client disconnect, so a long-running plan can unwind promptly.
func (c *Context) Cancelled() error {
	select {
	case <-c.Ctx.Done():
		return c.Ctx.Err()
	default:
		return nil
	}
}
