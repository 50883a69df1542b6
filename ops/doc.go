// Package ops implements the pull-based pipeline operators driven by
// the algebraic expressions package algebra builds: scans, conditional
// and variable-length traversal, the write family (Create, Merge,
// Update, Delete) sharing an ingest→commit→drain state machine, and the
// projection/control family (Filter, Project, Aggregate, Unwind, Skip,
// Limit).
//
// Every concrete operator embeds plan.Base. The clause builders this
// package's init() registers against plan.NodeTag values are the
// indirection that lets plan.BuildPlan construct operators without
// importing this package; the scan operators, SingleRow and
// NodeByIDSeek are not registered.
package ops
