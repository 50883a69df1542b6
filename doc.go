// Package acore is a sparse-matrix core for evaluating Cypher-style graph
// patterns as linear algebra.
//
// 🚀 What is acore?
//
//	A small, composable engine that expresses pattern matching over a
//	property graph — MATCH, variable-length traversal, MERGE, aggregation —
//	as operations on sparse adjacency matrices over a semiring:
//
//	  • Matrix engine:    sparse matrices, semirings, and the kernels
//	                      (multiply, transpose, element-wise combine) that
//	                      make pattern evaluation a handful of matrix ops
//	  • Pattern algebra:  compiles a query's node/edge pattern into a chain
//	                      of matrix expressions, one per path segment
//	  • Operator library: the scan, traverse, filter, project, aggregate,
//	                      and write (CREATE/MERGE/SET/DELETE) operators a
//	                      compiled plan is built from
//	  • Plan runtime:     assembles operators from an AST into an executable
//	                      plan and drives it to completion
//
// ✨ Design goals
//
//   - Explicit          — no hidden global state; graph, semiring, and
//     config are threaded through every call
//   - Composable         — each operator is a small, independently testable
//     unit with a uniform Init/Consume/Reset/Free lifecycle
//   - Matrix-native      — traversal is matrix multiplication, not pointer
//     chasing, so the same operator works across semirings
//
// Under the hood, everything is organized under dedicated packages:
//
//	gbmat/    — sparse matrix type, descriptors, and kernels
//	algebra/  — pattern-to-matrix-expression compiler and optimizer
//	ops/      — the operator library plans are built from
//	plan/     — AST-to-plan assembly and execution
//	catalog/  — in-memory node/edge store implementing storage.Graph
//	cmd/algcore/ — a stand-alone driver exercising the stack end to end
//
// See DESIGN.md for the grounding behind each package and the open design
// decisions recorded along the way.
package acore
