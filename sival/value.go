// Package sival implements SIValue, the tagged-union scalar that flows
// through every record slot in the pipeline: Null, Bool, Int64, Float64,
// String, Array, Node-ref, Edge-ref and Path, plus the arithmetic and
// hashing rules the rest of the core depends on (Null propagation,
// division-by-zero, group-by hashing).
package sival

import (
	"fmt"
	"strings"
)

// Type tags the dynamic kind of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt64
	TypeFloat64
	TypeString
	TypeArray
	TypeNode
	TypeEdge
	TypePath
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeInt64:
		return "Int64"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeNode:
		return "Node"
	case TypeEdge:
		return "Edge"
	case TypePath:
		return "Path"
	default:
		return "Unknown"
	}
}

// NodeRef is the value stored in a Node-ref slot: an opaque graph entity
// id plus the labels resolved at the time the reference was produced.
type NodeRef struct {
	ID     int64
	Labels []string
}

// EdgeRef is the value stored in an Edge-ref slot.
type EdgeRef struct {
	ID      int64
	RelType string
	Src     int64
	Dst     int64
}

// Path is a node sequence with an edge list alongside it. The
// variable-length and shortest-path traversals fill only Nodes and
// leave Edges empty.
type Path struct {
	Nodes []NodeRef
	Edges []EdgeRef
}

// Value is the immutable tagged union flowing through records.
type Value struct {
	typ   Type
	b     bool
	i     int64
	f     float64
	s     string
	arr   []Value
	node  NodeRef
	edge  EdgeRef
	path  Path
}

// Null returns the Null value.
func Null() Value { return Value{typ: TypeNull} }

// BoolVal wraps a bool.
func BoolVal(b bool) Value { return Value{typ: TypeBool, b: b} }

// Int64Val wraps an int64.
func Int64Val(i int64) Value { return Value{typ: TypeInt64, i: i} }

// Float64Val wraps a float64.
func Float64Val(f float64) Value { return Value{typ: TypeFloat64, f: f} }

// StringVal wraps a string.
func StringVal(s string) Value { return Value{typ: TypeString, s: s} }

// ArrayVal wraps a slice of Values. The slice is not copied.
func ArrayVal(vs []Value) Value { return Value{typ: TypeArray, arr: vs} }

// EmptyArray returns a zero-length Array value.
func EmptyArray() Value { return Value{typ: TypeArray, arr: []Value{}} }

// NodeVal wraps a NodeRef.
func NodeVal(n NodeRef) Value { return Value{typ: TypeNode, node: n} }

// EdgeVal wraps an EdgeRef.
func EdgeVal(e EdgeRef) Value { return Value{typ: TypeEdge, edge: e} }

// PathVal wraps a Path.
func PathVal(p Path) Value { return Value{typ: TypePath, path: p} }

// Type reports the dynamic type of v.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Bool returns the bool payload and whether v is actually a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Int64 returns the int64 payload and whether v is actually an Int64.
func (v Value) Int64() (int64, bool) { return v.i, v.typ == TypeInt64 }

// Float64 returns the float64 payload and whether v is Int64 or Float64
// (Int64 is widened on read, matching Cypher's numeric coercion rules).
func (v Value) Float64() (float64, bool) {
	switch v.typ {
	case TypeFloat64:
		return v.f, true
	case TypeInt64:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// String returns the string payload and whether v is actually a String.
func (v Value) String() (string, bool) { return v.s, v.typ == TypeString }

// Array returns the backing slice and whether v is actually an Array.
func (v Value) Array() ([]Value, bool) { return v.arr, v.typ == TypeArray }

// Node returns the NodeRef payload and whether v is actually a Node.
func (v Value) Node() (NodeRef, bool) { return v.node, v.typ == TypeNode }

// Edge returns the EdgeRef payload and whether v is actually an Edge.
func (v Value) Edge() (EdgeRef, bool) { return v.edge, v.typ == TypeEdge }

// PathValue returns the Path payload and whether v is actually a Path.
func (v Value) PathValue() (Path, bool) { return v.path, v.typ == TypePath }

// IsNumeric reports whether v holds Int64 or Float64.
func (v Value) IsNumeric() bool { return v.typ == TypeInt64 || v.typ == TypeFloat64 }

// GoString renders v for debugging and log lines; it is not a Cypher
// literal format.
func (v Value) GoString() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		return fmt.Sprintf("%v", v.b)
	case TypeInt64:
		return fmt.Sprintf("%d", v.i)
	case TypeFloat64:
		return fmt.Sprintf("%g", v.f)
	case TypeString:
		return v.s
	case TypeArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.GoString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeNode:
		return fmt.Sprintf("Node(%d, %v)", v.node.ID, v.node.Labels)
	case TypeEdge:
		return fmt.Sprintf("Edge(%d, %s, %d->%d)", v.edge.ID, v.edge.RelType, v.edge.Src, v.edge.Dst)
	case TypePath:
		return fmt.Sprintf("Path(%d nodes, %d edges)", len(v.path.Nodes), len(v.path.Edges))
	default:
		return "?"
	}
}
