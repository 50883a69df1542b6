package sival

import (
	"encoding/binary"
	"hash/maphash"
	"sort"
)

// seed is shared by every Hash call within a process so that equal values
// always hash equal within one query (the only guarantee the runtime's
// Merge and Aggregate group-by require); it is not required to be
// stable across process restarts or to match any other implementation's
// digest bit-for-bit.
var seed = maphash.MakeSeed()

// Hash returns a 64-bit digest of v, consistent within one process:
// values of the same Type that Equal reports equal hash equal. The
// digest incorporates the dynamic Type, so Int64Val(1) and Float64Val(1)
// hash differently even though Equal reports them equal.
func (v Value) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeType(&h, v.typ)
	switch v.typ {
	case TypeNull:
	case TypeBool:
		if v.b {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case TypeInt64:
		writeInt64(&h, v.i)
	case TypeFloat64:
		writeInt64(&h, int64(v.f*1e9))
	case TypeString:
		h.WriteString(v.s)
	case TypeArray:
		for _, e := range v.arr {
			writeInt64(&h, int64(e.Hash()))
		}
	case TypeNode:
		writeInt64(&h, v.node.ID)
		for _, l := range v.node.Labels {
			h.WriteString(l)
		}
	case TypeEdge:
		writeInt64(&h, v.edge.ID)
		h.WriteString(v.edge.RelType)
		writeInt64(&h, v.edge.Src)
		writeInt64(&h, v.edge.Dst)
	case TypePath:
		for _, n := range v.path.Nodes {
			writeInt64(&h, n.ID)
		}
		for _, e := range v.path.Edges {
			writeInt64(&h, e.ID)
		}
	}
	return h.Sum64()
}

func writeType(h *maphash.Hash, t Type) { h.WriteByte(byte(t)) }

func writeInt64(h *maphash.Hash, i int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	h.Write(buf[:])
}

// HashTuple combines the hashes of a key tuple (e.g. an Aggregate
// group-by key or a Merge identity key) into a single digest.
// Order matters: callers that need an order-independent hash should
// sort the tuple themselves before calling this.
func HashTuple(vs ...Value) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, v := range vs {
		writeInt64(&h, int64(v.Hash()))
	}
	return h.Sum64()
}

// PropertyPair is a single (key, value) pair used to build a stable,
// order-independent entity-identity hash (Merge's dedup key).
type PropertyPair struct {
	Key   string
	Value Value
}

// HashEntity builds the incremental identity hash Merge uses to
// deduplicate staged creations: it combines a label (or relation name)
// with its property map, sorted by key so the result is independent of
// map iteration order. Consistent within one query (same template + same
// data => same hash); it does not reproduce any particular reference
// implementation's bit pattern.
func HashEntity(label string, props []PropertyPair) uint64 {
	sorted := make([]PropertyPair, len(props))
	copy(sorted, props)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(label)
	writeInt64(&h, int64(len(sorted)))
	for _, p := range sorted {
		h.WriteString(p.Key)
		writeInt64(&h, int64(p.Value.Hash()))
	}
	return h.Sum64()
}
