package hessian
// OrderedMap is the concrete container this decoder builds for
// Hessian map values ('H' and 'M' opcodes).
//
// Hessian explicitly allows arbitrary key types — including composite
// (vector/map/object) keys, see spec §4.5 and Open Question (a) — so
// lookups cannot rely on Go's builtin map, which panics on
// non-comparable key types such as []interface{}. OrderedMap instead
// hashes and compares keys structurally, the same approach
// kisielk/og-rek's Dict takes for Python's cross-type key equality,
// trimmed here to Hessian's (disjoint, non-numeric-tower) value
// domain, with an explicit insertion-order key list layered on top
// because the decoded map must preserve wire order.

import (
	"fmt"
	"hash/maphash"
	"reflect"
	"sort"
	"time"

	"github.com/aristanetworks/gomap"
)

// OrderedMap is an insertion-ordered map keyed by arbitrary decoded
// Hessian values, including composite ones.
//
// Its zero value is not ready to use; construct with NewOrderedMap or
// NewOrderedMapWithSizeHint.
type OrderedMap struct {
	m    *gomap.Map[any, any]
	keys []any
}

// NewOrderedMap returns a new, empty ordered map.
func NewOrderedMap() *OrderedMap {
	return NewOrderedMapWithSizeHint(0)
}

// NewOrderedMapWithSizeHint returns a new, empty ordered map with
// preallocated space for size entries.
func NewOrderedMapWithSizeHint(size int) *OrderedMap {
	return &OrderedMap{
		m:    gomap.NewHint[any, any](size, valueEqual, valueHash),
		keys: make([]any, 0, size),
	}
}

// Len returns the number of entries in the map.
func (o *OrderedMap) Len() int {
	return o.m.Len()
}

// Get_ is the comma-ok accessor: it returns the value associated with
// a key equal to query, and whether such a key is present.
func (o *OrderedMap) Get_(key any) (value any, ok bool) {
	return o.m.Get(key)
}

// Get returns the value associated with a key equal to query, or nil
// if absent.
func (o *OrderedMap) Get(key any) any {
	v, _ := o.Get_(key)
	return v
}

// Set associates value with key, preserving the key's original
// insertion position if it was already present, or appending it to
// the iteration order if it is new.
func (o *OrderedMap) Set(key, value any) {
	if _, had := o.m.Get(key); !had {
		o.keys = append(o.keys, key)
	}
	o.m.Set(key, value)
}

// Iter calls yield for every key/value pair in insertion order,
// stopping early if yield returns false.
func (o *OrderedMap) Iter(yield func(key, value any) bool) {
	for _, k := range o.keys {
		v, ok := o.m.Get(k)
		if !ok {
			continue // removed since insertion; shouldn't happen via Set alone
		}
		if !yield(k, v) {
			return
		}
	}
}

// Equal reports whether o and other contain the same set of
// key/value pairs, independent of insertion order.
func (o *OrderedMap) Equal(other *OrderedMap) bool {
	if o.Len() != other.Len() {
		return false
	}
	eq := true
	o.Iter(func(k, v any) bool {
		ov, ok := other.Get_(k)
		if !ok || !valueEqual(v, ov) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

// String returns a human-readable representation of the map.
func (o *OrderedMap) String() string {
	return o.sprintf("%v")
}

func (o *OrderedMap) sprintf(format string) string {
	type kv struct{ k, v string }
	vkv := make([]kv, 0, o.Len())
	o.Iter(func(k, v any) bool {
		vkv = append(vkv, kv{k: fmt.Sprintf(format, k), v: fmt.Sprintf(format, v)})
		return true
	})
	sort.Slice(vkv, func(i, j int) bool { return vkv[i].k < vkv[j].k })

	s := "{"
	for i, e := range vkv {
		if i > 0 {
			s += ", "
		}
		s += e.k + ": " + e.v
	}
	s += "}"
	return s
}

// ---- structural equality & hashing over the decoded value domain ----
//
// valueEqual/valueHash back OrderedMap's key comparisons. Ported from
// kisielk/og-rek's dict.go equal/hash/kind, trimmed from Python's
// numeric-tower cross-type rules to Hessian's simpler, disjoint types,
// with recursive handling for the three composite cases (*Vector,
// *OrderedMap, *Object) that the Python original didn't need to worry
// about as map keys in quite the same shape.

func valueEqual(xa, xb any) bool {
	switch a := xa.(type) {
	case bool:
		b, ok := xb.(bool)
		return ok && a == b
	case int32:
		b, ok := xb.(int32)
		return ok && a == b
	case int64:
		b, ok := xb.(int64)
		return ok && a == b
	case float64:
		b, ok := xb.(float64)
		return ok && a == b
	case string:
		b, ok := xb.(string)
		return ok && a == b
	case Binary:
		b, ok := xb.(Binary)
		return ok && string(a) == string(b)
	case time.Time:
		b, ok := xb.(time.Time)
		return ok && a.Equal(b)
	case *Vector:
		b, ok := xb.(*Vector)
		return ok && eqVector(a, b)
	case *OrderedMap:
		b, ok := xb.(*OrderedMap)
		return ok && a.Equal(b)
	case *Object:
		b, ok := xb.(*Object)
		if !ok || a.Def.Name != b.Def.Name {
			return false
		}
		return a.Fields.Equal(b.Fields)
	case nil:
		return xb == nil
	}
	return reflect.DeepEqual(xa, xb)
}

func eqVector(a, b *Vector) bool {
	if a == b {
		return true // same pointer: also correct for a self-referential vector
	}
	if len(*a) != len(*b) {
		return false
	}
	for i := range *a {
		if !valueEqual((*a)[i], (*b)[i]) {
			return false
		}
	}
	return true
}

func valueHash(seed maphash.Seed, x any) uint64 {
	switch v := x.(type) {
	case string:
		return maphash.String(seed, v)
	case Binary:
		return maphash.Bytes(seed, []byte(v))
	}

	var h maphash.Hash
	h.SetSeed(seed)

	hashUint := func(u uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}

	switch v := x.(type) {
	case nil:
		h.WriteString("nil")
	case bool:
		if v {
			hashUint(1)
		} else {
			hashUint(0)
		}
	case int32:
		hashUint(uint64(v))
	case int64:
		hashUint(uint64(v))
	case float64:
		hashUint(uint64(v))
	case time.Time:
		hashUint(uint64(v.UnixNano()))
	case *Vector:
		h.WriteString("vector")
		for _, item := range *v {
			hashUint(valueHash(seed, item))
		}
	case *OrderedMap:
		h.WriteString("map")
		// order-independent: sum of per-entry hashes
		var sum uint64
		v.Iter(func(k, val any) bool {
			sum += valueHash(seed, k) ^ valueHash(seed, val)
			return true
		})
		hashUint(sum)
	case *Object:
		h.WriteString("object:" + v.Def.Name)
		v.Fields.Iter(func(k, val any) bool {
			hashUint(valueHash(seed, val))
			return true
		})
	default:
		panic(fmt.Sprintf("hessian: unhashable type: %T", x))
	}

	return h.Sum64()
}
