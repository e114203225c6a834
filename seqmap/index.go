package seqmap

import (
	"fmt"
	"iter"
	"maps"
)

// index maps each key to its position in entries. It never owns keys or
// values; positions are plain offsets that must be renumbered whenever
// entries move.
type index[K comparable] struct {
	m map[K]int
}

func newIndex[K comparable](capacity int) index[K] {
	if capacity <= 0 {
		return index[K]{}
	}
	return index[K]{m: make(map[K]int, capacity)}
}

func (x *index[K]) len() int {
	return len(x.m)
}

func (x *index[K]) get(key K) (int, bool) {
	p, ok := x.m[key]
	return p, ok
}

// insert records key at position p and returns the position it replaced, if any.
func (x *index[K]) insert(key K, p int) (int, bool) {
	if x.m == nil {
		x.m = make(map[K]int)
	}
	old, ok := x.m[key]
	x.m[key] = p
	return old, ok
}

func (x *index[K]) remove(key K) (int, bool) {
	p, ok := x.m[key]
	if ok {
		delete(x.m, key)
	}
	return p, ok
}

// decrementAbove moves every key yielded by shifted down one position. The
// keys must be exactly those whose recorded position is above threshold,
// which after a removal at threshold is the suffix of entries starting there.
func (x *index[K]) decrementAbove(threshold int, shifted iter.Seq[K]) {
	for key := range shifted {
		p, ok := x.m[key]
		if !ok || p <= threshold {
			panic(fmt.Sprintf("seqmap: index out of sync for %v at %d (threshold %d)", key, p, threshold))
		}
		x.m[key] = p - 1
	}
}

func (x *index[K]) reset() {
	clear(x.m)
}

func (x *index[K]) clone() index[K] {
	return index[K]{m: maps.Clone(x.m)}
}
