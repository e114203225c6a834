package seqmap

import (
	"fmt"
	"iter"
	"slices"
)

// Entry is a key and its value at a position in a Map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// entries is the dense, insertion-ordered storage behind a Map. Positions
// 0..len-1 are always occupied.
type entries[K comparable, V any] struct {
	s []Entry[K, V]
}

func newEntries[K comparable, V any](capacity int) entries[K, V] {
	if capacity <= 0 {
		return entries[K, V]{}
	}
	return entries[K, V]{s: make([]Entry[K, V], 0, capacity)}
}

func (e *entries[K, V]) len() int {
	return len(e.s)
}

// push appends an entry and returns its position.
func (e *entries[K, V]) push(key K, value V) int {
	e.s = append(e.s, Entry[K, V]{Key: key, Value: value})
	return len(e.s) - 1
}

func (e *entries[K, V]) at(p int) (Entry[K, V], bool) {
	if p < 0 || p >= len(e.s) {
		return Entry[K, V]{}, false
	}
	return e.s[p], true
}

// ptrAt returns the entry at p and panics if p is out of range. Callers only
// pass positions taken from the index.
func (e *entries[K, V]) ptrAt(p int) *Entry[K, V] {
	if p < 0 || p >= len(e.s) {
		panic(fmt.Sprintf("seqmap: position %d out of range [0:%d]", p, len(e.s)))
	}
	return &e.s[p]
}

// removeAt removes the entry at p, shifting every later entry one position
// down. The cost is proportional to the number of entries moved.
func (e *entries[K, V]) removeAt(p int) Entry[K, V] {
	removed := *e.ptrAt(p)

	copy(e.s[p:], e.s[p+1:])
	// clear the vacated tail slot so it doesn't pin the key or value
	e.s[len(e.s)-1] = Entry[K, V]{}
	e.s = e.s[:len(e.s)-1]
	return removed
}

// swapValueAt replaces the value at p in place and returns the old one.
func (e *entries[K, V]) swapValueAt(p int, value V) V {
	entry := e.ptrAt(p)
	old := entry.Value
	entry.Value = value
	return old
}

// keysFrom yields the keys at positions p and above, in order.
func (e *entries[K, V]) keysFrom(p int) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, entry := range e.s[p:] {
			if !yield(entry.Key) {
				return
			}
		}
	}
}

func (e *entries[K, V]) reset() {
	clear(e.s)
	e.s = e.s[:0]
}

func (e *entries[K, V]) clone() entries[K, V] {
	return entries[K, V]{s: slices.Clone(e.s)}
}

// detach hands the backing slice to the caller and leaves storage empty.
func (e *entries[K, V]) detach() []Entry[K, V] {
	s := e.s
	e.s = nil
	return s
}
