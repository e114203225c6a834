// Package seqmap provides a generic map that iterates in insertion order
// while keeping average O(1) lookup by key.
//
// A Map keeps its entries in a dense slice and an index from key to slice
// position. Overwriting a key keeps its position. Removing a key closes the
// gap: every later entry moves down one position and its index entry is
// renumbered in the same call.
//
// A Map is not safe for concurrent use. Callers that share one across
// goroutines must serialize writers, for example behind a sync.RWMutex.
package seqmap

import "fmt"

// Map is an insertion-ordered map. The zero value is an empty map ready to use.
type Map[K comparable, V any] struct {
	entries entries[K, V]
	index   index[K]
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// WithCapacity returns an empty map with room for n entries before it grows.
func WithCapacity[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		entries: newEntries[K, V](n),
		index:   newIndex[K](n),
	}
}

// Insert sets the value for key. If key is already present its value is
// replaced in place, its position is unchanged, and the previous value is
// returned with replaced set to true. Otherwise the entry is appended at the
// end.
func (m *Map[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	if p, ok := m.index.get(key); ok {
		return m.entries.swapValueAt(p, value), true
	}

	m.index.insert(key, m.entries.push(key, value))
	return prev, false
}

// TryInsert appends key with value, or returns an error wrapping
// ErrKeyExists and leaves the map untouched if key is already present.
func (m *Map[K, V]) TryInsert(key K, value V) error {
	if m.ContainsKey(key) {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}

	m.index.insert(key, m.entries.push(key, value))
	return nil
}

// Get returns the value for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}

	p, ok := m.index.get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries.ptrAt(p).Value, true
}

// GetPtr returns a pointer to the value for key, or nil if key is absent.
// The pointer is valid until the next insert of a new key, Remove, Clear or
// Drain.
func (m *Map[K, V]) GetPtr(key K) *V {
	if m == nil {
		return nil
	}

	p, ok := m.index.get(key)
	if !ok {
		return nil
	}
	return &m.entries.ptrAt(p).Value
}

// MustGet returns the value for key and panics if key is absent.
func (m *Map[K, V]) MustGet(key K) V {
	v, ok := m.Get(key)
	if !ok {
		panic(fmt.Sprintf("seqmap: key %v not found", key))
	}
	return v
}

// Remove deletes key and returns its value. Entries after it keep their
// relative order and move down one position. Removing an absent key is a
// no-op.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	p, ok := m.index.get(key)
	if !ok {
		var zero V
		return zero, false
	}

	removed := m.entries.removeAt(p)
	m.index.decrementAbove(p, m.entries.keysFrom(p))
	m.index.remove(key)
	return removed.Value, true
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	if m == nil {
		return false
	}

	_, ok := m.index.get(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.len()
}

// IsEmpty reports whether m has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Clear removes every entry. Allocated capacity is kept.
func (m *Map[K, V]) Clear() {
	m.entries.reset()
	m.index.reset()
}

// PositionOf returns the zero-based position of key in iteration order.
func (m *Map[K, V]) PositionOf(key K) (int, bool) {
	if m == nil {
		return 0, false
	}
	return m.index.get(key)
}

// At returns the entry at position p.
func (m *Map[K, V]) At(p int) (K, V, bool) {
	if m == nil {
		var e Entry[K, V]
		return e.Key, e.Value, false
	}

	e, ok := m.entries.at(p)
	return e.Key, e.Value, ok
}

// GetOrInsertWith returns a pointer to the value for key. On a miss it calls
// fn once, appends the result and returns a pointer to it; fn is not called
// on a hit. If fn itself inserts key, that entry is kept and fn's result is
// discarded. The pointer follows the same validity rules as GetPtr.
func (m *Map[K, V]) GetOrInsertWith(key K, fn func() V) *V {
	if p, ok := m.index.get(key); ok {
		return &m.entries.ptrAt(p).Value
	}

	v := fn()
	// fn may have written to m; look again before appending
	if p, ok := m.index.get(key); ok {
		return &m.entries.ptrAt(p).Value
	}

	p := m.entries.push(key, v)
	m.index.insert(key, p)
	return &m.entries.ptrAt(p).Value
}

// Entries returns a copy of the entries in order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// Clone returns a shallow copy of m. Keys and values are copied by
// assignment. Cloning a nil map returns nil.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}

	return &Map[K, V]{
		entries: m.entries.clone(),
		index:   m.index.clone(),
	}
}
