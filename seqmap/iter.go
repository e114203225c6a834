package seqmap

import "iter"

// All returns a sequence over key-value pairs in position order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries.s {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns a sequence over keys in position order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a sequence over values in position order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// AllPtr is like All but yields pointers to the stored values so they can be
// updated in place. The loop body must not insert new keys or remove keys.
func (m *Map[K, V]) AllPtr() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if m == nil {
			return
		}
		for i := range m.entries.s {
			e := &m.entries.s[i]
			if !yield(e.Key, &e.Value) {
				return
			}
		}
	}
}

// Drain empties m and returns a sequence over the removed entries in order.
// The map is empty as soon as Drain returns, whether or not the sequence is
// consumed.
func (m *Map[K, V]) Drain() iter.Seq2[K, V] {
	drained := m.entries.detach()
	m.index.reset()

	return func(yield func(K, V) bool) {
		for _, e := range drained {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Extend appends the pairs from seq. A key that is already present, either
// from before or from earlier in seq, is skipped and keeps its value.
func (m *Map[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		if !m.ContainsKey(k) {
			m.index.insert(k, m.entries.push(k, v))
		}
	}
}

// Collect builds a map from seq. The first occurrence of a key wins.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	m.Extend(seq)
	return m
}

// FromEntries builds a map from entries. The first occurrence of a key wins.
func FromEntries[K comparable, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := WithCapacity[K, V](len(entries))
	for _, e := range entries {
		if !m.ContainsKey(e.Key) {
			m.index.insert(e.Key, m.entries.push(e.Key, e.Value))
		}
	}
	return m
}
