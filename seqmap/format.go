package seqmap

import (
	"fmt"
	"strings"
)

// String renders the length followed by one "key: value" line per entry,
// e.g. "SeqMap(2)\na: 1\nb: 2".
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SeqMap(%d)", m.Len())
	for k, v := range m.All() {
		fmt.Fprintf(&sb, "\n%v: %v", k, v)
	}
	return sb.String()
}

// GoString renders the entries on one line with Go-syntax keys and values,
// e.g. `SeqMap("a": 1, "b": 2)`. It backs the %#v verb.
func (m *Map[K, V]) GoString() string {
	var sb strings.Builder
	sb.WriteString("SeqMap(")
	first := true
	for k, v := range m.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%#v: %#v", k, v)
	}
	sb.WriteString(")")
	return sb.String()
}

// Equal reports whether a and b hold the same keys in the same order with
// equal values.
func Equal[K, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K comparable, V1, V2 any](a *Map[K, V1], b *Map[K, V2], eq func(V1, V2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := range a.Len() {
		ak, av, _ := a.At(i)
		bk, bv, _ := b.At(i)
		if ak != bk || !eq(av, bv) {
			return false
		}
	}
	return true
}
