package seqmap

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants fails the test if storage and index have drifted apart.
func checkInvariants[K comparable, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()

	require.Equal(t, m.entries.len(), m.index.len(), "storage and index lengths differ")

	seen := make(map[K]int, m.entries.len())
	for p, e := range m.entries.s {
		if prev, ok := seen[e.Key]; ok {
			t.Fatalf("key %v stored at both %d and %d", e.Key, prev, p)
		}
		seen[e.Key] = p

		got, ok := m.index.get(e.Key)
		require.True(t, ok, "key %v at %d missing from index", e.Key, p)
		require.Equal(t, p, got, "index position for %v", e.Key)
	}
}

func pairs[K comparable, V any](m *Map[K, V]) []Entry[K, V] {
	var out []Entry[K, V]
	for k, v := range m.All() {
		out = append(out, Entry[K, V]{k, v})
	}
	return out
}

func TestInsertOverwriteKeepsPosition(t *testing.T) {
	m := New[string, int]()

	_, replaced := m.Insert("a", 1)
	assert.False(t, replaced)
	m.Insert("b", 2)

	prev, replaced := m.Insert("a", 3)
	assert.True(t, replaced)
	assert.Equal(t, 1, prev)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())

	want := []Entry[string, int]{{"a", 3}, {"b", 2}}
	if diff := cmp.Diff(want, pairs(m)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	checkInvariants(t, m)
}

func TestInsertionOrder(t *testing.T) {
	m := New[int, string]()
	keys := []int{42, 7, 19, -3, 0, 1000, 8}
	for _, k := range keys {
		m.Insert(k, fmt.Sprint(k))
	}

	if diff := cmp.Diff(keys, slices.Collect(m.Keys())); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	checkInvariants(t, m)
}

func TestRemove(t *testing.T) {
	cases := []struct {
		name   string
		insert []string
		remove []string
		want   []string
	}{
		{"middle", []string{"a", "b", "c"}, []string{"b"}, []string{"a", "c"}},
		{"first", []string{"a", "b", "c"}, []string{"a"}, []string{"b", "c"}},
		{"last", []string{"a", "b", "c"}, []string{"c"}, []string{"a", "b"}},
		{"all", []string{"a", "b", "c"}, []string{"b", "a", "c"}, nil},
		{"absent", []string{"a"}, []string{"x"}, []string{"a"}},
		{"twice", []string{"a", "b"}, []string{"a", "a"}, []string{"b"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			m := New[string, int]()
			for i, k := range tt.insert {
				m.Insert(k, i)
			}
			for _, k := range tt.remove {
				m.Remove(k)
				checkInvariants(t, m)
			}

			if diff := cmp.Diff(tt.want, slices.Collect(m.Keys())); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemoveClosesGap(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	v, ok := m.Remove("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	p, ok := m.PositionOf("c")
	require.True(t, ok)
	assert.Equal(t, 1, p)

	_, ok = m.PositionOf("b")
	assert.False(t, ok)
	assert.False(t, m.ContainsKey("b"))
}

func TestRemoveMissingOnEmpty(t *testing.T) {
	m := New[string, int]()

	v, ok := m.Remove("x")
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsEmpty())
}

func TestReinsertAfterRemoveAppends(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Remove("a")
	m.Insert("a", 3)

	want := []Entry[string, int]{{"b", 2}, {"a", 3}}
	if diff := cmp.Diff(want, pairs(m)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	checkInvariants(t, m)
}

func TestPositionalAccess(t *testing.T) {
	m := WithCapacity[string, int](8)
	for i, k := range []string{"x", "y", "z", "w"} {
		m.Insert(k, i*i)
	}
	m.Remove("y")
	m.Insert("z", 100)

	for k := range m.Keys() {
		p, ok := m.PositionOf(k)
		require.True(t, ok)

		gotK, gotV, ok := m.At(p)
		require.True(t, ok)
		assert.Equal(t, k, gotK)
		assert.Equal(t, m.MustGet(k), gotV)
	}

	for _, p := range []int{-1, m.Len()} {
		_, _, ok := m.At(p)
		assert.False(t, ok, "At(%d)", p)
	}
}

func TestGetPtr(t *testing.T) {
	m := New[string, []int]()
	m.Insert("a", nil)

	ptr := m.GetPtr("a")
	require.NotNil(t, ptr)
	*ptr = append(*ptr, 1, 2)

	assert.Equal(t, []int{1, 2}, m.MustGet("a"))
	assert.Nil(t, m.GetPtr("missing"))
}

func TestGetOrInsertWith(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)

	var calls int
	produce := func() int {
		calls++
		return 10
	}

	assert.Equal(t, 1, *m.GetOrInsertWith("a", produce))
	assert.Equal(t, 0, calls, "producer called on a hit")

	v := m.GetOrInsertWith("b", produce)
	assert.Equal(t, 10, *v)
	assert.Equal(t, 1, calls)

	*v += 5
	assert.Equal(t, 15, m.MustGet("b"))

	*m.GetOrInsertWith("b", produce)++
	assert.Equal(t, 16, m.MustGet("b"))
	assert.Equal(t, 1, calls)

	p, _ := m.PositionOf("b")
	assert.Equal(t, 1, p)
	checkInvariants(t, m)
}

func TestGetOrInsertWithReentrantProducer(t *testing.T) {
	m := New[string, int]()
	m.Insert("x", 0)

	v := m.GetOrInsertWith("a", func() int {
		m.Insert("a", 1)
		m.Insert("b", 3)
		return 2
	})
	assert.Equal(t, 1, *v, "entry written by the producer is kept")
	checkInvariants(t, m)
	assert.Equal(t, []string{"x", "a", "b"}, slices.Collect(m.Keys()))

	*v = 5
	assert.Equal(t, 5, m.MustGet("a"))

	m.Remove("x")
	checkInvariants(t, m)
	if diff := cmp.Diff([]Entry[string, int]{{"a", 5}, {"b", 3}}, pairs(m)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestTryInsert(t *testing.T) {
	m := New[string, int]()
	require.NoError(t, m.TryInsert("key", 42))

	err := m.TryInsert("key", 43)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyExists))
	assert.Contains(t, err.Error(), "key")
	assert.Equal(t, 42, m.MustGet("key"))
	assert.Equal(t, 1, m.Len())
}

func TestMustGetPanics(t *testing.T) {
	m := New[string, int]()
	assert.Panics(t, func() { m.MustGet("nope") })
}

func TestClear(t *testing.T) {
	m := New[string, int]()
	m.Clear()
	assert.Equal(t, 0, m.Len())

	for i := range 10 {
		m.Insert(fmt.Sprint(i), i)
	}
	m.Remove("3")
	m.Clear()
	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.Empty(t, slices.Collect(m.Keys()))
	assert.False(t, m.ContainsKey("1"))
	checkInvariants(t, m)

	m.Insert("fresh", 1)
	p, _ := m.PositionOf("fresh")
	assert.Equal(t, 0, p)
}

func TestZeroValueAndNil(t *testing.T) {
	var m Map[string, int]
	assert.True(t, m.IsEmpty())
	m.Insert("a", 1)
	assert.Equal(t, 1, m.MustGet("a"))

	var nilMap *Map[string, int]
	assert.Equal(t, 0, nilMap.Len())
	assert.False(t, nilMap.ContainsKey("a"))
	_, ok := nilMap.Get("a")
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(nilMap.Keys()))
	assert.True(t, nilMap.IsEmpty())
	assert.Nil(t, nilMap.GetPtr("a"))
	_, ok = nilMap.PositionOf("a")
	assert.False(t, ok)
	_, _, ok = nilMap.At(0)
	assert.False(t, ok)
	assert.Nil(t, nilMap.Clone())
	assert.Equal(t, "SeqMap(0)", nilMap.String())
}

func TestIterationRestartsAndStopsEarly(t *testing.T) {
	m := FromEntries(Entry[string, int]{"a", 1}, Entry[string, int]{"b", 2}, Entry[string, int]{"c", 3})

	seq := m.Values()
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))

	var got []string
	for k := range m.Keys() {
		got = append(got, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestAllPtr(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	for _, v := range m.AllPtr() {
		*v *= 10
	}
	assert.Equal(t, []int{10, 20}, slices.Collect(m.Values()))
}

func TestDrain(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	other := New[string, int]()
	for k, v := range m.Drain() {
		require.NoError(t, other.TryInsert(k, v))
	}

	assert.True(t, m.IsEmpty())
	assert.Equal(t, 2, other.Len())
	checkInvariants(t, m)

	// unconsumed drains still empty the map
	m.Insert("c", 3)
	_ = m.Drain()
	assert.True(t, m.IsEmpty())
}

func TestFirstOccurrenceWins(t *testing.T) {
	want := []Entry[string, int]{{"a", 1}, {"b", 2}}

	fromEntries := FromEntries(Entry[string, int]{"a", 1}, Entry[string, int]{"b", 2}, Entry[string, int]{"a", 9})
	if diff := cmp.Diff(want, fromEntries.Entries()); diff != "" {
		t.Errorf("FromEntries mismatch (-want +got):\n%s", diff)
	}

	collected := Collect(fromEntries.All())
	assert.True(t, Equal(fromEntries, collected))

	collected.Extend(maps.All(map[string]int{"a": 100}))
	assert.Equal(t, 1, collected.MustGet("a"))
	checkInvariants(t, collected)
}

func TestCloneIsIndependent(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	c := m.Clone()
	c.Insert("a", 10)
	c.Remove("b")
	c.Insert("c", 3)

	assert.Equal(t, []Entry[string, int]{{"a", 1}, {"b", 2}}, m.Entries())
	assert.Equal(t, []Entry[string, int]{{"a", 10}, {"c", 3}}, c.Entries())
	checkInvariants(t, m)
	checkInvariants(t, c)
}

func TestEqual(t *testing.T) {
	a := FromEntries(Entry[string, int]{"a", 1}, Entry[string, int]{"b", 2})
	b := FromEntries(Entry[string, int]{"a", 1}, Entry[string, int]{"b", 2})
	reordered := FromEntries(Entry[string, int]{"b", 2}, Entry[string, int]{"a", 1})

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, reordered), "order is part of equality")

	b.Insert("b", 3)
	assert.False(t, Equal(a, b))

	assert.False(t, EqualFunc(a, reordered, func(x, y int) bool { return true }))
	assert.True(t, Equal(New[string, int](), (*Map[string, int])(nil)))
}

func TestString(t *testing.T) {
	m := New[int, int]()
	m.Insert(10, 20)
	assert.Equal(t, "SeqMap(1)\n10: 20", m.String())

	s := New[string, int]()
	s.Insert("a", 1)
	s.Insert("b", 2)
	assert.Equal(t, `SeqMap("a": 1, "b": 2)`, fmt.Sprintf("%#v", s))
	assert.Equal(t, "SeqMap(2)\na: 1\nb: 2", fmt.Sprint(s))
	assert.Equal(t, "SeqMap()", New[string, int]().GoString())
}
