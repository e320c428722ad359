package types

import "maps"

// DefaultMap hands out a fresh value from newValue for keys it has not seen
// yet, so running totals can be folded without existence checks:
//
//	totals := NewDefaultMap[string](func() decimal.Decimal { return decimal.Zero })
//	totals.Update("senderA", func(v decimal.Decimal) decimal.Decimal { return v.Add(amount) })
type DefaultMap[K comparable, V any] struct {
	entries  map[K]V
	newValue func() V
}

// NewDefaultMap returns an empty map backed by newValue.
func NewDefaultMap[K comparable, V any](newValue func() V) *DefaultMap[K, V] {
	return &DefaultMap[K, V]{
		entries:  make(map[K]V),
		newValue: newValue,
	}
}

// Get returns the value under key, or a fresh default. Reading never inserts.
func (m *DefaultMap[K, V]) Get(key K) V {
	if val, ok := m.entries[key]; ok {
		return val
	}

	return m.newValue()
}

// Update stores fn(Get(key)) under key and returns it.
func (m *DefaultMap[K, V]) Update(key K, fn func(V) V) V {
	val := fn(m.Get(key))
	m.entries[key] = val
	return val
}

// Len returns the number of keys written through Update.
func (m *DefaultMap[K, V]) Len() int {
	return len(m.entries)
}

// ToMap returns a copy of the stored entries.
func (m *DefaultMap[K, V]) ToMap() map[K]V {
	return maps.Clone(m.entries)
}
