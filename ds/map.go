package ds

import (
	"cmp"
	"slices"
	"sync"
)

type Map[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewMap[K comparable, V any](initSize int) *Map[K, V] {
	r := new(Map[K, V])
	r.m = make(map[K]V, initSize)
	return r
}

func (m *Map[K, V]) Load(k K) (v V, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok = m.m[k]
	return v, ok
}

func (m *Map[K, V]) Store(k K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[k] = v
}

// LoadOrStore keeps an existing value untouched and reports it with
// loaded == true. Otherwise v is stored and returned.
func (m *Map[K, V]) LoadOrStore(k K, v V) (actual V, loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.m[k]; ok {
		return p, true
	}
	m.m[k] = v
	return v, false
}

func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

// Range iterates over a snapshot, so f may modify the map.
func (m *Map[K, V]) Range(f func(K, V) bool) {
	m.mu.RLock()
	length := len(m.m)
	ks := make([]K, 0, length)
	vs := make([]V, 0, length)
	for k, v := range m.m {
		ks = append(ks, k)
		vs = append(vs, v)
	}
	m.mu.RUnlock()
	for i := range length {
		if !f(ks[i], vs[i]) {
			break
		}
	}
}

func SortedKeys[K cmp.Ordered, V any](m *Map[K, V]) []K {
	ks := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		ks = append(ks, k)
		return true
	})
	slices.Sort(ks)
	return ks
}
