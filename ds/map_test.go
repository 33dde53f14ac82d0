package ds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapWork(t *testing.T) {
	m := NewMap[string, int](4)

	m.Store("cmd1", 1)
	require.Equal(t, 1, m.m["cmd1"])

	v, ok := m.Load("cmd1")
	require.Equal(t, 1, v)
	require.True(t, ok)

	v, ok = m.Load("missing")
	require.Equal(t, 0, v)
	require.False(t, ok)
	require.Equal(t, 1, m.Len())
}

func TestMapLoadOrStoreKeepsExisting(t *testing.T) {
	m := NewMap[string, int](2)

	actual, loaded := m.LoadOrStore("a", 1)
	require.Equal(t, 1, actual)
	require.False(t, loaded)

	actual, loaded = m.LoadOrStore("a", 2)
	require.Equal(t, 1, actual)
	require.True(t, loaded)

	v, _ := m.Load("a")
	require.Equal(t, 1, v)
}

func TestMapRangeDeadLock(t *testing.T) {
	m := NewMap[int, int](8)
	for i := 1; i <= 8; i++ {
		m.Store(i, i*101)
	}

	m.Range(func(k, v int) bool {
		if k == 8 {
			m.Store(9, 909)
		}
		return true
	})
	require.Equal(t, 9, m.Len())
}

func TestMapRangeStop(t *testing.T) {
	m := NewMap[int, int](4)
	m.Store(1, 1)
	m.Store(2, 2)
	m.Store(3, 3)

	visited := 0
	m.Range(func(int, int) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}

func TestSortedKeys(t *testing.T) {
	m := NewMap[string, struct{}](3)
	m.Store("error", struct{}{})
	m.Store("cmd1", struct{}{})
	m.Store("b", struct{}{})

	require.Equal(t, []string{"b", "cmd1", "error"}, SortedKeys(m))
}
