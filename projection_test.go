package ldd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unionAll(s *Store, vectors ...[]uint32) *Handle {
	acc := s.EmptySet()
	for _, v := range vectors {
		h := s.Singleton(v)
		next := s.Union(acc, h)
		h.Release()
		acc.Release()
		acc = next
	}
	return acc
}

func TestComputeProjLength(t *testing.T) {
	s := New()
	proj := s.ComputeProj([]int{0, 2})
	defer proj.Release()

	v, d, r := s.Get(proj)
	defer d.Release()
	defer r.Release()
	require.Equal(t, uint32(1), v, "level 0 is kept")
	require.True(t, r.IsFalse())

	v2, d2, r2 := s.Get(d)
	defer d2.Release()
	defer r2.Release()
	require.Equal(t, uint32(0), v2, "level 1 is dropped")
	require.True(t, r2.IsFalse())

	v3, d3, r3 := s.Get(d2)
	defer d3.Release()
	defer r3.Release()
	require.Equal(t, uint32(1), v3, "level 2 is kept")
	require.True(t, d3.IsTrue(), "a projection spec of length max(indices)+1 ends right after the highest index")
}

func TestProjectDropsAndMergesLevels(t *testing.T) {
	s := New()
	set := unionAll(s, []uint32{1, 2, 3}, []uint32{1, 9, 3}, []uint32{5, 6, 7})
	defer set.Release()

	proj := s.ComputeProj([]int{0, 2})
	defer proj.Release()

	result := s.Project(set, proj)
	defer result.Release()

	require.EqualValues(t, 2, s.Len(result), "the two {1,*,3} vectors must merge after dropping the middle level")
	require.True(t, s.ElementOf([]uint32{1, 3}, result))
	require.True(t, s.ElementOf([]uint32{5, 7}, result))
	require.False(t, s.ElementOf([]uint32{1, 9}, result))
}

func TestProjectOntoEmptySpecCollapsesToVectorPresence(t *testing.T) {
	s := New()
	set := unionAll(s, []uint32{1, 2}, []uint32{3, 4})
	defer set.Release()

	proj := s.ComputeProj(nil)
	defer proj.Release()
	require.True(t, proj.IsTrue(), "a spec over no kept indices is the empty-vector spec")

	result := s.Project(set, proj)
	defer result.Release()
	require.True(t, result.IsTrue(), "projecting any non-empty set onto nothing yields just the empty vector")
}

func TestProjectOfEmptySetIsEmpty(t *testing.T) {
	s := New()
	proj := s.ComputeProj([]int{0})
	defer proj.Release()
	empty := s.EmptySet()
	defer empty.Release()
	result := s.Project(empty, proj)
	defer result.Release()
	require.True(t, result.IsFalse())
}
