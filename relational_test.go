package ldd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRelationalProductReadOnlyFilters builds a one-level relation that
// only keeps vectors starting with 1 (a read-only guard, tag metaReadOnly),
// leaving the value unchanged in the output.
func TestRelationalProductReadOnlyFilters(t *testing.T) {
	s := New()
	set := unionAll(s, []uint32{0}, []uint32{1}, []uint32{2})
	defer set.Release()

	guard := s.Singleton([]uint32{1})
	defer guard.Release()
	meta := s.ComputeMeta([]int{0}, nil)
	defer meta.Release()

	out := s.RelationalProduct(set, guard, meta)
	defer out.Release()

	require.EqualValues(t, 1, s.Len(out))
	require.True(t, s.ElementOf([]uint32{1}, out))
}

// TestRelationalProductWriteOnlyIgnoresSource builds a one-level relation
// with no read levels that always emits the same value regardless of the source's value (a
// write-only level, tag metaWriteOnly): every alternative of the source
// participates, since there is no read guard to filter on.
func TestRelationalProductWriteOnlyIgnoresSource(t *testing.T) {
	s := New()
	set := unionAll(s, []uint32{0}, []uint32{1}, []uint32{2})
	defer set.Release()

	write := s.Singleton([]uint32{9})
	defer write.Release()
	meta := s.ComputeMeta(nil, []int{0})
	defer meta.Release()

	out := s.RelationalProduct(set, write, meta)
	defer out.Release()

	require.EqualValues(t, 1, s.Len(out))
	require.True(t, s.ElementOf([]uint32{9}, out))
}

// TestRelationalProductReadWriteFlipsABit builds a single combined
// read+write level (tags metaReadWrite/metaWriteAfter) that flips a binary
// value, and checks the image of {0,1} is {1,0}.
func TestRelationalProductReadWriteFlipsABit(t *testing.T) {
	s := New()
	set := unionAll(s, []uint32{0}, []uint32{1})
	defer set.Release()

	flip0 := s.Singleton([]uint32{0, 1})
	flip1 := s.Singleton([]uint32{1, 0})
	defer flip0.Release()
	defer flip1.Release()
	rel := s.Union(flip0, flip1)
	defer rel.Release()

	meta := s.ComputeMeta([]int{0}, []int{0})
	defer meta.Release()

	out := s.RelationalProduct(set, rel, meta)
	defer out.Release()

	require.EqualValues(t, 2, s.Len(out))
	require.True(t, s.ElementOf([]uint32{1}, out))
	require.True(t, s.ElementOf([]uint32{0}, out))
}

// TestRelationalProductOfEmptySetIsEmpty checks the base case: no source
// states means no image, regardless of the relation.
func TestRelationalProductOfEmptySetIsEmpty(t *testing.T) {
	s := New()
	rel := s.Singleton([]uint32{0, 1})
	defer rel.Release()
	meta := s.ComputeMeta([]int{0}, []int{0})
	defer meta.Release()
	empty := s.EmptySet()
	defer empty.Release()

	out := s.RelationalProduct(empty, rel, meta)
	defer out.Release()
	require.True(t, out.IsFalse())
}
