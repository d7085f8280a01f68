package ldd

import "testing"

func TestGarbageCollectReclaimsUnprotectedNodes(t *testing.T) {
	s := New()
	h := s.Singleton([]uint32{1, 2, 3})
	before := s.Stats().DedupEntries
	if before != 3 {
		t.Fatalf("expected 3 nodes before release, got %d", before)
	}
	h.Release()
	s.GarbageCollect()
	after := s.Stats().TableLen - s.Stats().FreeNodes
	if after != 2 { // only the two terminals remain live
		t.Errorf("expected every non-terminal node reclaimed, got %d live slots", after)
	}
}

func TestGarbageCollectSparesProtectedNodes(t *testing.T) {
	s := New()
	h := s.Singleton([]uint32{4, 5})
	defer h.Release()
	s.GarbageCollect()
	if !s.ElementOf([]uint32{4, 5}, h) {
		t.Errorf("a protected vector must survive garbage collection")
	}
}

func TestGarbageCollectClearsOperationCache(t *testing.T) {
	s := New()
	a := s.Singleton([]uint32{1})
	b := s.Singleton([]uint32{2})
	u := s.Union(a, b)
	defer u.Release()
	if s.cache.size() == 0 {
		t.Fatalf("expected the union cache to hold an entry")
	}
	a.Release()
	b.Release()
	s.GarbageCollect()
	if s.cache.size() != 0 {
		t.Errorf("expected the operation cache to be cleared after a collection")
	}
}

func TestGarbageCollectIsSafeAcrossRecursiveInsert(t *testing.T) {
	// Force a GC cycle to trigger deep inside a union's recursion (by
	// shrinking the insertion budget to almost nothing right before the
	// union, so its second fresh insert runs a collection) and check the
	// result is still correct: every intermediate Handle in operations.go
	// must keep its operand alive across the safepoint.
	s := New(Nodesize(4))
	a := s.Singleton([]uint32{1, 2, 3, 4, 5})
	b := s.Singleton([]uint32{1, 2, 3, 4, 6})
	defer a.Release()
	defer b.Release()
	s.countUntilGC = 2
	u := s.Union(a, b)
	defer u.Release()

	if !s.ElementOf([]uint32{1, 2, 3, 4, 5}, u) {
		t.Errorf("expected the first vector to survive a GC triggered mid-union")
	}
	if !s.ElementOf([]uint32{1, 2, 3, 4, 6}, u) {
		t.Errorf("expected the second vector to survive a GC triggered mid-union")
	}
}

func TestEnableGarbageCollectionFalseDisablesSafepoint(t *testing.T) {
	s := New(Nodesize(2))
	s.EnableGarbageCollection(false)
	h := s.Singleton([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
	defer h.Release()
	if got := s.Stats().TableLen; got < 10 {
		t.Errorf("expected the table to have grown past its tiny initial size without a GC, got %d", got)
	}
}
