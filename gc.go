package ldd

// GarbageCollect deterministically reclaims every node unreachable from
// the protection set: clear the caches (their keys are unprotected
// identities and may be about to be freed), mark every node reachable from
// a live protection-set slot, then sweep the table, returning unmarked
// slots to the freelist and removing them from the dedup index. The three
// phases never interleave.
func (s *Store) GarbageCollect() {
	debugf("gc: start table=%d live-roots=%d", len(s.table), s.prot.liveCount)

	s.cache.clear()

	for i := range s.marked {
		s.marked[i] = false
	}
	s.marked[idFalse] = true
	s.marked[idTrue] = true

	s.prot.forEachLive(func(n id) {
		s.markrec(n)
	})

	collected := 0
	for i := 2; i < len(s.table); i++ {
		n := id(i)
		if s.marked[n] {
			continue
		}
		if s.table[n].down == idFree {
			continue // already free, not a node to collect
		}
		delete(s.index, triple{value: s.table[n].value, down: s.table[n].down, right: s.table[n].right})
		s.table[n] = node{down: idFree, right: s.freeHead}
		s.freeHead = n
		s.freeCount++
		collected++
	}
	s.countUntilGC = len(s.table)

	// A cycle that reclaims too little headroom just defers the next one by
	// a handful of insertions; grow the table now instead of thrashing.
	if s.freeCount < s.cfg.minfreenodes {
		s.growFreelist(s.cfg.minfreenodes - s.freeCount)
	}

	s.metrics.incCounter(s.metrics.sink.GCRuns)
	s.metrics.addCounter(s.metrics.sink.NodesCollected, float64(collected))
	s.metrics.setGauge(s.metrics.sink.NodesLive, float64(len(s.table)-s.freeCount))
	s.metrics.setGauge(s.metrics.sink.TableCapacity, float64(cap(s.table)))
	s.metrics.setGauge(s.metrics.sink.CacheEntries, 0)
	debugf("gc: done collected=%d free=%d", collected, s.freeCount)
}

// growFreelist appends n fresh, already-free slots to the table and threads
// them onto the freelist, giving insert headroom without relying on append's
// own growth heuristics to keep pace with demand.
func (s *Store) growFreelist(n int) {
	for i := 0; i < n; i++ {
		next := id(len(s.table))
		s.table = append(s.table, node{down: idFree, right: s.freeHead})
		s.marked = append(s.marked, false)
		s.height = append(s.height, 0)
		s.freeHead = next
		s.freeCount++
	}
}

// cacheOverBudget reports whether the operation cache has grown past the
// table-relative ceiling implied by cacheratio, in which case the caller
// should force a collection rather than let memoized entries accumulate
// unbounded between safepoints.
func (s *Store) cacheOverBudget() bool {
	if s.cfg.cacheratio <= 0 {
		return false
	}
	limit := len(s.table) / s.cfg.cacheratio
	return limit > 0 && s.cache.size() > limit
}

// markrec marks n and, recursively, every node reachable from it by
// following down and right. Terminals are pre-marked by GarbageCollect and
// free slots are never reached from a live root, so no further base case
// is needed.
func (s *Store) markrec(n id) {
	if n == idFalse || n == idTrue || s.marked[n] {
		return
	}
	s.marked[n] = true
	nd := s.table[n]
	s.markrec(nd.down)
	s.markrec(nd.right)
}
