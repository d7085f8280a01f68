package ldd

// Meta tags, one per level of the source vector (or, for a read+write
// level, two consecutive tags on the relation's spine).
const (
	metaIgnore     uint32 = 0 // level not mentioned by the relation
	metaReadOnly   uint32 = 1
	metaWriteOnly  uint32 = 2
	metaReadWrite  uint32 = 3 // read half of a read+write pair
	metaWriteAfter uint32 = 4 // write half of a read+write pair
)

// ComputeMeta builds the meta spec for a transition relation from its read
// and write level sets. A level present in both read and write emits the
// split 3/4 tag pair rather than a single combined tag: a single tag cannot
// represent a relation whose spine is two levels tall for one source level,
// so the pair is required to keep the read and write halves distinguishable
// during descent.
func (s *Store) ComputeMeta(read, write []int) *Handle {
	maxIndex := -1
	for _, i := range read {
		if i > maxIndex {
			maxIndex = i
		}
	}
	for _, i := range write {
		if i > maxIndex {
			maxIndex = i
		}
	}
	length := maxIndex + 1

	isRead := make([]bool, length)
	isWrite := make([]bool, length)
	for _, i := range read {
		isRead[i] = true
	}
	for _, i := range write {
		isWrite[i] = true
	}

	acc := s.wrap(idTrue)
	for i := length - 1; i >= 0; i-- {
		switch {
		case isRead[i] && isWrite[i]:
			n4 := s.insert(metaWriteAfter, acc.node, idFalse)
			n3 := s.insert(metaReadWrite, n4, idFalse)
			acc.Release()
			acc = s.wrap(n3)
		case isRead[i]:
			n := s.insert(metaReadOnly, acc.node, idFalse)
			acc.Release()
			acc = s.wrap(n)
		case isWrite[i]:
			n := s.insert(metaWriteOnly, acc.node, idFalse)
			acc.Release()
			acc = s.wrap(n)
		default:
			n := s.insert(metaIgnore, acc.node, idFalse)
			acc.Release()
			acc = s.wrap(n)
		}
	}
	return acc
}

// RelationalProduct computes
// { x[write := y'] | project(x, read) = x' and (x', y') in rel and x in set }
// driven by a meta spec built by ComputeMeta.
func (s *Store) RelationalProduct(set, rel, meta *Handle) *Handle {
	s.checkStore(set)
	s.checkStore(rel)
	s.checkStore(meta)
	if s.gcEnabled && s.cacheOverBudget() {
		s.GarbageCollect()
	}
	return s.relprod(set, rel, meta)
}

func (s *Store) relprod(set, rel, meta *Handle) *Handle {
	if set.IsFalse() || rel.IsFalse() {
		return s.wrap(idFalse)
	}
	if meta.IsTrue() {
		return set.Clone()
	}

	key := tripleKey{set.node, rel.node, meta.node}
	if cached, ok := s.cache.relprod[key]; ok {
		return s.wrap(cached)
	}

	tag, metaDown, _ := s.get(meta.node)
	metaNext := s.peek(metaDown)

	var out *Handle
	switch tag {
	case metaIgnore:
		out = s.relprodIgnore(set, rel, meta, metaNext)
	case metaReadOnly:
		out = s.relprodReadOnly(set, rel, meta, metaNext)
	case metaWriteOnly:
		out = s.relprodWriteOnly(set, rel, meta, metaNext)
	case metaReadWrite:
		out = s.relprodReadHalf(set, rel, meta, metaNext)
	case metaWriteAfter:
		out = s.relprodWriteHalf(set, rel, meta, metaNext)
	default:
		panicContract("relational_product: meta tag %d outside {0,1,2,3,4}", tag)
	}

	s.cache.relprod[key] = out.node
	return out
}

// relprodIgnore handles tag 0: carry the source value through unchanged.
func (s *Store) relprodIgnore(set, rel, meta, metaNext *Handle) *Handle {
	v, d, r := s.get(set.node)
	dr := s.relprod(s.peek(d), rel, metaNext)
	defer dr.Release()
	rr := s.relprod(s.peek(r), rel, meta)
	defer rr.Release()
	return s.mergeKeepValue(v, dr, rr)
}

// relprodReadOnly handles tag 1: lockstep descent on value between set and
// rel, the matched level kept (filtered) in the output.
func (s *Store) relprodReadOnly(set, rel, meta, metaNext *Handle) *Handle {
	if rel.IsFalse() {
		return s.wrap(idFalse)
	}
	vs, ds, rs := s.get(set.node)
	vr, dr2, rr2 := s.get(rel.node)
	switch {
	case vs < vr:
		return s.relprod(s.peek(rs), rel, meta)
	case vs > vr:
		return s.relprod(set, s.peek(rr2), meta)
	default:
		dr := s.relprod(s.peek(ds), s.peek(dr2), metaNext)
		defer dr.Release()
		rr := s.relprod(s.peek(rs), s.peek(rr2), meta)
		defer rr.Release()
		return s.mergeKeepValue(vs, dr, rr)
	}
}

// relprodWriteOnly handles tag 2: this level has no read counterpart, so
// every alternative of set at this level participates; flatten them into
// one combined down-LDD before descending into the relation's write
// values.
func (s *Store) relprodWriteOnly(set, rel, meta, metaNext *Handle) *Handle {
	if rel.IsFalse() {
		return s.wrap(idFalse)
	}
	combined := s.flattenLevel(set)
	defer combined.Release()

	w, rd, rr := s.get(rel.node)
	dr := s.relprod(combined, s.peek(rd), metaNext)
	defer dr.Release()
	rest := s.relprod(set, s.peek(rr), meta)
	defer rest.Release()
	if dr.node == idFalse {
		return rest.Clone()
	}
	return s.wrap(s.insert(w, dr.node, rest.node))
}

// relprodReadHalf handles tag 3: the read half of a read+write pair.
// Matching is identical to tag 1, but the matched value is consumed, not
// re-emitted -- the output level is produced entirely by tag 4 below, so
// the matched branch is merged into the result by union rather than by
// wrapping it in a new node.
func (s *Store) relprodReadHalf(set, rel, meta, metaNext *Handle) *Handle {
	if rel.IsFalse() {
		return s.wrap(idFalse)
	}
	vs, ds, rs := s.get(set.node)
	vr, dr2, rr2 := s.get(rel.node)
	switch {
	case vs < vr:
		return s.relprod(s.peek(rs), rel, meta)
	case vs > vr:
		return s.relprod(set, s.peek(rr2), meta)
	default:
		matched := s.relprod(s.peek(ds), s.peek(dr2), metaNext)
		defer matched.Release()
		rest := s.relprod(s.peek(rs), s.peek(rr2), meta)
		defer rest.Release()
		return s.union(matched, rest)
	}
}

// relprodWriteHalf handles tag 4: set is already pinned to the matched
// row (it is the down-chain tail left over from the tag-3 match); walk
// the relation's write-value alternatives and emit one output node per
// write value.
func (s *Store) relprodWriteHalf(set, rel, meta, metaNext *Handle) *Handle {
	if rel.IsFalse() {
		return s.wrap(idFalse)
	}
	w, rd, rr := s.get(rel.node)
	dr := s.relprod(set, s.peek(rd), metaNext)
	defer dr.Release()
	rest := s.relprod(set, s.peek(rr), meta)
	defer rest.Release()
	if dr.node == idFalse {
		return rest.Clone()
	}
	return s.wrap(s.insert(w, dr.node, rest.node))
}

// mergeKeepValue is the "insert(v, dr, rr) unless dr = FALSE" merge rule
// shared by tags 0 and 1. Tags 2 and 4 apply the same rule inline, with the
// relation's write value in place of v.
func (s *Store) mergeKeepValue(v uint32, dr, rr *Handle) *Handle {
	if dr.node == idFalse {
		return rr.Clone()
	}
	return s.wrap(s.insert(v, dr.node, rr.node))
}

// flattenLevel unions down(s_i) over the whole right-chain of set,
// collapsing every alternative value at this level into one aggregated
// down-LDD. Used by the write-only tag, whose level has no read
// counterpart to filter on, so every alternative at this level
// participates.
func (s *Store) flattenLevel(set *Handle) *Handle {
	acc := s.wrap(idFalse)
	n := set.node
	for n != idFalse {
		_, down, right := s.get(n)
		downH := s.wrap(down)
		next := s.union(acc, downH)
		downH.Release()
		acc.Release()
		acc = next
		n = right
	}
	return acc
}
