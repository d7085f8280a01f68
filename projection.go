package ldd

// ComputeProj materializes a projection spec -- a vector of level indices,
// order and duplicates immaterial -- into a singleton down-chain LDD of
// length max(indices)+1, value 1 at kept levels and 0 elsewhere. The spec
// is deliberately one level longer than max(indices): a guide only as long
// as max(indices) would silently drop the highest-indexed level.
func (s *Store) ComputeProj(indices []int) *Handle {
	length := 0
	for _, i := range indices {
		if i+1 > length {
			length = i + 1
		}
	}
	kept := make([]bool, length)
	for _, i := range indices {
		kept[i] = true
	}

	acc := s.wrap(idTrue)
	for i := length - 1; i >= 0; i-- {
		v := uint32(0)
		if kept[i] {
			v = 1
		}
		n := s.insert(v, acc.node, idFalse)
		acc.Release()
		acc = s.wrap(n)
	}
	return acc
}

// Project computes { v|_spec | v in [[set]] }, guided by a projection spec
// built by ComputeProj.
func (s *Store) Project(set, spec *Handle) *Handle {
	s.checkStore(set)
	s.checkStore(spec)
	if s.gcEnabled && s.cacheOverBudget() {
		s.GarbageCollect()
	}
	return s.project(set, spec)
}

func (s *Store) project(set, spec *Handle) *Handle {
	if set.IsFalse() {
		return s.wrap(idFalse)
	}
	if spec.IsTrue() {
		return s.wrap(idTrue)
	}

	key := pairKey{set.node, spec.node}
	if cached, ok := s.cache.project[key]; ok {
		return s.wrap(cached)
	}

	p, specDown, _ := s.get(spec.node)
	v, d, r := s.get(set.node)

	var result id
	switch p {
	case 0:
		dropped := s.project(s.peek(r), spec)
		defer dropped.Release()
		merged := s.project(s.peek(d), s.peek(specDown))
		defer merged.Release()
		combined := s.union(dropped, merged)
		defer combined.Release()
		result = combined.node
	case 1:
		dr := s.project(s.peek(d), s.peek(specDown))
		defer dr.Release()
		rest := s.project(s.peek(r), spec)
		defer rest.Release()
		if dr.node == idFalse {
			result = rest.node
		} else {
			result = s.insert(v, dr.node, rest.node)
		}
	default:
		panicContract("project: meta tag %d outside {0,1}", p)
	}

	s.cache.project[key] = result
	return s.wrap(result)
}
