package ldd

// IterRight lazily walks the right-chain of a node, yielding one
// (value, down) pair per call to Next -- the alternatives at a single
// level. cur holds a protected Handle to the still-unexplored tail of
// the chain, not a bare id: the walk can span several Next calls, and
// any insert elsewhere on the same Store in between is a GC safepoint
// that would be free to reclaim and reuse an unprotected tail's slot.
type IterRight struct {
	s    *Store
	cur  *Handle
	val  uint32
	down *Handle
}

// NewIterRight starts a right-chain walk from h.
func (s *Store) NewIterRight(h *Handle) *IterRight {
	s.checkStore(h)
	return &IterRight{s: s, cur: h.Clone()}
}

// Next advances the walk. It releases the previous Down handle, if any,
// before fetching the next one.
func (it *IterRight) Next() bool {
	if it.down != nil {
		it.down.Release()
		it.down = nil
	}
	if it.cur == nil || it.cur.IsFalse() {
		return false
	}
	v, d, r := it.s.get(it.cur.node)
	it.val = v
	it.down = it.s.wrap(d)
	next := it.s.wrap(r)
	it.cur.Release()
	it.cur = next
	return true
}

// Value returns the value at the current position.
func (it *IterRight) Value() uint32 { return it.val }

// Down returns a fresh handle to the down-chain rooted at the current
// position; the caller owns it and must Release it.
func (it *IterRight) Down() *Handle { return it.down.Clone() }

// Close releases any handle still held by the iterator. Safe to call
// after exhausting the walk or abandoning it early.
func (it *IterRight) Close() {
	if it.down != nil {
		it.down.Release()
		it.down = nil
	}
	if it.cur != nil {
		it.cur.Release()
		it.cur = nil
	}
}

// iterFrame is one level of the explicit depth-first stack driving Iter:
// node is a protected Handle to the still-unexplored tail of the
// right-chain at this depth (FALSE once every alternative has been
// tried), depth is the vector position this frame is choosing a value
// for. node is a Handle rather than a bare id for the same reason
// IterRight.cur is: a frame can sit on the stack across several Next
// calls, and an intervening insert-driven GC must not be free to reclaim
// a tail this traversal still needs.
type iterFrame struct {
	node  *Handle
	depth int
}

// Iter lazily enumerates every vector encoded by an LDD via an explicit
// depth-first stack, using a two-phase descend/ascend structure without
// recursion so that enumeration can be paused and resumed one vector at a
// time.
type Iter struct {
	s     *Store
	stack []iterFrame
	path  []uint32
	vec   []uint32
}

// NewIter starts an enumeration of every vector in [[h]].
func (s *Store) NewIter(h *Handle) *Iter {
	s.checkStore(h)
	return &Iter{s: s, stack: []iterFrame{{node: h.Clone(), depth: 0}}}
}

// Next advances to the next vector, returning false once every vector has
// been produced.
func (it *Iter) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		switch {
		case top.node.IsFalse():
			top.node.Release()
			it.stack = it.stack[:len(it.stack)-1]
		case top.node.IsTrue():
			vec := make([]uint32, top.depth)
			copy(vec, it.path[:top.depth])
			it.vec = vec
			top.node.Release()
			it.stack = it.stack[:len(it.stack)-1]
			return true
		default:
			v, d, r := it.s.get(top.node.node)
			rightHandle := it.s.wrap(r)
			downHandle := it.s.wrap(d)
			old := top.node
			top.node = rightHandle
			old.Release()
			it.path = append(it.path[:top.depth], v)
			it.stack = append(it.stack, iterFrame{node: downHandle, depth: top.depth + 1})
		}
	}
	return false
}

// Vector returns the vector produced by the most recent call to Next.
// The returned slice is owned by the caller.
func (it *Iter) Vector() []uint32 { return it.vec }

// Close releases every Handle still held on the traversal stack. Safe to
// call after exhausting the enumeration or abandoning it early.
func (it *Iter) Close() {
	for _, frame := range it.stack {
		frame.node.Release()
	}
	it.stack = nil
}
