package ldd

import "runtime"

// protSlot is one entry of the protection set: either live, holding the
// node it protects, or free, holding the index of the next free slot in
// slotValue (freeEnd terminates the list). This is the same
// array-plus-threaded-freelist technique the node table itself uses,
// applied here to the root registry.
type protSlot struct {
	slotValue id
	live      bool
}

type protectionSet struct {
	slots     []protSlot
	freeHead  int32
	liveCount int
	peakLive  int

	totalProtections uint64
}

const freeEnd int32 = -1

func newProtectionSet(capacity int) protectionSet {
	return protectionSet{
		slots:    make([]protSlot, 0, capacity),
		freeHead: freeEnd,
	}
}

// protect allocates a slot for n, reusing a free slot when available.
func (p *protectionSet) protect(n id) int32 {
	p.totalProtections++
	p.liveCount++
	if p.liveCount > p.peakLive {
		p.peakLive = p.liveCount
	}
	if p.freeHead != freeEnd {
		idx := p.freeHead
		p.freeHead = int32(p.slots[idx].slotValue)
		p.slots[idx] = protSlot{slotValue: n, live: true}
		return idx
	}
	idx := int32(len(p.slots))
	p.slots = append(p.slots, protSlot{slotValue: n, live: true})
	return idx
}

// release frees slot idx, splicing it onto the protection-set freelist.
func (p *protectionSet) release(idx int32) {
	if idx < 0 || int(idx) >= len(p.slots) || !p.slots[idx].live {
		panicContract("release: slot %d is not live", idx)
	}
	p.slots[idx] = protSlot{slotValue: id(p.freeHead), live: false}
	p.freeHead = idx
	p.liveCount--
}

// forEachLive yields the protected node of every live slot, in slot order.
// This is the GC root set.
func (p *protectionSet) forEachLive(f func(id)) {
	for _, s := range p.slots {
		if s.live {
			f(s.slotValue)
		}
	}
}

// Handle is a reference-counted token binding one protection-set slot to a
// node. Construction (via a Store operation) protects the node; Release
// (or garbage collection of the Handle value itself, via finalizer)
// unprotects it. Two handles compare Equal exactly when they denote the
// same node, regardless of which slot each currently occupies.
type Handle struct {
	store *Store
	slot  int32
	node  id
}

// newHandle protects n in s's protection set and arms a finalizer as a
// backstop. The finalizer is not the primary release path -- callers that
// care about timely collection should call Release explicitly.
func (s *Store) newHandle(n id) *Handle {
	h := &Handle{store: s, node: n, slot: s.prot.protect(n)}
	runtime.SetFinalizer(h, (*Handle).finalize)
	s.metrics.incCounter(s.metrics.sink.ProtectionInsertions)
	s.metrics.setGauge(s.metrics.sink.PeakRoots, float64(s.prot.peakLive))
	return h
}

func (h *Handle) finalize() {
	if h.slot >= 0 {
		h.store.prot.release(h.slot)
		h.slot = -1
	}
}

// Release deterministically unprotects the handle's node. Safe to call
// more than once; safe to call even though a finalizer is also armed,
// since release clears the slot index to -1 the first time it runs.
func (h *Handle) Release() {
	if h.slot < 0 {
		return
	}
	h.store.prot.release(h.slot)
	h.slot = -1
	runtime.SetFinalizer(h, nil)
}

// Clone protects a fresh slot for the same node, extending its lifetime
// independently of h.
func (h *Handle) Clone() *Handle {
	return h.store.newHandle(h.node)
}

// peek returns an unprotected view of n for use only as an argument to a
// further call within the same operation, never retained past it: n is a
// child (via down or right) of a node reachable from one of the caller's
// own already-protected arguments, so garbage collection's mark phase
// keeps it alive transitively for as long as that argument lives, with no
// protection-set slot of its own needed. Its Release is a no-op (slot <
// 0) and it arms no finalizer, so it costs nothing a wrap would not
// immediately give back.
func (s *Store) peek(n id) *Handle {
	return &Handle{store: s, slot: -1, node: n}
}

// Equal compares node identity, not slot identity: two handles referring
// to the same canonical node are always Equal, and handles from different
// stores are never equal.
func (h *Handle) Equal(other *Handle) bool {
	if other == nil {
		return false
	}
	return h.store == other.store && h.node == other.node
}

// checkStore panics if h was not obtained from s, guarding against
// cross-store handle mixing.
func (s *Store) checkStore(h *Handle) {
	if h == nil || h.store != s {
		panicContract("handle belongs to a different store")
	}
}

// IsFalse reports whether h denotes the empty set.
func (h *Handle) IsFalse() bool { return h.node == idFalse }

// IsTrue reports whether h denotes the singleton set of the empty vector.
func (h *Handle) IsTrue() bool { return h.node == idTrue }
