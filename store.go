package ldd

import "fmt"

// id is the internal, unprotected identity of a node: an index into the
// store's node table. It is a borrowed view -- safe to hold only across the
// native call stack of a single operation, never across an insert performed
// by a call it did not itself make. The public surface of this package
// never hands out a bare id; callers only ever see a *Handle.
type id int32

const (
	idFalse id = 0
	idTrue  id = 1
)

// node is one cell of the table. A node with down == idFree marks a free
// slot; right then carries the index of the next free slot (idFreeEnd
// terminates the list), reusing a struct field as a "next free" pointer.
// idFree is negative, so it can never collide with a real node index.
type node struct {
	value uint32
	down  id
	right id
}

const idFree id = -1
const idFreeEnd id = -2

type triple struct {
	value uint32
	down  id
	right id
}

// Store owns every node, the dedup index, the node freelist, the
// protection set, and the per-operator caches. One Store is the sole
// authority for a given family of Handles; handles from different Stores
// must never be mixed (see Store.checkStore).
type Store struct {
	cfg configs

	table  []node
	marked []bool
	index  map[triple]id
	height []uint32 // height(down)+1, used to check that a right-chain's heights agree

	freeHead     id
	freeCount    int
	countUntilGC int
	gcEnabled    bool

	prot  protectionSet
	cache operationCache

	metrics *storeMetrics
}

// New constructs a Store, ready to use. The two terminal identities (FALSE,
// TRUE) are installed at index 0 and 1 and are never collected. Unlike a
// fixed-variable-count decision diagram, an LDD's levels are open-ended, so
// New takes no variable-count parameter -- only sizing and metrics options.
func New(opts ...Option) *Store {
	cfg := defaultConfigs()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store{
		cfg:       cfg,
		table:     make([]node, 2, cfg.nodesize),
		marked:    make([]bool, 2, cfg.nodesize),
		height:    make([]uint32, 2, cfg.nodesize),
		index:     make(map[triple]id, cfg.nodesize),
		freeHead:  idFreeEnd,
		gcEnabled: true,
	}
	s.table[idFalse] = node{}
	s.table[idTrue] = node{}
	s.height[idFalse] = 0
	s.height[idTrue] = 0
	s.prot = newProtectionSet(cfg.nodesize)
	s.cache = newOperationCache(cfg.cachesize)
	s.countUntilGC = cfg.nodesize
	s.metrics = newStoreMetrics(cfg.metrics)
	return s
}

// EmptySet returns a handle to FALSE, the empty set of vectors. Infallible.
func (s *Store) EmptySet() *Handle { return s.wrap(idFalse) }

// EmptyVector returns a handle to TRUE, the set containing only the empty
// vector. Infallible.
func (s *Store) EmptyVector() *Handle { return s.wrap(idTrue) }

// EnableGarbageCollection toggles the automatic safepoint trigger inside
// insert. Manual GarbageCollect calls remain available regardless.
func (s *Store) EnableGarbageCollection(flag bool) { s.gcEnabled = flag }

// EnablePerformanceMetrics toggles emission of the per-run counts (protection-set
// insertions, peak roots, table capacity, collected-node counts, cache size)
// into the MetricsSink wired via the Metrics Option at construction. Off by
// default: a wired sink stays dormant until this is called with true, so
// configuring a sink and enabling its emission are two separate steps.
func (s *Store) EnablePerformanceMetrics(flag bool) { s.metrics.enabled = flag }

// Insert is the public form of the store's node constructor: canonicity
// preconditions are enforced (panicking on violation), triples are
// deduplicated against the index, and insertion may trigger a GC
// safepoint. External collaborators that build nodes directly from a
// foreign encoding -- the Sylvan dump loader chief among them -- go
// through this entry point rather than a privileged internal one.
func (s *Store) Insert(value uint32, down, right *Handle) *Handle {
	s.checkStore(down)
	s.checkStore(right)
	return s.wrap(s.insert(value, down.node, right.node))
}

// Get returns the triple held at h, each field as a freshly protected
// handle. Panics if h is a terminal or refers to a freed slot.
func (s *Store) Get(h *Handle) (value uint32, down, right *Handle) {
	s.checkStore(h)
	v, d, r := s.get(h.node)
	return v, s.wrap(d), s.wrap(r)
}

// insert enforces the canonicity invariants on the proposed triple,
// returning the canonical identity for (value, down, right): an existing
// one on a dedup hit, otherwise a freshly allocated one. May run a GC cycle
// first if the insertion budget (countUntilGC) has elapsed -- the one
// safepoint reached inside a recursive operation. The only other automatic
// collection is the cache-budget check (cacheOverBudget) that the public
// entry points Union, Minus, Project and RelationalProduct make before they
// start recursing.
func (s *Store) insert(value uint32, down, right id) id {
	if down == idFalse {
		panicContract("insert: down must not be FALSE")
	}
	if right == idTrue {
		panicContract("insert: right must not be TRUE")
	}
	if right != idFalse {
		if value >= s.valueOf(right) {
			panicContract("insert: value %d must be < value(right) %d", value, s.valueOf(right))
		}
		if s.height[down]+1 != s.height[right] {
			panicContract("insert: height(down)+1 must equal height(right)")
		}
	}

	t := triple{value: value, down: down, right: right}
	if existing, ok := s.index[t]; ok {
		return existing
	}

	if s.gcEnabled {
		s.countUntilGC--
		if s.countUntilGC <= 0 {
			s.GarbageCollect()
		}
	}

	n := s.alloc()
	s.table[n] = node{value: value, down: down, right: right}
	s.height[n] = s.height[down] + 1
	s.index[t] = n
	s.metrics.setGauge(s.metrics.sink.NodesLive, float64(len(s.table)-s.freeCount))
	s.metrics.setGauge(s.metrics.sink.TableCapacity, float64(cap(s.table)))
	s.metrics.setGauge(s.metrics.sink.CacheEntries, float64(s.cache.size()))
	return n
}

// alloc returns a fresh slot, reusing the node freelist when non-empty and
// growing the table otherwise.
func (s *Store) alloc() id {
	if s.freeHead != idFreeEnd {
		n := s.freeHead
		s.freeHead = s.table[n].right
		s.freeCount--
		return n
	}
	n := id(len(s.table))
	s.table = append(s.table, node{})
	s.marked = append(s.marked, false)
	s.height = append(s.height, 0)
	return n
}

func (s *Store) valueOf(n id) uint32 {
	if n == idFalse || n == idTrue {
		panicContract("value: terminal has no value")
	}
	return s.table[n].value
}

// get returns the triple held at n. Panics if n is a terminal or refers to
// a freed slot -- both are contract violations.
func (s *Store) get(n id) (value uint32, down, right id) {
	if n == idFalse || n == idTrue {
		panicContract("get: cannot inspect a terminal node")
	}
	if int(n) >= len(s.table) || s.table[n].down == idFree {
		panicContract("get: reference to a freed or out-of-range slot")
	}
	nd := s.table[n]
	return nd.value, nd.down, nd.right
}

// wrap protects n and returns an owning Handle for it.
func (s *Store) wrap(n id) *Handle {
	return s.newHandle(n)
}

// Stats reports a snapshot of node-table, dedup-index and protection-set
// occupancy.
type Stats struct {
	TableLen     int
	TableCap     int
	FreeNodes    int
	LiveRoots    int
	PeakRoots    int
	DedupEntries int
}

func (s *Store) Stats() Stats {
	return Stats{
		TableLen:     len(s.table),
		TableCap:     cap(s.table),
		FreeNodes:    s.freeCount,
		LiveRoots:    s.prot.liveCount,
		PeakRoots:    s.prot.peakLive,
		DedupEntries: len(s.index),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d/%d free=%d roots=%d(peak %d) dedup=%d",
		s.TableLen, s.TableCap, s.FreeNodes, s.LiveRoots, s.PeakRoots, s.DedupEntries)
}
