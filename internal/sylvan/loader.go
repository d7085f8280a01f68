// Package sylvan loads the little-endian binary LDD dump format inherited
// from the prior-art Sylvan decision-diagram package. Short reads and
// undefined node references are reported as wrapped errors rather than the
// core's panic-on-contract-violation policy, since this package is the one
// place malformed external input is expected.
package sylvan

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/sdzldd/ldd"
)

// Transition is one transition group of a loaded model: the relation LDD
// and the meta spec driving RelationalProduct over it.
type Transition struct {
	Relation *ldd.Handle
	Meta     *ldd.Handle
}

// Model is a loaded reachability problem: an initial state and the
// transition relations that may be applied to it.
type Model struct {
	InitialState *ldd.Handle
	Transitions  []Transition
}

// Load reads a Sylvan-format dump from filename into s.
func Load(s *ldd.Store, filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("sylvan: %w", err)
	}
	defer f.Close()
	return load(s, f)
}

func load(s *ldd.Store, r io.Reader) (*Model, error) {
	if _, err := readU32(r); err != nil { // vector length, informative only
		return nil, err
	}
	if _, err := readU32(r); err != nil { // reserved
		return nil, err
	}

	reader := newNodeReader(s)
	initial, err := reader.readLdd(r)
	if err != nil {
		return nil, err
	}

	numTransitions, err := readU32(r)
	if err != nil {
		return nil, err
	}

	projections := make([][2][]int, numTransitions)
	for i := range projections {
		read, write, err := readProjection(r)
		if err != nil {
			return nil, err
		}
		projections[i] = [2][]int{read, write}
	}

	transitions := make([]Transition, numTransitions)
	for i := range transitions {
		relation, err := reader.readLdd(r)
		if err != nil {
			return nil, err
		}
		read, write := projections[i][0], projections[i][1]
		transitions[i] = Transition{
			Relation: relation,
			Meta:     s.ComputeMeta(read, write),
		}
	}

	return &Model{InitialState: initial, Transitions: transitions}, nil
}

// nodeReader assigns locally-scoped indices to nodes as they are read,
// starting at 2 (0 and 1 are reserved for FALSE/TRUE), mirroring
// SylvanReader's last_index bookkeeping.
type nodeReader struct {
	s         *ldd.Store
	indexed   map[uint64]*ldd.Handle
	lastIndex uint64
}

func newNodeReader(s *ldd.Store) *nodeReader {
	return &nodeReader{s: s, indexed: make(map[uint64]*ldd.Handle), lastIndex: 2}
}

// readLdd reads one node block: a u64 count, count node records, then a
// trailing u64 identifying the block's root.
func (nr *nodeReader) readLdd(r io.Reader) (*ldd.Handle, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	for i := uint64(0); i < count; i++ {
		a, err := readU64(r)
		if err != nil {
			return nil, err
		}
		b, err := readU64(r)
		if err != nil {
			return nil, err
		}

		// word A: bit 0 marked, bits 1..48 right, bits 48..64 value-low-16.
		// word B: bits 0..16 value-high-16, bit 16 copy, bits 17..64 down.
		right := (a >> 1) & ((1 << 47) - 1)
		valueLow := (a >> 48) & 0xffff
		valueHigh := b & 0xffff
		down := b >> 17
		value := uint32(valueHigh<<16 | valueLow)

		downHandle, err := nr.resolve(down)
		if err != nil {
			return nil, err
		}
		rightHandle, err := nr.resolve(right)
		if err != nil {
			return nil, err
		}

		node := nr.s.Insert(value, downHandle, rightHandle)
		nr.indexed[nr.lastIndex] = node
		nr.lastIndex++
	}

	root, err := readU64(r)
	if err != nil {
		return nil, err
	}
	return nr.resolve(root)
}

// resolve maps a file-local index to a handle: 0 and 1 are the terminals,
// anything else must already have been assigned by a prior record read
// through this reader, in this block or an earlier one.
func (nr *nodeReader) resolve(index uint64) (*ldd.Handle, error) {
	switch index {
	case 0:
		return nr.s.EmptySet(), nil
	case 1:
		return nr.s.EmptyVector(), nil
	default:
		h, ok := nr.indexed[index]
		if !ok {
			return nil, fmt.Errorf("sylvan: index %d: %w", index, ldd.ErrBadIndex)
		}
		return h, nil
	}
}

func readProjection(r io.Reader) (read, write []int, err error) {
	numRead, err := readU32(r)
	if err != nil {
		return nil, nil, err
	}
	numWrite, err := readU32(r)
	if err != nil {
		return nil, nil, err
	}

	read = make([]int, numRead)
	for i := range read {
		v, err := readU32(r)
		if err != nil {
			return nil, nil, err
		}
		read[i] = int(v)
	}

	write = make([]int, numWrite)
	for i := range write {
		v, err := readU32(r)
		if err != nil {
			return nil, nil, err
		}
		write[i] = int(v)
	}

	return read, write, nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("sylvan: %w: %v", ldd.ErrShortRead, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("sylvan: %w: %v", ldd.ErrShortRead, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
