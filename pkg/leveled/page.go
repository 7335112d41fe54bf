package leveled

import (
	"encoding/binary"
	"fmt"
	"sort"

	bloom "github.com/bits-and-blooms/bloom/v3"
)

// NilKey is the reserved key meaning "no entity". Storing or looking up
// NilKey is a usage bug and panics.
const NilKey uint64 = 0

// Page is a capacity-bounded sorted run of (key, value, tombstone) slots.
// Keys are strictly increasing among populated slots; a tombstoned slot
// keeps its key for ordering but is semantically absent. Capacity is fixed
// at creation and writes never reallocate.
//
// Merge-produced pages additionally carry a bloom filter over their
// physical keys so cold probes can skip the binary search on a miss.
type Page[V any] struct {
	keys []uint64
	vals []V
	dead []bool
	n    int // populated slots, tombstones included

	filter *bloom.BloomFilter
	alloc  Allocator
}

// NewPage creates an empty page with the given fixed capacity, backed by
// the Go heap.
func NewPage[V any](capacity int) (*Page[V], error) {
	return newPage[V](capacity, heapAllocator{})
}

func newPage[V any](capacity int, alloc Allocator) (*Page[V], error) {
	if capacity < 0 {
		panic("leveled: negative page capacity")
	}
	if err := alloc.Acquire(capacity); err != nil {
		return nil, fmt.Errorf("page of %d slots: %w", capacity, err)
	}
	return &Page[V]{
		keys:  make([]uint64, capacity),
		vals:  make([]V, capacity),
		dead:  make([]bool, capacity),
		alloc: alloc,
	}, nil
}

// Len reports populated slots, tombstones included.
func (p *Page[V]) Len() int { return p.n }

// Cap reports the fixed slot capacity.
func (p *Page[V]) Cap() int { return len(p.keys) }

// release hands the page's slot reservation back to the allocator.
func (p *Page[V]) release() {
	if p.alloc != nil {
		p.alloc.Release(len(p.keys))
		p.alloc = nil
	}
}

func keyBytes(key uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return b[:]
}

// search returns the first slot with key >= target.
func (p *Page[V]) search(key uint64) int {
	return sort.Search(p.n, func(i int) bool { return p.keys[i] >= key })
}

// find locates the physical slot of key, tombstoned or not.
func (p *Page[V]) find(key uint64) (int, bool) {
	if key == NilKey {
		panic("leveled: lookup of nil key")
	}
	if p.filter != nil && !p.filter.Test(keyBytes(key)) {
		return 0, false
	}
	i := p.search(key)
	return i, i < p.n && p.keys[i] == key
}

// Has reports whether key is present and live in this page.
func (p *Page[V]) Has(key uint64) bool {
	i, ok := p.find(key)
	return ok && !p.dead[i]
}

// Get returns a pointer to the value stored for key, or nil if the key is
// absent or tombstoned. The pointer aliases the page's backing array and is
// invalidated by any later Put or Delete that shifts slots.
func (p *Page[V]) Get(key uint64) (*V, bool) {
	i, ok := p.find(key)
	if !ok || p.dead[i] {
		return nil, false
	}
	return &p.vals[i], true
}

// Put inserts or overwrites key. Overwriting an existing slot clears its
// tombstone in place. Inserting into a full page is a precondition
// violation and panics: callers must compact before the page fills.
func (p *Page[V]) Put(key uint64, val V) {
	if key == NilKey {
		panic("leveled: put of nil key")
	}
	i := p.search(key)
	if i < p.n && p.keys[i] == key {
		p.vals[i] = val
		p.dead[i] = false
		return
	}
	p.insertAt(i, key)
	p.vals[i] = val
}

// Delete tombstones key. A key never seen by this page still gets a
// standalone tombstone slot at its sorted position, so deletions shadow
// colder copies correctly; this consumes capacity like any insert.
func (p *Page[V]) Delete(key uint64) {
	if key == NilKey {
		panic("leveled: delete of nil key")
	}
	i := p.search(key)
	if i < p.n && p.keys[i] == key {
		p.dead[i] = true
		return
	}
	p.insertAt(i, key)
	var zero V
	p.vals[i] = zero
	p.dead[i] = true
}

// insertAt opens slot i, writes key, and marks the slot live.
func (p *Page[V]) insertAt(i int, key uint64) {
	if p.n == len(p.keys) {
		panic("leveled: insert into full page")
	}
	copy(p.keys[i+1:p.n+1], p.keys[i:p.n])
	copy(p.vals[i+1:p.n+1], p.vals[i:p.n])
	copy(p.dead[i+1:p.n+1], p.dead[i:p.n])
	p.keys[i] = key
	p.dead[i] = false
	p.n++
	if p.filter != nil {
		p.filter.Add(keyBytes(key))
	}
}
