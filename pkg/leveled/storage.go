package leveled

import (
	"fmt"

	"go.uber.org/zap"
)

// Storage is the three-level cascade: an active page receiving all writes,
// plus warm and cold pages produced by compaction. The same key may exist
// in several levels at once; reads resolve it by level precedence
// (active > warm > cold), never by eager deduplication on write.
//
// A Storage has exactly one logical owner. Concurrent use is undefined.
type Storage[V any] struct {
	opts  Options
	log   *zap.Logger
	alloc Allocator

	active *Page[V]
	warm   *Page[V]
	cold   *Page[V]

	// count is advisory: bumped on Put, dropped on Delete, never
	// reconciled by compaction, so duplicate puts and deletes of absent
	// keys make it drift.
	count       int
	compactions uint64
}

// New creates a Storage with an empty active page of opts.ActiveCapacity
// slots and zero-capacity warm and cold pages.
func New[V any](opts Options) (*Storage[V], error) {
	opts = opts.withDefaults()
	s := &Storage[V]{opts: opts, log: opts.Logger, alloc: opts.Allocator}

	var err error
	if s.active, err = newPage[V](opts.ActiveCapacity, s.alloc); err != nil {
		return nil, fmt.Errorf("active page: %w", err)
	}
	if s.warm, err = newPage[V](0, s.alloc); err != nil {
		s.active.release()
		return nil, fmt.Errorf("warm page: %w", err)
	}
	if s.cold, err = newPage[V](0, s.alloc); err != nil {
		s.active.release()
		s.warm.release()
		return nil, fmt.Errorf("cold page: %w", err)
	}
	return s, nil
}

// Close releases every page's reservation back to the allocator. The
// Storage must not be used afterwards.
func (s *Storage[V]) Close() {
	for _, p := range []*Page[V]{s.active, s.warm, s.cold} {
		if p != nil {
			p.release()
		}
	}
	s.active, s.warm, s.cold = nil, nil, nil
}

// Put writes key into the active page. Panics if key is NilKey or the
// active page is full; check ActiveFull and Compact proactively.
func (s *Storage[V]) Put(key uint64, val V) {
	s.active.Put(key, val)
	s.count++
}

// Delete tombstones key in the active page, shadowing any copy of the key
// in a colder level until the next compaction.
func (s *Storage[V]) Delete(key uint64) {
	s.active.Delete(key)
	s.count--
}

// Has reports whether key is live. The first level holding the key
// physically, tombstoned or not, is authoritative; colder levels are not
// consulted past it.
func (s *Storage[V]) Has(key uint64) bool {
	for _, p := range []*Page[V]{s.active, s.warm, s.cold} {
		if i, ok := p.find(key); ok {
			return !p.dead[i]
		}
	}
	return false
}

// Get returns a pointer to the value for key, resolved by level
// precedence. The pointer aliases page storage and is invalidated by any
// later Put, Delete, or Compact.
func (s *Storage[V]) Get(key uint64) (*V, bool) {
	for _, p := range []*Page[V]{s.active, s.warm, s.cold} {
		if i, ok := p.find(key); ok {
			if p.dead[i] {
				return nil, false
			}
			return &p.vals[i], true
		}
	}
	return nil, false
}

// Len returns the advisory length counter. See the field note: it drifts.
func (s *Storage[V]) Len() int { return s.count }

// ActiveFull reports whether the next write would violate the active
// page's capacity precondition.
func (s *Storage[V]) ActiveFull() bool { return s.active.Len() == s.active.Cap() }

// Compact merges the active page into warm and resets the active page.
// If the merged warm page then holds more than WarmThreshold entries it is
// further merged into cold, and that second merge discards tombstones for
// good. Each step constructs its replacement pages fully before retiring
// the inputs, so a failed compaction leaves the Storage exactly as it was.
func (s *Storage[V]) Compact() error {
	mergedWarm, err := mergePages(s.active, s.warm, false, s.alloc, s.opts.BloomFpRate)
	if err != nil {
		return fmt.Errorf("compact active into warm: %w", err)
	}
	freshActive, err := newPage[V](s.opts.ActiveCapacity, s.alloc)
	if err != nil {
		mergedWarm.release()
		return fmt.Errorf("compact active into warm: %w", err)
	}
	s.active.release()
	s.warm.release()
	s.active, s.warm = freshActive, mergedWarm

	if s.warm.Len() > s.opts.WarmThreshold {
		mergedCold, err := mergePages(s.warm, s.cold, true, s.alloc, s.opts.BloomFpRate)
		if err != nil {
			return fmt.Errorf("compact warm into cold: %w", err)
		}
		freshWarm, err := newPage[V](0, s.alloc)
		if err != nil {
			mergedCold.release()
			return fmt.Errorf("compact warm into cold: %w", err)
		}
		s.warm.release()
		s.cold.release()
		s.warm, s.cold = freshWarm, mergedCold
	}

	s.compactions++
	s.log.Debug("compacted",
		zap.Int("warm_len", s.warm.Len()),
		zap.Int("cold_len", s.cold.Len()),
		zap.Uint64("compactions", s.compactions))
	return nil
}

// Stats is a point-in-time snapshot of level occupancy.
type Stats struct {
	ActiveLen   int
	ActiveCap   int
	WarmLen     int
	ColdLen     int
	Count       int // advisory, may drift
	Compactions uint64
}

// Stats returns current occupancy numbers.
func (s *Storage[V]) Stats() Stats {
	return Stats{
		ActiveLen:   s.active.Len(),
		ActiveCap:   s.active.Cap(),
		WarmLen:     s.warm.Len(),
		ColdLen:     s.cold.Len(),
		Count:       s.count,
		Compactions: s.compactions,
	}
}
