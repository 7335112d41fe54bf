package leveled

import "fmt"

// Allocator admits or refuses page capacity. Pages reserve slots up front
// and give them back when they are retired, so a bounded allocator caps the
// total number of resident entries across all levels.
//
// Implementations report failure through Acquire instead of panicking;
// failed acquisitions must not leak reservations.
type Allocator interface {
	// Acquire reserves capacity for n slots.
	Acquire(n int) error
	// Release returns n previously acquired slots.
	Release(n int)
}

// heapAllocator is the default: plain Go heap, never refuses.
type heapAllocator struct{}

func (heapAllocator) Acquire(int) error { return nil }
func (heapAllocator) Release(int)       {}

// QuotaAllocator bounds the total number of slots in use. Like the store
// itself it expects a single logical owner and does no locking.
type QuotaAllocator struct {
	limit int
	used  int
}

// NewQuotaAllocator returns an allocator that refuses to exceed limit slots.
func NewQuotaAllocator(limit int) *QuotaAllocator {
	return &QuotaAllocator{limit: limit}
}

func (a *QuotaAllocator) Acquire(n int) error {
	if a.used+n > a.limit {
		return fmt.Errorf("quota %d/%d, need %d: %w", a.used, a.limit, n, ErrAllocFailed)
	}
	a.used += n
	return nil
}

func (a *QuotaAllocator) Release(n int) {
	a.used -= n
	if a.used < 0 {
		panic("leveled: allocator released more slots than acquired")
	}
}

// InUse reports the number of slots currently reserved.
func (a *QuotaAllocator) InUse() int { return a.used }
