package leveled

import "errors"

var (
	// ErrAllocFailed is returned when the allocator cannot supply the slots
	// needed for a new page. It is never retried internally.
	ErrAllocFailed = errors.New("allocation failed")
)
