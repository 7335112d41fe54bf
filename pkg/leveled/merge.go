package leveled

import (
	"fmt"

	bloom "github.com/bits-and-blooms/bloom/v3"
)

// Merge produces a new page holding the sorted union of a and b. On equal
// keys a's entry wins and b's is discarded: a is the newer input. With
// dropTombstones set, tombstoned entries from either input are omitted
// entirely; that is only sound when producing the coldest level, since
// nothing colder remains for a tombstone to shadow.
func Merge[V any](a, b *Page[V], dropTombstones bool) (*Page[V], error) {
	return mergePages(a, b, dropTombstones, heapAllocator{}, 0)
}

func mergePages[V any](a, b *Page[V], dropTombstones bool, alloc Allocator, bloomFpRate float64) (*Page[V], error) {
	out, err := newPage[V](a.n+b.n, alloc)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if bloomFpRate > 0 && a.n+b.n > 0 {
		out.filter = bloom.NewWithEstimates(uint(a.n+b.n), bloomFpRate)
	}

	emit := func(src *Page[V], i int) {
		if dropTombstones && src.dead[i] {
			return
		}
		j := out.n
		out.keys[j] = src.keys[i]
		out.vals[j] = src.vals[i]
		out.dead[j] = src.dead[i]
		out.n++
		if out.filter != nil {
			out.filter.Add(keyBytes(src.keys[i]))
		}
	}

	i, j := 0, 0
	for i < a.n || j < b.n {
		switch {
		case j >= b.n:
			emit(a, i)
			i++
		case i >= a.n:
			emit(b, j)
			j++
		case a.keys[i] < b.keys[j]:
			emit(a, i)
			i++
		case a.keys[i] > b.keys[j]:
			emit(b, j)
			j++
		default:
			// same key in both: a is newer, b's entry is obsolete
			emit(a, i)
			i++
			j++
		}
	}
	return out, nil
}
