// Package leveled implements a small leveled, sort/merge key-value store
// for per-entity attribute data.
//
// Entities are identified by uint64 keys (0 is reserved and never stored)
// and each Storage instance holds one attribute type V. Data lives in three
// capacity-bounded sorted pages:
//
//	Write path:  Put/Delete -> active page
//	Read path:   active -> warm -> cold, first physical hit wins
//	Compaction:  active+warm -> warm, then warm+cold -> cold (drops tombstones)
//
// Deletes record tombstones in the active page; a tombstone shadows any
// stale copy of the same key in a colder page until compaction reconciles
// them. Tombstones are discarded for good only when merging into the cold
// page, since nothing colder remains to be shadowed.
//
// Compaction never runs on its own. Callers invoke Compact before the
// active page fills; writing into a full active page is a usage bug and
// panics. Everything is purely in memory and single-owner: no durability,
// no internal locking.
package leveled
