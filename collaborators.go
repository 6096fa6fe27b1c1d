package hugecache

import "github.com/go-hugecache/hugecache/internal/addrmap"

// HugeAllocator is the upstream source of fresh, possibly-unbacked hugepage
// ranges, and the sink for ranges this cache permanently returns. It is an
// external collaborator - this package only specifies the interface it
// consumes.
type HugeAllocator interface {
	// Get requests n contiguous hugepages. fromReleased reports whether the
	// returned range is currently unbacked (the caller must back it before
	// use). Get returns the zero HugeRange if the allocator cannot satisfy
	// the request.
	Get(n HugeLength) (r HugeRange, fromReleased bool)
	// Release permanently returns r to the allocator.
	Release(r HugeRange)
}

// MetadataAllocator is a one-way, allocate-only source of address-map node
// storage: nodes are never freed individually back to it, only recycled
// internally by addrmap.Map's free list. The cache calls it only the first
// time the map grows past its previous high-water mark of simultaneously
// free ranges - never on the steady-state hot path.
type MetadataAllocator interface {
	Allocate() *addrmap.Node
}

// Unbacker tells the OS to drop physical backing for a range. It may fail
// under memory pressure, in which case the range stays backed in the cache
// and may be tried again on a later pass. It is an interface the cache holds
// by reference, whose lifetime the caller must outlive the cache.
type Unbacker interface {
	Unback(r HugeRange) bool
}

// UnbackerFunc adapts a plain function to the Unbacker interface.
type UnbackerFunc func(HugeRange) bool

// Unback calls f(r).
func (f UnbackerFunc) Unback(r HugeRange) bool { return f(r) }
