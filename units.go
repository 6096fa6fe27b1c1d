package hugecache

import "github.com/go-hugecache/hugecache/internal/types"

// HugeLength is a count of hugepages. A hugepage is a fixed,
// platform-dependent size (typically 2MiB); every size and offset this
// package deals in is a multiple of one hugepage.
type HugeLength = types.HugeLength

// NHugePages constructs a HugeLength from a raw count.
func NHugePages(n uint64) HugeLength { return types.NHugePages(n) }

// HugeAddr is a hugepage-aligned offset, expressed as a hugepage index
// rather than a byte address.
type HugeAddr = types.HugeAddr

// HugeRange is a contiguous, hugepage-aligned, nonempty range of hugepages
// identified by (Start, Length).
type HugeRange = types.HugeRange

// NewHugeRange constructs a HugeRange.
func NewHugeRange(start HugeAddr, length HugeLength) HugeRange {
	return types.NewHugeRange(start, length)
}
