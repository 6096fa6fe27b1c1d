package types

import "fmt"

// HugeLength is a count of hugepages. A hugepage is a fixed,
// platform-dependent size (typically 2MiB); every size and offset this
// package deals in is a multiple of one hugepage.
type HugeLength uint64

// NHugePages constructs a HugeLength from a raw count.
func NHugePages(n uint64) HugeLength { return HugeLength(n) }

// Sub returns h-o, or 0 if o > h (lengths never go negative).
func (h HugeLength) Sub(o HugeLength) HugeLength {
	if o >= h {
		return 0
	}
	return h - o
}

// MaxLen returns the greater of a and b.
func MaxLen(a, b HugeLength) HugeLength {
	if a > b {
		return a
	}
	return b
}

// MinLen returns the lesser of a and b.
func MinLen(a, b HugeLength) HugeLength {
	if a < b {
		return a
	}
	return b
}

func (h HugeLength) String() string {
	return fmt.Sprintf("%dhps", uint64(h))
}

// HugeAddr is a hugepage-aligned offset, expressed as a hugepage index
// rather than a byte address (so arithmetic never needs the platform
// hugepage size).
type HugeAddr uint64

func (a HugeAddr) String() string { return fmt.Sprintf("@%d", uint64(a)) }

// HugeRange is a contiguous, hugepage-aligned, nonempty range of hugepages
// identified by (Start, Length). Two ranges are adjacent if one ends exactly
// where the other begins.
type HugeRange struct {
	Start  HugeAddr
	Length HugeLength
}

// NewHugeRange constructs a HugeRange. Length 0 produces an empty range,
// which Valid() reports as "no range" whatever its start.
func NewHugeRange(start HugeAddr, length HugeLength) HugeRange {
	return HugeRange{Start: start, Length: length}
}

// Valid reports whether r identifies a nonempty range.
func (r HugeRange) Valid() bool { return r.Length > 0 }

// End returns the address one past the last hugepage in r.
func (r HugeRange) End() HugeAddr { return r.Start + HugeAddr(r.Length) }

// AdjacentTo reports whether r and o are adjacent: one ends exactly where
// the other begins. Overlapping ranges are not considered adjacent.
func (r HugeRange) AdjacentTo(o HugeRange) bool {
	return r.End() == o.Start || o.End() == r.Start
}

// Overlaps reports whether r and o share any hugepage.
func (r HugeRange) Overlaps(o HugeRange) bool {
	return r.Start < o.End() && o.Start < r.End()
}

// Join merges r and o, which must be adjacent, into their combined range.
func (r HugeRange) Join(o HugeRange) HugeRange {
	start := r.Start
	if o.Start < start {
		start = o.Start
	}
	return HugeRange{Start: start, Length: r.Length + o.Length}
}

// TakeHigh splits off the highest n hugepages of r, returning (remainder,
// taken). r must have Length > n. Splitting from the high end keeps the
// oldest addresses at the front of a range that has been repeatedly
// partially reused, and exposes the most recently touched addresses to the
// next allocation.
func (r HugeRange) TakeHigh(n HugeLength) (remainder, taken HugeRange) {
	remainder = HugeRange{Start: r.Start, Length: r.Length - n}
	taken = HugeRange{Start: r.Start + HugeAddr(r.Length-n), Length: n}
	return
}

func (r HugeRange) String() string {
	return fmt.Sprintf("[%v, %v)", r.Start, r.End())
}
