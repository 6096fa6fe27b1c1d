// Package addrmap implements the cache's address-ordered free structure: an
// index of free hugepage ranges keyed by start address, supporting
// best-fit lookup and neighbor coalescing. It plays the same role as a TLSF
// allocator's physical-neighbor doubly-linked list (there, prevPhysical and
// nextPhysical pointers; here, byEnd/byStart lookups) and uses the same
// handle-keyed github.com/dolthub/swiss map for O(1) node lookup. Unlike
// TLSF's segregated size-class buckets, which give an approximate best fit
// in exchange for O(1) bucket selection, this map keeps an exact
// size-sorted index so Find can satisfy a "minimum length, then oldest"
// tie-break precisely; see DESIGN.md.
package addrmap

import (
	"sort"

	"github.com/dolthub/swiss"
	"github.com/pkg/errors"

	"github.com/go-hugecache/hugecache/internal/types"
)

// Node is a free entry in the address map: a range plus the tick at which it
// was freed, used to break ties among equally-good Find candidates by
// picking the least-recently-freed one (the intentional antithesis of LRU:
// it keeps hot, recently-returned hugepages cached longer for future hits).
type Node struct {
	Range     types.HugeRange
	WhenFreed int64
}

// Map is the address-ordered free structure backing the cache. It is not
// safe for concurrent use; callers serialize access the same way they
// serialize every other cache entry point.
type Map struct {
	byStart *swiss.Map[types.HugeAddr, *Node]
	byEnd   *swiss.Map[types.HugeAddr, *Node]
	// bySize is kept sorted ascending by (Range.Length, WhenFreed) so that
	// Find's "minimum length, then oldest" rule is a single binary search,
	// and Evict's "largest first" rule is simply the last element.
	bySize []*Node
	free   []*Node // recycled Node structs; the metadata allocator never frees individually

	newNode func() *Node
}

// New constructs an empty address map. newNode is consulted only when the
// internal free list is empty, i.e. the first time the map grows past its
// previous high-water mark of simultaneously-free ranges - it is the hook
// through which the cache's external MetadataAllocator collaborator is
// threaded.
func New(newNode func() *Node) *Map {
	return &Map{
		byStart: swiss.NewMap[types.HugeAddr, *Node](16),
		byEnd:   swiss.NewMap[types.HugeAddr, *Node](16),
		newNode: newNode,
	}
}

func (m *Map) allocNode() *Node {
	if n := len(m.free); n > 0 {
		node := m.free[n-1]
		m.free = m.free[:n-1]
		return node
	}
	return m.newNode()
}

func (m *Map) recycle(n *Node) {
	*n = Node{}
	m.free = append(m.free, n)
}

// Len returns the number of free nodes currently indexed.
func (m *Map) Len() int { return len(m.bySize) }

// SumLength returns the sum of all indexed node lengths.
func (m *Map) SumLength() types.HugeLength {
	var total types.HugeLength
	for _, n := range m.bySize {
		total += n.Range.Length
	}
	return total
}

// sizeIndexOf returns n's position in bySize. It binary-searches to the
// start of n's (Length, WhenFreed) tie group, then scans that group for n's
// exact pointer, since distinct nodes can share a sort key.
func (m *Map) sizeIndexOf(n *Node) int {
	i := sort.Search(len(m.bySize), func(i int) bool { return !less(m.bySize[i], n) })
	for i < len(m.bySize) && m.bySize[i] != n {
		i++
	}
	return i
}

func less(a, b *Node) bool {
	if a.Range.Length != b.Range.Length {
		return a.Range.Length < b.Range.Length
	}
	return a.WhenFreed < b.WhenFreed
}

func (m *Map) insertSize(n *Node) {
	i := sort.Search(len(m.bySize), func(i int) bool { return less(n, m.bySize[i]) })
	m.bySize = append(m.bySize, nil)
	copy(m.bySize[i+1:], m.bySize[i:])
	m.bySize[i] = n
}

func (m *Map) removeSize(n *Node) {
	i := m.sizeIndexOf(n)
	if i >= len(m.bySize) || m.bySize[i] != n {
		panic(errors.New("addrmap: node not present in size index"))
	}
	copy(m.bySize[i:], m.bySize[i+1:])
	m.bySize = m.bySize[:len(m.bySize)-1]
}

func (m *Map) link(n *Node) {
	m.byStart.Put(n.Range.Start, n)
	m.byEnd.Put(n.Range.End(), n)
	m.insertSize(n)
}

func (m *Map) unlink(n *Node) {
	m.byStart.Delete(n.Range.Start)
	m.byEnd.Delete(n.Range.End())
	m.removeSize(n)
}

// Insert adds r to the map, coalescing with an adjacent left and/or right
// neighbor if present, and returns the resulting node. Its when-freed
// timestamp is set to now.
func (m *Map) Insert(r types.HugeRange, now int64) *Node {
	merged := r
	if left, ok := m.byEnd.Get(r.Start); ok {
		merged = left.Range.Join(merged)
		m.unlink(left)
		m.recycle(left)
	}
	if right, ok := m.byStart.Get(merged.End()); ok {
		merged = merged.Join(right.Range)
		m.unlink(right)
		m.recycle(right)
	}

	node := m.allocNode()
	node.Range = merged
	node.WhenFreed = now
	m.link(node)
	return node
}

// Find returns a node with Length >= n chosen by best-fit with age
// tiebreak: the minimum-length qualifying node, and among equal lengths the
// one with the oldest WhenFreed. It returns nil if no node qualifies.
func (m *Map) Find(n types.HugeLength) *Node {
	i := sort.Search(len(m.bySize), func(i int) bool { return m.bySize[i].Range.Length >= n })
	if i == len(m.bySize) {
		return nil
	}
	return m.bySize[i]
}

// Largest returns the node with the greatest length, or nil if the map is
// empty. Used by Evict, which releases the largest ranges first to
// minimize the number of unback calls.
func (m *Map) Largest() *Node {
	if len(m.bySize) == 0 {
		return nil
	}
	return m.bySize[len(m.bySize)-1]
}

// Remove deducts n hugepages from node, which must have Length >= n. If
// node's length exceeds n, the node is split and the *high* n hugepages are
// returned, keeping the lower (older-addressed) portion in the map - the
// same end Evict takes from, and the reason addresses at the front of a
// repeatedly-split range stay old while newly-touched hugepages are
// preferentially exposed. It returns the removed range.
func (m *Map) Remove(node *Node, n types.HugeLength) types.HugeRange {
	if node.Range.Length < n {
		panic(errors.Errorf("addrmap: node has %v hugepages, cannot remove %v", node.Range.Length, n))
	}
	if node.Range.Length == n {
		m.unlink(node)
		taken := node.Range
		m.recycle(node)
		return taken
	}

	m.removeSize(node)
	m.byEnd.Delete(node.Range.End())

	remainder, taken := node.Range.TakeHigh(n)
	node.Range = remainder

	m.byEnd.Put(node.Range.End(), node)
	m.insertSize(node)
	return taken
}

// Evict extracts up to n hugepages from the map, repeatedly taking the
// largest available range's high end, and returns the ranges removed (which
// may sum to less than n if the map does not hold that much).
func (m *Map) Evict(n types.HugeLength) []types.HugeRange {
	var out []types.HugeRange
	for n > 0 {
		node := m.Largest()
		if node == nil {
			break
		}
		take := node.Range.Length
		if take > n {
			take = n
		}
		out = append(out, m.Remove(node, take))
		n -= take
	}
	return out
}

// Validate checks that the map is disjoint and maximally coalesced: no two
// nodes overlap or are adjacent. It is only called from the hot path under
// the debug_hugecache build tag (see internal/memutils).
func (m *Map) Validate() error {
	ordered := make([]*Node, len(m.bySize))
	copy(ordered, m.bySize)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Range.Start < ordered[j].Range.Start })

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.Range.Overlaps(cur.Range) {
			return errors.Errorf("addrmap: nodes %v and %v overlap", prev.Range, cur.Range)
		}
		if prev.Range.AdjacentTo(cur.Range) {
			return errors.Errorf("addrmap: nodes %v and %v are adjacent and should have been coalesced", prev.Range, cur.Range)
		}
	}
	if m.byStart.Count() != len(m.bySize) || m.byEnd.Count() != len(m.bySize) {
		return errors.New("addrmap: index size mismatch between start/end/size indexes")
	}
	return nil
}
