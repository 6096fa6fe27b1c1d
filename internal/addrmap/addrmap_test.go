package addrmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-hugecache/hugecache/internal/addrmap"
	"github.com/go-hugecache/hugecache/internal/types"
)

func newMap() *addrmap.Map {
	return addrmap.New(func() *addrmap.Node { return &addrmap.Node{} })
}

func TestInsertCoalescesAdjacentNeighbors(t *testing.T) {
	m := newMap()

	m.Insert(types.NewHugeRange(0, 10), 1)
	m.Insert(types.NewHugeRange(20, 10), 2)
	node := m.Insert(types.NewHugeRange(10, 10), 3)

	require.Equal(t, 1, m.Len())
	require.Equal(t, types.NewHugeRange(0, 30), node.Range)
	require.NoError(t, m.Validate())
}

func TestFindBestFitPrefersMinimumLength(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 20), 1)
	m.Insert(types.NewHugeRange(100, 5), 2)
	m.Insert(types.NewHugeRange(200, 8), 3)

	node := m.Find(5)
	require.NotNil(t, node)
	require.EqualValues(t, 5, node.Range.Length)
}

func TestFindBreaksTiesByOldestWhenFreed(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 5), 5)
	m.Insert(types.NewHugeRange(100, 5), 1)

	node := m.Find(5)
	require.NotNil(t, node)
	require.EqualValues(t, 1, node.WhenFreed)
}

func TestFindReturnsNilWhenNothingFits(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 3), 1)

	require.Nil(t, m.Find(10))
}

func TestRemoveExactMatchFreesNode(t *testing.T) {
	m := newMap()
	node := m.Insert(types.NewHugeRange(0, 10), 1)

	taken := m.Remove(node, 10)
	require.Equal(t, types.NewHugeRange(0, 10), taken)
	require.Equal(t, 0, m.Len())
}

func TestRemoveSplitTakesHighEnd(t *testing.T) {
	m := newMap()
	node := m.Insert(types.NewHugeRange(0, 10), 1)

	taken := m.Remove(node, 4)
	require.Equal(t, types.NewHugeRange(6, 4), taken)
	require.Equal(t, 1, m.Len())
	require.NoError(t, m.Validate())
}

func TestEvictTakesLargestRangesFirst(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 3), 1)
	m.Insert(types.NewHugeRange(100, 20), 2)
	m.Insert(types.NewHugeRange(200, 8), 3)

	got := m.Evict(25)
	require.Len(t, got, 2)
	require.EqualValues(t, 20, got[0].Length)
	require.EqualValues(t, 5, got[1].Length)
	require.EqualValues(t, 6, m.SumLength())
}

func TestEvictStopsWhenMapExhausted(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 3), 1)

	got := m.Evict(100)
	require.Len(t, got, 1)
	require.EqualValues(t, 0, m.SumLength())
}

func TestNewNodeHookOnlyCalledOnFreeListMiss(t *testing.T) {
	var calls int
	m := addrmap.New(func() *addrmap.Node {
		calls++
		return &addrmap.Node{}
	})

	n1 := m.Insert(types.NewHugeRange(0, 5), 1)
	m.Remove(n1, 5)
	m.Insert(types.NewHugeRange(100, 5), 2)

	require.Equal(t, 1, calls)
}

func TestSumLengthTracksInsertsAndRemoves(t *testing.T) {
	m := newMap()
	m.Insert(types.NewHugeRange(0, 5), 1)
	m.Insert(types.NewHugeRange(50, 7), 2)
	require.EqualValues(t, 12, m.SumLength())

	node := m.Find(5)
	m.Remove(node, 5)
	require.EqualValues(t, 7, m.SumLength())
}
