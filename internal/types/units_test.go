package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-hugecache/hugecache/internal/types"
)

func TestHugeLengthSub(t *testing.T) {
	require.Equal(t, types.HugeLength(3), types.HugeLength(5).Sub(2))
	require.Equal(t, types.HugeLength(0), types.HugeLength(2).Sub(5))
	require.Equal(t, types.HugeLength(0), types.HugeLength(5).Sub(5))
}

func TestMinMaxLen(t *testing.T) {
	require.Equal(t, types.HugeLength(5), types.MaxLen(5, 3))
	require.Equal(t, types.HugeLength(3), types.MinLen(5, 3))
}

func TestHugeRangeAdjacency(t *testing.T) {
	a := types.NewHugeRange(0, 10)
	b := types.NewHugeRange(10, 5)
	c := types.NewHugeRange(11, 5)

	require.True(t, a.AdjacentTo(b))
	require.False(t, a.AdjacentTo(c))
	require.True(t, a.Overlaps(c))
	require.False(t, a.Overlaps(b))
}

func TestHugeRangeJoin(t *testing.T) {
	a := types.NewHugeRange(0, 10)
	b := types.NewHugeRange(10, 5)

	joined := a.Join(b)
	require.Equal(t, types.NewHugeRange(0, 15), joined)
}

func TestHugeRangeTakeHigh(t *testing.T) {
	r := types.NewHugeRange(100, 10)

	remainder, taken := r.TakeHigh(4)
	require.Equal(t, types.NewHugeRange(100, 6), remainder)
	require.Equal(t, types.NewHugeRange(106, 4), taken)
}

func TestHugeRangeValid(t *testing.T) {
	require.False(t, types.HugeRange{}.Valid())
	require.True(t, types.NewHugeRange(0, 1).Valid())
}
