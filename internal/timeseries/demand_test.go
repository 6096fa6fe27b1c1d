package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-hugecache/hugecache/internal/timeseries"
)

func TestSubreleaseTrackerTracksPeakCombinedDemand(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewSubreleaseTracker(clk, 10*time.Minute, 600, 5*time.Minute)

	tr.Report(timeseries.SubreleaseStats{NumPages: 10, FreePages: 5, TotalHugePages: 15})
	clk.advance(time.Second)
	tr.Report(timeseries.SubreleaseStats{NumPages: 20, FreePages: 2, TotalHugePages: 22})
	clk.advance(time.Second)
	tr.Report(timeseries.SubreleaseStats{NumPages: 8, FreePages: 1, TotalHugePages: 9})

	require.EqualValues(t, 22, tr.MaxOverTime(time.Minute))
}

func TestSubreleaseTrackerLastReturnsMostRecentSample(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewSubreleaseTracker(clk, 10*time.Minute, 600, 5*time.Minute)

	want := timeseries.SubreleaseStats{NumPages: 4, FreePages: 6, TotalHugePages: 10, NumPagesSubreleased: 3}
	tr.Report(want)

	require.Equal(t, want, tr.Last())
}
