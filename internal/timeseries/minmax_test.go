package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-hugecache/hugecache/internal/timeseries"
)

// fakeClock is a minimal timeseries.Clock for deterministic tests;
// unlike the root package's FakeClock, it has no dependency on this one.
type fakeClock struct {
	ticks int64
}

func (c *fakeClock) Now() int64  { return c.ticks }
func (c *fakeClock) Freq() int64 { return int64(time.Second) }
func (c *fakeClock) advance(d time.Duration) {
	c.ticks += int64(d)
}

func TestMinMaxTrackerWithinEpoch(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewMinMaxTracker(clk, 10*time.Second, 10)

	tr.Report(5)
	tr.Report(10)
	tr.Report(2)

	require.EqualValues(t, 10, tr.MaxOverTime(time.Second))
	require.EqualValues(t, 2, tr.MinOverTime(time.Second))
}

func TestMinMaxTrackerAdvancesAndClearsStaleEpochs(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewMinMaxTracker(clk, 10*time.Second, 10)

	tr.Report(100)
	clk.advance(9 * time.Second)
	tr.Report(1)

	// both samples are still within the 10s window
	require.EqualValues(t, 100, tr.MaxOverTime(10*time.Second))

	clk.advance(5 * time.Second)
	tr.Report(3)

	// the window has now rolled past the epoch holding the 100 sample
	require.EqualValues(t, 3, tr.MaxOverTime(10*time.Second))
}

func TestMinMaxTrackerEmptyWindowReturnsZero(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewMinMaxTracker(clk, 10*time.Second, 10)

	require.EqualValues(t, 0, tr.MinOverTime(time.Second))
	require.EqualValues(t, 0, tr.MaxOverTime(time.Second))
}

func TestMinMaxTrackerQueryBeyondWindowClampsToFullWindow(t *testing.T) {
	clk := &fakeClock{}
	tr := timeseries.NewMinMaxTracker(clk, 10*time.Second, 10)

	tr.Report(7)

	require.EqualValues(t, 7, tr.MaxOverTime(time.Hour))
}
