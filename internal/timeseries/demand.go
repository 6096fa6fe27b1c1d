package timeseries

import "time"

// SubreleaseStats is one epoch's worth of demand-history sample, taken from
// the cache's viewpoint: how much is out to callers, how much is cached
// free, the combined total, and how much has been proactively subreleased
// so far.
type SubreleaseStats struct {
	NumPages            HugeLength
	FreePages           HugeLength
	TotalHugePages      HugeLength
	NumPagesSubreleased HugeLength
}

// SubreleaseTracker keeps per-epoch extrema of each sample's TotalHugePages
// over a 10-minute window (600 epochs at 1s resolution by default) and
// answers "what was the peak combined demand over the last N of time"
// queries, which demand-capped release needs to avoid releasing memory a
// likely near-future spike would just re-fault back in. The other
// SubreleaseStats fields are not kept per epoch; only the most recent
// sample is retained whole (see Last).
type SubreleaseTracker struct {
	demand  *MinMaxTracker
	summary time.Duration // retained for documentation; see NewSubreleaseTracker
	last    SubreleaseStats
}

// NewSubreleaseTracker constructs a tracker over window w (10 minutes in
// production) with epochs buckets. summary (5 minutes in production,
// matching CapDemandInterval) is stored but not consulted by any query.
func NewSubreleaseTracker(clock Clock, w time.Duration, epochs int, summary time.Duration) *SubreleaseTracker {
	return &SubreleaseTracker{
		demand:  NewMinMaxTracker(clock, w, epochs),
		summary: summary,
	}
}

// Report records one epoch's demand sample.
func (t *SubreleaseTracker) Report(s SubreleaseStats) {
	t.last = s
	t.demand.Report(s.TotalHugePages)
}

// MaxOverTime returns the peak combined demand (usage+size) observed over
// the most recent interval covering duration d.
func (t *SubreleaseTracker) MaxOverTime(d time.Duration) HugeLength {
	return t.demand.MaxOverTime(d)
}

// Last returns the most recently reported sample, for accounting readouts
// (e.g. the lifetime total of pages subreleased so far).
func (t *SubreleaseTracker) Last() SubreleaseStats {
	return t.last
}
