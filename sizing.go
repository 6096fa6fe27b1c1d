package hugecache

import (
	"github.com/go-hugecache/hugecache/internal/types"
)

// maybeGrowCacheLimit raises limit_ if recent usage plus the just-missed
// request would not have fit. It compares against usage_max, the peak usage
// observed over the last CacheTime, plus size_min, the smallest the cache
// has been over the same window - so growth accounts for both a usage spike
// and a lean cache, without over-reacting to either alone.
func (c *Cache) maybeGrowCacheLimit(missed HugeLength) {
	usageMax := HugeLength(c.usageTracker.MaxOverTime(c.cfg.CacheTime))
	sizeMin := HugeLength(c.sizeTracker.MinOverTime(c.cfg.CacheTime))

	desired := types.MaxLen(c.limit, usageMax.Sub(c.usage)+sizeMin+missed)
	if desired > c.limit {
		c.limit = desired
		c.lastLimitChange = c.clock.Now()
		c.logger.Debug("hugecache: grew limit", "limit", c.limit, "missed", missed)
	}
}

// maybeShrinkCacheLimit lowers limit_ by the largest off-peak headroom
// (limit_ minus usage) observed over the last 2*CacheTime. A cache that has
// stayed busy shows little headroom and barely shrinks; an idle one shows
// headroom close to the full limit and shrinks hard. If usage has stayed at
// zero for BelowMinimumIdle, the MinCacheLimit floor is waived entirely,
// letting an idle cache shed its last ranges. When the limit drops, it
// evicts and unbacks enough of the cache to match, returning the number of
// hugepages actually released upstream.
//
// limit_ never decreases within one shrink interval (2*CacheTime) of its
// last increase, unless the cache is already empty: a single low-usage
// sample is enough to max out the off-peak window the instant a grow is
// followed by a release, and shrinking back on that evidence alone would
// make every grow immediately reversible. Requiring the shrink interval to
// have fully elapsed since lastLimitChange gives a just-grown limit time to
// prove itself before it's eligible to come back down.
func (c *Cache) maybeShrinkCacheLimit() HugeLength {
	shrinkIntervalTicks := 2 * c.cacheTimeTicks
	if c.size != 0 && c.clock.Now()-c.lastLimitChange < shrinkIntervalTicks {
		return 0
	}

	offPeakMax := HugeLength(c.offPeakTracker.MaxOverTime(c.cfg.CacheTime * 2))
	if offPeakMax == 0 {
		return 0
	}

	floor := c.cfg.MinCacheLimit
	if HugeLength(c.usageTracker.MaxOverTime(BelowMinimumIdle)) == 0 {
		floor = 0
	}

	newLimit := types.MaxLen(c.limit.Sub(offPeakMax), floor)
	if newLimit >= c.limit {
		return 0
	}

	c.limit = newLimit
	c.lastLimitChange = c.clock.Now()
	c.logger.Debug("hugecache: shrank limit", "limit", c.limit)

	if c.size <= newLimit {
		return 0
	}
	return c.evictAndUnback(c.size - newLimit)
}

// getDesiredReleaseablePages computes how many hugepages a demand-based
// release call may actually take, given a caller-requested desired amount
// and the short/long demand-history intervals to respect. It never releases
// more than would leave peak recent demand unsatisfied, and never releases
// below the floor the cache has independently stayed free for the last 5
// minutes (CapDemandInterval) regardless of demand, since that floor is
// idle capacity no observed demand has claimed anyway.
func (c *Cache) getDesiredReleaseablePages(desired HugeLength, intervals SkipSubreleaseIntervals) HugeLength {
	peakDemand := types.MaxLen(
		HugeLength(c.demandTracker.MaxOverTime(intervals.ShortInterval)),
		HugeLength(c.demandTracker.MaxOverTime(intervals.LongInterval)),
	)
	capPeak := HugeLength(c.demandTracker.MaxOverTime(intervals.capInterval()))
	peakDemand = types.MinLen(peakDemand, capPeak)

	total := c.usage + c.size
	headroom := total.Sub(peakDemand)
	target := types.MinLen(desired, headroom)

	minFreeOver5Min := HugeLength(c.detailedTracker.MinOverTime(CapDemandInterval))
	return types.MaxLen(target, minFreeOver5Min)
}
