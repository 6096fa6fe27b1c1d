package hugecache

import (
	"golang.org/x/exp/slog"

	"github.com/go-hugecache/hugecache/internal/addrmap"
	"github.com/go-hugecache/hugecache/internal/memutils"
	"github.com/go-hugecache/hugecache/internal/timeseries"
	"github.com/go-hugecache/hugecache/internal/types"
)

// Cache is a hot cache of backed hugepage ranges sitting between an
// upstream HugeAllocator and its callers. It amortizes the cost of
// kernel-level backing/unbacking by retaining recently-released runs, and
// adaptively resizes its limit against observed demand.
//
// Cache performs no internal locking, spawns no goroutines, and does no
// blocking I/O outside of the Unbacker callback it is given. Every entry
// point must be serialized by the caller - typically a single global lock
// held for the duration of the call.
type Cache struct {
	allocator HugeAllocator
	unback    Unbacker
	clock     Clock
	cfg       Config
	logger    *slog.Logger

	cacheTimeTicks int64

	addr *addrmap.Map

	size  HugeLength
	limit HugeLength
	usage HugeLength

	hits, misses, fills, overflows uint64
	weightedHits, weightedMisses   uint64

	lastLimitChange int64

	detailedTracker *timeseries.MinMaxTracker
	usageTracker    *timeseries.MinMaxTracker
	offPeakTracker  *timeseries.MinMaxTracker
	sizeTracker     *timeseries.MinMaxTracker
	demandTracker   *timeseries.SubreleaseTracker

	totalFastUnbacked     HugeLength
	totalPeriodicUnbacked HugeLength
}

// NewCache constructs a Cache. allocator, metaAlloc and unback are external
// collaborators whose lifetime must exceed the Cache's. logger may be nil,
// in which case slog.Default() is used.
func NewCache(allocator HugeAllocator, metaAlloc MetadataAllocator, unback Unbacker, clock Clock, cfg Config, logger *slog.Logger) (*Cache, error) {
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	memutils.DebugCheckPow2(cfg.CoarseEpochs, "Config.CoarseEpochs")

	now := clock.Now()
	c := &Cache{
		allocator:       allocator,
		unback:          unback,
		clock:           clock,
		cfg:             cfg,
		logger:          logger,
		cacheTimeTicks:  ticksFor(clock, cfg.CacheTime),
		addr:            addrmap.New(func() *addrmap.Node { return metaAlloc.Allocate() }),
		limit:           cfg.MinCacheLimit,
		lastLimitChange: now,
		detailedTracker: timeseries.NewMinMaxTracker(clockAdapter{clock}, DetailedWindow, cfg.DetailedEpochs),
		usageTracker:    timeseries.NewMinMaxTracker(clockAdapter{clock}, cfg.CacheTime*2, cfg.CoarseEpochs),
		offPeakTracker:  timeseries.NewMinMaxTracker(clockAdapter{clock}, cfg.CacheTime*2, cfg.CoarseEpochs),
		sizeTracker:     timeseries.NewMinMaxTracker(clockAdapter{clock}, cfg.CacheTime*2, cfg.CoarseEpochs),
		demandTracker:   timeseries.NewSubreleaseTracker(clockAdapter{clock}, DetailedWindow, cfg.DetailedEpochs, CapDemandInterval),
	}
	return c, nil
}

// clockAdapter lets the root Clock (which exports HugeLength-free Now/Freq)
// satisfy timeseries.Clock without the timeseries package importing this
// one.
type clockAdapter struct{ Clock }

func tl(h HugeLength) timeseries.HugeLength { return timeseries.HugeLength(h) }

// Get allocates n contiguous hugepages. fromReleased is false iff the range
// came from the address map (a hit); the caller must back any range for
// which fromReleased is true.
func (c *Cache) Get(n HugeLength) (r HugeRange, fromReleased bool) {
	if node := c.addr.Find(types.HugeLength(n)); node != nil {
		taken := c.addr.Remove(node, types.HugeLength(n))
		c.size = c.size.Sub(n)
		c.hits++
		c.weightedHits += uint64(n)
		c.usage += n
		c.updateSize()
		c.updateUsage()
		return HugeRange(taken), false
	}

	c.misses++
	c.weightedMisses += uint64(n)
	c.fills++
	c.maybeGrowCacheLimit(n)

	r, fromReleased = c.allocator.Get(n)
	if !r.Valid() {
		c.overflows++
		return r, fromReleased
	}
	c.usage += n
	c.updateUsage()
	return r, fromReleased
}

// Release returns a backed range r (previously handed out by Get) to the
// cache. If demandBasedUnback is true, Release only updates accounting and
// leaves unbacking to a later ReleaseCachedPagesByDemand call; otherwise it
// may shrink the limit and unback immediately.
func (c *Cache) Release(r HugeRange, demandBasedUnback bool) {
	c.usage = c.usage.Sub(r.Length)
	c.addr.Insert(types.HugeRange(r), c.clock.Now())
	c.size += r.Length
	c.updateSize()
	c.updateUsage()

	if demandBasedUnback {
		return
	}

	released := c.maybeShrinkCacheLimit()
	c.totalFastUnbacked += released
}

// ReleaseUnbacked returns r, assumed to already be unbacked, straight to the
// upstream allocator, skipping the cache entirely.
func (c *Cache) ReleaseUnbacked(r HugeRange) {
	c.usage = c.usage.Sub(r.Length)
	c.allocator.Release(r)
	c.updateUsage()
}

// ReleaseCachedPages releases up to n hugepages of cached contents to the
// system, returning the number actually released. It also triggers
// MaybeShrinkCacheLimit, since periodic release is an opportunity to
// detect an oversized limit.
func (c *Cache) ReleaseCachedPages(n HugeLength) HugeLength {
	released := c.evictAndUnback(n)
	c.totalPeriodicUnbacked += released

	shrunk := c.maybeShrinkCacheLimit()
	c.totalPeriodicUnbacked += shrunk

	return released + shrunk
}

// ReleaseCachedPagesByDemand releases up to n hugepages (further capped at
// FractionToReleaseFromCache of the current size) if recent demand allows,
// per the demand-capped target in getDesiredReleaseablePages. That target is
// raised to the realized-fragmentation floor when the floor is larger, so the
// amount released can exceed both caps. It degrades to ReleaseCachedPages(n)
// if hitLimit is true or intervals is disabled.
func (c *Cache) ReleaseCachedPagesByDemand(n HugeLength, intervals SkipSubreleaseIntervals, hitLimit bool) HugeLength {
	if hitLimit || intervals.disabled() {
		return c.ReleaseCachedPages(n)
	}

	capped := types.MinLen(n, HugeLength(float64(c.size)*c.cfg.FractionToReleaseFromCache))
	target := c.getDesiredReleaseablePages(capped, intervals)
	return c.ReleaseCachedPages(target)
}

// evictAndUnback extracts up to want hugepages from the address map
// (largest-range-first, high-end), attempts to unback each, and returns the
// number successfully unbacked and permanently returned upstream. Ranges
// whose unback call fails are reinserted as still backed.
func (c *Cache) evictAndUnback(want HugeLength) HugeLength {
	ranges := c.addr.Evict(types.HugeLength(want))
	var released HugeLength

	for _, tr := range ranges {
		r := HugeRange(tr)
		c.size = c.size.Sub(r.Length)
		if c.unback.Unback(r) {
			c.allocator.Release(r)
			released += r.Length
		} else {
			c.logger.Warn("hugecache: unback failed, retaining range as backed", "range", r)
			c.addr.Insert(tr, c.clock.Now())
			c.size += r.Length
		}
	}
	if len(ranges) > 0 {
		c.updateSize()
	}
	return released
}

func (c *Cache) updateSize() {
	c.sizeTracker.Report(tl(c.size))
	c.detailedTracker.Report(tl(c.size))
	c.reportDemand()
}

func (c *Cache) updateUsage() {
	c.usageTracker.Report(tl(c.usage))
	var offPeak HugeLength
	if c.limit > c.usage {
		offPeak = c.limit - c.usage
	}
	c.offPeakTracker.Report(tl(offPeak))
	c.reportDemand()
}

func (c *Cache) reportDemand() {
	c.demandTracker.Report(timeseries.SubreleaseStats{
		NumPages:            tl(c.usage),
		FreePages:           tl(c.size),
		TotalHugePages:      tl(c.usage + c.size),
		NumPagesSubreleased: tl(c.totalFastUnbacked + c.totalPeriodicUnbacked),
	})
	memutils.DebugValidate(c)
}

// Size returns the hugepages currently cached (backed, free).
func (c *Cache) Size() HugeLength { return c.size }

// Limit returns the current soft ceiling for Size.
func (c *Cache) Limit() HugeLength { return c.limit }

// Usage returns the hugepages currently out to callers.
func (c *Cache) Usage() HugeLength { return c.usage }

// Validate checks the cache's accounting invariants. It is wired into
// memutils.DebugValidate, so it only runs under the debug_hugecache build
// tag; Cache satisfies memutils.Validatable for that purpose.
func (c *Cache) Validate() error {
	if err := c.addr.Validate(); err != nil {
		return err
	}
	if c.addr.SumLength() != types.HugeLength(c.size) {
		return newInvariantError("hugecache: size=%v but address map sums to %v", c.size, c.addr.SumLength())
	}
	return nil
}
