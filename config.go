package hugecache

import (
	"time"

	"github.com/go-hugecache/hugecache/internal/memutils"
)

// Epoch resolutions for the two MinMaxTracker granularities the cache
// keeps. Go has no const generics, so NewCache takes these as ordinary
// constructor-time values rather than compile-time template parameters.
const (
	// DetailedEpochs is the resolution of the 10-minute detailed tracker.
	DetailedEpochs = 600
	// CoarseEpochs is the resolution of the cache_time*2-windowed trackers.
	CoarseEpochs = 16
)

// MinCacheLimit is the floor limit_ never drops below, unless usage has
// stayed at zero for BelowMinimumIdle.
const MinCacheLimit HugeLength = 10

// FractionToReleaseFromCache caps the amount a single demand-based release
// call asks for, as a fraction of the current cache size, so repeated small
// calls erode fragmentation gradually rather than emptying the cache in one
// shot per call. The realized-fragmentation floor applied afterwards by
// getDesiredReleaseablePages is not bound by this cap.
const FractionToReleaseFromCache = 0.2

// CapDemandInterval bounds how far back GetDesiredReleaseablePages looks
// when capping a demand-based release target, so an ancient demand spike
// cannot paralyze subrelease indefinitely.
const CapDemandInterval = 5 * time.Minute

// BelowMinimumIdle is how long usage must stay at zero before limit_ is
// allowed to drop below MinCacheLimit.
const BelowMinimumIdle = 30 * time.Second

// DetailedWindow is the window covered by the detailed tracker.
const DetailedWindow = 10 * time.Minute

// Config collects the cache's constructor-time tuning knobs. Zero-value
// fields are replaced by DefaultConfig's values in NewCache.
type Config struct {
	// CacheTime is the working-set ebb duration the cache protects against:
	// grow-on-miss looks back CacheTime, shrink-on-stable looks back
	// 2*CacheTime (deliberate hysteresis).
	CacheTime time.Duration
	// MinCacheLimit overrides the package default floor for limit_.
	MinCacheLimit HugeLength
	// FractionToReleaseFromCache overrides the package default release cap.
	FractionToReleaseFromCache float64
	// DetailedEpochs/CoarseEpochs override the tracker resolutions.
	DetailedEpochs int
	CoarseEpochs   int
}

// DefaultConfig returns the documented defaults: 1s cache time, a 10-hugepage
// floor, and a 20% per-call release cap.
func DefaultConfig() Config {
	return Config{
		CacheTime:                  time.Second,
		MinCacheLimit:              MinCacheLimit,
		FractionToReleaseFromCache: FractionToReleaseFromCache,
		DetailedEpochs:             DetailedEpochs,
		CoarseEpochs:               CoarseEpochs,
	}
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.CacheTime == 0 {
		c.CacheTime = d.CacheTime
	}
	if c.MinCacheLimit == 0 {
		c.MinCacheLimit = d.MinCacheLimit
	}
	if c.FractionToReleaseFromCache == 0 {
		c.FractionToReleaseFromCache = d.FractionToReleaseFromCache
	}
	if c.DetailedEpochs == 0 {
		c.DetailedEpochs = d.DetailedEpochs
	}
	if c.CoarseEpochs == 0 {
		c.CoarseEpochs = d.CoarseEpochs
	}
}

func (c Config) validate() error {
	if c.DetailedEpochs <= 0 || c.CoarseEpochs <= 0 {
		return newInvariantError("hugecache: epoch counts must be positive (detailed=%d, coarse=%d)", c.DetailedEpochs, c.CoarseEpochs)
	}
	// CoarseEpochs backs the usage/off-peak/size trackers queried on every
	// Get and Release; keeping its ring a power of two (16 by default) keeps
	// epoch-index wraparound cheap. The detailed tracker's 600-epoch ring
	// is queried far less often and carries no such constraint.
	if err := memutils.CheckPow2(c.CoarseEpochs, "Config.CoarseEpochs"); err != nil {
		return err
	}
	if c.CacheTime <= 0 {
		return newInvariantError("hugecache: CacheTime must be positive, got %v", c.CacheTime)
	}
	if c.FractionToReleaseFromCache <= 0 || c.FractionToReleaseFromCache > 1 {
		return newInvariantError("hugecache: FractionToReleaseFromCache must be in (0,1], got %v", c.FractionToReleaseFromCache)
	}
	return nil
}

// SkipSubreleaseIntervals configures demand-based release.
// The zero value disables the feature entirely.
type SkipSubreleaseIntervals struct {
	ShortInterval time.Duration
	LongInterval  time.Duration
	// CapInterval bounds how far back peak demand is measured; it defaults
	// to CapDemandInterval (5 minutes) if zero and either other interval is
	// set.
	CapInterval time.Duration
}

func (s SkipSubreleaseIntervals) disabled() bool {
	return s.ShortInterval == 0 && s.LongInterval == 0
}

func (s SkipSubreleaseIntervals) capInterval() time.Duration {
	if s.CapInterval != 0 {
		return s.CapInterval
	}
	return CapDemandInterval
}
