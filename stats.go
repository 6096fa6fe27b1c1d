package hugecache

import (
	"fmt"
	"io"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// BackingStats reports the cache's footprint in the terms the upstream
// allocator accounts memory: SystemBytes is everything this cache currently
// holds (handed-out usage plus cached-but-unused size), FreeBytes is the
// portion sitting idle in the cache, and UnmappedBytes is always zero -
// this cache has no notion of backed memory that is neither in use nor
// immediately reusable. Units are hugepages despite the byte-suffixed
// field names, matching the accessor this mirrors.
type BackingStats struct {
	SystemBytes   HugeLength
	FreeBytes     HugeLength
	UnmappedBytes HugeLength
}

// Stats returns the cache's current footprint accounting.
func (c *Cache) Stats() BackingStats {
	return BackingStats{
		SystemBytes:   c.usage + c.size,
		FreeBytes:     c.size,
		UnmappedBytes: 0,
	}
}

// CounterStats summarizes the cache's lifetime hit/miss/release counters
// for diagnostics and monitoring.
type CounterStats struct {
	Size      HugeLength
	Limit     HugeLength
	Usage     HugeLength
	Hits      uint64
	Misses    uint64
	Fills     uint64
	Overflows uint64

	WeightedHits   uint64
	WeightedMisses uint64

	TotalFastUnbacked     HugeLength
	TotalPeriodicUnbacked HugeLength
}

// Counters returns a snapshot of the cache's lifetime counters.
func (c *Cache) Counters() CounterStats {
	return CounterStats{
		Size:                  c.size,
		Limit:                 c.limit,
		Usage:                 c.usage,
		Hits:                  c.hits,
		Misses:                c.misses,
		Fills:                 c.fills,
		Overflows:             c.overflows,
		WeightedHits:          c.weightedHits,
		WeightedMisses:        c.weightedMisses,
		TotalFastUnbacked:     c.totalFastUnbacked,
		TotalPeriodicUnbacked: c.totalPeriodicUnbacked,
	}
}

// Print writes a human-readable stats summary to w, a few related labeled
// fields per line.
func (c *Cache) Print(w io.Writer) {
	s := c.Counters()
	fmt.Fprintf(w, "HugeCache: size=%v limit=%v usage=%v\n", s.Size, s.Limit, s.Usage)
	fmt.Fprintf(w, "  hits=%d misses=%d fills=%d overflows=%d\n", s.Hits, s.Misses, s.Fills, s.Overflows)
	fmt.Fprintf(w, "  weighted_hits=%d weighted_misses=%d\n", s.WeightedHits, s.WeightedMisses)
	fmt.Fprintf(w, "  total_fast_unbacked=%v total_periodic_unbacked=%v\n", s.TotalFastUnbacked, s.TotalPeriodicUnbacked)
}

// PrintInPbtxt writes the same counters as structured fields into json: one
// Name/value pair per counter, on an ObjectState the caller owns and will
// End().
func (c *Cache) PrintInPbtxt(json jwriter.ObjectState) {
	s := c.Counters()
	json.Name("size").Int(int(s.Size))
	json.Name("limit").Int(int(s.Limit))
	json.Name("usage").Int(int(s.Usage))
	json.Name("hits").Int(int(s.Hits))
	json.Name("misses").Int(int(s.Misses))
	json.Name("fills").Int(int(s.Fills))
	json.Name("overflows").Int(int(s.Overflows))
	json.Name("weightedHits").Int(int(s.WeightedHits))
	json.Name("weightedMisses").Int(int(s.WeightedMisses))
	json.Name("totalFastUnbacked").Int(int(s.TotalFastUnbacked))
	json.Name("totalPeriodicUnbacked").Int(int(s.TotalPeriodicUnbacked))
}

// DumpStats renders the cache's stats as a standalone JSON document.
func DumpStats(c *Cache) ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	c.PrintInPbtxt(obj)
	obj.End()
	return w.Bytes(), w.Error()
}
