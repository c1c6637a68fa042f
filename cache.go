package opencity2k

import (
	"github.com/dgraph-io/ristretto/v2"
)

// DefaultCacheSize is the number of summaries kept by default.
const DefaultCacheSize = 1024

// SummaryCache holds recently computed summaries keyed by file checksum, so
// rescanning an unchanged city does not decode it again.
type SummaryCache struct {
	c *ristretto.Cache[string, *Summary]
}

// NewSummaryCache returns a cache holding up to size summaries.
func NewSummaryCache(size int64) (*SummaryCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *Summary]{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &SummaryCache{c: c}, nil
}

// Get returns the cached summary for crc.
func (sc *SummaryCache) Get(crc string) (*Summary, bool) {
	return sc.c.Get(crc)
}

// Set caches s under crc. Every entry costs one.
func (sc *SummaryCache) Set(crc string, s *Summary) {
	if s == nil {
		return
	}
	sc.c.Set(crc, s, 1)
	sc.c.Wait()
}

// Close stops the cache's background goroutines.
func (sc *SummaryCache) Close() {
	sc.c.Close()
}
