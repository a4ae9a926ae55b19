package datasource

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/futurologia/internal/metrics"
)

// StandingsKey identifies one league table
type StandingsKey struct {
	LeagueID int
	Season   int
}

// String returns string representation of cache key
func (k StandingsKey) String() string {
	return fmt.Sprintf("%d:%d", k.LeagueID, k.Season)
}

// StandingsCache provides in-memory caching for upstream league tables
type StandingsCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewStandingsCache creates a new standings cache
func NewStandingsCache(ttl time.Duration) *StandingsCache {
	return &StandingsCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached league table
func (sc *StandingsCache) Get(key StandingsKey) ([]Standing, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if result, found := sc.cache.Get(key.String()); found {
		if standings, ok := result.([]Standing); ok {
			sc.hitCount++
			sc.updateMetrics()
			return standings, true
		}
	}

	sc.missCount++
	sc.updateMetrics()
	return nil, false
}

// Set stores a league table
func (sc *StandingsCache) Set(key StandingsKey, standings []Standing) {
	sc.cache.Set(key.String(), standings, sc.ttl)
}

// stats reads the counters. Callers hold the lock.
func (sc *StandingsCache) stats() (hits, misses uint64, ratio float64) {
	hits = sc.hitCount
	misses = sc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// updateMetrics updates Prometheus metrics. Callers hold the lock.
func (sc *StandingsCache) updateMetrics() {
	_, _, ratio := sc.stats()
	metrics.UpdateCacheHitRatio("standings", ratio)
}
