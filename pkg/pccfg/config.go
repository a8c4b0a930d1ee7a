// Package pccfg holds the path cache's tunables in one place so that the
// builder, updater, query engine, and public facade can all depend on the
// same leaf type without creating an import cycle back through the
// facade package.
package pccfg

import "pathcache/pkg/cacheerr"

// Config controls how a PathCache partitions its grid and answers
// queries. The zero value is not valid; use DefaultConfig and override
// fields as needed.
type Config struct {
	// ChunkSize is the side length of a chunk, in tiles. Must be >= 2.
	ChunkSize int

	// LongEntranceThreshold is the run length, in tiles, at or above
	// which an entrance gets two abstract nodes (its endpoints) instead
	// of one (its midpoint).
	LongEntranceThreshold int

	// CachePaths keeps the concrete tile sequence for every abstract
	// edge at build time, trading memory for faster path materialization.
	// When false, edges remember only their cost and tile sequences are
	// recomputed on demand by a scoped search between the edge's endpoints.
	CachePaths bool

	// PerfectPaths inserts an abstract node at every passable tile pair
	// along every entrance instead of collapsing runs. Disables the
	// short-path concrete fallback, since the abstraction is already
	// exact at that scale.
	PerfectPaths bool

	// AStarFallback bypasses the abstract graph for queries whose start
	// and goal share a chunk and lie within twice the chunk size of each
	// other, answering with a plain concrete Dijkstra search instead. Ignored
	// when PerfectPaths is set.
	AStarFallback bool

	// Parallel builds and incremental updates process independent chunks
	// across a worker pool instead of one at a time.
	Parallel bool

	// Workers bounds the number of goroutines used when Parallel is set.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultConfig returns the balanced preset: chunk size 8, predecessor
// maps cached, the concrete fallback search on.
func DefaultConfig() Config {
	return Config{
		ChunkSize:             8,
		LongEntranceThreshold: 6,
		CachePaths:            true,
		PerfectPaths:          false,
		AStarFallback:         true,
		Parallel:              false,
		Workers:               0,
	}
}

// LowMemoryConfig favors smaller chunks and no path caching, trading
// query latency for a smaller resident node graph.
func LowMemoryConfig() Config {
	c := DefaultConfig()
	c.ChunkSize = 6
	c.CachePaths = false
	return c
}

// HighPerformanceConfig favors larger chunks and a parallel builder,
// trading memory and build time for faster repeated queries.
func HighPerformanceConfig() Config {
	c := DefaultConfig()
	c.ChunkSize = 32
	c.CachePaths = true
	c.Parallel = true
	return c
}

// Validate reports a *cacheerr.CacheError if the config cannot be used to
// build a cache.
func (c Config) Validate() error {
	if c.ChunkSize < 2 {
		return cacheerr.Newf(cacheerr.InvalidConfig, "ChunkSize must be >= 2, got %d", c.ChunkSize)
	}
	if c.LongEntranceThreshold < 2 {
		return cacheerr.Newf(cacheerr.InvalidConfig, "LongEntranceThreshold must be >= 2, got %d", c.LongEntranceThreshold)
	}
	if c.Workers < 0 {
		return cacheerr.Newf(cacheerr.InvalidConfig, "Workers must be >= 0, got %d", c.Workers)
	}
	return nil
}
