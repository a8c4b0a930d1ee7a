// Package pathcache is the public facade over this module's hierarchical
// pathfinding cache: build it once from a caller-supplied tile grid, then
// answer repeated FindPath/FindPaths queries and apply incremental
// TilesChanged updates without ever re-walking the whole grid.
package pathcache

import (
	"pathcache/pkg/builder"
	"pathcache/pkg/cacheerr"
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/path"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/query"
	"pathcache/pkg/solver"
	"pathcache/pkg/spatial"
	"pathcache/pkg/updater"
)

// Config controls how a PathCache partitions its grid and answers
// queries. See pkg/pccfg for field documentation and presets.
type Config = pccfg.Config

// DefaultConfig, LowMemoryConfig, and HighPerformanceConfig are the
// presets a caller can start from and override fields on.
var (
	DefaultConfig         = pccfg.DefaultConfig
	LowMemoryConfig       = pccfg.LowMemoryConfig
	HighPerformanceConfig = pccfg.HighPerformanceConfig
)

// PathCache is a single-owner cache: every exported method assumes
// exclusive access for its duration. Concurrent read-only queries against
// an otherwise-idle cache are safe; a query racing a mutator is not.
type PathCache struct {
	grid    gridspec.Grid
	gridCfg gridspec.Config
	cfg     Config
	graph   *graph.Graph
	layout  chunk.Layout
	solver  *solver.Solver
	logger  Logger
}

// New builds a PathCache over grid, partitioning it according to cfg.
// width and height are the dimensions the caller believes the grid has;
// they are checked against what grid itself reports, surfacing a mismatch
// as InvalidGrid rather than silently trusting either source.
func New(width, height int, grid gridspec.Grid, gridCfg gridspec.Config, cfg Config) (*PathCache, error) {
	if grid.Width() != width || grid.Height() != height {
		return nil, cacheerr.Newf(cacheerr.InvalidGrid,
			"adapter reports %dx%d, caller declared %dx%d", grid.Width(), grid.Height(), width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := gridCfg.Validate(); err != nil {
		return nil, cacheerr.Newf(cacheerr.InvalidConfig, "%v", err)
	}

	g := graph.New()
	layout := builder.Build(g, grid, gridCfg, cfg)
	return &PathCache{
		grid:    grid,
		gridCfg: gridCfg,
		cfg:     cfg,
		graph:   g,
		layout:  layout,
		solver:  solver.New(),
		logger:  noopLogger{},
	}, nil
}

// SetLogger attaches a Logger that receives progress events from
// subsequent TilesChanged calls. Passing nil silences logging.
func (pc *PathCache) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	pc.logger = l
}

// FindPath returns the cheapest known path from start to goal, or nil if
// none exists. Impassable or disconnected endpoints are not errors; an
// out-of-bounds tile is.
func (pc *PathCache) FindPath(start, goal gridspec.Coord) (*path.Path, error) {
	// Each query gets its own Solver so concurrent queries share no scratch state.
	return query.FindPath(pc.graph, pc.grid, pc.gridCfg, pc.layout, pc.cfg, solver.New(), start, goal)
}

// FindPaths resolves start against every tile in goals, running one
// FindPath query per goal; the start is spliced into the abstract graph
// anew for each one. Goals with no path are absent from the result.
func (pc *PathCache) FindPaths(start gridspec.Coord, goals []gridspec.Coord) (map[gridspec.Coord]*path.Path, error) {
	return query.FindPaths(pc.graph, pc.grid, pc.gridCfg, pc.layout, pc.cfg, solver.New(), start, goals)
}

// TilesChanged reports that every tile in changed may have a new cost or
// walkability, and incrementally repairs the abstract graph: only the
// chunks that own a changed tile, and their chunk-adjacent neighbors, are
// recomputed. Any Path obtained before this call is invalidated; callers
// must discard it.
func (pc *PathCache) TilesChanged(changed []gridspec.Coord) {
	pc.logger.Printf("tiles_changed: %d tiles reported", len(changed))
	updater.Apply(pc.graph, pc.layout, pc.grid, pc.gridCfg, pc.cfg, pc.solver, changed)
}

// Inspect returns a read-only view of the cache's current chunk layout
// and abstract node/edge graph, for visualization or debug adapters. The
// view's spatial index does not track later mutations; call Inspect again
// after any mutating call to see its effect.
func (pc *PathCache) Inspect() Snapshot {
	return Snapshot{
		Layout: pc.layout,
		Graph:  pc.graph,
		index:  spatial.Build(pc.graph),
	}
}

// Snapshot is the inspect() contract's result: the cache's chunk layout
// and node/edge graph, plus a spatial index over node positions for
// windowed queries. Graph is the cache's live graph, not a copy, so it
// reflects later mutations; the index reflects the nodes present when
// Inspect was called.
type Snapshot struct {
	Layout chunk.Layout
	Graph  *graph.Graph
	index  *spatial.Index
}

// NodesInRect returns the ids of every node positioned within the
// inclusive tile rectangle [x0,y0]-[x1,y1].
func (s Snapshot) NodesInRect(x0, y0, x1, y1 int) []graph.NodeID {
	return s.index.NodesInRect(x0, y0, x1, y1)
}

// Export compiles the cache's current abstract graph into the on-disk
// CSR format and writes it to path, for offline visualization or
// analysis; graph.ImportSnapshot reads it back as a Snapshot. A cache
// cannot be rebuilt from the file. It does not track later mutations;
// call it again after any mutating call to write the updated graph.
func (pc *PathCache) Export(exportPath string) error {
	snap := graph.CompileSnapshot(pc.graph)
	return graph.ExportSnapshot(exportPath, snap)
}
