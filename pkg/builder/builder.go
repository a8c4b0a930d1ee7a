// Package builder computes the abstract node graph for a grid from
// scratch: it extracts entrances between every pair of adjacent chunks,
// installs their nodes and bridge edges, then solves each chunk's
// interior to connect its owned nodes directly.
package builder

import (
	"runtime"
	"sync"

	"pathcache/pkg/chunk"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/graph"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/solver"
)

// border is one pair of chunk-adjacent chunks considered exactly once
// (each border is shared by two chunks; it is always walked from the
// chunk with the smaller coordinate to avoid double extraction).
type border struct {
	a, b chunk.Coord
}

// Build computes a fresh abstract graph over g, writing nodes and edges
// into dst (which the caller must have created empty) and returning the
// Layout used to partition it.
func Build(dst *graph.Graph, g gridspec.Grid, gridCfg gridspec.Config, cfg pccfg.Config) chunk.Layout {
	layout := chunk.NewLayout(g.Width(), g.Height(), cfg.ChunkSize)

	borders := collectBorders(layout)
	pairs := extractAllBorders(g, layout, cfg, borders)
	installBorderNodes(dst, g, gridCfg, pairs)

	chunks := layout.All()
	edgeSets := solveChunks(dst, g, gridCfg, cfg, layout, chunks)
	for _, edges := range edgeSets {
		installChunkEdges(dst, edges)
	}
	return layout
}

// collectBorders returns every chunk-adjacent pair of chunks in the
// layout, each appearing exactly once.
func collectBorders(layout chunk.Layout) []border {
	var out []border
	for cy := 0; cy < layout.ChunksY; cy++ {
		for cx := 0; cx < layout.ChunksX; cx++ {
			c := chunk.Coord{CX: cx, CY: cy}
			if right := (chunk.Coord{CX: cx + 1, CY: cy}); layout.InBounds(right) {
				out = append(out, border{a: c, b: right})
			}
			if below := (chunk.Coord{CX: cx, CY: cy + 1}); layout.InBounds(below) {
				out = append(out, border{a: c, b: below})
			}
		}
	}
	return out
}

// extractAllBorders is the first pass of the build: a pure read of the
// grid into a side buffer, independent per border, so it can run on a
// worker pool with no shared-state synchronization.
func extractAllBorders(g gridspec.Grid, layout chunk.Layout, cfg pccfg.Config, borders []border) [][]chunk.NodePair {
	results := make([][]chunk.NodePair, len(borders))
	work := func(i int) {
		b := borders[i]
		results[i] = chunk.ExtractBorder(g, layout, cfg.LongEntranceThreshold, cfg.PerfectPaths, b.a, b.b)
	}
	runPool(cfg, len(borders), work)
	return results
}

// installBorderNodes is the second half of the first pass: a sequential
// commit of every extracted node pair into the graph. Node creation
// order is therefore deterministic regardless of how extraction was
// scheduled across workers.
func installBorderNodes(dst *graph.Graph, g gridspec.Grid, gridCfg gridspec.Config, pairs [][]chunk.NodePair) {
	for _, ps := range pairs {
		for _, p := range ps {
			a := dst.AddNode(p.TileA, graph.ChunkCoord{CX: p.ChunkA.CX, CY: p.ChunkA.CY})
			b := dst.AddNode(p.TileB, graph.ChunkCoord{CX: p.ChunkB.CX, CY: p.ChunkB.CY})
			// The border crossing is a single orthogonal step; its cost
			// is the cost of entering the destination tile.
			toB := gridspec.StepCost(gridCfg, g.CostAt(p.TileB.X, p.TileB.Y), false)
			toA := gridspec.StepCost(gridCfg, g.CostAt(p.TileA.X, p.TileA.Y), false)
			dst.AddEdge(a, graph.Edge{To: b, Weight: toB, Tiles: []gridspec.Coord{p.TileA, p.TileB}, Bridge: true})
			dst.AddEdge(b, graph.Edge{To: a, Weight: toA, Tiles: []gridspec.Coord{p.TileB, p.TileA}, Bridge: true})
		}
	}
}

// solveChunks is the build's second pass: for each chunk, a multi-source
// Dijkstra from every owned node to every other owned node, restricted
// to that chunk's interior. Chunks are solved independently - no chunk's
// solve reads or writes another chunk's nodes - so this pass needs no
// cross-chunk synchronization beyond the worker pool itself.
func solveChunks(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, cfg pccfg.Config, layout chunk.Layout, chunks []chunk.Coord) [][]solver.Edge {
	results := make([][]solver.Edge, len(chunks))

	// Each worker gets its own Solver: scratch buffers are not safe to
	// share across concurrent chunk solves.
	var solverPool sync.Pool
	solverPool.New = func() any { return solver.New() }

	work := func(i int) {
		c := chunks[i]
		owned := g.NodesInChunk(graph.ChunkCoord{CX: c.CX, CY: c.CY})
		if len(owned) < 2 {
			return
		}
		nodes := make([]solver.NodeInfo, len(owned))
		for j, id := range owned {
			n, _ := g.Node(id)
			nodes[j] = solver.NodeInfo{ID: uint64(id), Pos: n.Pos}
		}
		s := solverPool.Get().(*solver.Solver)
		defer solverPool.Put(s)

		bounds := layout.Bounds(c)
		var edges []solver.Edge
		for _, src := range nodes {
			edges = append(edges, solver.Solve(s, grid, gridCfg, bounds, src, nodes, cfg.CachePaths)...)
		}
		results[i] = edges
	}
	runPool(cfg, len(chunks), work)
	return results
}

func installChunkEdges(dst *graph.Graph, edges []solver.Edge) {
	for _, e := range edges {
		dst.AddEdge(graph.NodeID(e.From), graph.Edge{To: graph.NodeID(e.To), Weight: e.Weight, Tiles: e.Tiles})
	}
}

// runPool runs work(i) for i in [0,n) across cfg.Workers goroutines when
// cfg.Parallel is set, or sequentially otherwise. It uses a buffered
// channel as a semaphore to bound the number of goroutines in flight.
func runPool(cfg pccfg.Config, n int, work func(i int)) {
	if n == 0 {
		return
	}
	if !cfg.Parallel {
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			work(i)
		}(i)
	}
	wg.Wait()
}
