// Package updater applies incremental tile changes to an existing
// abstract graph without rebuilding it from scratch: only the chunks
// touching a changed tile, and their immediate neighbors (whose border
// entrances may have shifted even though none of their own tiles
// changed), are discarded and recomputed.
package updater

import (
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/solver"
)

// Apply updates g in place to reflect that every tile in changed may
// have a new cost. It recomputes exactly the chunks that could be
// affected: the owning chunks of the changed tiles (dirty) and their
// chunk-adjacent neighbors (border-dirty, since an entrance straddling a
// shared border can shift identity even when only one side's tiles
// moved).
func Apply(g *graph.Graph, layout chunk.Layout, grid gridspec.Grid, gridCfg gridspec.Config, cfg pccfg.Config, s *solver.Solver, changed []gridspec.Coord) {
	affected := affectedChunks(layout, changed)
	if len(affected) == 0 {
		return
	}

	// Stage 1 (pure reads of the grid, no graph mutation yet): recompute
	// every border touching an affected chunk.
	borders := bordersTouching(layout, affected)
	pairs := make([][]chunk.NodePair, len(borders))
	for i, b := range borders {
		pairs[i] = chunk.ExtractBorder(grid, layout, cfg.LongEntranceThreshold, cfg.PerfectPaths, b.a, b.b)
	}

	// Stage 2 (the only mutating phase): discard the affected chunks'
	// nodes, install the freshly-extracted border nodes, then resolve
	// each affected chunk's interior against its new owned-node set.
	for _, c := range affected {
		g.RemoveChunkNodes(graph.ChunkCoord{CX: c.CX, CY: c.CY})
	}
	for _, ps := range pairs {
		installBorderNodes(g, grid, gridCfg, ps)
	}
	for _, c := range affected {
		resolveChunkInterior(g, grid, gridCfg, cfg, s, layout, c)
	}
}

// affectedChunks returns the owning chunk of every changed tile, plus
// each of those chunks' chunk-adjacent neighbors, deduplicated.
func affectedChunks(layout chunk.Layout, changed []gridspec.Coord) []chunk.Coord {
	seen := map[chunk.Coord]bool{}
	var out []chunk.Coord
	add := func(c chunk.Coord) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, p := range changed {
		c := layout.ChunkAt(p)
		add(c)
	}
	dirty := append([]chunk.Coord(nil), out...)
	for _, c := range dirty {
		for _, n := range layout.Neighbors4(c) {
			add(n)
		}
	}
	return out
}

type borderPair struct{ a, b chunk.Coord }

// bordersTouching returns every border where at least one side is in
// affected, each appearing once.
func bordersTouching(layout chunk.Layout, affected []chunk.Coord) []borderPair {
	affectedSet := map[chunk.Coord]bool{}
	for _, c := range affected {
		affectedSet[c] = true
	}
	seen := map[borderPair]bool{}
	var out []borderPair
	for _, c := range affected {
		for _, n := range layout.Neighbors4(c) {
			key := normalizeBorder(c, n)
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}

func normalizeBorder(a, b chunk.Coord) borderPair {
	if a.CX < b.CX || (a.CX == b.CX && a.CY < b.CY) {
		return borderPair{a, b}
	}
	return borderPair{b, a}
}

func installBorderNodes(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, pairs []chunk.NodePair) {
	for _, p := range pairs {
		a := g.AddNode(p.TileA, graph.ChunkCoord{CX: p.ChunkA.CX, CY: p.ChunkA.CY})
		b := g.AddNode(p.TileB, graph.ChunkCoord{CX: p.ChunkB.CX, CY: p.ChunkB.CY})
		toB := gridspec.StepCost(gridCfg, grid.CostAt(p.TileB.X, p.TileB.Y), false)
		toA := gridspec.StepCost(gridCfg, grid.CostAt(p.TileA.X, p.TileA.Y), false)
		g.AddEdge(a, graph.Edge{To: b, Weight: toB, Tiles: []gridspec.Coord{p.TileA, p.TileB}, Bridge: true})
		g.AddEdge(b, graph.Edge{To: a, Weight: toA, Tiles: []gridspec.Coord{p.TileB, p.TileA}, Bridge: true})
	}
}

func resolveChunkInterior(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, cfg pccfg.Config, s *solver.Solver, layout chunk.Layout, c chunk.Coord) {
	owned := g.NodesInChunk(graph.ChunkCoord{CX: c.CX, CY: c.CY})
	if len(owned) < 2 {
		return
	}
	nodes := make([]solver.NodeInfo, len(owned))
	for i, id := range owned {
		n, _ := g.Node(id)
		nodes[i] = solver.NodeInfo{ID: uint64(id), Pos: n.Pos}
	}
	bounds := layout.Bounds(c)
	for _, src := range nodes {
		for _, e := range solver.Solve(s, grid, gridCfg, bounds, src, nodes, cfg.CachePaths) {
			g.AddEdge(graph.NodeID(e.From), graph.Edge{To: graph.NodeID(e.To), Weight: e.Weight, Tiles: e.Tiles})
		}
	}
}
