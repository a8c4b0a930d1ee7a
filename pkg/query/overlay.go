package query

import (
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/solver"
)

// hit is one splice result: a real abstract node reachable from (or
// reaching) a query endpoint, with the cost and optionally the tile
// sequence between them.
type hit struct {
	node  graph.NodeID
	cost  int64
	tiles []gridspec.Coord
}

// spliceOut connects an arbitrary tile pos to every abstract node owned
// by its chunk, in the outgoing direction (pos -> node). Used to splice
// a query's start tile into the abstract graph.
func spliceOut(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, s *solver.Solver, wantTiles bool, pos gridspec.Coord) []hit {
	c := layout.ChunkAt(pos)
	owned := g.NodesInChunk(graph.ChunkCoord{CX: c.CX, CY: c.CY})
	if len(owned) == 0 {
		return nil
	}
	targets := make([]solver.NodeInfo, len(owned))
	for i, id := range owned {
		n, _ := g.Node(id)
		targets[i] = solver.NodeInfo{ID: uint64(id), Pos: n.Pos}
	}
	bounds := layout.Bounds(c)
	source := solver.NodeInfo{ID: startOverlayID, Pos: pos}
	edges := solver.Solve(s, grid, gridCfg, bounds, source, targets, wantTiles)

	out := make([]hit, len(edges))
	for i, e := range edges {
		out[i] = hit{node: graph.NodeID(e.To), cost: e.Weight, tiles: e.Tiles}
	}
	return out
}

// spliceIn connects every abstract node owned by pos's chunk to pos, in
// the incoming direction (node -> pos). Used to splice a query's goal
// tile into the abstract graph. Unlike spliceOut this cannot be answered
// by a single search, since the grid's step cost is charged to the tile
// being entered: reaching pos from node n is not the same search as
// reaching n from pos unless every tile in the chunk costs the same. One
// bounded search per owned node is run instead, each halting as soon as
// pos is settled.
func spliceIn(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, s *solver.Solver, wantTiles bool, pos gridspec.Coord) []hit {
	c := layout.ChunkAt(pos)
	owned := g.NodesInChunk(graph.ChunkCoord{CX: c.CX, CY: c.CY})
	if len(owned) == 0 {
		return nil
	}
	bounds := layout.Bounds(c)
	goalTarget := []solver.NodeInfo{{ID: goalOverlayID, Pos: pos}}

	out := make([]hit, 0, len(owned))
	for _, id := range owned {
		n, _ := g.Node(id)
		source := solver.NodeInfo{ID: uint64(id), Pos: n.Pos}
		edges := solver.Solve(s, grid, gridCfg, bounds, source, goalTarget, wantTiles)
		if len(edges) == 1 {
			out = append(out, hit{node: id, cost: edges[0].Weight, tiles: edges[0].Tiles})
		}
	}
	return out
}
