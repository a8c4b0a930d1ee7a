// Package query answers path requests over a built abstract graph: it
// splices the query's start and goal tiles into the graph as temporary
// overlay nodes, runs A* across the spliced search space, and assembles
// the result into a path.Path. Nothing it does mutates the graph; an
// overlay node's id is never committed by graph.AddNode.
package query

import (
	"pathcache/pkg/cacheerr"
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/path"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/solver"
)

// startOverlayID and goalOverlayID identify the two synthetic nodes a
// query splices in, chosen from the top of the uint64 space so they can
// never collide with a real, arena-issued graph.NodeID.
const (
	startOverlayID = ^uint64(0)
	goalOverlayID  = ^uint64(0) - 1
)

// FindPath returns the cheapest known path from start to goal, or nil if
// none exists (impassable or disconnected endpoints are not errors). An
// OutOfBounds error is returned if either tile lies outside the grid.
func FindPath(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, cfg pccfg.Config, s *solver.Solver, start, goal gridspec.Coord) (*path.Path, error) {
	if err := checkBounds(grid, start, goal); err != nil {
		return nil, err
	}
	if start == goal {
		return path.New(start, goal, nil), nil
	}
	if !gridspec.Passable(grid, start.X, start.Y) || !gridspec.Passable(grid, goal.X, goal.Y) {
		return nil, nil
	}

	sameChunk := layout.ChunkAt(start) == layout.ChunkAt(goal)
	if sameChunk && cfg.AStarFallback && !cfg.PerfectPaths {
		if p := concreteFallback(grid, gridCfg, s, start, goal); p != nil {
			return p, nil
		}
	}

	p, err := abstractFindPath(g, grid, gridCfg, layout, cfg, s, start, goal)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	if sameChunk {
		// The abstract graph found nothing - most commonly because this
		// chunk has too few entrances to route through at all (e.g. a
		// grid that is just one chunk). Fall back to a direct concrete
		// search before declaring no path.
		return concreteFallback(grid, gridCfg, s, start, goal), nil
	}
	return nil, nil
}

// FindPaths resolves one start against many goals by calling FindPath
// once per goal; the start's splice is not shared between goals. Goals
// with no path are omitted from the result rather than reported as errors.
func FindPaths(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, cfg pccfg.Config, s *solver.Solver, start gridspec.Coord, goals []gridspec.Coord) (map[gridspec.Coord]*path.Path, error) {
	if err := checkBounds(grid, start); err != nil {
		return nil, err
	}
	out := make(map[gridspec.Coord]*path.Path, len(goals))
	for _, goal := range goals {
		p, err := FindPath(g, grid, gridCfg, layout, cfg, s, start, goal)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out[goal] = p
		}
	}
	return out, nil
}

func checkBounds(grid gridspec.Grid, coords ...gridspec.Coord) error {
	for _, c := range coords {
		if !gridspec.InBounds(grid, c.X, c.Y) {
			return cacheerr.Newf(cacheerr.OutOfBounds, "tile (%d,%d) is outside the %dx%d grid", c.X, c.Y, grid.Width(), grid.Height())
		}
	}
	return nil
}

// concreteFallback answers a short, same-chunk query with a single
// Dijkstra search (solver.Solve) over the whole concrete grid, bypassing the
// abstract graph entirely. Bounding it to the start's chunk would
// occasionally miss a true shortest path that dips into a neighboring
// chunk, so it searches the grid rather than any one chunk's interior.
func concreteFallback(grid gridspec.Grid, gridCfg gridspec.Config, s *solver.Solver, start, goal gridspec.Coord) *path.Path {
	bounds := gridspec.WholeGrid(grid)
	edges := solver.Solve(s, grid, gridCfg, bounds,
		solver.NodeInfo{ID: startOverlayID, Pos: start},
		[]solver.NodeInfo{{ID: goalOverlayID, Pos: goal}}, true)
	if len(edges) != 1 {
		return nil
	}
	seg := path.Known(start, goal, edges[0].Weight, edges[0].Tiles)
	return path.New(start, goal, []*path.Segment{seg})
}

// abstractFindPath splices start and goal into the persistent graph as
// overlay nodes and runs A* across the combined space.
func abstractFindPath(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, cfg pccfg.Config, s *solver.Solver, start, goal gridspec.Coord) (*path.Path, error) {
	hitsOut := spliceOut(g, grid, gridCfg, layout, s, cfg.CachePaths, start)
	if len(hitsOut) == 0 {
		return nil, nil
	}
	hitsIn := spliceIn(g, grid, gridCfg, layout, s, cfg.CachePaths, goal)
	if len(hitsIn) == 0 {
		return nil, nil
	}
	inByNode := make(map[graph.NodeID]hit, len(hitsIn))
	for _, h := range hitsIn {
		inByNode[h.node] = h
	}

	posOf := func(id uint64) gridspec.Coord {
		switch id {
		case startOverlayID:
			return start
		case goalOverlayID:
			return goal
		default:
			n, _ := g.Node(graph.NodeID(id))
			return n.Pos
		}
	}

	neighborsOf := func(id uint64) []absEdge {
		switch id {
		case startOverlayID:
			out := make([]absEdge, len(hitsOut))
			for i, h := range hitsOut {
				out[i] = absEdge{to: uint64(h.node), weight: h.cost, tiles: h.tiles}
			}
			return out
		case goalOverlayID:
			return nil
		default:
			real := g.Edges(graph.NodeID(id))
			out := make([]absEdge, 0, len(real)+1)
			for _, e := range real {
				out = append(out, absEdge{to: uint64(e.To), weight: e.Weight, tiles: e.Tiles})
			}
			if h, ok := inByNode[graph.NodeID(id)]; ok {
				out = append(out, absEdge{to: goalOverlayID, weight: h.cost, tiles: h.tiles})
			}
			return out
		}
	}

	result, ok := search(startOverlayID, goalOverlayID, gridCfg, posOf, neighborsOf)
	if !ok {
		return nil, nil
	}
	return assemblePath(g, grid, gridCfg, layout, start, goal, result), nil
}

// assemblePath turns an A* chain of abstract node ids into a path.Path,
// wrapping each hop's tiles as a Known segment if they were already
// resolved, or an Unknown segment that resolves them lazily via a scoped
// search otherwise.
func assemblePath(g *graph.Graph, grid gridspec.Grid, gridCfg gridspec.Config, layout chunk.Layout, start, goal gridspec.Coord, result *aStarResult) *path.Path {
	posOf := func(id uint64) gridspec.Coord {
		switch id {
		case startOverlayID:
			return start
		case goalOverlayID:
			return goal
		default:
			n, _ := g.Node(graph.NodeID(id))
			return n.Pos
		}
	}
	boundsFor := func(fromID, toID uint64) gridspec.Bounds {
		id := fromID
		if id == startOverlayID || id == goalOverlayID {
			id = toID
		}
		if n, ok := g.Node(graph.NodeID(id)); ok {
			return layout.Bounds(chunk.Coord{CX: n.Chunk.CX, CY: n.Chunk.CY})
		}
		return gridspec.WholeGrid(grid)
	}

	segments := make([]*path.Segment, 0, len(result.chain)-1)
	for i := 1; i < len(result.chain); i++ {
		from, to := result.chain[i-1], result.chain[i]
		fromPos, toPos := posOf(from), posOf(to)
		tiles := result.tiles[to]
		cost := result.hopWeight(from, to)
		if tiles != nil {
			segments = append(segments, path.Known(fromPos, toPos, cost, tiles))
			continue
		}
		bounds := boundsFor(from, to)
		fp, tp := fromPos, toPos
		segments = append(segments, path.Unknown(fromPos, toPos, cost, func() []gridspec.Coord {
			scratch := solver.New()
			edges := solver.Solve(scratch, grid, gridCfg, bounds,
				solver.NodeInfo{ID: startOverlayID, Pos: fp},
				[]solver.NodeInfo{{ID: goalOverlayID, Pos: tp}}, true)
			if len(edges) != 1 {
				return []gridspec.Coord{fp, tp}
			}
			return edges[0].Tiles
		}))
	}
	return path.New(start, goal, segments)
}

