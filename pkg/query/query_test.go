package query

import (
	"testing"

	"pathcache/pkg/builder"
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/solver"
)

type openGrid struct{ w, h int }

func (g openGrid) Width() int  { return g.w }
func (g openGrid) Height() int { return g.h }
func (g openGrid) CostAt(x, y int) gridspec.Cost {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return gridspec.Impassable
	}
	return 1
}

// wallGrid is a grid split in two by an impassable column, with a single
// gap tile that any valid path must cross.
type wallGrid struct {
	w, h, wallX, gapY int
}

func (g wallGrid) Width() int  { return g.w }
func (g wallGrid) Height() int { return g.h }
func (g wallGrid) CostAt(x, y int) gridspec.Cost {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return gridspec.Impassable
	}
	if x == g.wallX && y != g.gapY {
		return gridspec.Impassable
	}
	return 1
}

func buildOpenCache(t *testing.T, w, h, chunkSize int) (*graph.Graph, pccfg.Config, openGrid) {
	t.Helper()
	g := openGrid{w: w, h: h}
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = chunkSize
	cfg.AStarFallback = true
	dst := graph.New()
	builder.Build(dst, g, gridspec.Config{Neighborhood: gridspec.FourConnected}, cfg)
	return dst, cfg, g
}

func TestFindPathSameChunkUsesConcreteFallback(t *testing.T) {
	dst, cfg, g := buildOpenCache(t, 16, 16, 8)
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	p, err := FindPath(dst, g, gridCfg, layout, cfg, s, gridspec.Coord{X: 0, Y: 0}, gridspec.Coord{X: 3, Y: 0})
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	if p == nil {
		t.Fatalf("want a path within one chunk, got nil")
	}
	if p.Cost() != 3 {
		t.Fatalf("Cost() = %d, want 3", p.Cost())
	}
}

func TestFindPathAcrossChunksUsesAbstractGraph(t *testing.T) {
	dst, cfg, g := buildOpenCache(t, 32, 32, 8)
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	start := gridspec.Coord{X: 0, Y: 0}
	goal := gridspec.Coord{X: 31, Y: 0}
	p, err := FindPath(dst, g, gridCfg, layout, cfg, s, start, goal)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	if p == nil {
		t.Fatalf("want a path across chunks, got nil")
	}
	if p.Cost() != 31 {
		t.Fatalf("Cost() = %d, want 31", p.Cost())
	}
	tiles := p.Tiles()
	if tiles[0] != start || tiles[len(tiles)-1] != goal {
		t.Fatalf("Tiles() should start at %v and end at %v, got %v ... %v", start, goal, tiles[0], tiles[len(tiles)-1])
	}
}

func TestFindPathOutOfBoundsIsAnError(t *testing.T) {
	dst, cfg, g := buildOpenCache(t, 8, 8, 4)
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	_, err := FindPath(dst, g, gridCfg, layout, cfg, s, gridspec.Coord{X: -1, Y: 0}, gridspec.Coord{X: 0, Y: 0})
	if err == nil {
		t.Fatalf("want an error for an out-of-bounds tile")
	}
}

func TestFindPathDisconnectedReturnsNilNotError(t *testing.T) {
	g := wallGrid{w: 8, h: 8, wallX: 4, gapY: -1} // no gap at all
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	dst := graph.New()
	builder.Build(dst, g, gridCfg, cfg)
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	p, err := FindPath(dst, g, gridCfg, layout, cfg, s, gridspec.Coord{X: 0, Y: 0}, gridspec.Coord{X: 7, Y: 7})
	if err != nil {
		t.Fatalf("disconnected endpoints should not be an error, got %v", err)
	}
	if p != nil {
		t.Fatalf("want nil for disconnected endpoints, got %+v", p)
	}
}

func TestFindPathThroughWallGap(t *testing.T) {
	g := wallGrid{w: 16, h: 8, wallX: 8, gapY: 3}
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	dst := graph.New()
	builder.Build(dst, g, gridCfg, cfg)
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	start := gridspec.Coord{X: 0, Y: 0}
	goal := gridspec.Coord{X: 15, Y: 7}
	p, err := FindPath(dst, g, gridCfg, layout, cfg, s, start, goal)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	if p == nil {
		t.Fatalf("want a path through the gap, got nil")
	}
	gap := gridspec.Coord{X: 8, Y: 3}
	found := false
	for _, tile := range p.Tiles() {
		if tile == gap {
			found = true
		}
	}
	if !found {
		t.Fatalf("path should cross the gap at %v, got %v", gap, p.Tiles())
	}
}

func TestFindPathImpassableEndpointReturnsNilNotError(t *testing.T) {
	g := wallGrid{w: 8, h: 8, wallX: 4, gapY: 3}
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	dst := graph.New()
	builder.Build(dst, g, gridCfg, cfg)
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	p, err := FindPath(dst, g, gridCfg, layout, cfg, s, gridspec.Coord{X: 4, Y: 0}, gridspec.Coord{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("impassable endpoint should not be an error, got %v", err)
	}
	if p != nil {
		t.Fatalf("want nil for an impassable start tile, got %+v", p)
	}
}

func TestFindPathsSkipsUnreachableGoals(t *testing.T) {
	g := wallGrid{w: 16, h: 8, wallX: 8, gapY: -1} // no gap
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}
	dst := graph.New()
	builder.Build(dst, g, gridCfg, cfg)
	layout := chunkLayoutFor(g, cfg)
	s := solver.New()

	start := gridspec.Coord{X: 0, Y: 0}
	goals := []gridspec.Coord{{X: 3, Y: 0}, {X: 15, Y: 0}}
	results, err := FindPaths(dst, g, gridCfg, layout, cfg, s, start, goals)
	if err != nil {
		t.Fatalf("FindPaths error: %v", err)
	}
	if _, ok := results[goals[0]]; !ok {
		t.Fatalf("reachable goal %v missing from results", goals[0])
	}
	if _, ok := results[goals[1]]; ok {
		t.Fatalf("unreachable goal %v should be omitted, got a path", goals[1])
	}
}

// chunkLayoutFor rebuilds the Layout a call to builder.Build would have
// used, since Build returns it but these tests construct the graph ahead
// of time; recomputing it is just arithmetic, not a second build pass.
func chunkLayoutFor(g gridspec.Grid, cfg pccfg.Config) chunk.Layout {
	return chunk.NewLayout(g.Width(), g.Height(), cfg.ChunkSize)
}
