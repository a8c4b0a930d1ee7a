package updater

import (
	"testing"

	"pathcache/pkg/builder"
	"pathcache/pkg/chunk"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/pccfg"
	"pathcache/pkg/solver"
)

// mutableGrid is a flat per-tile cost grid that can be edited in place,
// used to exercise TilesChanged-style incremental updates.
type mutableGrid struct {
	w, h  int
	cells []gridspec.Cost
}

func newMutableGrid(w, h int) *mutableGrid {
	cells := make([]gridspec.Cost, w*h)
	for i := range cells {
		cells[i] = 1
	}
	return &mutableGrid{w: w, h: h, cells: cells}
}

func (g *mutableGrid) Width() int  { return g.w }
func (g *mutableGrid) Height() int { return g.h }
func (g *mutableGrid) CostAt(x, y int) gridspec.Cost {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return gridspec.Impassable
	}
	return g.cells[y*g.w+x]
}
func (g *mutableGrid) SetCost(x, y int, c gridspec.Cost) {
	g.cells[y*g.w+x] = c
}

func TestApplyReconnectsAfterWallRemoval(t *testing.T) {
	g := newMutableGrid(8, 8)
	// Wall off the right half of the grid entirely.
	for y := 0; y < 8; y++ {
		g.SetCost(4, y, gridspec.Impassable)
	}

	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4
	gridCfg := gridspec.Config{Neighborhood: gridspec.FourConnected}

	dst := graph.New()
	layout := builder.Build(dst, g, gridCfg, cfg)

	// With the wall up, no node in the left column of chunks should have
	// a bridge edge into the right column.
	for _, id := range dst.NodesInChunk(graph.ChunkCoord{CX: 0, CY: 0}) {
		for _, e := range dst.Edges(id) {
			if to, ok := dst.Node(e.To); ok && e.Bridge && to.Chunk.CX == 1 {
				t.Fatalf("no bridge edge should exist while the wall stands, got edge to %d", e.To)
			}
		}
	}

	// Open a single gap in the wall and report the changed tile.
	g.SetCost(4, 2, 1)
	s := solver.New()
	Apply(dst, layout, g, gridCfg, cfg, s, []gridspec.Coord{{X: 4, Y: 2}})

	found := false
	for _, id := range dst.NodesInChunk(graph.ChunkCoord{CX: 0, CY: 0}) {
		for _, e := range dst.Edges(id) {
			if to, ok := dst.Node(e.To); ok && e.Bridge && to.Chunk.CX == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("after opening a gap in the wall, the left chunk should have a bridge edge across it")
	}
}

func TestAffectedChunksIncludesNeighbors(t *testing.T) {
	layout := chunk.NewLayout(16, 16, 4)
	changed := []gridspec.Coord{{X: 0, Y: 0}} // owned by chunk (0,0)
	affected := affectedChunks(layout, changed)

	want := map[chunk.Coord]bool{
		{CX: 0, CY: 0}: true,
		{CX: 1, CY: 0}: true,
		{CX: 0, CY: 1}: true,
	}
	got := map[chunk.Coord]bool{}
	for _, c := range affected {
		got[c] = true
	}
	for c := range want {
		if !got[c] {
			t.Errorf("affectedChunks missing %+v", c)
		}
	}
}
