package pathcache

import (
	"path/filepath"
	"testing"

	"pathcache/pkg/cacheerr"
	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
)

// mutableGrid is a fixture grid whose costs can be edited in place, so
// tests can exercise TilesChanged against a cache built over it.
type mutableGrid struct {
	w, h  int
	costs []gridspec.Cost
}

func newMutableGrid(w, h int) *mutableGrid {
	costs := make([]gridspec.Cost, w*h)
	for i := range costs {
		costs[i] = 1
	}
	return &mutableGrid{w: w, h: h, costs: costs}
}

func (g *mutableGrid) Width() int  { return g.w }
func (g *mutableGrid) Height() int { return g.h }
func (g *mutableGrid) CostAt(x, y int) gridspec.Cost {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return gridspec.Impassable
	}
	return g.costs[y*g.w+x]
}
func (g *mutableGrid) SetCost(x, y int, c gridspec.Cost) { g.costs[y*g.w+x] = c }

func fourConnected() gridspec.Config {
	return gridspec.Config{Neighborhood: gridspec.FourConnected}
}

func TestNewRejectsDimensionMismatch(t *testing.T) {
	g := newMutableGrid(8, 8)
	_, err := New(8, 9, g, fourConnected(), DefaultConfig())
	if err == nil {
		t.Fatalf("want an error for mismatched dimensions")
	}
	if !cacheerr.Is(err, cacheerr.InvalidGrid) {
		t.Fatalf("want InvalidGrid, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	g := newMutableGrid(8, 8)
	cfg := DefaultConfig()
	cfg.ChunkSize = 0
	_, err := New(8, 8, g, fourConnected(), cfg)
	if err == nil {
		t.Fatalf("want an error for ChunkSize 0")
	}
	if !cacheerr.Is(err, cacheerr.InvalidConfig) {
		t.Fatalf("want InvalidConfig, got %v", err)
	}
}

func TestFindPathRoundTrip(t *testing.T) {
	g := newMutableGrid(32, 32)
	cfg := DefaultConfig()
	cfg.ChunkSize = 8
	pc, err := New(32, 32, g, fourConnected(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	start := gridspec.Coord{X: 0, Y: 0}
	goal := gridspec.Coord{X: 31, Y: 0}
	p, err := pc.FindPath(start, goal)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	if p == nil {
		t.Fatalf("want a path, got nil")
	}
	if p.Cost() != 31 {
		t.Fatalf("Cost() = %d, want 31", p.Cost())
	}
}

func TestFindPathsOmitsUnreachableGoal(t *testing.T) {
	g := newMutableGrid(16, 8)
	for y := 0; y < 8; y++ {
		g.SetCost(8, y, gridspec.Impassable)
	}
	cfg := DefaultConfig()
	cfg.ChunkSize = 4
	pc, err := New(16, 8, g, fourConnected(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	start := gridspec.Coord{X: 0, Y: 0}
	near := gridspec.Coord{X: 3, Y: 0}
	far := gridspec.Coord{X: 15, Y: 0}
	results, err := pc.FindPaths(start, []gridspec.Coord{near, far})
	if err != nil {
		t.Fatalf("FindPaths error: %v", err)
	}
	if _, ok := results[near]; !ok {
		t.Fatalf("reachable goal %v missing from results", near)
	}
	if _, ok := results[far]; ok {
		t.Fatalf("sealed-off goal %v should be omitted", far)
	}
}

func TestTilesChangedReconnectsAfterGapOpens(t *testing.T) {
	g := newMutableGrid(16, 8)
	for y := 0; y < 8; y++ {
		g.SetCost(8, y, gridspec.Impassable)
	}
	cfg := DefaultConfig()
	cfg.ChunkSize = 4
	pc, err := New(16, 8, g, fourConnected(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	start := gridspec.Coord{X: 0, Y: 0}
	goal := gridspec.Coord{X: 15, Y: 7}
	if p, _ := pc.FindPath(start, goal); p != nil {
		t.Fatalf("want no path before opening the gap, got %+v", p)
	}

	g.SetCost(8, 3, 1)
	pc.TilesChanged([]gridspec.Coord{{X: 8, Y: 3}})

	p, err := pc.FindPath(start, goal)
	if err != nil {
		t.Fatalf("FindPath error: %v", err)
	}
	if p == nil {
		t.Fatalf("want a path after opening the gap, got nil")
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

func TestInspectReflectsCurrentGraph(t *testing.T) {
	g := newMutableGrid(32, 32)
	cfg := DefaultConfig()
	cfg.ChunkSize = 8
	pc, err := New(32, 32, g, fourConnected(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	snap := pc.Inspect()
	all := snap.NodesInRect(0, 0, 31, 31)
	if len(all) == 0 {
		t.Fatalf("want at least one abstract node over a 32x32 open grid")
	}
	narrow := snap.NodesInRect(0, 0, 0, 0)
	if len(narrow) > len(all) {
		t.Fatalf("a single-tile window should never return more nodes than the whole grid")
	}
}

func TestExportRoundTripsThroughImportSnapshot(t *testing.T) {
	g := newMutableGrid(32, 32)
	cfg := DefaultConfig()
	cfg.ChunkSize = 8
	pc, err := New(32, 32, g, fourConnected(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out := filepath.Join(t.TempDir(), "snapshot.pcache")
	if err := pc.Export(out); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	snap, err := graph.ImportSnapshot(out)
	if err != nil {
		t.Fatalf("ImportSnapshot error: %v", err)
	}
	want := pc.Inspect().NodesInRect(0, 0, 31, 31)
	if int(snap.NumNodes) != len(want) {
		t.Fatalf("imported snapshot has %d nodes, cache graph has %d", snap.NumNodes, len(want))
	}
}

func TestSetLoggerAcceptsNil(t *testing.T) {
	g := newMutableGrid(8, 8)
	pc, err := New(8, 8, g, fourConnected(), DefaultConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	pc.SetLogger(nil)
	pc.TilesChanged([]gridspec.Coord{{X: 0, Y: 0}})
}
