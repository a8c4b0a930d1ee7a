package builder

import (
	"testing"

	"pathcache/pkg/graph"
	"pathcache/pkg/gridspec"
	"pathcache/pkg/pccfg"
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

func TestBuildOpenGridConnectsAcrossEveryBorder(t *testing.T) {
	g := openGrid{w: 16, h: 16}
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 4

	dst := graph.New()
	layout := Build(dst, g, gridspec.Config{Neighborhood: gridspec.FourConnected}, cfg)

	if layout.ChunksX != 4 || layout.ChunksY != 4 {
		t.Fatalf("layout = %dx%d chunks, want 4x4", layout.ChunksX, layout.ChunksY)
	}
	if dst.NumNodes() == 0 {
		t.Fatalf("an open 16x16 grid cut into 4x4 chunks should produce entrance nodes")
	}

	// Every node should have at least one outgoing edge: either a bridge
	// to a neighboring chunk or an intra-chunk edge to a same-chunk node.
	for _, c := range layout.All() {
		for _, id := range dst.NodesInChunk(graph.ChunkCoord{CX: c.CX, CY: c.CY}) {
			if len(dst.Edges(id)) == 0 {
				t.Errorf("node %d in chunk %+v has no outgoing edges", id, c)
			}
		}
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	g := openGrid{w: 20, h: 20}

	seqCfg := pccfg.DefaultConfig()
	seqCfg.ChunkSize = 5
	seqCfg.Parallel = false
	seqGraph := graph.New()
	Build(seqGraph, g, gridspec.Config{Neighborhood: gridspec.FourConnected}, seqCfg)

	parCfg := seqCfg
	parCfg.Parallel = true
	parCfg.Workers = 4
	parGraph := graph.New()
	Build(parGraph, g, gridspec.Config{Neighborhood: gridspec.FourConnected}, parCfg)

	if seqGraph.NumNodes() != parGraph.NumNodes() {
		t.Fatalf("sequential build produced %d nodes, parallel produced %d", seqGraph.NumNodes(), parGraph.NumNodes())
	}
}

func TestBuildSingleChunkHasNoBridgeEdges(t *testing.T) {
	g := openGrid{w: 4, h: 4}
	cfg := pccfg.DefaultConfig()
	cfg.ChunkSize = 8 // larger than the grid: exactly one chunk

	dst := graph.New()
	layout := Build(dst, g, gridspec.Config{Neighborhood: gridspec.FourConnected}, cfg)
	if layout.ChunksX != 1 || layout.ChunksY != 1 {
		t.Fatalf("want a single chunk, got %dx%d", layout.ChunksX, layout.ChunksY)
	}
	if dst.NumNodes() != 0 {
		t.Fatalf("a grid with no chunk borders should have no entrance nodes, got %d", dst.NumNodes())
	}
}
