// Package spatial indexes abstract node positions for the windowed
// queries a visualization or debug adapter needs from inspect(): "which
// nodes fall inside my current viewport" without walking the whole graph
// every frame.
package spatial

import (
	"pathcache/pkg/graph"

	"github.com/tidwall/rtree"
)

// Index is a point index over a snapshot of a graph's nodes, keyed by
// tile position. It does not track the graph live; rebuild it with Build
// after any mutating call.
type Index struct {
	tr   rtree.RTree
	size int
}

// Build indexes the current position of every node in g.
func Build(g *graph.Graph) *Index {
	ix := &Index{}
	for _, c := range g.AllChunks() {
		for _, id := range g.NodesInChunk(c) {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			p := [2]float64{float64(n.Pos.X), float64(n.Pos.Y)}
			ix.tr.Insert(p, p, uint64(id))
			ix.size++
		}
	}
	return ix
}

// Len returns the number of nodes indexed.
func (ix *Index) Len() int { return ix.size }

// NodesInRect returns the ids of every indexed node whose tile position
// falls within the inclusive rectangle [x0,y0]-[x1,y1].
func (ix *Index) NodesInRect(x0, y0, x1, y1 int) []graph.NodeID {
	var out []graph.NodeID
	min := [2]float64{float64(x0), float64(y0)}
	max := [2]float64{float64(x1), float64(y1)}
	ix.tr.Search(min, max, func(_, _ [2]float64, value interface{}) bool {
		out = append(out, graph.NodeID(value.(uint64)))
		return true
	})
	return out
}
