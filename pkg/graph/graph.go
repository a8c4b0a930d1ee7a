// Package graph holds the persistent abstract node graph: one node per
// promoted entrance point, edges for bridges across chunk borders and
// for intra-chunk connections solved within a chunk's interior. Node ids
// are arena-issued and only become invalid when the owning chunk is
// rebuilt by an incremental update.
package graph

import "pathcache/pkg/gridspec"

// NodeID identifies an abstract node for the lifetime of the chunk that
// owns it.
type NodeID uint64

// InvalidNodeID never identifies a real node.
const InvalidNodeID NodeID = ^NodeID(0)

// ChunkCoord is a chunk-space coordinate, duplicated here (rather than
// importing pkg/chunk) to keep this package free of a dependency on
// chunk geometry; pkg/chunk's Coord and this type share the same shape.
type ChunkCoord struct {
	CX, CY int
}

// Node is one abstract node: a promoted entrance tile owned by exactly
// one chunk.
type Node struct {
	ID    NodeID
	Pos   gridspec.Coord
	Chunk ChunkCoord
}

// Edge is one directed connection between two abstract nodes.
type Edge struct {
	To     NodeID
	Weight int64
	// Tiles is the concrete tile sequence from the owning node to To,
	// inclusive of both ends. Nil when the edge's path was not cached
	// at build time; the path package recomputes it on demand.
	Tiles  []gridspec.Coord
	Bridge bool // true for a cross-border edge, false for an intra-chunk edge
}

// Graph is the persistent node/edge store. A Graph is not safe for
// concurrent mutation; the path cache serializes builds, updates, and
// queries against a single Graph the same way the rest of the cache
// assumes single-owner access.
type Graph struct {
	nodes   map[NodeID]*Node
	out     map[NodeID][]Edge
	in      map[NodeID]map[NodeID]struct{} // reverse index: in[v] has u for every edge u->v
	byChunk map[ChunkCoord][]NodeID
	byPos   map[gridspec.Coord]NodeID
	nextID  NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[NodeID]*Node),
		out:     make(map[NodeID][]Edge),
		in:      make(map[NodeID]map[NodeID]struct{}),
		byChunk: make(map[ChunkCoord][]NodeID),
		byPos:   make(map[gridspec.Coord]NodeID),
	}
}

// PeekNextID returns the id that would be issued by the next AddNode
// call, without reserving or committing it. Calling it repeatedly with
// no AddNode in between returns the same id each time.
func (g *Graph) PeekNextID() NodeID {
	return g.nextID
}

// AddNode installs a new persistent node at pos, owned by chunk, and
// returns its id. If a node already exists at pos, its id is returned
// unchanged and no new node is created.
func (g *Graph) AddNode(pos gridspec.Coord, chunk ChunkCoord) NodeID {
	if id, ok := g.byPos[pos]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.nodes[id] = &Node{ID: id, Pos: pos, Chunk: chunk}
	g.byChunk[chunk] = append(g.byChunk[chunk], id)
	g.byPos[pos] = id
	return id
}

// AddEdge installs a directed edge from -> to, overwriting any existing
// edge between the same pair.
func (g *Graph) AddEdge(from NodeID, e Edge) {
	edges := g.out[from]
	for i := range edges {
		if edges[i].To == e.To {
			edges[i] = e
			g.indexIn(from, e.To)
			return
		}
	}
	g.out[from] = append(edges, e)
	g.indexIn(from, e.To)
}

func (g *Graph) indexIn(from, to NodeID) {
	if g.in[to] == nil {
		g.in[to] = make(map[NodeID]struct{})
	}
	g.in[to][from] = struct{}{}
}

// Node looks up a persistent node by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeAt returns the node at pos, if one exists.
func (g *Graph) NodeAt(pos gridspec.Coord) (NodeID, bool) {
	id, ok := g.byPos[pos]
	return id, ok
}

// Edges returns the outgoing edges of id. The returned slice is owned by
// the graph and must not be mutated by the caller.
func (g *Graph) Edges(id NodeID) []Edge {
	return g.out[id]
}

// NodesInChunk returns the ids of every node owned by chunk, in the
// order they were created.
func (g *Graph) NodesInChunk(chunk ChunkCoord) []NodeID {
	ids := g.byChunk[chunk]
	out := make([]NodeID, len(ids))
	copy(out, ids)
	return out
}

// NumNodes returns the number of live nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// AllChunks returns every chunk coordinate that currently owns at least
// one node.
func (g *Graph) AllChunks() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(g.byChunk))
	for c, ids := range g.byChunk {
		if len(ids) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChunkNodes discards every node owned by chunk, together with
// their outgoing edges and any bridge edges that neighboring chunks hold
// pointing into them. It returns the ids that were removed.
func (g *Graph) RemoveChunkNodes(chunk ChunkCoord) []NodeID {
	ids := g.byChunk[chunk]
	if len(ids) == 0 {
		return nil
	}
	removed := make([]NodeID, len(ids))
	copy(removed, ids)

	for _, id := range removed {
		for from := range g.in[id] {
			g.out[from] = removeEdgeTo(g.out[from], id)
		}
		delete(g.in, id)
		for _, e := range g.out[id] {
			if inSet, ok := g.in[e.To]; ok {
				delete(inSet, id)
			}
		}
		delete(g.out, id)
		n := g.nodes[id]
		delete(g.byPos, n.Pos)
		delete(g.nodes, id)
	}
	delete(g.byChunk, chunk)
	return removed
}

func removeEdgeTo(edges []Edge, to NodeID) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.To != to {
			out = append(out, e)
		}
	}
	return out
}
