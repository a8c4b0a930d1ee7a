// Package solver runs the bounded, repeated Dijkstra searches the
// builder and updater need to connect a chunk's owned nodes, and the
// scoped single-source searches the query engine needs to splice a
// temporary start or goal node into a chunk. A Solver holds reusable
// scratch state so none of that allocates per call.
package solver

import (
	"sort"

	"pathcache/pkg/gridspec"
)

// NodeInfo is the minimal identity a solver needs for one endpoint: an
// opaque id the caller assigns meaning to, and its tile position.
type NodeInfo struct {
	ID  uint64
	Pos gridspec.Coord
}

// Edge is one result of a scoped search: the best cost from a source to
// a target, plus the concrete tile sequence if the caller asked for it.
type Edge struct {
	From, To uint64
	Weight   int64
	Tiles    []gridspec.Coord
}

const infinite = int64(1) << 62

// Solver holds scratch buffers sized to a chunk's tile area, reused
// across every search the builder, updater, and query engine run against
// that chunk. Reset is O(touched) rather than O(area): only the entries
// recorded in the touched list are cleared.
type Solver struct {
	dist    []int64
	pred    []int32 // local flat index of predecessor, -1 if none/source
	touched []int
	heap    minHeap
	bounds  gridspec.Bounds
}

// New returns a Solver with no scratch buffers allocated yet; the first
// call to Solve sizes them to that call's chunk.
func New() *Solver {
	return &Solver{heap: minHeap{items: make([]heapItem, 0, 64)}}
}

func (s *Solver) ensureCapacity(bounds gridspec.Bounds) {
	area := (bounds.X1 - bounds.X0) * (bounds.Y1 - bounds.Y0)
	if len(s.dist) < area {
		s.dist = make([]int64, area)
		s.pred = make([]int32, area)
		for i := range s.dist {
			s.dist[i] = infinite
			s.pred[i] = -1
		}
		s.touched = s.touched[:0]
	}
	s.bounds = bounds
}

func (s *Solver) localIndex(p gridspec.Coord) int {
	w := s.bounds.X1 - s.bounds.X0
	return (p.Y-s.bounds.Y0)*w + (p.X - s.bounds.X0)
}

func (s *Solver) reset() {
	for _, i := range s.touched {
		s.dist[i] = infinite
		s.pred[i] = -1
	}
	s.touched = s.touched[:0]
	s.heap.reset()
}

// Solve runs a single-source Dijkstra rooted at source, restricted to
// bounds, and returns the best cost (and optionally tile path) to every
// node in targets it can reach. It halts once every target has been
// settled or the frontier is exhausted, so it never walks tiles outside
// the chunk and never explores past the nodes the caller actually asked
// about.
func Solve(s *Solver, g gridspec.Grid, cfg gridspec.Config, bounds gridspec.Bounds, source NodeInfo, targets []NodeInfo, wantTiles bool) []Edge {
	s.ensureCapacity(bounds)
	s.reset()

	targetIdx := make(map[int]uint64, len(targets))
	for _, t := range targets {
		if t.ID == source.ID {
			continue
		}
		targetIdx[s.localIndex(t.Pos)] = t.ID
	}
	remaining := len(targetIdx)
	if remaining == 0 {
		return nil
	}

	srcLocal := s.localIndex(source.Pos)
	s.dist[srcLocal] = 0
	s.touched = append(s.touched, srcLocal)
	s.heap.push(srcLocal, 0)

	settled := make(map[int]bool, remaining)
	for s.heap.len() > 0 && remaining > 0 {
		cur := s.heap.pop()
		if cur.dist > s.dist[cur.node] {
			continue
		}
		if _, isTarget := targetIdx[cur.node]; isTarget && !settled[cur.node] {
			settled[cur.node] = true
			remaining--
		}
		curPos := s.posOf(cur.node)
		for _, step := range gridspec.Neighbors(g, cfg, bounds, curPos) {
			cost := gridspec.StepCost(cfg, g.CostAt(step.Pos.X, step.Pos.Y), step.Diagonal)
			nIdx := s.localIndex(step.Pos)
			nd := cur.dist + cost
			if nd < s.dist[nIdx] {
				if s.dist[nIdx] == infinite {
					s.touched = append(s.touched, nIdx)
				}
				s.dist[nIdx] = nd
				s.pred[nIdx] = int32(cur.node)
				s.heap.push(nIdx, nd)
			}
		}
	}

	out := make([]Edge, 0, len(targetIdx))
	for idx, id := range targetIdx {
		if s.dist[idx] == infinite {
			continue
		}
		e := Edge{From: source.ID, To: id, Weight: s.dist[idx]}
		if wantTiles {
			e.Tiles = s.reconstruct(idx, srcLocal)
		}
		out = append(out, e)
	}
	// targetIdx is a map, so the loop above visits targets in
	// non-deterministic order. Sort by id so identical builds insert
	// edges into the graph in the same order every time.
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

func (s *Solver) posOf(local int) gridspec.Coord {
	w := s.bounds.X1 - s.bounds.X0
	return gridspec.Coord{X: s.bounds.X0 + local%w, Y: s.bounds.Y0 + local/w}
}

func (s *Solver) reconstruct(from, to int) []gridspec.Coord {
	var rev []gridspec.Coord
	cur := from
	for cur != to {
		rev = append(rev, s.posOf(cur))
		cur = int(s.pred[cur])
	}
	rev = append(rev, s.posOf(to))
	out := make([]gridspec.Coord, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
