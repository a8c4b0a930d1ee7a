package query

import "pathcache/pkg/gridspec"

// absEdge is one outgoing edge in the abstract search space: either a
// real graph edge, or a synthetic edge spliced in by the query engine to
// connect an overlay node to the persistent graph.
type absEdge struct {
	to     uint64
	weight int64
	tiles  []gridspec.Coord
}

// aStarItem is one entry in the abstract A* frontier.
type aStarItem struct {
	id   uint64
	g, f int64
}

// aStarHeap is a concrete-typed binary min-heap ordered by f-score, with
// node id as a deterministic tie-breaker.
type aStarHeap struct {
	items []aStarItem
}

func (h *aStarHeap) len() int { return len(h.items) }

func (h *aStarHeap) push(it aStarItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *aStarHeap) pop() aStarItem {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top
}

func less(a, b aStarItem) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.id < b.id
}

func (h *aStarHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !less(item, h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *aStarHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && less(h.items[right], h.items[child]) {
			child = right
		}
		if !less(h.items[child], item) {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}

// aStarResult describes a found path through the abstract search space as
// a chain of node ids, together with the weight and (if known) tiles of
// the edge that reached each one.
type aStarResult struct {
	cost    int64
	chain   []uint64
	tiles   map[uint64][]gridspec.Coord
	weights map[uint64]int64 // weight of the edge that reached each node in chain
}

// hopWeight returns the weight of the edge from -> to as recorded during
// the search that produced this result. from is unused; every node in
// the chain has exactly one predecessor, so the weight is keyed by to.
func (r *aStarResult) hopWeight(from, to uint64) int64 {
	return r.weights[to]
}

// search runs A* from start to goal over a search space defined entirely
// by posOf (a node's tile position, for the heuristic) and neighborsOf (a
// node's outgoing edges, computed lazily so the caller can splice in
// overlay nodes without building an explicit adjacency list for them).
func search(start, goal uint64, gridCfg gridspec.Config, posOf func(uint64) gridspec.Coord, neighborsOf func(uint64) []absEdge) (*aStarResult, bool) {
	goalPos := posOf(goal)

	best := map[uint64]int64{start: 0}
	pred := map[uint64]uint64{}
	predEdgeTiles := map[uint64][]gridspec.Coord{}
	predEdgeWeight := map[uint64]int64{}
	closed := map[uint64]bool{}

	var h aStarHeap
	h.push(aStarItem{id: start, g: 0, f: gridspec.HeuristicCost(gridCfg, posOf(start), goalPos)})

	for h.len() > 0 {
		cur := h.pop()
		if closed[cur.id] {
			continue
		}
		if cur.g > best[cur.id] {
			continue
		}
		closed[cur.id] = true
		if cur.id == goal {
			return reconstruct(start, goal, best[goal], pred, predEdgeTiles, predEdgeWeight), true
		}
		for _, e := range neighborsOf(cur.id) {
			nd := cur.g + e.weight
			if old, ok := best[e.to]; ok && nd >= old {
				continue
			}
			best[e.to] = nd
			pred[e.to] = cur.id
			predEdgeTiles[e.to] = e.tiles
			predEdgeWeight[e.to] = e.weight
			f := nd + gridspec.HeuristicCost(gridCfg, posOf(e.to), goalPos)
			h.push(aStarItem{id: e.to, g: nd, f: f})
		}
	}
	return nil, false
}

func reconstruct(start, goal uint64, cost int64, pred map[uint64]uint64, edgeTiles map[uint64][]gridspec.Coord, edgeWeight map[uint64]int64) *aStarResult {
	chain := []uint64{goal}
	cur := goal
	for cur != start {
		cur = pred[cur]
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return &aStarResult{cost: cost, chain: chain, tiles: edgeTiles, weights: edgeWeight}
}
