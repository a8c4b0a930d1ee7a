package oracle

import (
	"container/heap"

	"pathcache/pkg/gridspec"
)

// ShortestPathCost runs a textbook Dijkstra directly on the concrete
// grid and returns the optimal cost from start to goal, or ok=false if
// no path exists. It exists purely as ground truth for tests; production
// code never takes this path because it revisits every tile on every
// call instead of reusing the abstract graph.
func ShortestPathCost(g gridspec.Grid, cfg gridspec.Config, start, goal gridspec.Coord) (cost int64, ok bool) {
	if !gridspec.Passable(g, start.X, start.Y) || !gridspec.Passable(g, goal.X, goal.Y) {
		return 0, false
	}
	if start == goal {
		return 0, true
	}
	bounds := gridspec.WholeGrid(g)
	dist := map[gridspec.Coord]int64{start: 0}
	pq := &oraclePQ{{pos: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(oraclePQItem)
		if cur.dist > dist[cur.pos] {
			continue
		}
		if cur.pos == goal {
			return cur.dist, true
		}
		for _, s := range gridspec.Neighbors(g, cfg, bounds, cur.pos) {
			step := gridspec.StepCost(cfg, g.CostAt(s.Pos.X, s.Pos.Y), s.Diagonal)
			nd := cur.dist + step
			if d, seen := dist[s.Pos]; !seen || nd < d {
				dist[s.Pos] = nd
				heap.Push(pq, oraclePQItem{pos: s.Pos, dist: nd})
			}
		}
	}
	return 0, false
}

// ReachableSet returns every tile reachable from start, as a key set
// suitable for membership tests.
func ReachableSet(g gridspec.Grid, cfg gridspec.Config, start gridspec.Coord) map[gridspec.Coord]bool {
	seen := map[gridspec.Coord]bool{}
	if !gridspec.Passable(g, start.X, start.Y) {
		return seen
	}
	bounds := gridspec.WholeGrid(g)
	stack := []gridspec.Coord{start}
	seen[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range gridspec.Neighbors(g, cfg, bounds, cur) {
			if !seen[s.Pos] {
				seen[s.Pos] = true
				stack = append(stack, s.Pos)
			}
		}
	}
	return seen
}

type oraclePQItem struct {
	pos  gridspec.Coord
	dist int64
}

type oraclePQ []oraclePQItem

func (pq oraclePQ) Len() int            { return len(pq) }
func (pq oraclePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq oraclePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *oraclePQ) Push(x interface{}) { *pq = append(*pq, x.(oraclePQItem)) }
func (pq *oraclePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
