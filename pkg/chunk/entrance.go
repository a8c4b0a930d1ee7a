package chunk

import "pathcache/pkg/gridspec"

// NodePair is a single promoted entrance point: a tile on each side of a
// chunk border that becomes an abstract node, joined by a bridge edge.
type NodePair struct {
	ChunkA, ChunkB Coord
	TileA, TileB   gridspec.Coord
}

// ExtractBorder scans the shared border between two chunk-adjacent chunks
// and returns the node pairs an abstract graph should install for it. a
// and b must be horizontally or vertically adjacent chunk coordinates;
// their relative order does not matter. Diagonally-adjacent chunks (and
// chunks that only touch at a corner) have no border and yield nothing -
// a path crossing that pinch point must route through one of the two
// chunks that share a full edge with both.
func ExtractBorder(g gridspec.Grid, layout Layout, threshold int, perfect bool, a, b Coord) []NodePair {
	if a.CY == b.CY && abs(a.CX-b.CX) == 1 {
		left, right := a, b
		if left.CX > right.CX {
			left, right = right, left
		}
		return scanVertical(g, layout, threshold, perfect, left, right)
	}
	if a.CX == b.CX && abs(a.CY-b.CY) == 1 {
		top, bottom := a, b
		if top.CY > bottom.CY {
			top, bottom = bottom, top
		}
		return scanHorizontal(g, layout, threshold, perfect, top, bottom)
	}
	return nil
}

// scanVertical handles the border between a left chunk and the chunk
// immediately to its right.
func scanVertical(g gridspec.Grid, layout Layout, threshold int, perfect bool, left, right Coord) []NodePair {
	lb := layout.Bounds(left)
	rb := layout.Bounds(right)
	x0, x1 := lb.X1-1, rb.X0
	y0 := max(lb.Y0, rb.Y0)
	y1 := min(lb.Y1, rb.Y1)

	passable := func(y int) bool {
		return gridspec.Passable(g, x0, y) && gridspec.Passable(g, x1, y)
	}
	pairs := collectRuns(y0, y1, threshold, perfect, passable)
	out := make([]NodePair, 0, len(pairs))
	for _, y := range pairs {
		out = append(out, NodePair{
			ChunkA: left, ChunkB: right,
			TileA: gridspec.Coord{X: x0, Y: y},
			TileB: gridspec.Coord{X: x1, Y: y},
		})
	}
	return out
}

// scanHorizontal handles the border between a top chunk and the chunk
// immediately below it.
func scanHorizontal(g gridspec.Grid, layout Layout, threshold int, perfect bool, top, bottom Coord) []NodePair {
	tb := layout.Bounds(top)
	bb := layout.Bounds(bottom)
	y0, y1 := tb.Y1-1, bb.Y0
	x0 := max(tb.X0, bb.X0)
	x1 := min(tb.X1, bb.X1)

	passable := func(x int) bool {
		return gridspec.Passable(g, x, y0) && gridspec.Passable(g, x, y1)
	}
	pairs := collectRuns(x0, x1, threshold, perfect, passable)
	out := make([]NodePair, 0, len(pairs))
	for _, x := range pairs {
		out = append(out, NodePair{
			ChunkA: top, ChunkB: bottom,
			TileA: gridspec.Coord{X: x, Y: y0},
			TileB: gridspec.Coord{X: x, Y: y1},
		})
	}
	return out
}

// collectRuns scans the half-open index range [lo, hi) in order, groups
// contiguous indices for which passable reports true into runs, and
// returns the indices within each run that should be promoted to nodes.
// With perfect set every index in the run is promoted. Otherwise a run
// at or above threshold tiles long contributes both of its endpoints;
// a shorter run contributes only its midpoint, ties rounded down to the
// earlier index.
func collectRuns(lo, hi, threshold int, perfect bool, passable func(i int) bool) []int {
	var out []int
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		length := end - runStart
		switch {
		case perfect:
			for i := runStart; i < end; i++ {
				out = append(out, i)
			}
		case length >= threshold:
			out = append(out, runStart, end-1)
		default:
			out = append(out, runStart+(length-1)/2)
		}
		runStart = -1
	}
	for i := lo; i < hi; i++ {
		if passable(i) {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(hi)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
