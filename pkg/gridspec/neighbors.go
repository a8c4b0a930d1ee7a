package gridspec

// Bounds is a half-open rectangle [X0,X1) x [Y0,Y1) used to restrict
// neighbor generation to a chunk's interior during intra-chunk solves.
type Bounds struct {
	X0, Y0, X1, Y1 int
}

// WholeGrid returns the bounds spanning the entire grid.
func WholeGrid(g Grid) Bounds {
	return Bounds{0, 0, g.Width(), g.Height()}
}

func (b Bounds) Contains(x, y int) bool {
	return x >= b.X0 && y >= b.Y0 && x < b.X1 && y < b.Y1
}

// Step is one candidate move out of a tile.
type Step struct {
	Pos      Coord
	Diagonal bool
}

var orthogonalDirs = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
var diagonalDirs = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Neighbors returns the tiles reachable from p in a single step, honoring
// the configured neighborhood, corner-cutting rule, and bounds. Impassable
// tiles are never returned.
func Neighbors(g Grid, cfg Config, bounds Bounds, p Coord) []Step {
	steps := make([]Step, 0, 8)
	for _, d := range orthogonalDirs {
		np := p.Add(d[0], d[1])
		if !bounds.Contains(np.X, np.Y) {
			continue
		}
		if g.CostAt(np.X, np.Y) == Impassable {
			continue
		}
		steps = append(steps, Step{Pos: np})
	}
	if cfg.Neighborhood != EightConnected {
		return steps
	}
	for _, d := range diagonalDirs {
		np := p.Add(d[0], d[1])
		if !bounds.Contains(np.X, np.Y) {
			continue
		}
		if g.CostAt(np.X, np.Y) == Impassable {
			continue
		}
		if cfg.CornerCutting == CornerCuttingForbidden {
			f1 := p.Add(d[0], 0)
			f2 := p.Add(0, d[1])
			if !bounds.Contains(f1.X, f1.Y) || g.CostAt(f1.X, f1.Y) == Impassable {
				continue
			}
			if !bounds.Contains(f2.X, f2.Y) || g.CostAt(f2.X, f2.Y) == Impassable {
				continue
			}
		}
		steps = append(steps, Step{Pos: np, Diagonal: true})
	}
	return steps
}

// StepCost is the cost of moving onto destCost given the diagonal flag.
func StepCost(cfg Config, destCost Cost, diagonal bool) int64 {
	if diagonal {
		return int64(destCost) * int64(cfg.DiagonalCost) / int64(OrthogonalUnit)
	}
	return int64(destCost)
}

// HeuristicCost estimates the remaining cost from a to b under
// cfg.Heuristic. It assumes a minimum per-step cost of one unit, the
// same floor StepCost applies to an orthogonal move onto a cost-1 tile:
// this keeps the estimate admissible for the common case of uniform or
// near-uniform tile costs. A grid whose traversable tiles ever carry a
// cost below one makes the estimate technically inadmissible, the usual
// caveat of any grid-distance heuristic.
func HeuristicCost(cfg Config, a, b Coord) int64 {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	switch cfg.Heuristic {
	case HeuristicChebyshev:
		return int64(max(dx, dy))
	case HeuristicOctile:
		diag := int64(1)
		if cfg.Neighborhood == EightConnected {
			diag = int64(cfg.DiagonalCost) / int64(OrthogonalUnit)
		}
		lo, hi := dx, dy
		if lo > hi {
			lo, hi = hi, lo
		}
		return diag*int64(lo) + int64(hi-lo)
	default: // HeuristicManhattan
		return int64(dx + dy)
	}
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
