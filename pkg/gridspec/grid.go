// Package gridspec defines the contract a caller's tile grid must satisfy
// to be usable by the path cache, and the shared movement primitives
// (neighbor generation, step cost, heuristics) built on top of it.
package gridspec

import "fmt"

// Coord is a tile position in grid space.
type Coord struct {
	X, Y int
}

func (c Coord) Add(dx, dy int) Coord { return Coord{c.X + dx, c.Y + dy} }

// Cost is the traversal weight of a single tile. Values below zero are
// reserved for Impassable; callers report non-negative weights for every
// traversable tile.
type Cost int32

// Impassable marks a tile that can never be entered.
const Impassable Cost = -1

// OrthogonalUnit is the cost unit a 4-connected step is measured in. A
// DiagonalCost of OrthogonalUnit means diagonal and orthogonal steps cost
// the same; a DiagonalCost of e.g. 14 against an OrthogonalUnit of 10
// approximates the classic sqrt(2) diagonal weighting without floats.
const OrthogonalUnit int32 = 10

// Neighborhood selects which tiles count as adjacent.
type Neighborhood int

const (
	FourConnected  Neighborhood = iota // N, S, E, W
	EightConnected                     // plus the four diagonals
)

// CornerCutting controls whether a diagonal step is allowed when one of
// its two flanking orthogonal tiles is impassable.
type CornerCutting int

const (
	CornerCuttingAllowed CornerCutting = iota
	CornerCuttingForbidden
)

// Heuristic selects the distance estimate used by the abstract-graph and
// concrete-fallback searches. Every heuristic assumes a minimum per-step
// cost of one unit; grids containing zero-cost traversable tiles make the
// estimate technically inadmissible, a known caveat of grid-based A*.
type Heuristic int

const (
	HeuristicManhattan Heuristic = iota
	HeuristicOctile
	HeuristicChebyshev
)

// Config holds the movement rules applied uniformly across the grid.
type Config struct {
	Neighborhood  Neighborhood
	CornerCutting CornerCutting
	// DiagonalCost is the cost of a diagonal step in OrthogonalUnit units.
	// Ignored when Neighborhood is FourConnected.
	DiagonalCost int32
	Heuristic    Heuristic
}

// DefaultConfig returns 8-connected movement with corner cutting allowed
// and a sqrt(2)-like diagonal weighting.
func DefaultConfig() Config {
	return Config{
		Neighborhood:  EightConnected,
		CornerCutting: CornerCuttingAllowed,
		DiagonalCost:  14,
		Heuristic:     HeuristicOctile,
	}
}

// Validate checks that the config is internally consistent.
func (c Config) Validate() error {
	if c.Neighborhood == EightConnected && c.DiagonalCost <= 0 {
		return fmt.Errorf("gridspec: DiagonalCost must be positive for EightConnected, got %d", c.DiagonalCost)
	}
	return nil
}

// Grid is the adapter contract a caller implements over its own tile
// storage. Implementations must be deterministic and side-effect free for
// the lifetime of any cache built over them; a tile's reported cost may
// only change between calls that the cache is explicitly told about.
type Grid interface {
	Width() int
	Height() int
	CostAt(x, y int) Cost
}

// InBounds reports whether (x, y) is within the grid's reported dimensions.
func InBounds(g Grid, x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width() && y < g.Height()
}

// Passable reports whether (x, y) is in bounds and traversable.
func Passable(g Grid, x, y int) bool {
	return InBounds(g, x, y) && g.CostAt(x, y) != Impassable
}
