// Package chunk partitions a grid into fixed-size square chunks and
// extracts the entrances between adjacent chunks. It knows nothing about
// abstract node identity; that bookkeeping belongs to pkg/graph.
package chunk

import "pathcache/pkg/gridspec"

// Coord identifies a chunk by its position in chunk space, not tile space.
type Coord struct {
	CX, CY int
}

// Layout describes how a grid of the given dimensions is carved into
// chunks of a fixed size. The last row and column of chunks may be
// smaller than size when the grid dimensions are not a multiple of it.
type Layout struct {
	Width, Height     int
	Size              int
	ChunksX, ChunksY  int
}

// NewLayout builds a Layout for a width x height grid cut into size x
// size chunks.
func NewLayout(width, height, size int) Layout {
	return Layout{
		Width:   width,
		Height:  height,
		Size:    size,
		ChunksX: ceilDiv(width, size),
		ChunksY: ceilDiv(height, size),
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// ChunkAt returns the chunk coordinate owning tile (x, y).
func (l Layout) ChunkAt(p gridspec.Coord) Coord {
	return Coord{CX: p.X / l.Size, CY: p.Y / l.Size}
}

// Bounds returns the tile-space bounding box of chunk c.
func (l Layout) Bounds(c Coord) gridspec.Bounds {
	x0 := c.CX * l.Size
	y0 := c.CY * l.Size
	x1 := min(x0+l.Size, l.Width)
	y1 := min(y0+l.Size, l.Height)
	return gridspec.Bounds{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// InBounds reports whether c is a valid chunk coordinate for this layout.
func (l Layout) InBounds(c Coord) bool {
	return c.CX >= 0 && c.CY >= 0 && c.CX < l.ChunksX && c.CY < l.ChunksY
}

// Neighbors4 returns the up to four chunks sharing a border with c.
func (l Layout) Neighbors4(c Coord) []Coord {
	cand := []Coord{
		{c.CX, c.CY - 1},
		{c.CX, c.CY + 1},
		{c.CX - 1, c.CY},
		{c.CX + 1, c.CY},
	}
	out := make([]Coord, 0, 4)
	for _, n := range cand {
		if l.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// All returns every chunk coordinate in the layout, in row-major order.
func (l Layout) All() []Coord {
	out := make([]Coord, 0, l.ChunksX*l.ChunksY)
	for cy := 0; cy < l.ChunksY; cy++ {
		for cx := 0; cx < l.ChunksX; cx++ {
			out = append(out, Coord{cx, cy})
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
