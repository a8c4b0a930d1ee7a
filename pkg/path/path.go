// Package path represents the result of a query: an ordered chain of
// segments between abstract nodes (plus the concrete start and goal tiles
// at either end), exposing total cost and a tile sequence that is
// expanded on demand rather than eagerly materialized.
package path

import "pathcache/pkg/gridspec"

// Segment is one hop of a Path, from one tile to another, with a known
// cost. Its concrete tile sequence is either already known (cached at
// build time) or resolved lazily the first time Tiles is called.
type Segment struct {
	From, To gridspec.Coord
	Cost     int64

	tiles   []gridspec.Coord
	resolve func() []gridspec.Coord
}

// Known returns a segment whose tile sequence was already computed,
// inclusive of both endpoints.
func Known(from, to gridspec.Coord, cost int64, tiles []gridspec.Coord) *Segment {
	return &Segment{From: from, To: to, Cost: cost, tiles: tiles}
}

// Unknown returns a segment whose tile sequence is computed lazily by
// resolve the first time it is needed. resolve is called at most once;
// its result is cached on the segment.
func Unknown(from, to gridspec.Coord, cost int64, resolve func() []gridspec.Coord) *Segment {
	return &Segment{From: from, To: to, Cost: cost, resolve: resolve}
}

// Tiles returns the segment's concrete tile sequence, inclusive of both
// endpoints, resolving it on first use if it was not already known.
func (s *Segment) Tiles() []gridspec.Coord {
	if s.tiles == nil && s.resolve != nil {
		s.tiles = s.resolve()
		s.resolve = nil
	}
	return s.tiles
}

// Path is the full result of a query: start and goal tile coordinates
// plus the chain of segments connecting them. A Path is immutable once
// built and cheap to clone - cloning shares the underlying segment slice,
// since segments themselves are never mutated after construction other
// than caching a lazily-resolved tile sequence.
type Path struct {
	start, goal gridspec.Coord
	segments    []*Segment
	cost        int64
	length      int // -1 until computed
}

// New assembles a Path from start to goal out of segments, which must
// already be ordered start-to-goal with each segment's To equal to the
// next segment's From.
func New(start, goal gridspec.Coord, segments []*Segment) *Path {
	var cost int64
	for _, s := range segments {
		cost += s.Cost
	}
	return &Path{start: start, goal: goal, segments: segments, cost: cost, length: -1}
}

// Cost returns the path's total cost, the sum of every segment's cost.
func (p *Path) Cost() int64 { return p.cost }

// Start returns the query's start tile.
func (p *Path) Start() gridspec.Coord { return p.start }

// End returns the query's goal tile.
func (p *Path) End() gridspec.Coord { return p.goal }

// Len returns the number of tiles the path visits, including both
// endpoints. It forces every segment's tile sequence to resolve, same as
// Tiles does.
func (p *Path) Len() int {
	if p.length < 0 {
		p.length = len(p.Tiles())
	}
	return p.length
}

// Tiles returns the full concrete walk from Start to End, inclusive,
// with the shared endpoint between consecutive segments counted once.
// Resolving an unknown segment's tiles is deferred to this call.
func (p *Path) Tiles() []gridspec.Coord {
	if len(p.segments) == 0 {
		return []gridspec.Coord{p.start}
	}
	var out []gridspec.Coord
	for i, s := range p.segments {
		t := s.Tiles()
		if i == 0 {
			out = append(out, t...)
			continue
		}
		if len(t) > 0 {
			out = append(out, t[1:]...)
		}
	}
	return out
}

// Clone returns a Path equal to p. The returned Path shares p's segment
// slice; neither mutates it, so sharing is safe.
func (p *Path) Clone() *Path {
	clone := *p
	return &clone
}
