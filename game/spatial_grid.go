package game

import "math"

// cellKey uniquely identifies a grid cell
type cellKey struct {
	cx, cy int
}

// SpatialGrid is a hash grid of tail segments for fast proximity queries
type SpatialGrid struct {
	cells    map[cellKey][]*Segment
	cellSize float64
}

// NewSpatialGrid creates an empty spatial grid
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cells:    make(map[cellKey][]*Segment),
		cellSize: cellSize,
	}
}

// Clear empties all cells, keeping their storage for the next rebuild
func (g *SpatialGrid) Clear() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *SpatialGrid) keyFor(p Point) cellKey {
	return cellKey{
		cx: int(math.Floor(p.X / g.cellSize)),
		cy: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Insert adds a segment at its current position
func (g *SpatialGrid) Insert(s *Segment) {
	k := g.keyFor(s.Position)
	g.cells[k] = append(g.cells[k], s)
}

// Nearby returns the segments within radius of p (inclusive), ordered by cell
// then insertion.
func (g *SpatialGrid) Nearby(p Point, radius float64) []*Segment {
	var results []*Segment
	minCX := int(math.Floor((p.X - radius) / g.cellSize))
	maxCX := int(math.Floor((p.X + radius) / g.cellSize))
	minCY := int(math.Floor((p.Y - radius) / g.cellSize))
	maxCY := int(math.Floor((p.Y + radius) / g.cellSize))

	r2 := radius * radius
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			for _, s := range g.cells[cellKey{cx, cy}] {
				dx := s.Position.X - p.X
				dy := s.Position.Y - p.Y
				if dx*dx+dy*dy <= r2 {
					results = append(results, s)
				}
			}
		}
	}
	return results
}
