package game

import (
	"math"
	"math/rand"
)

// Gate is a pair of posts joined by a bar. The head must pass between the posts.
type Gate struct {
	ID       int
	Center   Point
	Rotation float64 // radians, direction of the bar from post 1 to post 0
	Width    float64 // distance between the posts
}

// Posts returns the two post centers at ±Width/2 along the gate's axis
func (g *Gate) Posts() [2]Point {
	axis := Point{X: g.Width / 2}.Rotate(g.Rotation)
	return [2]Point{g.Center.Add(axis), g.Center.Sub(axis)}
}

// GateSpawner places a new gate every SpawnInterval seconds of play.
type GateSpawner struct {
	rng       *rand.Rand
	elapsed   float64 // seconds of play since the last reset
	attempted int     // last interval a placement was tried for
	count     int     // gates spawned since the last reset
	nextID    int
}

// NewGateSpawner creates a spawner drawing from rng
func NewGateSpawner(rng *rand.Rand) *GateSpawner {
	return &GateSpawner{rng: rng}
}

// Count returns the number of gates placed since the last reset
func (s *GateSpawner) Count() int {
	return s.count
}

// Reset forgets all spawning progress. Gate IDs keep increasing.
func (s *GateSpawner) Reset() {
	s.elapsed = 0
	s.attempted = 0
	s.count = 0
}

// Update accumulates dt and makes one placement attempt for every interval
// that has elapsed since the last call, given the head position and the
// existing gates. Returns the gates placed, possibly none; an interval whose
// attempt finds no valid spot within the budget is skipped, not retried.
func (s *GateSpawner) Update(dt float64, head Point, gates []*Gate, cfg Config) []*Gate {
	s.elapsed += dt
	if cfg.SpawnInterval <= 0 {
		return nil
	}
	due := int(math.Floor(s.elapsed / cfg.SpawnInterval))

	existing := gates[:len(gates):len(gates)]
	var placed []*Gate
	for s.attempted < due {
		s.attempted++

		width := cfg.GateMinWidth + s.rng.Float64()*(cfg.GateMaxWidth-cfg.GateMinWidth)
		center, rotation, ok := s.place(width, head, existing, cfg)
		if !ok {
			continue
		}

		s.count++
		s.nextID++
		g := &Gate{
			ID:       s.nextID,
			Center:   center,
			Rotation: rotation,
			Width:    width,
		}
		existing = append(existing, g)
		placed = append(placed, g)
	}
	return placed
}

// place samples candidate centers inside the board until one keeps clear of
// the head and of every other gate, giving up after GatePlacementAttempts.
func (s *GateSpawner) place(width float64, head Point, gates []*Gate, cfg Config) (Point, float64, bool) {
	for i := 0; i < cfg.GatePlacementAttempts; i++ {
		candidate := Point{
			X: s.rng.Float64()*(2*cfg.BorderX-width) - (cfg.BorderX - width/2),
			Y: s.rng.Float64()*(2*cfg.BorderY-width) - (cfg.BorderY - width/2),
		}
		rotation := s.rng.Float64() * math.Pi

		if validPlacement(candidate, width, head, gates, cfg.GateHeadClearance) {
			return candidate, rotation, true
		}
	}
	return Point{}, 0, false
}

// validPlacement applies the head clearance and the width aware gate separation
func validPlacement(candidate Point, width float64, head Point, gates []*Gate, clearance float64) bool {
	if head.Distance(candidate) <= clearance {
		return false
	}
	for _, other := range gates {
		if candidate.Distance(other.Center) <= (width+other.Width)/2 {
			return false
		}
	}
	return true
}
