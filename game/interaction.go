package game

import "sort"

// OutcomeType is what the head ran into this tick
type OutcomeType int

const (
	Crushed OutcomeType = iota // hit a gate post
	Through                    // passed between a gate's posts
	AteTail                    // touched its own living tail
)

// Outcome is one interaction result, applied by the simulation after detection.
type Outcome struct {
	Type      OutcomeType
	GateID    int
	TailIndex int
}

// Interactions holds the scratch state of the collision pass.
type Interactions struct {
	grid *SpatialGrid
}

// NewInteractions creates a detector whose segment grid uses cellSize cells
func NewInteractions(cellSize float64) *Interactions {
	return &Interactions{grid: NewSpatialGrid(cellSize)}
}

// DetectGates checks the head against every gate. Touched or passed gates are
// removed from the returned slice. One gate may yield both Crushed and Through.
func (in *Interactions) DetectGates(a *Alive, gates []*Gate, cfg Config) ([]*Gate, []Outcome) {
	var outcomes []Outcome
	kept := gates[:0]
	n := len(a.History)

	for _, g := range gates {
		destroyed := false
		posts := g.Posts()

		for _, post := range posts {
			if a.Head.Distance(post) <= cfg.PostRadius+cfg.HeadRadius {
				destroyed = true
				outcomes = append(outcomes, Outcome{Type: Crushed, GateID: g.ID})
				break
			}
		}

		if n >= 2 && Intersects(a.History[n-1], a.History[n-2], posts[0], posts[1]) {
			destroyed = true
			outcomes = append(outcomes, Outcome{Type: Through, GateID: g.ID})
		}

		if !destroyed {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(gates); i++ {
		gates[i] = nil
	}
	return kept, outcomes
}

// DetectTail reports every visible living segment within the head radius,
// nearest the head first. Segments that have never been placed are skipped so
// they cannot collide at their default position.
func (in *Interactions) DetectTail(a *Alive, tail *Tail, cfg Config) []Outcome {
	in.grid.Clear()
	for _, s := range tail.Segments() {
		if s.State == Living && s.Visible {
			in.grid.Insert(s)
		}
	}

	hits := in.grid.Nearby(a.Head, cfg.HeadRadius)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Index < hits[j].Index })

	var outcomes []Outcome
	for _, s := range hits {
		outcomes = append(outcomes, Outcome{Type: AteTail, TailIndex: s.Index})
	}
	return outcomes
}
