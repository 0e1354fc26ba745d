package game

import "sort"

// SegmentState is where a tail segment is in its lifecycle
type SegmentState int

const (
	Living SegmentState = iota // follows the chain
	Purged                     // cut off, drifting until removal
)

func (s SegmentState) String() string {
	if s == Purged {
		return "purged"
	}
	return "living"
}

// Segment is one trailing piece of the centipede.
type Segment struct {
	Index     int // 0 is nearest the head; never changes
	State     SegmentState
	Position  Point
	Visible   bool  // false until a chain point has been computed for it
	Direction Point // facing while living, frozen drift direction once purged

	DriftSpeed float64 // purged only
	RemoveAt   float64 // purged only, simulation time
}

// ChainPoints walks history from the newest sample to the oldest and returns
// up to n points spaced spacing apart along the path.
func ChainPoints(history []Point, spacing float64, n int) []Point {
	if spacing <= 0 || n <= 0 || len(history) < 2 {
		return nil
	}
	points := make([]Point, 0, n)
	distance := 0.0
	prev := history[len(history)-1]
	for i := len(history) - 2; i >= 0; i-- {
		position := history[i]
		current := position.Distance(prev)
		distance += current
		for distance >= spacing {
			distance -= spacing
			points = append(points, prev.ForwardTo(position, current-distance))
			if len(points) >= n {
				return points
			}
		}
		prev = position
	}
	return points
}

// Tail owns every segment of the current life, living and purged.
type Tail struct {
	segments []*Segment
}

// Segments returns all segments ordered living first, then by index
func (t *Tail) Segments() []*Segment {
	return t.segments
}

// Living returns the living segments in index order
func (t *Tail) Living() []*Segment {
	var out []*Segment
	for _, s := range t.segments {
		if s.State == Living {
			out = append(out, s)
		}
	}
	return out
}

// Reset drops every segment and creates n fresh living ones
func (t *Tail) Reset(n int) {
	t.segments = make([]*Segment, 0, n)
	for i := 0; i < n; i++ {
		t.segments = append(t.segments, &Segment{Index: i})
	}
}

// Grow appends one living segment with the given index
func (t *Tail) Grow(index int) {
	t.segments = append(t.segments, &Segment{Index: index})
	t.sort()
}

// Follow places every living segment on the chain computed from a's history.
// Segments without a chain point keep their last position and visibility.
func (t *Tail) Follow(a *Alive, spacing float64) {
	points := ChainPoints(a.History, spacing, a.TailCount+1)
	head := a.Head
	if len(a.History) > 0 {
		head = a.History[len(a.History)-1]
	}
	for _, s := range t.segments {
		if s.State != Living || s.Index >= len(points) {
			continue
		}
		p := points[s.Index]
		ahead := head
		if s.Index > 0 {
			ahead = points[s.Index-1]
		}
		s.Direction = ahead.Sub(p)
		s.Position = p
		s.Visible = true
	}
}

// Purge cuts every living segment at or beyond next. Drift speed scales with
// distance from the cut: the old tip moves at speed, the first cut segment
// slowest.
func (t *Tail) Purge(original, next int, speed, now, grace float64) []*Segment {
	if original <= next {
		return nil
	}
	var purged []*Segment
	for _, s := range t.segments {
		if s.State != Living || s.Index < next {
			continue
		}
		s.State = Purged
		s.DriftSpeed = speed * PurgeRatio(s.Index, original, next)
		s.RemoveAt = now + grace
		purged = append(purged, s)
	}
	t.sort()
	return purged
}

// PurgeRatio is the share of the centipede speed a purged segment drifts at.
// It is 1 at the old tip (original-1) and falls toward the cut, staying in (0, 1].
func PurgeRatio(index, original, next int) float64 {
	if original <= next || index < next || index >= original {
		return 0
	}
	return float64(index-next+1) / float64(original-next)
}

// Drift moves purged segments for dt seconds and removes the expired ones
func (t *Tail) Drift(now, dt float64) {
	kept := t.segments[:0]
	for _, s := range t.segments {
		if s.State == Purged {
			if now > s.RemoveAt {
				continue
			}
			s.Position = s.Position.MoveBy(s.Direction, s.DriftSpeed*dt)
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(t.segments); i++ {
		t.segments[i] = nil
	}
	t.segments = kept
}

func (t *Tail) sort() {
	sort.SliceStable(t.segments, func(i, j int) bool {
		a, b := t.segments[i], t.segments[j]
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Index < b.Index
	})
}
