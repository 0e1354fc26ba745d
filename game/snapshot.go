package game

// SegmentView is a tail segment as the presentation layer sees it
type SegmentView struct {
	Index     int
	Position  Point
	Direction Point
	Visible   bool
	Purged    bool
}

// GateView is a gate as the presentation layer sees it
type GateView struct {
	ID       int
	Center   Point
	Rotation float64
	Width    float64
	Posts    [2]Point
	BarFrom  Point
	BarTo    Point
}

// Snapshot is a copy of everything needed to draw one frame.
type Snapshot struct {
	Time      float64
	Alive     bool
	Head      Point
	Heading   Point // last non-zero displacement of the head
	Circular  bool
	Center    Point // circle center while Circular
	Cursor    Point
	Speed     float64
	TailCount int
	Score     int
	HighScore int
	Segments  []SegmentView
	Gates     []GateView
}

// Snapshot copies the current state. The result shares nothing with the simulation.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Time:      s.now,
		Cursor:    s.cursor,
		Score:     s.status.Score,
		HighScore: s.status.HighScore,
	}
	if a := s.centipede.Alive(); a != nil {
		snap.Alive = true
		snap.Head = a.Head
		snap.Heading = a.LastMove
		snap.Speed = a.Speed
		snap.TailCount = a.TailCount
		if c, ok := a.Movement.(Circular); ok {
			snap.Circular = true
			snap.Center = c.Center
		}
	}

	segments := s.tail.Segments()
	snap.Segments = make([]SegmentView, 0, len(segments))
	for _, seg := range segments {
		snap.Segments = append(snap.Segments, SegmentView{
			Index:     seg.Index,
			Position:  seg.Position,
			Direction: seg.Direction,
			Visible:   seg.Visible,
			Purged:    seg.State == Purged,
		})
	}

	snap.Gates = make([]GateView, 0, len(s.gates))
	for _, g := range s.gates {
		posts := g.Posts()
		snap.Gates = append(snap.Gates, GateView{
			ID:       g.ID,
			Center:   g.Center,
			Rotation: g.Rotation,
			Width:    g.Width,
			Posts:    posts,
			BarFrom:  posts[1],
			BarTo:    posts[0],
		})
	}
	return snap
}
