package game

import (
	"math"
	"testing"
)

// verticalGate has posts at (x, 50) and (x, -50)
func verticalGate(id int, x float64) *Gate {
	return &Gate{ID: id, Center: Point{X: x}, Rotation: math.Pi / 2, Width: 100}
}

func aliveAt(history ...Point) *Alive {
	a := newAlive(DefaultConfig())
	a.History = history
	a.Head = history[len(history)-1]
	return a
}

func TestDetectGates_Through(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	a := aliveAt(Point{X: -10}, Point{X: 10})

	gates, outcomes := in.DetectGates(a, []*Gate{verticalGate(1, 0)}, cfg)

	if len(gates) != 0 {
		t.Fatalf("%d gates left after passing through", len(gates))
	}
	if len(outcomes) != 1 || outcomes[0].Type != Through || outcomes[0].GateID != 1 {
		t.Fatalf("outcomes = %+v, want one Through for gate 1", outcomes)
	}
}

func TestDetectGates_PostCrush(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	a := aliveAt(Point{X: 0, Y: 40}, Point{X: 0, Y: 45})

	gates, outcomes := in.DetectGates(a, []*Gate{verticalGate(2, 0)}, cfg)

	if len(gates) != 0 {
		t.Fatalf("crushed gate was kept")
	}
	if len(outcomes) != 1 || outcomes[0].Type != Crushed || outcomes[0].GateID != 2 {
		t.Fatalf("outcomes = %+v, want one Crushed for gate 2", outcomes)
	}
}

func TestDetectGates_CrushAndThroughSameTick(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	// Crosses the bar just inside the upper post.
	a := aliveAt(Point{X: -5, Y: 40}, Point{X: 5, Y: 40})

	gates, outcomes := in.DetectGates(a, []*Gate{verticalGate(3, 0)}, cfg)

	if len(gates) != 0 {
		t.Fatalf("gate kept after being hit")
	}
	var crushed, through int
	for _, o := range outcomes {
		switch o.Type {
		case Crushed:
			crushed++
		case Through:
			through++
		}
	}
	if crushed != 1 || through != 1 {
		t.Fatalf("outcomes = %+v, want one Crushed and one Through", outcomes)
	}
}

func TestDetectGates_MissKeepsGate(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	a := aliveAt(Point{X: -10, Y: 200}, Point{X: 10, Y: 200})
	far := verticalGate(4, 0)

	gates, outcomes := in.DetectGates(a, []*Gate{far, verticalGate(5, 300)}, cfg)

	if len(outcomes) != 0 {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}
	if len(gates) != 2 || gates[0] != far {
		t.Fatalf("gates = %v, want both kept in order", gates)
	}
}

func TestDetectTail(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	a := aliveAt(Point{X: -10}, Point{X: 0})

	var tail Tail
	tail.Reset(4)
	segs := tail.Segments()
	segs[0].Position, segs[0].Visible = Point{X: 200}, true // far away
	segs[1].Position, segs[1].Visible = Point{X: 3, Y: 3}, true
	segs[2].Position, segs[2].Visible = Point{}, false // never placed
	segs[3].Position, segs[3].Visible = Point{X: -2}, true

	outcomes := in.DetectTail(a, &tail, cfg)

	got := map[int]bool{}
	for _, o := range outcomes {
		if o.Type != AteTail {
			t.Fatalf("unexpected outcome %+v", o)
		}
		got[o.TailIndex] = true
	}
	if len(got) != 2 || !got[1] || !got[3] {
		t.Fatalf("eaten indices = %v, want 1 and 3", got)
	}
}

func TestDetectTail_IgnoresPurged(t *testing.T) {
	cfg := DefaultConfig()
	in := NewInteractions(60)
	a := aliveAt(Point{X: -10}, Point{X: 0})

	var tail Tail
	tail.Reset(2)
	for _, s := range tail.Segments() {
		s.Visible = true
	}
	tail.Purge(2, 0, 10, 0, 2.5)

	if outcomes := in.DetectTail(a, &tail, cfg); len(outcomes) != 0 {
		t.Fatalf("purged segments collided: %+v", outcomes)
	}
}

func TestSpatialGrid_Nearby(t *testing.T) {
	g := NewSpatialGrid(50)
	in := &Segment{Index: 1, Position: Point{X: -49, Y: -1}}
	edge := &Segment{Index: 2, Position: Point{X: -40, Y: 5}}
	out := &Segment{Index: 3, Position: Point{X: 100, Y: 100}}
	for _, s := range []*Segment{in, edge, out} {
		g.Insert(s)
	}

	got := g.Nearby(Point{X: -45, Y: 0}, 6)
	if len(got) != 1 || got[0] != in {
		t.Fatalf("Nearby = %v, want only segment 1", got)
	}

	g.Clear()
	if got := g.Nearby(Point{X: -45, Y: 0}, 1000); len(got) != 0 {
		t.Fatalf("cleared grid returned %d segments", len(got))
	}
}
