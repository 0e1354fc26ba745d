package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestGatePosts(t *testing.T) {
	g := &Gate{Center: Point{X: 10, Y: 20}, Rotation: math.Pi / 2, Width: 100}
	posts := g.Posts()
	if !nearPoint(posts[0], Point{X: 10, Y: 70}) || !nearPoint(posts[1], Point{X: 10, Y: -30}) {
		t.Fatalf("posts = %v, want (10,70) and (10,-30)", posts)
	}
	if d := posts[0].Distance(posts[1]); !near(d, g.Width) {
		t.Fatalf("post distance %v != width %v", d, g.Width)
	}
}

func TestSpawner_OneGatePerInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnInterval = 2
	s := NewGateSpawner(rand.New(rand.NewSource(1)))
	far := Point{X: 1e6, Y: 1e6}

	var gates []*Gate
	for i := 0; i < 20; i++ { // 5 seconds
		gates = append(gates, s.Update(0.25, far, gates, cfg)...)
	}
	if s.Count() != 2 || len(gates) != 2 {
		t.Fatalf("spawned %d gates (counter %d) in 5s, want 2", len(gates), s.Count())
	}
	if gates[0].ID == gates[1].ID {
		t.Fatalf("gate IDs collide: %d", gates[0].ID)
	}
}

func TestSpawner_PlacementRespectsClearance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnInterval = 1
	rng := rand.New(rand.NewSource(42))
	s := NewGateSpawner(rng)

	var gates []*Gate
	for i := 0; i < 300; i++ {
		head := Point{
			X: rng.Float64()*2*cfg.BorderX - cfg.BorderX,
			Y: rng.Float64()*2*cfg.BorderY - cfg.BorderY,
		}
		placed := s.Update(1, head, gates, cfg)
		if len(placed) > 1 {
			t.Fatalf("placed %d gates for one interval", len(placed))
		}
		if len(placed) == 0 {
			continue
		}
		g := placed[0]
		if head.Distance(g.Center) <= cfg.GateHeadClearance {
			t.Fatalf("gate %d at %v within clearance of head %v", g.ID, g.Center, head)
		}
		for _, other := range gates {
			if g.Center.Distance(other.Center) <= (g.Width+other.Width)/2 {
				t.Fatalf("gate %d overlaps gate %d", g.ID, other.ID)
			}
		}
		if math.Abs(g.Center.X) > cfg.BorderX-g.Width/2 || math.Abs(g.Center.Y) > cfg.BorderY-g.Width/2 {
			t.Fatalf("gate %d at %v leaves the inset board", g.ID, g.Center)
		}
		if g.Width < cfg.GateMinWidth || g.Width > cfg.GateMaxWidth {
			t.Fatalf("gate width %v out of range", g.Width)
		}
		if g.Rotation < 0 || g.Rotation >= math.Pi {
			t.Fatalf("gate rotation %v out of [0, π)", g.Rotation)
		}
		gates = append(gates, g)
	}
	if len(gates) == 0 {
		t.Fatal("no gate was ever placed")
	}
}

func TestSpawner_LongTickCatchesUp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnInterval = 2
	s := NewGateSpawner(rand.New(rand.NewSource(11)))
	far := Point{X: 1e6, Y: 1e6}

	gates := s.Update(5, far, nil, cfg)
	if len(gates) != 2 || s.Count() != 2 {
		t.Fatalf("one 5s update placed %d gates (counter %d), want 2", len(gates), s.Count())
	}
	if d := gates[0].Center.Distance(gates[1].Center); d <= (gates[0].Width+gates[1].Width)/2 {
		t.Fatalf("gates placed in the same update overlap: distance %v", d)
	}

	gates = append(gates, s.Update(1, far, gates, cfg)...)
	if len(gates) != 3 || s.Count() != 3 {
		t.Fatalf("after 6s placed %d gates (counter %d), want 3", len(gates), s.Count())
	}
}

func TestSpawner_FailedIntervalIsSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnInterval = 1
	s := NewGateSpawner(rand.New(rand.NewSource(3)))

	blocked := cfg
	blocked.GateHeadClearance = 1e9
	if g := s.Update(1, Point{}, nil, blocked); len(g) != 0 {
		t.Fatal("placed a gate although no spot is clear")
	}
	if g := s.Update(0.5, Point{X: 1e6}, nil, cfg); len(g) != 0 {
		t.Fatal("retried within an interval that already failed")
	}
	if g := s.Update(0.5, Point{X: 1e6}, nil, cfg); len(g) != 1 {
		t.Fatal("next interval did not place a gate")
	}
	if s.Count() != 1 {
		t.Fatalf("counter = %d, want 1", s.Count())
	}
}

func TestSpawner_Reset(t *testing.T) {
	cfg := DefaultConfig()
	s := NewGateSpawner(rand.New(rand.NewSource(5)))
	far := Point{X: 1e6}
	s.Update(cfg.SpawnInterval, far, nil, cfg)
	first := s.nextID
	s.Reset()
	if s.Count() != 0 {
		t.Fatalf("counter = %d after reset", s.Count())
	}
	if g := s.Update(cfg.SpawnInterval/2, far, nil, cfg); len(g) != 0 {
		t.Fatal("spawned before a full interval after reset")
	}
	g := s.Update(cfg.SpawnInterval/2, far, nil, cfg)
	if len(g) != 1 || g[0].ID <= first {
		t.Fatalf("gates after reset = %+v, want one with a fresh ID above %d", g, first)
	}
}
