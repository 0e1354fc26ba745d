package game

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Autopilot tuning
const (
	autopilotBoundaryBuffer = 120.0 // steer home when this close to a border
	autopilotTurnThreshold  = 0.35  // radians off the aim before starting a turn
	autopilotAlignThreshold = 0.12  // radians off the aim to straighten out
	autopilotTapInterval    = 0.2   // seconds between taps
	autopilotBaseRadius     = 70.0  // turning circle radius
	autopilotRadiusJitter   = 30.0
	autopilotWanderReach    = 200.0
	autopilotNoiseRate      = 0.37 // noise units per second
)

// Directive is the steering the autopilot wants for this tick
type Directive struct {
	Tap       bool
	SetTarget bool
	Target    Point
}

// Autopilot plays the game by itself: it aims for the nearest gate, turns home
// near the borders and otherwise wanders along a noise driven heading.
type Autopilot struct {
	noise   *perlin.Perlin
	clock   float64 // noise time
	lastTap float64 // simulation time of the last tap
	aim     Point
}

// NewAutopilot creates an autopilot whose wandering is seeded by seed;
// 0 picks a time based seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		noise:   perlin.NewPerlin(2, 2, 3, resolveSeed(seed)),
		lastTap: math.Inf(-1),
	}
}

// Aim returns the point the autopilot steered for on its last decision
func (ap *Autopilot) Aim() Point {
	return ap.aim
}

// Drive decides for the current state and feeds the result into sim
func (ap *Autopilot) Drive(sim *Simulation, dt float64) Directive {
	d := ap.Decide(sim.Snapshot(), sim.Config(), dt)
	if d.SetTarget {
		sim.SteerTarget(d.Target)
	}
	if d.Tap {
		sim.SteerTap()
	}
	return d
}

// Decide applies the priority rules to a snapshot and returns the steering.
func (ap *Autopilot) Decide(snap Snapshot, cfg Config, dt float64) Directive {
	ap.clock += dt * autopilotNoiseRate
	if !snap.Alive || snap.Heading.IsZero() {
		return Directive{}
	}

	ap.aim = ap.pickAim(snap, cfg)
	heading := snap.Heading.Angle()
	diff := normalizeAngle(ap.aim.Sub(snap.Head).Angle() - heading)

	if snap.Time-ap.lastTap < autopilotTapInterval {
		return Directive{}
	}

	if snap.Circular {
		if math.Abs(diff) < autopilotAlignThreshold {
			ap.lastTap = snap.Time
			return Directive{Tap: true}
		}
		return Directive{}
	}

	if math.Abs(diff) <= autopilotTurnThreshold {
		return Directive{}
	}

	radius := autopilotBaseRadius + autopilotRadiusJitter*ap.noise.Noise1D(ap.clock+0.5)
	radius = clamp(radius, autopilotBaseRadius-autopilotRadiusJitter, autopilotBaseRadius+autopilotRadiusJitter)
	unit := snap.Heading.Scale(1 / snap.Heading.Len())
	// counter-clockwise normal points to the left of the heading
	normal := Point{X: -unit.Y, Y: unit.X}
	if diff < 0 {
		normal = normal.Scale(-1)
	}
	ap.lastTap = snap.Time
	return Directive{
		Tap:       true,
		SetTarget: true,
		Target:    snap.Head.Add(normal.Scale(radius)),
	}
}

// pickAim returns the point to steer for, in priority order
func (ap *Autopilot) pickAim(snap Snapshot, cfg Config) Point {
	head := snap.Head

	// Priority 1: boundary avoidance
	nearX := head.X > cfg.BorderX-autopilotBoundaryBuffer && snap.Heading.X > 0 ||
		head.X < -cfg.BorderX+autopilotBoundaryBuffer && snap.Heading.X < 0
	nearY := head.Y > cfg.BorderY-autopilotBoundaryBuffer && snap.Heading.Y > 0 ||
		head.Y < -cfg.BorderY+autopilotBoundaryBuffer && snap.Heading.Y < 0
	if nearX || nearY {
		return Point{}
	}

	// Priority 2: the nearest gate's middle
	best := math.MaxFloat64
	var target *GateView
	for i := range snap.Gates {
		g := &snap.Gates[i]
		if d := head.Distance(g.Center); d < best {
			best = d
			target = g
		}
	}
	if target != nil {
		return target.Center
	}

	// Priority 3: wander
	angle := snap.Heading.Angle() + ap.noise.Noise1D(ap.clock)*math.Pi/2
	return head.Add(Point{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(autopilotWanderReach))
}
