package game

import (
	"math/rand"
	"time"
)

// Simulation is one single-player game: the centipede, the gates, the tail and
// the score, advanced by Tick. It is not safe for concurrent use; callers
// serialize access.
type Simulation struct {
	cfg Config
	now float64 // simulation clock, sum of tick durations

	centipede Centipede
	gates     []*Gate
	spawner   *GateSpawner
	tail      Tail
	detector  *Interactions
	status    Status

	cursor         Point
	taps           int
	startRequested bool
}

// resolveSeed returns seed, or a time based one when seed is 0
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewSimulation creates a simulation with a dead centipede
func NewSimulation(cfg Config) *Simulation {
	return &Simulation{
		cfg:      cfg,
		spawner:  NewGateSpawner(rand.New(rand.NewSource(resolveSeed(cfg.Seed)))),
		detector: NewInteractions(cfg.SegmentSpacing * 2),
	}
}

// Config returns the tuning the simulation runs with
func (s *Simulation) Config() Config {
	return s.cfg
}

// Now returns the simulation clock in seconds
func (s *Simulation) Now() float64 {
	return s.now
}

// Centipede returns the player character
func (s *Simulation) Centipede() *Centipede {
	return &s.centipede
}

// Gates returns the active gates
func (s *Simulation) Gates() []*Gate {
	return s.gates
}

// Tail returns the segment set of the current life
func (s *Simulation) Tail() *Tail {
	return &s.tail
}

// Spawner returns the gate spawner
func (s *Simulation) Spawner() *GateSpawner {
	return s.spawner
}

// Status returns the score
func (s *Simulation) Status() Status {
	return s.status
}

// Cursor returns the last steering target
func (s *Simulation) Cursor() Point {
	return s.cursor
}

// SteerTap queues a tap, applied at the start of the next tick
func (s *Simulation) SteerTap() {
	s.taps++
}

// SteerTarget sets the point the next circular turn will go around
func (s *Simulation) SteerTarget(p Point) {
	s.cursor = p
}

// RequestGameStart asks for a new game. It is honored on the next tick if the
// centipede is dead and the restart cool-down has passed, and dropped otherwise.
func (s *Simulation) RequestGameStart() {
	s.startRequested = true
}

// AddGate places a gate directly, bypassing the spawner
func (s *Simulation) AddGate(g *Gate) {
	s.gates = append(s.gates, g)
}

// Tick advances the simulation by dt seconds and returns the events raised,
// in the order they happened.
func (s *Simulation) Tick(dt float64) []Event {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	var events []Event
	if e, ok := s.maybeStart(); ok {
		events = append(events, e)
	}

	if a := s.centipede.Alive(); a != nil {
		s.applyInput(a)
		a.Move(dt, s.cfg)

		s.gates = append(s.gates, s.spawner.Update(dt, a.Head, s.gates, s.cfg)...)

		s.tail.Follow(a, s.cfg.SegmentSpacing)

		var outcomes []Outcome
		s.gates, outcomes = s.detector.DetectGates(a, s.gates, s.cfg)
		outcomes = append(outcomes, s.detector.DetectTail(a, &s.tail, s.cfg)...)

		events = append(events, s.Apply(outcomes)...)
	}
	s.taps = 0

	s.tail.Drift(s.now, dt)
	return events
}

// maybeStart spawns a new centipede when a start is requested (or automatic)
// and allowed by the cool-down.
func (s *Simulation) maybeStart() (Event, bool) {
	requested := s.startRequested
	s.startRequested = false
	if !requested && !s.cfg.AutoRestart {
		return Event{}, false
	}
	if !s.centipede.canStart(s.now, s.cfg.RestartCooldown) {
		return Event{}, false
	}

	s.centipede.spawn(s.cfg)
	s.gates = nil
	s.spawner.Reset()
	s.tail.Reset(s.cfg.InitialLength)
	s.status.reset()
	s.taps = 0
	return Event{Type: GameStarted, Time: s.now}, true
}

// applyInput toggles the movement mode once for an odd number of taps
func (s *Simulation) applyInput(a *Alive) {
	if s.taps%2 == 1 {
		a.Toggle(s.cursor)
	}
}

// Apply mutates the state for each outcome and returns the resulting events.
// Does nothing while the centipede is dead.
func (s *Simulation) Apply(outcomes []Outcome) []Event {
	a := s.centipede.Alive()
	if a == nil {
		return nil
	}

	var events []Event
	for _, o := range outcomes {
		switch o.Type {
		case Crushed:
			original := a.TailCount
			a.TailCount /= 2
			s.tail.Purge(original, a.TailCount, a.Speed, s.now, s.cfg.PurgeGrace)
			events = append(events, Event{Type: GateCrushed, Time: s.now, GateID: o.GateID})
		case AteTail:
			if o.TailIndex >= a.TailCount {
				continue
			}
			original := a.TailCount
			a.TailCount = o.TailIndex
			s.tail.Purge(original, a.TailCount, a.Speed, s.now, s.cfg.PurgeGrace)
			events = append(events, Event{Type: TailEaten, Time: s.now, TailIndex: o.TailIndex})
		case Through:
			s.tail.Grow(a.TailCount)
			a.TailCount++
			s.status.award(a.TailCount, a.Speed, s.cfg.ScoreDivisor)
			events = append(events, Event{Type: GateThrough, Time: s.now, GateID: o.GateID})
		}
	}

	if a.TailCount <= 0 {
		head := a.Head
		s.centipede.kill(s.now)
		events = append(events, Event{Type: GameOver, Time: s.now, Position: head})
	}
	return events
}
