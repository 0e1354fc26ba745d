package game

// Movement is how the head travels this tick: Linear or Circular.
type Movement interface {
	isMovement()
}

// Linear moves the head straight along Direction. A zero Direction stands still.
type Linear struct {
	Direction Point
}

// Circular moves the head around Center.
type Circular struct {
	Center    Point
	Clockwise bool
}

func (Linear) isMovement()   {}
func (Circular) isMovement() {}

// Alive holds everything that only exists while the centipede is playing.
type Alive struct {
	Head      Point
	Speed     float64
	Movement  Movement
	LastMove  Point // last non-zero displacement; unlike a raw per-tick delta, zero-length steps keep the previous heading
	TailCount int   // number of living segments
	History   []Point
}

// newAlive spawns a head at the origin heading right, with a history long
// enough behind it that the whole initial tail is placed on the first tick.
func newAlive(cfg Config) *Alive {
	return &Alive{
		Head:      Point{X: 0, Y: 0},
		Speed:     cfg.DefaultSpeed,
		Movement:  Linear{Direction: Point{X: 1, Y: 0}},
		LastMove:  Point{X: 1, Y: 0},
		TailCount: cfg.InitialLength,
		History: []Point{
			{X: -1000, Y: 0},
			{X: 0, Y: 0},
		},
	}
}

// IsCircular reports whether the head is currently turning
func (a *Alive) IsCircular() bool {
	_, ok := a.Movement.(Circular)
	return ok
}

// Centipede is the player character: either alive, or dead since a moment in time.
type Centipede struct {
	alive  *Alive
	deadAt float64 // simulation time of death; 0 before the first game
	played bool
}

// Alive returns the living state, or nil while dead
func (c *Centipede) Alive() *Alive {
	return c.alive
}

// DeadAt returns the time of death. ok is false while alive.
func (c *Centipede) DeadAt() (at float64, ok bool) {
	if c.alive != nil {
		return 0, false
	}
	return c.deadAt, true
}

// canStart reports whether a start signal at now would spawn a new centipede
func (c *Centipede) canStart(now, cooldown float64) bool {
	if c.alive != nil {
		return false
	}
	if !c.played {
		return true
	}
	return now-c.deadAt >= cooldown
}

func (c *Centipede) spawn(cfg Config) *Alive {
	c.alive = newAlive(cfg)
	c.played = true
	return c.alive
}

func (c *Centipede) kill(now float64) {
	c.alive = nil
	c.deadAt = now
}
