package game

import "math"

// reflect turns the head back into the board when it is outside a border and
// still moving outward. Only the offending axis of LastMove is mirrored.
func (a *Alive) reflect(borderX, borderY float64) {
	outX := a.Head.X > borderX && a.LastMove.X > 0 ||
		a.Head.X < -borderX && a.LastMove.X < 0
	outY := a.Head.Y > borderY && a.LastMove.Y > 0 ||
		a.Head.Y < -borderY && a.LastMove.Y < 0
	if !outX && !outY {
		return
	}

	d := a.LastMove
	if outX {
		d.X = -d.X
	}
	if outY {
		d.Y = -d.Y
	}
	a.Movement = Linear{Direction: d}
}

// Move advances the head one tick of dt seconds and records the new position.
func (a *Alive) Move(dt float64, cfg Config) {
	a.reflect(cfg.BorderX, cfg.BorderY)

	distance := a.Speed * dt
	last := a.Head

	switch m := a.Movement.(type) {
	case Circular:
		radius := a.Head.Distance(m.Center)
		if radius > 0 {
			sign := -1.0
			if m.Clockwise {
				sign = 1.0
			}
			angle := math.Atan2(a.Head.X-m.Center.X, a.Head.Y-m.Center.Y) + distance/radius*sign
			sin, cos := math.Sincos(angle)
			a.Head = Point{
				X: m.Center.X + sin*radius,
				Y: m.Center.Y + cos*radius,
			}
		}
		a.Speed += dt * cfg.SpeedUp
	case Linear:
		if !m.Direction.IsZero() {
			a.Head = a.Head.MoveBy(m.Direction, distance)
		}
	}

	if d := a.Head.Sub(last); !d.IsZero() {
		a.LastMove = d
	}
	a.History = append(a.History, a.Head)
}

// Toggle switches between going straight and circling around target.
// The circle's sense is picked so the turn continues the current heading.
func (a *Alive) Toggle(target Point) {
	if a.IsCircular() {
		a.Movement = Linear{Direction: a.LastMove}
		return
	}
	v := target.Sub(a.Head).Perp()
	a.Movement = Circular{
		Center:    target,
		Clockwise: v.Dot(a.LastMove) < 0,
	}
}
