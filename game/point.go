package game

import "math"

// Point is a 2D coordinate or displacement. X grows to the right, Y grows up,
// the board center is the origin.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p * k
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the inner product of p and q
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Len returns the euclidean length of p
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsZero reports whether p is the zero vector
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Distance returns the distance between p and q
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// ForwardTo returns the point reached by moving distance from p toward q.
// Interpolation is linear, so distances beyond |pq| extrapolate past q.
func (p Point) ForwardTo(q Point, distance float64) Point {
	d := p.Distance(q)
	if d == 0 {
		return p
	}
	t := distance / d
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// MoveBy returns p moved distance along direction. A zero direction does not move.
func (p Point) MoveBy(direction Point, distance float64) Point {
	l := direction.Len()
	if l == 0 {
		return p
	}
	ratio := distance / l
	return Point{X: p.X + direction.X*ratio, Y: p.Y + direction.Y*ratio}
}

// Perp returns p rotated by 90° clockwise: (y, -x).
func (p Point) Perp() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Rotate returns p rotated counter-clockwise by angle radians
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Angle returns the heading of p in radians, measured from +X counter-clockwise
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Intersects reports whether segment a1-a2 and segment b1-b2 cross.
// Each segment must strictly straddle the line through the other, so touching
// endpoints and collinear overlaps do not count.
func Intersects(a1, a2, b1, b2 Point) bool {
	return straddles(a1, a2, b1, b2) && straddles(b1, b2, a1, a2)
}

// straddles reports whether y1 and y2 lie on opposite sides of the line x1-x2
func straddles(x1, x2, y1, y2 Point) bool {
	s1 := (x1.X-x2.X)*(y1.Y-x1.Y) + (x1.Y-x2.Y)*(x1.X-y1.X)
	s2 := (x1.X-x2.X)*(y2.Y-x1.Y) + (x1.Y-x2.Y)*(x1.X-y2.X)
	return s1*s2 < 0
}

// normalizeAngle wraps an angle into (-π, π]
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
