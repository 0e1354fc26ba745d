package game

import "math"

// Status is the running score. The high score lives as long as the process.
type Status struct {
	Score     int
	HighScore int
}

// reset starts a new game's score
func (s *Status) reset() {
	s.Score = 0
}

// award adds the prize for passing a gate with the given tail and speed
func (s *Status) award(tailCount int, speed, divisor float64) int {
	if divisor <= 0 {
		divisor = ScoreDivisor
	}
	gain := int(math.Floor(float64(tailCount) * speed / divisor))
	s.Score += gain
	if s.Score >= s.HighScore {
		s.HighScore = s.Score
	}
	return gain
}
