package game

// Score is a non-negative point counter. Every mutation floors the value
// at zero; a decrement can never make it negative.
type Score struct {
	points int
}

// Add increases the score by n points (n may be negative).
func (s *Score) Add(n int) {
	s.points += n
	if s.points < 0 {
		s.points = 0
	}
}

// Sub decreases the score by n points, flooring at zero.
func (s *Score) Sub(n int) {
	s.Add(-n)
}

// Points returns the current score.
func (s *Score) Points() int {
	return s.points
}

// Reset sets the score back to zero.
func (s *Score) Reset() {
	s.points = 0
}
