package random

// Scripted replays a fixed sequence of values.
// Once the sequence is exhausted the last value repeats; an empty script yields 0.
type Scripted struct {
	values []float64
	next   int
}

// NewScripted creates a Source that returns values in order.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

// Float64 returns the next scripted value.
func (s *Scripted) Float64() float64 {
	if len(s.values) == 0 {
		s.next++
		return 0
	}

	idx := s.next
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	s.next++
	return s.values[idx]
}

// Draws returns how many values have been consumed.
func (s *Scripted) Draws() int {
	return s.next
}
