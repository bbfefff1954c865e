package control

import "github.com/san-kum/cranesim/internal/crane"

// Manual passes operator-set forces through unchanged. Used by the live
// view, where key presses adjust the stored command between ticks, and by
// open-loop CLI runs with a constant force profile.
type Manual struct {
	F crane.Forces
}

func NewManual(f crane.Forces) *Manual {
	return &Manual{F: f}
}

// SetForces replaces the stored command.
func (m *Manual) SetForces(f crane.Forces) {
	m.F = f
}

func (m *Manual) Compute(s crane.ModelState, t float64) crane.Forces {
	return m.F
}
