package control

import "github.com/san-kum/cranesim/internal/crane"

// None applies no forces; the crane coasts on friction alone.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(s crane.ModelState, t float64) crane.Forces {
	return crane.Forces{}
}
