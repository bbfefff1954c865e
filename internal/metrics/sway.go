package metrics

import (
	"math"

	"github.com/san-kum/cranesim/internal/crane"
)

// Sway tracks the peak horizontal displacement of the payload from its
// suspension point, in meters. The operator's figure of merit: a good
// anti-sway move keeps this small.
type Sway struct {
	name string
	max  float64
}

func NewSway() *Sway {
	return &Sway{name: "sway"}
}

func (s *Sway) Name() string { return s.name }

func (s *Sway) Observe(st crane.ModelState, f crane.Forces, t float64) {
	dx := st.PayloadX - st.RailOffset
	dy := st.PayloadY - st.CartOffset
	sway := math.Sqrt(dx*dx + dy*dy)
	if sway > s.max {
		s.max = sway
	}
}

func (s *Sway) Value() float64 {
	return s.max
}

func (s *Sway) Reset() {
	s.max = 0
}
