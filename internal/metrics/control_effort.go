package metrics

import (
	"math"

	"github.com/san-kum/cranesim/internal/crane"
)

// ControlEffort averages the total commanded force magnitude per tick.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(s crane.ModelState, f crane.Forces, t float64) {
	c.sum += math.Abs(f.Rail.Value) + math.Abs(f.Cart.Value) + math.Abs(f.Wind.Value)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
