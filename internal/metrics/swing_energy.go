package metrics

import (
	"math"

	"github.com/san-kum/cranesim/internal/crane"
)

// SwingEnergy averages the pendulum energy of the payload relative to its
// resting pose: kinetic energy of the swing plus the potential energy of
// the payload lifted above the bottom of its arc.
type SwingEnergy struct {
	name    string
	model   *crane.Model
	sum     float64
	samples int
}

func NewSwingEnergy(model *crane.Model) *SwingEnergy {
	return &SwingEnergy{name: "swing_energy", model: model}
}

func (e *SwingEnergy) Name() string { return e.name }

func (e *SwingEnergy) Observe(s crane.ModelState, f crane.Forces, t float64) {
	mc := e.model.Mpayload.Value
	g := e.model.G.Value
	r := s.LiftLine

	ke := 0.5 * mc * r * r *
		(e.model.AlfaVel*e.model.AlfaVel +
			e.model.BetaVel*e.model.BetaVel*math.Cos(s.Alfa)*math.Cos(s.Alfa))
	pe := mc * g * (r + s.PayloadZ) // PayloadZ is -r at the bottom of the arc

	e.sum += ke + pe
	e.samples++
}

func (e *SwingEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *SwingEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}
