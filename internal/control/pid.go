package control

import (
	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/units"
)

// axisPID is one PID loop regulating a single crane axis position.
type axisPID struct {
	kp, ki, kd float64
	target     float64
	integral   float64
	prevErr    float64
	prevT      float64
	first      bool
}

func newAxisPID(kp, ki, kd, target float64) axisPID {
	return axisPID{kp: kp, ki: ki, kd: kd, target: target, first: true}
}

func (p *axisPID) compute(pos, t float64) float64 {
	err := p.target - pos

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.kp * err
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.kp * err
	}

	p.integral += err * dt
	derivative := (err - p.prevErr) / dt
	p.prevErr = err
	p.prevT = t

	return p.kp*err + p.ki*p.integral + p.kd*derivative
}

// PID drives the rail, cart and lift-line toward target positions with one
// position loop per axis. The derivative terms double as sway damping:
// overshooting an axis target is what excites the pendulum.
type PID struct {
	rail axisPID
	cart axisPID
	line axisPID
	fmax float64 // per-axis force magnitude limit, 0 = unbounded
}

// Gains bundles the loop parameters for NewPID.
type Gains struct {
	Kp, Ki, Kd float64
}

func NewPID(g Gains, railTarget, cartTarget, lineTarget, forceLimit float64) *PID {
	return &PID{
		rail: newAxisPID(g.Kp, g.Ki, g.Kd, railTarget),
		cart: newAxisPID(g.Kp, g.Ki, g.Kd, cartTarget),
		line: newAxisPID(g.Kp, g.Ki, g.Kd, lineTarget),
		fmax: forceLimit,
	}
}

func (p *PID) Compute(s crane.ModelState, t float64) crane.Forces {
	return crane.Forces{
		Rail: p.clamp(p.rail.compute(s.RailOffset, t)),
		Cart: p.clamp(p.cart.compute(s.CartOffset, t)),
		Wind: p.clamp(p.line.compute(s.LiftLine, t)),
	}
}

func (p *PID) clamp(f float64) units.Force {
	if p.fmax > 0 {
		if f > p.fmax {
			f = p.fmax
		} else if f < -p.fmax {
			f = -p.fmax
		}
	}
	return units.N(f)
}
