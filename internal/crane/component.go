package crane

import (
	"math"

	"github.com/san-kum/cranesim/internal/units"
)

// Velocities below this are treated as rest when resolving friction.
const restVelocity = 1e-9

// Component is a single degree-of-freedom dynamic element: one axis of the
// crane with its own mass, kinematic state, travel limits and Coulomb
// friction coefficients.
type Component struct {
	Mass units.Mass

	Pos float64
	Vel float64
	Acc units.Accel

	LimitMin float64
	LimitMax float64
	VelMax   float64 // velocity limit, 0 = disabled
	AccMax   float64 // acceleration limit, 0 = disabled

	Applied   units.Force // last applied driving force
	SFriction units.Force // static friction actually resisting
	KFriction units.Force // kinetic friction
	Fnet      units.Force // net force
	NetAcc    units.Accel // net driving acceleration

	FrictionDir float64

	// Const freezes Pos during Update. Used for degrees of freedom the
	// active model variant does not simulate.
	Const bool

	// Steel-on-steel sliding defaults; the winding drum overrides these
	// with bearing-level values.
	CoeffStatic  float64
	CoeffKinetic float64
}

func NewComponent(pos, limitMin, limitMax float64) *Component {
	return &Component{
		Mass:         units.Kg(1),
		Pos:          pos,
		LimitMin:     limitMin,
		LimitMax:     limitMax,
		FrictionDir:  1.0,
		CoeffStatic:  0.8,
		CoeffKinetic: 0.7,
	}
}

func (c *Component) SetLimits(min, max float64) {
	c.LimitMin = min
	c.LimitMax = max
}

// Reset zeroes all dynamic variables: Pos, Vel, Acc, Fnet, NetAcc.
// Mass, limits and friction coefficients are configuration and survive.
func (c *Component) Reset() {
	c.Pos = 0
	c.Vel = 0
	c.Acc = units.Accel{}
	c.Applied = units.Force{}
	c.SFriction = units.Force{}
	c.KFriction = units.Force{}
	c.Fnet = units.Force{}
	c.NetAcc = units.Accel{}
}

// Update advances Pos and Vel one step using velocity Verlet integration.
func (c *Component) Update(newAcc units.Accel, dt float64) {
	if c.Const {
		return
	}
	if c.AccMax > 0 && math.Abs(newAcc.Value) > c.AccMax {
		newAcc = units.MS2(math.Copysign(c.AccMax, newAcc.Value))
	}
	c.Acc = newAcc

	newVel := units.IntegrateVelocity(c.Vel, newAcc, dt)
	if c.VelMax > 0 && math.Abs(newVel) > c.VelMax {
		newVel = math.Copysign(c.VelMax, newVel)
	}
	c.Pos += (c.Vel + newVel) * dt * 0.5
	c.Vel = newVel
}

// ApplyForce resolves the net force with the simple always-sliding friction
// approximation: kinetic friction opposes the current velocity, or the
// applied force when at rest. At rest the friction magnitude is capped at
// the applied force so friction never drives the component backwards.
func (c *Component) ApplyForce(applied units.Force, g units.Accel) {
	c.Applied = applied

	kinetic := c.Mass.Mul(g).Scale(c.CoeffKinetic)
	dir := units.Sign(c.Vel)
	if math.Abs(c.Vel) < restVelocity {
		dir = applied.Sign()
		if kinetic.Gt(applied.Abs()) {
			kinetic = applied.Abs()
		}
	}
	c.FrictionDir = dir
	c.KFriction = kinetic.Scale(dir)
	c.Fnet = applied.Sub(c.KFriction)
	c.NetAcc = c.Fnet.Div(c.Mass)
}

// ApplyForceNonLinear resolves the net force with true stiction: a resting
// component does not move until the applied force exceeds the static
// threshold Ts. T is the kinetic friction magnitude once sliding. Both are
// computed by the owning model, which may fold coupled-axis terms into them.
func (c *Component) ApplyForceNonLinear(applied units.Force, g units.Accel, T, Ts units.Force) {
	c.Applied = applied

	if math.Abs(c.Vel) < restVelocity && !applied.Abs().Gt(Ts.Abs()) {
		// stiction: the surface resists the entire applied force
		c.FrictionDir = applied.Sign()
		c.SFriction = applied
		c.KFriction = units.Force{}
		c.Fnet = units.Force{}
		c.NetAcc = units.Accel{}
		return
	}

	dir := units.Sign(c.Vel)
	if dir == 0 {
		dir = applied.Sign()
	}
	c.FrictionDir = dir
	c.SFriction = units.Force{}
	c.KFriction = T.Abs().Scale(dir)
	c.Fnet = applied.Sub(c.KFriction)
	c.NetAcc = c.Fnet.Div(c.Mass)
}

// ClampForceByPosLimits zeroes any force that pushes further into a travel
// limit the component is already resting against. The frame is an immovable
// end-stop: no force can drive the axis past it.
func (c *Component) ClampForceByPosLimits(force units.Force) units.Force {
	if c.Pos <= c.LimitMin && force.Value < 0 {
		return units.Force{}
	}
	if c.Pos >= c.LimitMax && force.Value > 0 {
		return units.Force{}
	}
	return force
}
