package crane

import (
	"math"

	"github.com/san-kum/cranesim/internal/units"
)

// relations holds the per-sub-step intermediates shared by the non-linear
// variants: net axis accelerations after friction, and the payload mass
// ratios that scale the swing reaction.
type relations struct {
	ax  float64 // net rail acceleration
	ay  float64 // net cart acceleration
	mu1 float64 // Mc/Mw, payload/cart ratio
	mu2 float64 // Mc/(Mw+Ms), payload/railcart ratio
}

// prepareBasicRelations resolves stiction-aware net forces on all three
// axes and derives the coupling ratios.
func (m *Model) prepareBasicRelations(Frail, Fcart, Fwind units.Force) relations {
	applyCoulomb(&m.Rail, m.G, Frail)
	applyCoulomb(&m.Cart, m.G, Fcart)
	if !m.Line.Const {
		applyCoulomb(&m.Line, m.G, Fwind)
	}
	return relations{
		ax:  m.Rail.NetAcc.Value,
		ay:  m.Cart.NetAcc.Value,
		mu1: m.Mpayload.Value / m.Mcart.Value,
		mu2: m.Mpayload.Value / (m.Mcart.Add(m.Mrail).Value),
	}
}

func applyCoulomb(c *Component, g units.Accel, F units.Force) {
	normal := c.Mass.Mul(g)
	T := normal.Scale(c.CoeffKinetic)
	Ts := normal.Scale(c.CoeffStatic)
	c.ApplyForceNonLinear(F, g, T, Ts)
}

// prepareRefinedRelations is the Original variant's friction treatment: the
// Coulomb term is smoothed with tanh around zero velocity and a viscous term
// with the rig's per-axis friction constants is added on top.
func (m *Model) prepareRefinedRelations(Frail, Fcart, Fwind units.Force) relations {
	applyRefined(&m.Rail, m.G, Frail, m.RailFriction)
	applyRefined(&m.Cart, m.G, Fcart, m.CartFriction)
	applyRefined(&m.Line, m.G, Fwind, m.WindingFriction)
	return relations{
		ax:  m.Rail.NetAcc.Value,
		ay:  m.Cart.NetAcc.Value,
		mu1: m.Mpayload.Value / m.Mcart.Value,
		mu2: m.Mpayload.Value / (m.Mcart.Add(m.Mrail).Value),
	}
}

// smoothVelocity is the tanh regularization width for the refined Coulomb
// term, in m/s.
const smoothVelocity = 0.02

func applyRefined(c *Component, g units.Accel, F units.Force, viscous float64) {
	normal := c.Mass.Mul(g)
	coulomb := normal.Scale(c.CoeffKinetic * math.Abs(math.Tanh(c.Vel/smoothVelocity)))
	T := coulomb.Add(units.N(viscous * math.Abs(c.Vel)))
	Ts := normal.Scale(c.CoeffStatic)
	c.ApplyForceNonLinear(F, g, T, Ts)
}

// swingAccel evaluates the spherical-pendulum angular accelerations for a
// suspension point accelerating at (ax, ay) with line length R and feed rate
// rVel. Derived from the Lagrangian of a point payload on a massless line;
// the (Alfa, Beta) chart is orthogonal so the equations are closed-form.
func (m *Model) swingAccel(ax, ay, rVel float64) (alfaAcc, betaAcc float64) {
	g := m.G.Value
	r := m.Line.Pos
	sA, cA := math.Sincos(m.Alfa)
	sB, cB := math.Sincos(m.Beta)

	// gimbal guard: Beta loses meaning as the line approaches the cart axis
	den := cA
	if math.Abs(den) < 1e-3 {
		den = math.Copysign(1e-3, den)
	}
	tanA := sA / den

	alfaAcc = (-g*sA*cB+ax*sA*sB-ay*cA)/r -
		2*rVel*m.AlfaVel/r -
		m.BetaVel*m.BetaVel*sA*cA
	betaAcc = (-g*sB-ax*cB)/(r*den) +
		2*m.AlfaVel*m.BetaVel*tanA -
		2*rVel*m.BetaVel/r
	return alfaAcc, betaAcc
}

// reactionCoupled adds the horizontal line-tension reaction of the swinging
// payload to the net axis accelerations. Tension carries the gravity load
// plus the centripetal term from the swing.
func (m *Model) reactionCoupled(rel relations) (ax, ay float64) {
	g := m.G.Value
	r := m.Line.Pos
	sA, cA := math.Sincos(m.Alfa)
	sB, cB := math.Sincos(m.Beta)

	load := g*cA*cB + r*(m.AlfaVel*m.AlfaVel+m.BetaVel*m.BetaVel*cA*cA)
	ax = rel.ax + rel.mu2*load*cA*sB
	ay = rel.ay + rel.mu1*load*sA
	return ax, ay
}

// nonLinearConstLine: full swing coupling, lift-line frozen. The classic
// one-way coupled model: cart and rail drive the pendulum, the pendulum
// does not push back.
func (m *Model) nonLinearConstLine(dt float64, Frail, Fcart units.Force) {
	rel := m.prepareBasicRelations(Frail, Fcart, units.Force{})
	alfaAcc, betaAcc := m.swingAccel(rel.ax, rel.ay, 0)

	m.Rail.Update(m.Rail.NetAcc, dt)
	m.Cart.Update(m.Cart.NetAcc, dt)
	integrateAngle(&m.Alfa, &m.AlfaVel, alfaAcc, dt)
	integrateAngle(&m.Beta, &m.BetaVel, betaAcc, dt)
}

// nonLinearComplete: all three forces active, line feed rate in the swing
// equations, payload reaction on cart and rail.
func (m *Model) nonLinearComplete(dt float64, Frail, Fcart, Fwind units.Force) {
	rel := m.prepareBasicRelations(Frail, Fcart, Fwind)
	ax, ay := m.reactionCoupled(rel)
	alfaAcc, betaAcc := m.swingAccel(ax, ay, m.Line.Vel)

	m.Rail.Update(units.MS2(ax), dt)
	m.Cart.Update(units.MS2(ay), dt)
	m.Line.Update(m.Line.NetAcc, dt)
	integrateAngle(&m.Alfa, &m.AlfaVel, alfaAcc, dt)
	integrateAngle(&m.Beta, &m.BetaVel, betaAcc, dt)
}

// nonLinearOriginal: same coupling as nonLinearComplete with the refined
// friction resolution.
func (m *Model) nonLinearOriginal(dt float64, Frail, Fcart, Fwind units.Force) {
	rel := m.prepareRefinedRelations(Frail, Fcart, Fwind)
	ax, ay := m.reactionCoupled(rel)
	alfaAcc, betaAcc := m.swingAccel(ax, ay, m.Line.Vel)

	m.Rail.Update(units.MS2(ax), dt)
	m.Cart.Update(units.MS2(ay), dt)
	m.Line.Update(m.Line.NetAcc, dt)
	integrateAngle(&m.Alfa, &m.AlfaVel, alfaAcc, dt)
	integrateAngle(&m.Beta, &m.BetaVel, betaAcc, dt)
}
