package crane

import "github.com/san-kum/cranesim/internal/units"

// linearModel integrates the small-angle, decoupled equations. Each axis is
// an independent component; the swing angles follow the spring-like
// linearized pendulum relation around the net cart/rail acceleration.
// Never diverges, at the cost of physical fidelity at large angles.
func (m *Model) linearModel(dt float64, Frail, Fcart, Fwind units.Force) {
	m.Rail.ApplyForce(Frail, m.G)
	m.Cart.ApplyForce(Fcart, m.G)
	m.Line.ApplyForce(Fwind, m.G)

	ax := m.Rail.NetAcc
	ay := m.Cart.NetAcc
	g := m.G.Value
	r := m.Line.Pos

	alfaAcc := -(g*m.Alfa + ay.Value) / r
	betaAcc := -(g*m.Beta + ax.Value) / r

	m.Rail.Update(ax, dt)
	m.Cart.Update(ay, dt)
	m.Line.Update(m.Line.NetAcc, dt)
	integrateAngle(&m.Alfa, &m.AlfaVel, alfaAcc, dt)
	integrateAngle(&m.Beta, &m.BetaVel, betaAcc, dt)
}
