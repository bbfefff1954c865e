package crane

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/cranesim/internal/units"
)

// ModelType selects which set of dynamics equations the model integrates.
type ModelType int

const (
	// Linear is the small-angle, decoupled model. Cheapest and foolproof.
	Linear ModelType = iota

	// NonLinearConstLine couples rail/cart motion with both swing angles
	// but holds the lift-line length constant; the winding force is ignored.
	NonLinearConstLine

	// NonLinearComplete drives all three axes and feeds line-length dynamics
	// and the payload reaction back into the coupled equations.
	NonLinearComplete

	// NonLinearOriginal is NonLinearComplete with the refined friction
	// formula (smoothed Coulomb plus a viscous term) used to match the
	// reference rig.
	NonLinearOriginal
)

func (t ModelType) String() string {
	switch t {
	case Linear:
		return "linear"
	case NonLinearConstLine:
		return "constline"
	case NonLinearComplete:
		return "complete"
	case NonLinearOriginal:
		return "original"
	default:
		return fmt.Sprintf("ModelType(%d)", int(t))
	}
}

// ParseModelType maps a config/CLI name to a ModelType.
func ParseModelType(s string) (ModelType, error) {
	switch strings.ToLower(s) {
	case "linear":
		return Linear, nil
	case "constline", "nonlinear_constline":
		return NonLinearConstLine, nil
	case "complete", "nonlinear_complete":
		return NonLinearComplete, nil
	case "original", "nonlinear_original":
		return NonLinearOriginal, nil
	default:
		return Linear, fmt.Errorf("unknown model type: %s", s)
	}
}

// ModelTypes lists every variant, in dispatch order.
var ModelTypes = []ModelType{Linear, NonLinearConstLine, NonLinearComplete, NonLinearOriginal}

// Forces is one tick's worth of actuator commands.
type Forces struct {
	Rail units.Force // Fx, drives the rail with the cart
	Cart units.Force // Fy, drives the cart along the rail
	Wind units.Force // Fr, winds the lift-line
}

const (
	// DefaultLineLength is the lift-line length at construction.
	DefaultLineLength = 0.5

	// maxSubSteps bounds the work a single UpdateFixed call can do after a
	// host stall; time beyond this many sub-steps is discarded.
	maxSubSteps = 1000

	// dampenEpsilon is the threshold below which velocities and angles are
	// snapped to zero to stop floating-point drift and denormal creep.
	dampenEpsilon = 1e-9
)

// Model is the crane dynamics engine: three actuated axes (rail, cart,
// lift-line) and a spherical pendulum payload. Configuration fields may be
// overridden by the owner before the first update; the model itself never
// mutates them. Invalid configuration (inverted limits, non-positive mass)
// is a caller error the model does not check.
//
// A Model is not safe for concurrent use; distinct instances are independent.
type Model struct {
	Type ModelType

	Mpayload units.Mass // Mc
	Mcart    units.Mass // Mw
	Mrail    units.Mass // Ms

	G units.Accel

	// Viscous friction constants [N*s/m], used by the Original variant's
	// refined friction formula.
	RailFriction    float64 // Tx
	CartFriction    float64 // Ty
	WindingFriction float64 // Tr

	// Axis components: rail X, cart Y, lift-line R. Travel limits and
	// friction coefficients live here.
	Rail Component
	Cart Component
	Line Component

	Alfa    float64 // swing toward the cart (Y) axis, 0 = hanging straight
	Beta    float64 // swing toward the rail (X) axis
	AlfaVel float64
	BetaVel float64

	// fixed-step bookkeeping
	simulationTime    float64
	simulationCounter int
}

// New returns a model with the reference rig's parameters.
func New() *Model {
	m := &Model{
		Type:            Linear,
		Mpayload:        units.Kg(1.000),
		Mcart:           units.Kg(1.155),
		Mrail:           units.Kg(2.200),
		G:               units.MS2(9.81),
		RailFriction:    100.0,
		CartFriction:    82.0,
		WindingFriction: 75.0,
		Rail:            *NewComponent(0, -0.30, +0.30),
		Cart:            *NewComponent(0, -0.35, +0.35),
		Line:            *NewComponent(DefaultLineLength, 0.05, 0.90),
	}
	// the winding drum runs on bearings, not a sliding steel surface
	m.Line.CoeffStatic = 0.4
	m.Line.CoeffKinetic = 0.35
	return m
}

// Reset returns the dynamic state to the construction pose while keeping
// all configuration.
func (m *Model) Reset() {
	m.Rail.Reset()
	m.Cart.Reset()
	m.Line.Reset()
	m.Line.Pos = DefaultLineLength
	m.Alfa, m.Beta = 0, 0
	m.AlfaVel, m.BetaVel = 0, 0
	m.simulationTime = 0
	m.simulationCounter = 0
}

// StepCount reports how many sub-steps have run since construction or Reset.
func (m *Model) StepCount() int { return m.simulationCounter }

// UpdateFixed advances the simulation by deltaTime using fixed sub-steps of
// fixedTime seconds. Whole sub-steps are consumed from an internal time
// accumulator and the remainder carries over to the next call, so results
// are independent of how the host slices elapsed time. Prefer this over
// Update: it keeps integration stable under frame-rate jitter.
func (m *Model) UpdateFixed(fixedTime, deltaTime float64, Frail, Fcart, Fwind units.Force) ModelState {
	m.simulationTime += deltaTime
	if m.simulationTime > fixedTime*maxSubSteps {
		m.simulationTime = fixedTime * maxSubSteps
	}
	// the accumulated sum of float deltas lands just short of a whole
	// sub-step (0.01+0.02 < 0.03), so consume with a relative tolerance
	eps := fixedTime * 1e-9
	for m.simulationTime >= fixedTime-eps {
		m.simulationTime -= fixedTime
		if m.simulationTime < 0 {
			m.simulationTime = 0
		}
		m.step(fixedTime, Frail, Fcart, Fwind)
	}
	return m.GetState()
}

// Update advances the simulation by a single raw step of deltaTime. Large or
// varying deltaTime makes this numerically unstable; use UpdateFixed unless
// the caller guarantees a steady small step.
func (m *Model) Update(deltaTime float64, Frail, Fcart, Fwind units.Force) ModelState {
	m.step(deltaTime, Frail, Fcart, Fwind)
	return m.GetState()
}

func (m *Model) step(dt float64, Frail, Fcart, Fwind units.Force) {
	// axis masses and const flags follow configuration every sub-step
	m.Rail.Mass = m.Mcart.Add(m.Mrail)
	m.Cart.Mass = m.Mcart
	m.Line.Mass = m.Mpayload
	m.Line.Const = m.Type == NonLinearConstLine

	// an axis resting against its end-stop absorbs any further push
	Frail = m.Rail.ClampForceByPosLimits(Frail)
	Fcart = m.Cart.ClampForceByPosLimits(Fcart)
	Fwind = m.Line.ClampForceByPosLimits(Fwind)

	switch m.Type {
	case Linear:
		m.linearModel(dt, Frail, Fcart, Fwind)
	case NonLinearConstLine:
		m.nonLinearConstLine(dt, Frail, Fcart)
	case NonLinearComplete:
		m.nonLinearComplete(dt, Frail, Fcart, Fwind)
	case NonLinearOriginal:
		m.nonLinearOriginal(dt, Frail, Fcart, Fwind)
	}

	m.applyLimits()
	m.dampenAllValues()
	m.simulationCounter++
}

// GetState derives the output snapshot from the current internal state.
// Angles are measured from the resting vertical: Alfa swings the payload
// toward +Y, Beta toward +X.
func (m *Model) GetState() ModelState {
	sA, cA := math.Sincos(m.Alfa)
	sB, cB := math.Sincos(m.Beta)
	x, y, r := m.Rail.Pos, m.Cart.Pos, m.Line.Pos

	return ModelState{
		Alfa:       m.Alfa,
		Beta:       m.Beta,
		RailOffset: x,
		CartOffset: y,
		LiftLine:   r,
		PayloadX:   x + r*cA*sB,
		PayloadY:   y + r*sA,
		PayloadZ:   -r * cA * cB,
	}
}

// NetForce resolves Coulomb friction for one axis: friction opposes the
// velocity while sliding; at rest an applied force below the static
// threshold is absorbed entirely (stiction) and the net force is zero.
// The friction component actually acting is reported through outFriction.
func (m *Model) NetForce(Fapplied units.Force, velocity float64, mass units.Mass,
	muStatic, muKinetic float64, outFriction *units.Force) units.Force {

	normal := mass.Mul(m.G)
	kinetic := normal.Scale(muKinetic)

	if math.Abs(velocity) < restVelocity {
		staticMax := normal.Scale(muStatic)
		if !Fapplied.Abs().Gt(staticMax) {
			if outFriction != nil {
				*outFriction = Fapplied
			}
			return units.Force{}
		}
		friction := kinetic.Scale(Fapplied.Sign())
		if outFriction != nil {
			*outFriction = friction
		}
		return Fapplied.Sub(friction)
	}

	friction := kinetic.Scale(units.Sign(velocity))
	if outFriction != nil {
		*outFriction = friction
	}
	return Fapplied.Sub(friction)
}

// applyLimits clamps every axis to its travel bounds. A clamped axis has its
// velocity zeroed (inelastic stop) so a pinned position cannot accumulate
// speed that would tunnel through the limit on the next step.
func (m *Model) applyLimits() {
	clampAxis(&m.Rail)
	clampAxis(&m.Cart)
	clampAxis(&m.Line)
}

func clampAxis(c *Component) {
	if c.Pos < c.LimitMin {
		c.Pos = c.LimitMin
		if c.Vel < 0 {
			c.Vel = 0
		}
	} else if c.Pos > c.LimitMax {
		c.Pos = c.LimitMax
		if c.Vel > 0 {
			c.Vel = 0
		}
	}
}

// dampenAllValues snaps near-zero state to exactly zero.
func (m *Model) dampenAllValues() {
	m.Rail.Vel = dampen(m.Rail.Vel)
	m.Cart.Vel = dampen(m.Cart.Vel)
	m.Line.Vel = dampen(m.Line.Vel)
	m.Alfa = dampen(m.Alfa)
	m.Beta = dampen(m.Beta)
	m.AlfaVel = dampen(m.AlfaVel)
	m.BetaVel = dampen(m.BetaVel)
}

func dampen(v float64) float64 {
	if math.Abs(v) < dampenEpsilon {
		return 0
	}
	return v
}

// integrateAngle advances one swing angle with the same Verlet scheme the
// axis components use.
func integrateAngle(pos, vel *float64, acc, dt float64) {
	a := units.MS2(acc)
	*pos = units.IntegratePos(*pos, *vel, a, dt)
	*vel = units.IntegrateVelocity(*vel, a, dt)
}
