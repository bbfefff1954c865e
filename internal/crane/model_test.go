package crane

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/cranesim/internal/units"
)

func TestDefaults(t *testing.T) {
	m := New()

	if m.Mpayload.Value != 1.000 || m.Mcart.Value != 1.155 || m.Mrail.Value != 2.200 {
		t.Error("default masses do not match the reference rig")
	}
	if m.G.Value != 9.81 {
		t.Errorf("expected g=9.81, got %f", m.G.Value)
	}
	if m.Rail.LimitMin != -0.30 || m.Rail.LimitMax != 0.30 {
		t.Error("rail limits wrong")
	}
	if m.Cart.LimitMin != -0.35 || m.Cart.LimitMax != 0.35 {
		t.Error("cart limits wrong")
	}
	if m.Line.LimitMin != 0.05 || m.Line.LimitMax != 0.90 {
		t.Error("line limits wrong")
	}
	if m.Line.Pos != DefaultLineLength {
		t.Errorf("expected initial line length %f, got %f", DefaultLineLength, m.Line.Pos)
	}
}

func TestGetStateGeometry(t *testing.T) {
	m := New()

	s := m.GetState()
	if s.PayloadX != 0 || s.PayloadY != 0 {
		t.Error("payload should hang directly below the cart at rest")
	}
	if math.Abs(s.PayloadZ+DefaultLineLength) > 1e-12 {
		t.Errorf("expected payload at z=-%f, got %f", DefaultLineLength, s.PayloadZ)
	}

	m.Rail.Pos = 0.1
	m.Cart.Pos = -0.2
	m.Alfa = 0.3
	m.Beta = -0.1
	s = m.GetState()

	r := m.Line.Pos
	wantX := 0.1 + r*math.Cos(0.3)*math.Sin(-0.1)
	wantY := -0.2 + r*math.Sin(0.3)
	wantZ := -r * math.Cos(0.3) * math.Cos(-0.1)
	if math.Abs(s.PayloadX-wantX) > 1e-12 ||
		math.Abs(s.PayloadY-wantY) > 1e-12 ||
		math.Abs(s.PayloadZ-wantZ) > 1e-12 {
		t.Errorf("payload projection wrong: got (%f, %f, %f)", s.PayloadX, s.PayloadY, s.PayloadZ)
	}

	// payload is always exactly one line length from the suspension point
	dx := s.PayloadX - s.RailOffset
	dy := s.PayloadY - s.CartOffset
	dist := math.Sqrt(dx*dx + dy*dy + s.PayloadZ*s.PayloadZ)
	if math.Abs(dist-r) > 1e-12 {
		t.Errorf("payload distance %f != line length %f", dist, r)
	}
}

func TestLimitInvariant(t *testing.T) {
	for _, typ := range ModelTypes {
		m := New()
		m.Type = typ
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 2000; i++ {
			f := Forces{
				Rail: units.N((rng.Float64() - 0.5) * 200),
				Cart: units.N((rng.Float64() - 0.5) * 200),
				Wind: units.N((rng.Float64() - 0.5) * 200),
			}
			s := m.UpdateFixed(0.01, 0.01, f.Rail, f.Cart, f.Wind)

			if s.RailOffset < m.Rail.LimitMin || s.RailOffset > m.Rail.LimitMax {
				t.Fatalf("%s: rail offset %f outside limits at step %d", typ, s.RailOffset, i)
			}
			if s.CartOffset < m.Cart.LimitMin || s.CartOffset > m.Cart.LimitMax {
				t.Fatalf("%s: cart offset %f outside limits at step %d", typ, s.CartOffset, i)
			}
			if s.LiftLine < m.Line.LimitMin || s.LiftLine > m.Line.LimitMax {
				t.Fatalf("%s: line length %f outside limits at step %d", typ, s.LiftLine, i)
			}
		}
	}
}

func TestSubStepDeterminism(t *testing.T) {
	f := units.N(12.0)

	a := New()
	a.Type = NonLinearComplete
	sa := a.UpdateFixed(0.01, 0.03, f, f.Neg(), units.Force{})

	b := New()
	b.Type = NonLinearComplete
	var sb ModelState
	for i := 0; i < 3; i++ {
		sb = b.UpdateFixed(0.01, 0.01, f, f.Neg(), units.Force{})
	}

	if math.Abs(sa.RailOffset-sb.RailOffset) > 1e-12 ||
		math.Abs(sa.CartOffset-sb.CartOffset) > 1e-12 ||
		math.Abs(sa.Alfa-sb.Alfa) > 1e-12 ||
		math.Abs(sa.Beta-sb.Beta) > 1e-12 {
		t.Errorf("one 0.03s call and three 0.01s calls diverged:\n%v\nvs\n%v", sa, sb)
	}
	if a.StepCount() != 3 || b.StepCount() != 3 {
		t.Errorf("expected 3 sub-steps each, got %d and %d", a.StepCount(), b.StepCount())
	}
}

func TestRemainderCarry(t *testing.T) {
	m := New()

	m.UpdateFixed(0.01, 0.015, units.Force{}, units.Force{}, units.Force{})
	if m.StepCount() != 1 {
		t.Errorf("expected 1 sub-step from 0.015s, got %d", m.StepCount())
	}
	m.UpdateFixed(0.01, 0.005, units.Force{}, units.Force{}, units.Force{})
	if m.StepCount() != 2 {
		t.Errorf("carried remainder should complete a second sub-step, got %d", m.StepCount())
	}

	// 0.01+0.02 sums below 0.03 in float64; the step count must not care
	m2 := New()
	m2.UpdateFixed(0.01, 0.01, units.Force{}, units.Force{}, units.Force{})
	m2.UpdateFixed(0.01, 0.02, units.Force{}, units.Force{}, units.Force{})
	if m2.StepCount() != 3 {
		t.Errorf("expected 3 sub-steps from a 0.01+0.02 split, got %d", m2.StepCount())
	}
}

func TestUpdateSingleRawStep(t *testing.T) {
	f := units.N(10.0)
	w := units.N(-5.0)

	for _, typ := range ModelTypes {
		a := New()
		a.Type = typ
		sa := a.Update(0.01, f, f.Neg(), w)

		b := New()
		b.Type = typ
		sb := b.UpdateFixed(0.01, 0.01, f, f.Neg(), w)

		if a.StepCount() != 1 {
			t.Errorf("%s: Update must advance exactly one step, got %d", typ, a.StepCount())
		}
		if sa != sb {
			t.Errorf("%s: one raw step diverged from one fixed sub-step:\n%v\nvs\n%v", typ, sa, sb)
		}
	}
}

func TestSubStepCap(t *testing.T) {
	m := New()
	m.UpdateFixed(0.01, 3600.0, units.Force{}, units.Force{}, units.Force{})

	if m.StepCount() > 1000 {
		t.Errorf("sub-steps per call must be bounded, ran %d", m.StepCount())
	}
}

func TestRestUnderZeroForce(t *testing.T) {
	for _, typ := range ModelTypes {
		m := New()
		m.Type = typ
		start := m.GetState()

		var s ModelState
		for i := 0; i < 500; i++ {
			s = m.UpdateFixed(0.01, 0.01, units.Force{}, units.Force{}, units.Force{})
		}

		if s.PayloadPos().Sub(start.PayloadPos()).Norm() > 1e-9 {
			t.Errorf("%s: payload drifted at rest: %v -> %v", typ, start, s)
		}
	}
}

func TestLinearModelLift(t *testing.T) {
	m := New()
	m.Type = Linear

	prev := m.GetState().LiftLine
	for i := 0; i < 50; i++ {
		s := m.UpdateFixed(0.01, 0.01, units.Force{}, units.Force{}, units.N(-5))
		if s.LiftLine > prev+1e-12 {
			t.Fatalf("line length increased during reel-in at step %d: %f -> %f", i, prev, s.LiftLine)
		}
		if s.LiftLine < m.Line.LimitMin {
			t.Fatalf("line length %f below minimum", s.LiftLine)
		}
		prev = s.LiftLine
	}
	if prev >= DefaultLineLength {
		t.Errorf("expected the line to reel in, still at %f", prev)
	}
}

func TestEndStop(t *testing.T) {
	m := New()
	m.Type = Linear

	push := units.N(50)
	var s ModelState
	hit := -1
	for i := 0; i < 2000; i++ {
		s = m.UpdateFixed(0.01, 0.01, push, units.Force{}, units.Force{})
		if s.RailOffset >= m.Rail.LimitMax {
			hit = i
			break
		}
	}
	if hit < 0 {
		t.Fatal("rail never reached its end-stop under +50 N")
	}
	if s.RailOffset != m.Rail.LimitMax {
		t.Errorf("rail should clamp exactly at the limit, got %f", s.RailOffset)
	}

	// one more sub-step against the stop: position pinned, velocity dead
	s = m.UpdateFixed(0.01, 0.01, push, units.Force{}, units.Force{})
	if s.RailOffset != m.Rail.LimitMax {
		t.Errorf("rail moved off the stop: %f", s.RailOffset)
	}
	if m.Rail.Vel != 0 {
		t.Errorf("rail velocity should be zero against the stop, got %f", m.Rail.Vel)
	}
}

func TestNetForce(t *testing.T) {
	m := New()
	var friction units.Force

	// at rest, below the static threshold: fully absorbed
	net := m.NetForce(units.N(5), 0, units.Kg(1), 0.8, 0.7, &friction)
	if net.Value != 0 {
		t.Errorf("expected zero net force under stiction, got %f", net.Value)
	}
	if friction.Value != 5 {
		t.Errorf("friction should report the absorbed force, got %f", friction.Value)
	}

	// at rest, above the threshold: kinetic friction opposes the force
	net = m.NetForce(units.N(10), 0, units.Kg(1), 0.8, 0.7, &friction)
	want := 10 - 0.7*9.81
	if math.Abs(net.Value-want) > 1e-9 {
		t.Errorf("expected net %f, got %f", want, net.Value)
	}

	// sliding: friction opposes velocity, not the force
	net = m.NetForce(units.N(0), -1.0, units.Kg(1), 0.8, 0.7, &friction)
	if friction.Value >= 0 {
		t.Errorf("friction should oppose negative velocity, got %f", friction.Value)
	}
	if math.Abs(net.Value-0.7*9.81) > 1e-9 {
		t.Errorf("expected net %f, got %f", 0.7*9.81, net.Value)
	}
}

func TestConstLineIgnoresWind(t *testing.T) {
	m := New()
	m.Type = NonLinearConstLine

	var s ModelState
	for i := 0; i < 100; i++ {
		s = m.UpdateFixed(0.01, 0.01, units.Force{}, units.Force{}, units.N(-20))
	}
	if s.LiftLine != DefaultLineLength {
		t.Errorf("const-line variant must hold line length, got %f", s.LiftLine)
	}
}

func TestNonLinearSwingCouplesBack(t *testing.T) {
	// Complete variant: a swinging payload drags the resting cart along.
	m := New()
	m.Type = NonLinearComplete
	m.Alfa = 0.4

	// disengage cart stiction so the reaction is visible
	m.Cart.CoeffStatic = 0
	m.Cart.CoeffKinetic = 0

	var s ModelState
	for i := 0; i < 100; i++ {
		s = m.UpdateFixed(0.01, 0.01, units.Force{}, units.Force{}, units.Force{})
	}
	if s.CartOffset == 0 {
		t.Error("payload reaction should move the frictionless cart")
	}
}

func TestRefinedFrictionDampsFaster(t *testing.T) {
	// The Original variant adds a viscous term, so the same push ends slower.
	// 30 steps keeps the rail short of its end-stop in both runs
	run := func(typ ModelType) float64 {
		m := New()
		m.Type = typ
		for i := 0; i < 30; i++ {
			m.UpdateFixed(0.01, 0.01, units.N(40), units.Force{}, units.Force{})
		}
		return m.Rail.Vel
	}

	vComplete := run(NonLinearComplete)
	vOriginal := run(NonLinearOriginal)
	if vOriginal >= vComplete {
		t.Errorf("refined friction should slow the rail more: %f vs %f", vOriginal, vComplete)
	}
}

func TestParseModelType(t *testing.T) {
	cases := map[string]ModelType{
		"linear":             Linear,
		"constline":          NonLinearConstLine,
		"nonlinear_complete": NonLinearComplete,
		"ORIGINAL":           NonLinearOriginal,
	}
	for in, want := range cases {
		got, err := ParseModelType(in)
		if err != nil || got != want {
			t.Errorf("ParseModelType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseModelType("cubic"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestModelReset(t *testing.T) {
	m := New()
	m.Type = NonLinearComplete
	for i := 0; i < 50; i++ {
		m.UpdateFixed(0.01, 0.01, units.N(30), units.N(-20), units.N(-10))
	}

	m.Reset()
	s := m.GetState()
	if s.RailOffset != 0 || s.CartOffset != 0 || s.Alfa != 0 || s.Beta != 0 {
		t.Errorf("reset should zero the pose, got %v", s)
	}
	if s.LiftLine != DefaultLineLength {
		t.Errorf("reset should restore the line length, got %f", s.LiftLine)
	}
	if m.StepCount() != 0 {
		t.Errorf("reset should zero the step counter, got %d", m.StepCount())
	}
}
