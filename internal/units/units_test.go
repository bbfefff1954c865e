package units

import (
	"math"
	"testing"
)

func TestForceMassAccelRelation(t *testing.T) {
	m := Kg(2.5)
	a := MS2(4.0)

	f := m.Mul(a)
	if math.Abs(f.Value-10.0) > 1e-12 {
		t.Errorf("expected 10 N, got %f", f.Value)
	}

	f2 := a.Mul(m)
	if f2 != f {
		t.Errorf("m*a and a*m disagree: %v vs %v", f, f2)
	}

	back := f.Div(m)
	if math.Abs(back.Value-a.Value) > 1e-12 {
		t.Errorf("expected %f m/s^2, got %f", a.Value, back.Value)
	}
}

func TestForceArithmetic(t *testing.T) {
	f := N(3.0).Add(N(-5.0))
	if f.Value != -2.0 {
		t.Errorf("expected -2, got %f", f.Value)
	}
	if f.Abs().Value != 2.0 {
		t.Errorf("expected 2, got %f", f.Abs().Value)
	}
	if f.Sign() != -1 {
		t.Errorf("expected sign -1, got %f", f.Sign())
	}
	if f.Neg().Value != 2.0 {
		t.Errorf("expected 2, got %f", f.Neg().Value)
	}
	if !N(1).Gt(N(0.5)) {
		t.Error("1 N should compare greater than 0.5 N")
	}
	scaled := f.Scale(0.5)
	if scaled.Value != -1.0 {
		t.Errorf("expected -1, got %f", scaled.Value)
	}
}

func TestSign(t *testing.T) {
	if Sign(0) != 0 || Sign(1e-300) != 1 || Sign(-3) != -1 {
		t.Error("sign convention broken")
	}
}

func TestIntegrateConstantAcceleration(t *testing.T) {
	// x(t) = 0.5*a*t^2 under constant acceleration from rest;
	// velocity Verlet reproduces this exactly.
	a := MS2(2.0)
	dt := 0.01
	x, v := 0.0, 0.0
	for i := 0; i < 100; i++ {
		x = IntegratePos(x, v, a, dt)
		v = IntegrateVelocity(v, a, dt)
	}
	want := 0.5 * 2.0 * 1.0 * 1.0
	if math.Abs(x-want) > 1e-9 {
		t.Errorf("expected x=%f after 1s, got %f", want, x)
	}
	if math.Abs(v-2.0) > 1e-9 {
		t.Errorf("expected v=2 after 1s, got %f", v)
	}
}

func TestAverageVelocity(t *testing.T) {
	v := AverageVelocity(1.0, 1.5, 0.25)
	if math.Abs(v-2.0) > 1e-12 {
		t.Errorf("expected 2, got %f", v)
	}
}

func TestVec3(t *testing.T) {
	v := Vec3{1, 2, 2}.Add(Vec3{0, 0, 1})
	if v.Norm() != math.Sqrt(1+4+9) {
		t.Errorf("unexpected norm %f", v.Norm())
	}
	d := v.Sub(Vec3{1, 2, 3})
	if d != (Vec3{}) {
		t.Errorf("expected zero vector, got %v", d)
	}
}
