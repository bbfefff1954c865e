package control

import (
	"testing"

	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/units"
)

func TestNone(t *testing.T) {
	f := NewNone().Compute(crane.ModelState{RailOffset: 0.2}, 1.0)
	if f != (crane.Forces{}) {
		t.Errorf("none should command zero forces, got %+v", f)
	}
}

func TestManual(t *testing.T) {
	want := crane.Forces{Rail: units.N(5), Cart: units.N(-3), Wind: units.N(1)}
	m := NewManual(want)

	if got := m.Compute(crane.ModelState{}, 0); got != want {
		t.Errorf("manual should pass forces through, got %+v", got)
	}

	m.SetForces(crane.Forces{})
	if got := m.Compute(crane.ModelState{}, 1); got != (crane.Forces{}) {
		t.Errorf("expected zero forces after SetForces, got %+v", got)
	}
}

func TestPIDSign(t *testing.T) {
	p := NewPID(Gains{Kp: 10, Ki: 0.1, Kd: 5}, 0, 0, crane.DefaultLineLength, 0)

	// crane sitting past its targets on rail and cart
	s := crane.ModelState{RailOffset: 0.2, CartOffset: -0.1, LiftLine: crane.DefaultLineLength}
	f := p.Compute(s, 0)

	if f.Rail.Value >= 0 {
		t.Errorf("rail force should pull back toward target, got %f", f.Rail.Value)
	}
	if f.Cart.Value <= 0 {
		t.Errorf("cart force should push forward toward target, got %f", f.Cart.Value)
	}
	if f.Wind.Value != 0 {
		t.Errorf("line already on target, expected zero wind force, got %f", f.Wind.Value)
	}
}

func TestPIDForceLimit(t *testing.T) {
	p := NewPID(Gains{Kp: 1000}, 0, 0, 0.5, 20)

	f := p.Compute(crane.ModelState{RailOffset: 0.3, LiftLine: 0.5}, 0)
	if f.Rail.Value != -20 {
		t.Errorf("expected force clamped at -20 N, got %f", f.Rail.Value)
	}
}

func TestPIDSettlesCart(t *testing.T) {
	// closed loop against the real model: drive the cart to +0.2 m
	m := crane.New()
	m.Type = crane.NonLinearConstLine
	p := NewPID(Gains{Kp: 120, Ki: 4, Kd: 50}, 0, 0.2, crane.DefaultLineLength, 50)

	var s crane.ModelState
	s = m.GetState()
	for i := 0; i < 3000; i++ {
		f := p.Compute(s, float64(i)*0.01)
		s = m.UpdateFixed(0.01, 0.01, f.Rail, f.Cart, f.Wind)
	}

	if s.CartOffset < 0.15 || s.CartOffset > 0.25 {
		t.Errorf("cart should settle near +0.2 m, got %f", s.CartOffset)
	}
}
