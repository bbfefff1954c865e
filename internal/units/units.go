package units

import "math"

// Force in newtons. Force, Mass and Accel wrap a single float64 so that
// mixing quantities of different dimensions is a compile error; the only
// cross-type operations are the F = m*a family.
type Force struct{ Value float64 }

// Mass in kilograms.
type Mass struct{ Value float64 }

// Accel in m/s^2.
type Accel struct{ Value float64 }

func N(v float64) Force   { return Force{v} }
func Kg(v float64) Mass   { return Mass{v} }
func MS2(v float64) Accel { return Accel{v} }

func (f Force) Add(b Force) Force     { return Force{f.Value + b.Value} }
func (f Force) Sub(b Force) Force     { return Force{f.Value - b.Value} }
func (f Force) Neg() Force            { return Force{-f.Value} }
func (f Force) Scale(x float64) Force { return Force{f.Value * x} }
func (f Force) Abs() Force            { return Force{math.Abs(f.Value)} }
func (f Force) Sign() float64         { return Sign(f.Value) }
func (f Force) Gt(b Force) bool       { return f.Value > b.Value }

func (m Mass) Add(b Mass) Mass      { return Mass{m.Value + b.Value} }
func (m Mass) Scale(x float64) Mass { return Mass{m.Value * x} }

func (a Accel) Add(b Accel) Accel     { return Accel{a.Value + b.Value} }
func (a Accel) Sub(b Accel) Accel     { return Accel{a.Value - b.Value} }
func (a Accel) Neg() Accel            { return Accel{-a.Value} }
func (a Accel) Scale(x float64) Accel { return Accel{a.Value * x} }
func (a Accel) Abs() Accel            { return Accel{math.Abs(a.Value)} }
func (a Accel) Sign() float64         { return Sign(a.Value) }

// Mul implements F = m*a.
func (m Mass) Mul(a Accel) Force { return Force{m.Value * a.Value} }

// Mul implements F = a*m.
func (a Accel) Mul(m Mass) Force { return Force{a.Value * m.Value} }

// Div implements a = F/m.
func (f Force) Div(m Mass) Accel { return Accel{f.Value / m.Value} }

func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Vec3 is a plain cartesian triple, used for payload coordinates.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(b Vec3) Vec3 {
	return Vec3{v.X + b.X, v.Y + b.Y, v.Z + b.Z}
}

func (v Vec3) Sub(b Vec3) Vec3 {
	return Vec3{v.X - b.X, v.Y - b.Y, v.Z - b.Z}
}

func (v Vec3) Scale(x float64) Vec3 {
	return Vec3{v.X * x, v.Y * x, v.Z * x}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
