package units

// IntegrateVelocity advances a velocity by one step:
// v = v0 + a*dt
func IntegrateVelocity(v0 float64, a Accel, dt float64) float64 {
	return v0 + a.Value*dt
}

// IntegratePos advances a position using velocity Verlet:
// x = x0 + (v0 + v1)*dt*0.5
// Second-order accurate for constant or slowly varying acceleration.
func IntegratePos(x0, v0 float64, a Accel, dt float64) float64 {
	v1 := v0 + a.Value*dt
	return x0 + (v0+v1)*dt*0.5
}

// AverageVelocity over one step: (x2 - x1) / dt
func AverageVelocity(x1, x2, dt float64) float64 {
	return (x2 - x1) / dt
}
