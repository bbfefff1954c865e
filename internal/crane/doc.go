// Package crane implements the deterministic physics model of a 3-axis
// overhead crane: a trolley on a rail, a cart on the trolley, and a payload
// hanging from a winched lift-line as a spherical pendulum.
//
// Four dynamics variants share one state and one stepping loop:
//
//   - [Linear]: small-angle planar approximation, constant line length
//   - [NonLinearConstLine]: full spherical pendulum, constant line length
//   - [NonLinearComplete]: full dynamics with winch and payload reaction
//   - [NonLinearOriginal]: complete dynamics with smoothed friction
//
// # Stepping
//
// [Model.UpdateFixed] advances with fixed-size sub-steps so results are
// independent of the caller's frame rate:
//
//	m := crane.New()
//	state := m.UpdateFixed(0.01, frameTime, Frail, Fcart, Fwind)
//
// Angles are zero when the payload hangs at rest below the cart; Alfa tilts
// the line toward the cart axis, Beta toward the rail axis.
package crane
