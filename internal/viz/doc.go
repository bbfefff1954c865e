// Package viz provides the terminal live view of the crane rig.
//
// The view is an interactive Bubble Tea program drawing on a Braille-based
// pixel canvas:
//
//   - [Model]: the live application, stepping physics at wall-clock rate
//   - [Canvas]: Braille pixel canvas with crane drawing primitives
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset rig and forces
//	←→↑↓  - Drive rail and cart (5 N per press)
//	W/S   - Winch reel in / pay out
//	1-4   - Switch dynamics variant
//	V     - Toggle side / top-down projection
//	?     - Show help overlay
package viz
