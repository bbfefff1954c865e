package crane

import (
	"fmt"

	"github.com/san-kum/cranesim/internal/units"
)

// ModelState is the output snapshot of the crane: swing angles, axis
// offsets and the derived payload coordinates. It is pure data, recomputed
// fresh on every read and never retained by the model.
type ModelState struct {
	Alfa float64 // pendulum swing toward the cart (Y) axis, radians
	Beta float64 // pendulum swing toward the rail (X) axis, radians

	RailOffset float64 // Xw distance of the rail from the frame center
	CartOffset float64 // Yw distance of the cart from the rail center
	LiftLine   float64 // R lift-line length

	PayloadX float64
	PayloadY float64
	PayloadZ float64
}

// PayloadPos returns the payload coordinates as a vector.
func (s ModelState) PayloadPos() units.Vec3 {
	return units.Vec3{X: s.PayloadX, Y: s.PayloadY, Z: s.PayloadZ}
}

func (s ModelState) String() string {
	return fmt.Sprintf(
		"alfa %+.4f rad  beta %+.4f rad\n"+
			"rail %+.4f m  cart %+.4f m  line %.4f m\n"+
			"payload (%+.4f, %+.4f, %+.4f) m",
		s.Alfa, s.Beta,
		s.RailOffset, s.CartOffset, s.LiftLine,
		s.PayloadX, s.PayloadY, s.PayloadZ)
}
