package metrics

import "github.com/san-kum/cranesim/internal/crane"

// LimitDwell reports the fraction of samples with any axis pinned at a
// travel limit. A controller that rides the end-stops scores close to 1.
type LimitDwell struct {
	name    string
	model   *crane.Model
	pinned  int
	samples int
}

func NewLimitDwell(model *crane.Model) *LimitDwell {
	return &LimitDwell{name: "limit_dwell", model: model}
}

func (l *LimitDwell) Name() string { return l.name }

func (l *LimitDwell) Observe(s crane.ModelState, f crane.Forces, t float64) {
	l.samples++
	if s.RailOffset <= l.model.Rail.LimitMin || s.RailOffset >= l.model.Rail.LimitMax ||
		s.CartOffset <= l.model.Cart.LimitMin || s.CartOffset >= l.model.Cart.LimitMax ||
		s.LiftLine <= l.model.Line.LimitMin || s.LiftLine >= l.model.Line.LimitMax {
		l.pinned++
	}
}

func (l *LimitDwell) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.pinned) / float64(l.samples)
}

func (l *LimitDwell) Reset() {
	l.pinned = 0
	l.samples = 0
}
