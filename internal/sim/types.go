package sim

import (
	"fmt"

	"github.com/san-kum/cranesim/internal/crane"
)

// ForceSource produces the actuator commands for one tick, given the
// crane state the operator or controller can observe.
type ForceSource interface {
	Compute(s crane.ModelState, t float64) crane.Forces
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s crane.ModelState, f crane.Forces, t float64)
	Value() float64
	Reset()
}

// Observer is called once per fixed step with the state just produced.
type Observer interface {
	OnStep(s crane.ModelState, f crane.Forces, t float64)
}

// Config describes one run.
type Config struct {
	FixedStep float64
	Duration  float64
}

// Result collects the trajectory of a run.
type Result struct {
	States     []crane.ModelState
	Forces     []crane.Forces
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

func validate(cfg Config) error {
	if cfg.FixedStep <= 0 {
		return fmt.Errorf("fixed step must be positive, got %f", cfg.FixedStep)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
