package sim

import (
	"context"

	"github.com/san-kum/cranesim/internal/crane"
)

// Runner drives a crane model through a fixed-step run: each tick it asks
// the force source for commands, advances the model one fixed step and
// feeds metrics and observers. The model is owned by the caller; Runner
// never copies or resets it.
type Runner struct {
	model     *crane.Model
	source    ForceSource
	metrics   []Metric
	observers []Observer
}

func New(model *crane.Model, source ForceSource) *Runner {
	return &Runner{
		model:  model,
		source: source,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes a full run and collects the trajectory.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	// 10.0/0.01 truncates to 999 in float64, so round to the nearest tick
	steps := int(cfg.Duration/cfg.FixedStep + 0.5)
	result := &Result{
		States:  make([]crane.ModelState, 0, steps+1),
		Forces:  make([]crane.Forces, 0, steps),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	state := r.model.GetState()
	t := 0.0
	result.States = append(result.States, state)
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f := r.source.Compute(state, t)

		for _, m := range r.metrics {
			m.Observe(state, f, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(state, f, t)
		}

		state = r.model.UpdateFixed(cfg.FixedStep, cfg.FixedStep, f.Rail, f.Cart, f.Wind)
		t += cfg.FixedStep
		result.StepsTaken++

		result.States = append(result.States, state)
		result.Forces = append(result.Forces, f)
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the model and hands each state to the callback
// without retaining the trajectory. Returning false stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(s crane.ModelState, f crane.Forces, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	state := r.model.GetState()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := r.source.Compute(state, t)
		if !callback(state, f, t) {
			return nil
		}

		state = r.model.UpdateFixed(cfg.FixedStep, cfg.FixedStep, f.Rail, f.Cart, f.Wind)
		t += cfg.FixedStep
	}

	return nil
}
