package sim

import (
	"context"
	"testing"

	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/units"
)

type constantSource struct {
	f crane.Forces
}

func (c *constantSource) Compute(s crane.ModelState, t float64) crane.Forces {
	return c.f
}

type countMetric struct {
	n int
}

func (c *countMetric) Name() string                                          { return "count" }
func (c *countMetric) Observe(s crane.ModelState, f crane.Forces, t float64) { c.n++ }
func (c *countMetric) Value() float64                                        { return float64(c.n) }
func (c *countMetric) Reset()                                                { c.n = 0 }

func TestRunnerRun(t *testing.T) {
	m := crane.New()
	src := &constantSource{f: crane.Forces{Rail: units.N(30)}}
	r := New(m, src)

	metric := &countMetric{n: 99} // Run must Reset before observing
	r.AddMetric(metric)

	result, err := r.Run(context.Background(), Config{FixedStep: 0.01, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.States) != 101 || len(result.Times) != 101 {
		t.Errorf("expected 101 samples, got %d states %d times", len(result.States), len(result.Times))
	}
	if result.Metrics["count"] != 100 {
		t.Errorf("metric should observe every step after reset, got %f", result.Metrics["count"])
	}

	final := result.States[len(result.States)-1]
	if final.RailOffset <= 0 {
		t.Errorf("constant +30 N on the rail should move it forward, got %f", final.RailOffset)
	}
}

func TestRunnerStepRounding(t *testing.T) {
	// 0.3/0.1 is 2.999... in float64; the run must not drop the last tick
	r := New(crane.New(), &constantSource{})

	result, err := r.Run(context.Background(), Config{FixedStep: 0.1, Duration: 0.3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 3 {
		t.Errorf("expected 3 steps, got %d", result.StepsTaken)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(crane.New(), &constantSource{})

	cases := []Config{
		{FixedStep: 0, Duration: 1},
		{FixedStep: -0.01, Duration: 1},
		{FixedStep: 0.01, Duration: 0},
	}
	for _, cfg := range cases {
		if _, err := r.Run(context.Background(), cfg); err == nil {
			t.Errorf("expected error for config %+v", cfg)
		}
	}
}

func TestRunnerCancel(t *testing.T) {
	r := New(crane.New(), &constantSource{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{FixedStep: 0.01, Duration: 10})
	if err == nil {
		t.Error("expected context error")
	}
	if result == nil || result.StepsTaken != 0 {
		t.Error("canceled run should return the partial result")
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	r := New(crane.New(), &constantSource{})

	calls := 0
	err := r.RunWithCallback(context.Background(), Config{FixedStep: 0.01, Duration: 10},
		func(s crane.ModelState, f crane.Forces, t float64) bool {
			calls++
			return calls < 5
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks before stop, got %d", calls)
	}
}
