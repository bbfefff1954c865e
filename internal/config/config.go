package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/units"
)

const (
	DefaultFixedStep = 0.01
	DefaultDuration  = 10.0
	DefaultKp        = 120.0
	DefaultKi        = 4.0
	DefaultKd        = 50.0
	DefaultForceMax  = 50.0
)

// Config describes one crane run: which dynamics variant, the physical
// parameters to override, the controller, and the force profile for
// open-loop runs.
type Config struct {
	Model      string  `yaml:"model"` // linear | constline | complete | original
	FixedStep  float64 `yaml:"fixed_step"`
	Duration   float64 `yaml:"duration"`
	Controller string  `yaml:"controller"` // none | manual | pid

	Crane            CraneConfig      `yaml:"crane"`
	Forces           ForcesConfig     `yaml:"forces"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
}

// CraneConfig overrides the reference rig parameters; zero values keep the
// model defaults.
type CraneConfig struct {
	PayloadMass float64 `yaml:"payload_mass"`
	CartMass    float64 `yaml:"cart_mass"`
	RailMass    float64 `yaml:"rail_mass"`
	Gravity     float64 `yaml:"gravity"`

	RailFriction    float64 `yaml:"rail_friction"`
	CartFriction    float64 `yaml:"cart_friction"`
	WindingFriction float64 `yaml:"winding_friction"`

	RailLimit  [2]float64 `yaml:"rail_limit"`
	CartLimit  [2]float64 `yaml:"cart_limit"`
	LineLimit  [2]float64 `yaml:"line_limit"`
	LineLength float64    `yaml:"line_length"`
}

// ForcesConfig is the constant force profile for open-loop (manual) runs.
type ForcesConfig struct {
	Rail float64 `yaml:"rail"`
	Cart float64 `yaml:"cart"`
	Wind float64 `yaml:"wind"`
}

// ControllerConfig holds PID parameters.
type ControllerConfig struct {
	Kp         float64 `yaml:"kp"`
	Ki         float64 `yaml:"ki"`
	Kd         float64 `yaml:"kd"`
	RailTarget float64 `yaml:"rail_target"`
	CartTarget float64 `yaml:"cart_target"`
	LineTarget float64 `yaml:"line_target"`
	ForceMax   float64 `yaml:"force_max"`
}

func Default() *Config {
	return &Config{
		Model:      "linear",
		FixedStep:  DefaultFixedStep,
		Duration:   DefaultDuration,
		Controller: "manual",
		ControllerParams: ControllerConfig{
			Kp:         DefaultKp,
			Ki:         DefaultKi,
			Kd:         DefaultKd,
			LineTarget: crane.DefaultLineLength,
			ForceMax:   DefaultForceMax,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildModel constructs a crane model from the config: the named dynamics
// variant with any non-zero parameter overrides applied.
func (c *Config) BuildModel() (*crane.Model, error) {
	typ, err := crane.ParseModelType(c.Model)
	if err != nil {
		return nil, err
	}

	m := crane.New()
	m.Type = typ

	cc := c.Crane
	if cc.PayloadMass > 0 {
		m.Mpayload = units.Kg(cc.PayloadMass)
	}
	if cc.CartMass > 0 {
		m.Mcart = units.Kg(cc.CartMass)
	}
	if cc.RailMass > 0 {
		m.Mrail = units.Kg(cc.RailMass)
	}
	if cc.Gravity > 0 {
		m.G = units.MS2(cc.Gravity)
	}
	if cc.RailFriction > 0 {
		m.RailFriction = cc.RailFriction
	}
	if cc.CartFriction > 0 {
		m.CartFriction = cc.CartFriction
	}
	if cc.WindingFriction > 0 {
		m.WindingFriction = cc.WindingFriction
	}
	if cc.RailLimit != [2]float64{} {
		m.Rail.SetLimits(cc.RailLimit[0], cc.RailLimit[1])
	}
	if cc.CartLimit != [2]float64{} {
		m.Cart.SetLimits(cc.CartLimit[0], cc.CartLimit[1])
	}
	if cc.LineLimit != [2]float64{} {
		m.Line.SetLimits(cc.LineLimit[0], cc.LineLimit[1])
	}
	if cc.LineLength > 0 {
		m.Line.Pos = cc.LineLength
	}
	return m, nil
}

// ForceProfile returns the configured constant forces.
func (c *Config) ForceProfile() crane.Forces {
	return crane.Forces{
		Rail: units.N(c.Forces.Rail),
		Cart: units.N(c.Forces.Cart),
		Wind: units.N(c.Forces.Wind),
	}
}
