package config

// Presets are ready-made scenarios for each dynamics variant.
var Presets = map[string]*Config{
	"lift": {
		Model: "linear", Controller: "manual", FixedStep: 0.01, Duration: 5.0,
		Forces: ForcesConfig{Wind: -5.0},
	},
	"traverse": {
		Model: "linear", Controller: "manual", FixedStep: 0.01, Duration: 8.0,
		Forces: ForcesConfig{Rail: 30.0},
	},
	"swing": {
		Model: "constline", Controller: "manual", FixedStep: 0.01, Duration: 15.0,
		Forces: ForcesConfig{Cart: 25.0},
	},
	"diagonal": {
		Model: "complete", Controller: "manual", FixedStep: 0.01, Duration: 15.0,
		Forces: ForcesConfig{Rail: 30.0, Cart: 25.0, Wind: -4.0},
	},
	"rig": {
		Model: "original", Controller: "manual", FixedStep: 0.01, Duration: 15.0,
		Forces: ForcesConfig{Rail: 40.0, Cart: 30.0},
	},
	"position": {
		Model: "complete", Controller: "pid", FixedStep: 0.01, Duration: 30.0,
		ControllerParams: ControllerConfig{
			Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd,
			RailTarget: 0.2, CartTarget: -0.15, LineTarget: 0.3,
			ForceMax: DefaultForceMax,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
