package config

import "sort"

var Presets = map[string]*Config{
	"demo": {
		G: 9.81, H: 0.6, Dt: 0.01, DynamicsType: "continuous", PolicyType: "least_square",
		UMin: -0.3, UMax: 0.3, PushProb: 0.1, Seed: 42, LimitFactor: 1.2, Steps: 2000,
		InitState: InitStateConfig{P: 0.1},
	},
	"calm": {
		G: 9.81, H: 0.6, Dt: 0.01, DynamicsType: "discrete", PolicyType: "capture_point",
		UMin: -0.3, UMax: 0.3, PushProb: 0, Seed: 42, LimitFactor: 1.2, Steps: 1000,
		InitState: InitStateConfig{P: 0.1},
	},
	"stormy": {
		G: 9.81, H: 0.6, Dt: 0.01, DynamicsType: "discrete", PolicyType: "capture_point",
		UMin: -0.3, UMax: 0.3, PushProb: 0.5, Seed: 42, LimitFactor: 1.2, Steps: 2000,
		InitState: InitStateConfig{P: 0.0},
	},
	"walk": {
		G: 9.81, H: 0.8, Dt: 0.005, DynamicsType: "discrete", PolicyType: "least_square",
		UMin: -0.4, UMax: 0.4, PushProb: 0.05, Seed: 7, TargetVel: 0.3, LimitFactor: 1.3, Steps: 4000,
		InitState: InitStateConfig{P: 0.0},
	},
	"coarse": {
		G: 9.81, H: 0.6, Dt: 0.05, DynamicsType: "continuous", PolicyType: "capture_point",
		UMin: -0.3, UMax: 0.3, PushProb: 0, Seed: 42, LimitFactor: 1.2, Steps: 400,
		InitState: InitStateConfig{P: 0.1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := cfg.Clone()
	cp.Log = DefaultConfig().Log
	return cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
