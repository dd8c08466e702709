package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultG           = 9.81
	DefaultH           = 0.6
	DefaultDt          = 0.01
	DefaultDynamics    = "continuous"
	DefaultPolicy      = "least_square"
	DefaultUMin        = -0.3
	DefaultUMax        = 0.3
	DefaultSeed        = 42
	DefaultLimitFactor = 1.2
	DefaultSteps       = 1000
)

type Config struct {
	G            float64         `yaml:"g"`
	H            float64         `yaml:"h"`
	Dt           float64         `yaml:"dt"`
	DynamicsType string          `yaml:"dynamics_type"`
	PolicyType   string          `yaml:"policy_type"`
	UMin         float64         `yaml:"u_min"`
	UMax         float64         `yaml:"u_max"`
	PushProb     float64         `yaml:"push_prob"`
	Seed         int64           `yaml:"seed"`
	TargetVel    float64         `yaml:"target_vel"`
	LimitFactor  float64         `yaml:"limit_factor"`
	Steps        int             `yaml:"steps"`
	InitState    InitStateConfig `yaml:"init_state"`
	Log          LogConfig       `yaml:"log"`
}

// InitStateConfig is the (p, v) a built simulator starts from. The zero
// value is the mass at rest over the origin.
type InitStateConfig struct {
	P float64 `yaml:"p"`
	V float64 `yaml:"v"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File, when set, receives JSON logs rotated at MaxSizeMB.
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		G:            DefaultG,
		H:            DefaultH,
		Dt:           DefaultDt,
		DynamicsType: DefaultDynamics,
		PolicyType:   DefaultPolicy,
		UMin:         DefaultUMin,
		UMax:         DefaultUMax,
		Seed:         DefaultSeed,
		LimitFactor:  DefaultLimitFactor,
		Steps:        DefaultSteps,
		Log:          LogConfig{Level: "info", Format: "console"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks numeric ranges. Dynamics and policy names are checked by
// the factory, which owns the set of known variants.
func (c *Config) Validate() error {
	switch {
	case !(c.H > 0):
		return fmt.Errorf("h must be positive, got %v", c.H)
	case !(c.G/c.H > 0) || math.IsInf(c.G/c.H, 0):
		return fmt.Errorf("g/h must be positive, got g=%v h=%v", c.G, c.H)
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	case c.UMin > c.UMax:
		return fmt.Errorf("u_min (%v) must not exceed u_max (%v)", c.UMin, c.UMax)
	case !(c.PushProb >= 0 && c.PushProb <= 1):
		return fmt.Errorf("push_prob must be in [0, 1], got %v", c.PushProb)
	case !(c.LimitFactor > 0):
		return fmt.Errorf("limit_factor must be positive, got %v", c.LimitFactor)
	case c.Steps < 0:
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	return nil
}

// InitialState returns the configured (p, v).
func (c *Config) InitialState() [2]float64 {
	return [2]float64{c.InitState.P, c.InitState.V}
}
