package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// FromMap builds a config from the flat option mapping
//
//	{g, h, dt, dynamics_type, policy_type, u_min, u_max, push_prob}
//
// plus the optional seed, target_vel, limit_factor, steps, init_p and init_v.
// Missing keys keep their defaults, so the mass starts at rest unless init_p
// or init_v say otherwise. Unknown keys are rejected.
func FromMap(m map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := cfg.Set(k, m[k]); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Set assigns one option by its flat name.
func (c *Config) Set(name string, value any) error {
	if name == "dynamics_type" || name == "policy_type" {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %s: expected string, got %T", name, value)
		}
		if name == "dynamics_type" {
			c.DynamicsType = s
		} else {
			c.PolicyType = s
		}
		return nil
	}

	if name == "seed" || name == "steps" {
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", name, err)
		}
		if name == "seed" {
			c.Seed = n
		} else {
			c.Steps = int(n)
		}
		return nil
	}

	f, err := toFloat(value)
	if err != nil {
		return fmt.Errorf("option %s: %w", name, err)
	}
	switch name {
	case "g":
		c.G = f
	case "h":
		c.H = f
	case "dt":
		c.Dt = f
	case "u_min":
		c.UMin = f
	case "u_max":
		c.UMax = f
	case "push_prob":
		c.PushProb = f
	case "target_vel":
		c.TargetVel = f
	case "limit_factor":
		c.LimitFactor = f
	case "init_p":
		c.InitState.P = f
	case "init_v":
		c.InitState.V = f
	default:
		return fmt.Errorf("unknown option: %s", name)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// toInt accepts integer types, integral floats and base-10 strings.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}
