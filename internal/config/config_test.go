package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 9.81, cfg.G)
	assert.Equal(t, 0.6, cfg.H)
	assert.Equal(t, "continuous", cfg.DynamicsType)
	assert.Equal(t, "least_square", cfg.PolicyType)
	assert.Zero(t, cfg.PushProb)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, [2]float64{}, cfg.InitialState())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero height", func(c *Config) { c.H = 0 }},
		{"negative gravity", func(c *Config) { c.G = -9.81 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"inverted bounds", func(c *Config) { c.UMin, c.UMax = 0.5, -0.5 }},
		{"push above one", func(c *Config) { c.PushProb = 1.5 }},
		{"negative push", func(c *Config) { c.PushProb = -0.1 }},
		{"zero limit factor", func(c *Config) { c.LimitFactor = 0 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lipm.yaml")
	cfg := GetPreset("walk")
	require.NotNil(t, cfg)

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, writeFile(path, "h: 0.9\npolicy_type: capture_point\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.H)
	assert.Equal(t, "capture_point", cfg.PolicyType)
	assert.Equal(t, DefaultG, cfg.G)
	assert.Equal(t, DefaultDt, cfg.Dt)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeFile(path, "h: [not a number\n"))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"g":             9.81,
		"h":             1,
		"dt":            float32(0.01),
		"dynamics_type": "discrete",
		"policy_type":   "capture_point",
		"u_min":         -0.3,
		"u_max":         int64(1),
		"push_prob":     0.2,
		"seed":          7,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.H)
	assert.InDelta(t, 0.01, cfg.Dt, 1e-9)
	assert.Equal(t, "discrete", cfg.DynamicsType)
	assert.Equal(t, "capture_point", cfg.PolicyType)
	assert.Equal(t, 1.0, cfg.UMax)
	assert.Equal(t, 0.2, cfg.PushProb)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestFromMapDefaultsPushProbToZero(t *testing.T) {
	cfg, err := FromMap(map[string]any{"h": 0.6})
	require.NoError(t, err)
	assert.Zero(t, cfg.PushProb)
}

func TestFromMapErrors(t *testing.T) {
	_, err := FromMap(map[string]any{"mass": 1.0})
	assert.ErrorContains(t, err, "unknown option")

	_, err = FromMap(map[string]any{"h": true})
	assert.Error(t, err)

	_, err = FromMap(map[string]any{"dynamics_type": 3})
	assert.Error(t, err)
}

func TestSetAcceptsNumericStrings(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Set("push_prob", "0.25"))
	assert.Equal(t, 0.25, cfg.PushProb)
}

func TestFromMapStartsAtRest(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"g":             9.81,
		"h":             0.6,
		"dt":            0.01,
		"dynamics_type": "discrete",
		"policy_type":   "least_square",
		"u_min":         -0.3,
		"u_max":         0.3,
		"push_prob":     0,
	})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{}, cfg.InitialState())
}

func TestSetIntegerOptions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
	}{
		{"int", 7, 7},
		{"int64 above float precision", int64(1<<53 + 1), 1<<53 + 1},
		{"uint64", uint64(9), 9},
		{"integral float", 12.0, 12},
		{"string", "9007199254740993", 9007199254740993},
		{"negative string", "-3", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Set("seed", tt.value))
			assert.Equal(t, tt.want, cfg.Seed)
		})
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.Set("steps", "250"))
	assert.Equal(t, 250, cfg.Steps)
}

func TestSetRejectsNonIntegers(t *testing.T) {
	for _, value := range []any{1.5, "2.5", "abc", float32(0.25), uint64(1 << 63), 1e300, true} {
		cfg := DefaultConfig()
		assert.Error(t, cfg.Set("seed", value), "seed=%v", value)
		assert.Equal(t, int64(42), cfg.Seed, "failed Set must not change seed")
	}

	cfg := DefaultConfig()
	assert.Error(t, cfg.Set("steps", 10.5))
	assert.Equal(t, DefaultSteps, cfg.Steps)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("demo")
	require.NotNil(t, cfg)
	assert.Equal(t, 0.1, cfg.PushProb)
	assert.NoError(t, cfg.Validate())

	cfg.H = 99
	assert.NotEqual(t, 99.0, GetPreset("demo").H, "preset must be copied")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
