package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/san-kum/lipm/internal/config"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/experiment"
	"github.com/san-kum/lipm/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs sharing one base configuration.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides flat config options for one run.
type ScenarioStep struct {
	Name        string         `yaml:"name"`
	Steps       int            `yaml:"steps"`
	Overrides   map[string]any `yaml:"overrides"`
	ResetOnFall bool           `yaml:"reset_on_fall"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every step in order and stops at the first failure.
func RunScenario(ctx context.Context, base *config.Config, scenario *Scenario, logger *zap.Logger) ([]*experiment.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scenario")
	reports := make([]*experiment.Report, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := base.Clone()
		for k, v := range step.Overrides {
			if err := cfg.Set(k, v); err != nil {
				return reports, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		steps := step.Steps
		if steps == 0 {
			steps = cfg.Steps
		}

		opts := []experiment.Option{experiment.WithLogger(logger)}
		if step.ResetOnFall {
			opts = append(opts, experiment.WithResetOnFall())
		}
		exp, err := experiment.New(cfg, opts...)
		if err != nil {
			return reports, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		logger.Info("running step", zap.Int("step", i+1), zap.Int("of", len(scenario.Steps)), zap.String("name", step.Name))
		report, err := exp.Run(ctx, steps)
		if err != nil {
			return reports, fmt.Errorf("step %d run: %w", i+1, err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// ParameterSweep varies one flat config option over an evenly spaced range.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	// RunsPerValue seeded runs are averaged at each value.
	RunsPerValue int
	Steps        int
}

type SweepResult struct {
	ParamValue float64
	// FallRate is the fraction of runs that fell at least once.
	FallRate   float64
	MeanFalls  float64
	MeanPushes float64
	MaxAbsV    float64
}

// RunSweep runs an ensemble at each parameter value. Seeds start at the base
// config's seed for every value, so values are compared on the same pushes.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep, logger *zap.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one value, got %d", sweep.NumSteps)
	}
	runs := max(sweep.RunsPerValue, 1)

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.ParamMin
		if sweep.NumSteps > 1 {
			value += float64(i) * (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
		}

		cfg := base.Clone()
		if err := cfg.Set(sweep.ParamName, value); err != nil {
			return nil, err
		}
		if _, err := experiment.Build(cfg, nil); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, value, err)
		}

		ens := sim.NewEnsemble(experiment.SeededBuilder(cfg, nil), runs, cfg.Seed, cfg.H, cfg.LimitFactor)
		outcomes, err := ens.Run(ctx, sweep.Steps)
		if err != nil {
			return nil, err
		}

		r := SweepResult{
			ParamValue: value,
			FallRate:   sim.FallRate(outcomes),
			MeanFalls:  sim.MeanFalls(outcomes),
		}
		for _, o := range outcomes {
			r.MeanPushes += float64(o.Pushes)
			r.MaxAbsV = max(r.MaxAbsV, o.MaxAbsV)
		}
		r.MeanPushes /= float64(len(outcomes))
		results = append(results, r)

		logger.Debug("sweep value done",
			zap.Int("index", i+1),
			zap.String("param", sweep.ParamName),
			zap.Float64("value", value),
			zap.Float64("fall_rate", r.FallRate))
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial state uniformly by up to
// Perturbation in each component.
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Steps        int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID   int
	InitState dynamo.State
	Final     dynamo.State
	Falls     int
	// Stable is true when the trial never fell.
	Stable bool
}

// RunMonteCarlo runs NumTrials experiments from perturbed initial states.
// Push disturbances keep the base config's seed in every trial.
func RunMonteCarlo(ctx context.Context, base *config.Config, mc *MonteCarloConfig, logger *zap.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("montecarlo")
	rng := rand.New(rand.NewSource(mc.Seed))
	results := make([]MonteCarloResult, 0, mc.NumTrials)

	for trial := 0; trial < mc.NumTrials; trial++ {
		cfg := base.Clone()
		cfg.InitState.P += (rng.Float64() - 0.5) * 2 * mc.Perturbation
		cfg.InitState.V += (rng.Float64() - 0.5) * 2 * mc.Perturbation

		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, err
		}
		report, err := exp.Run(ctx, mc.Steps)
		if err != nil {
			return nil, err
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			InitState: cfg.InitialState(),
			Final:     report.Final,
			Falls:     report.Falls,
			Stable:    report.Falls == 0,
		})

		if (trial+1)%10 == 0 {
			logger.Info("trials complete", zap.Int("done", trial+1), zap.Int("total", mc.NumTrials))
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
