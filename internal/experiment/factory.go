package experiment

import (
	"fmt"

	"github.com/san-kum/lipm/internal/config"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/sim"
	"go.uber.org/zap"
)

// Build constructs the simulator described by cfg with the default registry.
func Build(cfg *config.Config, logger *zap.Logger) (*sim.Simulator, error) {
	return NewRegistry().Build(cfg, logger)
}

// Build validates cfg and wires dynamics, policy and scenario together. Every
// configuration problem is reported here; a returned simulator does not fail
// on account of its configuration.
func (r *Registry) Build(cfg *config.Config, logger *zap.Logger) (*sim.Simulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrParameterBounds, err)
	}

	omega, err := dynamo.NaturalFrequency(cfg.G, cfg.H)
	if err != nil {
		return nil, err
	}

	dyn, err := r.GetDynamics(cfg.DynamicsType, omega, cfg.Dt)
	if err != nil {
		return nil, err
	}

	policy, err := r.GetPolicy(cfg.PolicyType, PolicyParams{
		Omega:     omega,
		UMin:      cfg.UMin,
		UMax:      cfg.UMax,
		TargetVel: cfg.TargetVel,
		Dynamics:  dyn,
	})
	if err != nil {
		return nil, err
	}

	s, err := sim.NewScenario(dyn, policy, cfg.Dt, sim.Scenario{
		UMin:     cfg.UMin,
		UMax:     cfg.UMax,
		PushProb: cfg.PushProb,
		Seed:     cfg.Seed,
	}, sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	s.X = cfg.InitialState()

	logger.Debug("simulator built",
		zap.String("dynamics", cfg.DynamicsType),
		zap.String("policy", cfg.PolicyType),
		zap.Float64("omega", omega),
		zap.Float64("dt", cfg.Dt),
		zap.Int64("seed", cfg.Seed))
	return s, nil
}

// SeededBuilder returns an ensemble builder that varies only the seed of cfg.
func SeededBuilder(cfg *config.Config, logger *zap.Logger) sim.Builder {
	return func(seed int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Seed = seed
		return Build(c, logger)
	}
}
