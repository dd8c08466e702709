package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/lipm/internal/dynamo"
	"go.uber.org/zap"
)

// DefaultKick is the largest velocity change a random push applies.
const DefaultKick = 0.5

// ConstraintFunc maps the policy's raw control to the applied control.
type ConstraintFunc func(u float64) float64

// DisturbanceFunc perturbs the propagated state before it is committed.
type DisturbanceFunc func(x dynamo.State) dynamo.State

func identityControl(u float64) float64 { return u }

func identityState(x dynamo.State) dynamo.State { return x }

// Clamp limits the control to [lo, hi].
func Clamp(lo, hi float64) ConstraintFunc {
	return func(u float64) float64 {
		return math.Min(math.Max(u, lo), hi)
	}
}

// RandomPush draws one sample from rng per call; below prob, a second sample
// gives a velocity kick uniform in [-magnitude, magnitude). onPush, if set,
// sees every applied kick.
func RandomPush(rng *rand.Rand, prob, magnitude float64, onPush func(kick float64)) DisturbanceFunc {
	return func(x dynamo.State) dynamo.State {
		if rng.Float64() < prob {
			kick := (rng.Float64() - 0.5) * 2 * magnitude
			x[1] += kick
			if onPush != nil {
				onPush(kick)
			}
		}
		return x
	}
}

type Option func(*Simulator)

func WithConstraint(f ConstraintFunc) Option {
	return func(s *Simulator) { s.constrain = f }
}

func WithDisturbance(f DisturbanceFunc) Option {
	return func(s *Simulator) { s.disturb = f }
}

// WithBounds records the control range and clamps to it.
func WithBounds(lo, hi float64) Option {
	return func(s *Simulator) {
		s.uMin, s.uMax = lo, hi
		s.constrain = Clamp(lo, hi)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l.Named("sim")
		}
	}
}

// Simulator steps the LIPM: policy, constraint, dynamics, disturbance,
// observers, commit. It is single-threaded.
type Simulator struct {
	// X and T may be overwritten between steps to reset or drive the run.
	X dynamo.State
	T float64

	dyn       dynamo.Dynamics
	policy    dynamo.Policy
	dt        float64
	uMin      float64
	uMax      float64
	constrain ConstraintFunc
	disturb   DisturbanceFunc
	observers []dynamo.Observer
	steps     int
	pushes    int
	logger    *zap.Logger
}

func New(dyn dynamo.Dynamics, policy dynamo.Policy, dt float64, opts ...Option) (*Simulator, error) {
	if dyn == nil || policy == nil {
		return nil, fmt.Errorf("%w: dynamics and policy are required", dynamo.ErrParameterBounds)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: dt=%v must be positive", dynamo.ErrParameterBounds, dt)
	}

	s := &Simulator{
		dyn:       dyn,
		policy:    policy,
		dt:        dt,
		uMin:      math.Inf(-1),
		uMax:      math.Inf(1),
		constrain: identityControl,
		disturb:   identityState,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scenario is the constrained, randomly pushed configuration.
type Scenario struct {
	UMin     float64
	UMax     float64
	PushProb float64
	Seed     int64
	// Kick is the largest velocity change of a push. Zero selects
	// DefaultKick; use PushProb 0 to disable pushes. Negative is invalid.
	Kick float64
}

// NewScenario builds a simulator that clamps control to [UMin, UMax] and
// pushes the mass with probability PushProb per step. The push generator is
// owned by the simulator and seeded once, so runs are reproducible per seed.
func NewScenario(dyn dynamo.Dynamics, policy dynamo.Policy, dt float64, sc Scenario, opts ...Option) (*Simulator, error) {
	if sc.UMin > sc.UMax {
		return nil, fmt.Errorf("%w: u_min=%v exceeds u_max=%v", dynamo.ErrParameterBounds, sc.UMin, sc.UMax)
	}
	if !(sc.PushProb >= 0 && sc.PushProb <= 1) {
		return nil, fmt.Errorf("%w: push_prob=%v must be in [0, 1]", dynamo.ErrParameterBounds, sc.PushProb)
	}
	if !(sc.Kick >= 0) || math.IsInf(sc.Kick, 0) {
		return nil, fmt.Errorf("%w: kick=%v must be non-negative", dynamo.ErrParameterBounds, sc.Kick)
	}
	kick := sc.Kick
	if kick == 0 {
		kick = DefaultKick
	}

	s, err := New(dyn, policy, dt, append([]Option{WithBounds(sc.UMin, sc.UMax)}, opts...)...)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	s.disturb = RandomPush(rng, sc.PushProb, kick, s.recordPush)
	return s, nil
}

func (s *Simulator) recordPush(kick float64) {
	s.pushes++
	s.logger.Debug("push applied",
		zap.Int("step", s.steps),
		zap.Float64("t", s.T),
		zap.Float64("kick", kick))
}

// Attach appends an observer. Observers are notified in attachment order.
func (s *Simulator) Attach(o dynamo.Observer) {
	s.observers = append(s.observers, o)
}

// Step advances the simulation by dt. Observer errors abort the step without
// committing it.
func (s *Simulator) Step() error {
	u := s.constrain(s.policy.Compute(s.X, s.T))
	next := s.disturb(s.dyn.Propagate(s.X, u, s.dt))

	if !next.IsValid() {
		return &dynamo.SimulationError{Step: s.steps, Time: s.T, State: s.X, Wrapped: dynamo.ErrInvalidState}
	}

	r := dynamo.Record{T: s.T, X: s.X, U: u, XNext: next}
	for _, o := range s.observers {
		if err := o.Update(r); err != nil {
			return &dynamo.SimulationError{Step: s.steps, Time: s.T, State: s.X, Wrapped: err}
		}
	}

	s.X = next
	s.T += s.dt
	s.steps++
	return nil
}

// Run calls Step n times, stopping at the first error.
func (s *Simulator) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset puts the mass at x and the clock at zero. Counters and observers are kept.
func (s *Simulator) Reset(x dynamo.State) {
	s.X = x
	s.T = 0
}

func (s *Simulator) Dt() float64 { return s.dt }

func (s *Simulator) UMin() float64 { return s.uMin }

func (s *Simulator) UMax() float64 { return s.uMax }

func (s *Simulator) Policy() dynamo.Policy { return s.policy }

func (s *Simulator) Dynamics() dynamo.Dynamics { return s.dyn }

// Steps is the number of completed steps.
func (s *Simulator) Steps() int { return s.steps }

// Pushes is the number of random pushes applied so far.
func (s *Simulator) Pushes() int { return s.pushes }

// Control returns the control the next step would apply from the current
// state, without stepping.
func (s *Simulator) Control() float64 {
	return s.constrain(s.policy.Compute(s.X, s.T))
}
