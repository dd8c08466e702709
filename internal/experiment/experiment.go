package experiment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/lipm/internal/config"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/observers"
	"github.com/san-kum/lipm/internal/sim"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/san-kum/lipm/internal/experiment"

type options struct {
	logger      *zap.Logger
	registerer  prometheus.Registerer
	tracer      trace.TracerProvider
	observers   []dynamo.Observer
	resetOnFall bool
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer mirrors the run into prometheus collectors registered on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

// WithObserver attaches o after the built-in observers.
func WithObserver(o dynamo.Observer) Option {
	return func(opts *options) { opts.observers = append(opts.observers, o) }
}

// WithResetOnFall puts the mass back at rest at the origin, with the clock
// at zero, after every step flagged as a fall.
func WithResetOnFall() Option {
	return func(o *options) { o.resetOnFall = true }
}

// Experiment is one configured, observed run.
type Experiment struct {
	ID     string
	Config *config.Config

	Log    *observers.StateLogger
	Falls  *observers.FallDetector
	Effort *observers.ControlEffort
	Energy *observers.EnergyDrift

	sim         *sim.Simulator
	logger      *zap.Logger
	tracer      trace.Tracer
	resetOnFall bool
	resets      int
	maxAbsV     float64
}

// Report is the end-of-run summary.
type Report struct {
	RunID       string
	Steps       int
	Falls       int
	Resets      int
	Pushes      int
	MaxAbsV     float64
	MeanEffort  float64
	EnergyDrift float64
	Final       dynamo.State
	SimTime     float64
	Elapsed     time.Duration
}

func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider()
	}

	id := uuid.NewString()
	logger := o.logger.Named("experiment").With(zap.String("run_id", id))

	s, err := Build(cfg, logger)
	if err != nil {
		return nil, err
	}

	falls, err := observers.NewFallDetector(cfg.H, cfg.LimitFactor)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		ID:          id,
		Config:      cfg,
		Log:         observers.NewStateLogger(),
		Falls:       falls,
		Effort:      observers.NewControlEffort(),
		Energy:      observers.NewEnergyDrift(s.Dynamics().Omega()),
		sim:         s,
		logger:      logger,
		tracer:      o.tracer.Tracer(tracerName),
		resetOnFall: o.resetOnFall,
	}

	s.Attach(e.Log)
	s.Attach(e.Falls)
	s.Attach(e.Effort)
	s.Attach(e.Energy)
	s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
		e.maxAbsV = math.Max(e.maxAbsV, math.Abs(r.X.V()))
		return nil
	}))

	if o.registerer != nil {
		prom, err := observers.NewPrometheus(o.registerer, e.Falls)
		if err != nil {
			return nil, err
		}
		s.Attach(prom)
	}
	for _, obs := range o.observers {
		s.Attach(obs)
	}

	return e, nil
}

// Simulator exposes the underlying simulator for drivers that step it themselves.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.sim
}

// Step advances one step and applies the fall reset when enabled.
func (e *Experiment) Step() error {
	if err := e.sim.Step(); err != nil {
		return err
	}
	if e.resetOnFall && e.Falls.JustFell() {
		e.logger.Debug("fall detected, resetting",
			zap.Int("step", e.sim.Steps()),
			zap.Int("falls", e.Falls.Falls()))
		e.sim.Reset(dynamo.State{})
		e.resets++
	}
	return nil
}

// Run performs steps steps, checking ctx between them.
func (e *Experiment) Run(ctx context.Context, steps int) (*Report, error) {
	ctx, span := e.tracer.Start(ctx, "experiment.run", trace.WithAttributes(
		attribute.String("lipm.run_id", e.ID),
		attribute.String("lipm.dynamics", e.Config.DynamicsType),
		attribute.String("lipm.policy", e.Config.PolicyType),
		attribute.Int("lipm.steps", steps),
	))
	defer span.End()

	e.logger.Info("run started",
		zap.String("dynamics", e.Config.DynamicsType),
		zap.String("policy", e.Config.PolicyType),
		zap.Int("steps", steps))

	start := time.Now()
	for i := 0; i < steps; i++ {
		err := ctx.Err()
		if err == nil {
			err = e.Step()
		}
		if err != nil {
			e.logger.Error("run aborted", zap.Int("step", e.sim.Steps()), zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	r := e.Report()
	r.Elapsed = time.Since(start)
	span.SetAttributes(
		attribute.Int("lipm.falls", r.Falls),
		attribute.Int("lipm.pushes", r.Pushes),
		attribute.Float64("lipm.max_abs_v", r.MaxAbsV),
	)
	e.logger.Info("run finished",
		zap.Int("falls", r.Falls),
		zap.Int("pushes", r.Pushes),
		zap.Float64("max_abs_v", r.MaxAbsV),
		zap.Duration("elapsed", r.Elapsed))
	return r, nil
}

// Report summarizes the run so far.
func (e *Experiment) Report() *Report {
	return &Report{
		RunID:       e.ID,
		Steps:       e.sim.Steps(),
		Falls:       e.Falls.Falls(),
		Resets:      e.resets,
		Pushes:      e.sim.Pushes(),
		MaxAbsV:     e.maxAbsV,
		MeanEffort:  e.Effort.Value(),
		EnergyDrift: e.Energy.Value(),
		Final:       e.sim.X,
		SimTime:     e.sim.T,
	}
}
