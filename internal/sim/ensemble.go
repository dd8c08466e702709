package sim

import (
	"context"
	"math"
	"runtime"

	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/observers"
	"golang.org/x/sync/errgroup"
)

// Builder creates an independent simulator for one ensemble member.
type Builder func(seed int64) (*Simulator, error)

// Outcome summarizes one ensemble member.
type Outcome struct {
	Seed    int64
	Steps   int
	Falls   int
	Pushes  int
	Final   dynamo.State
	MaxAbsV float64
}

// Ensemble runs independently seeded simulators concurrently. Each member is
// stepped by a single goroutine.
type Ensemble struct {
	build       Builder
	numRuns     int
	seedStart   int64
	h           float64
	limitFactor float64

	// ResetOnFall puts a member back at its initial state and zero clock
	// right after a detected fall.
	ResetOnFall bool
}

func NewEnsemble(build Builder, numRuns int, seedStart int64, h, limitFactor float64) *Ensemble {
	return &Ensemble{
		build:       build,
		numRuns:     numRuns,
		seedStart:   seedStart,
		h:           h,
		limitFactor: limitFactor,
	}
}

// Run steps every member up to steps times. Cancellation is checked between steps.
func (e *Ensemble) Run(ctx context.Context, steps int) ([]Outcome, error) {
	results := make([]Outcome, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			out, err := e.runOne(ctx, e.seedStart+int64(idx), steps)
			if err != nil {
				return err
			}
			results[idx] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, seed int64, steps int) (Outcome, error) {
	s, err := e.build(seed)
	if err != nil {
		return Outcome{}, err
	}
	fd, err := observers.NewFallDetector(e.h, e.limitFactor)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Seed: seed}
	s.Attach(fd)
	s.Attach(dynamo.ObserverFunc(func(r dynamo.Record) error {
		out.MaxAbsV = math.Max(out.MaxAbsV, math.Abs(r.X.V()))
		return nil
	}))

	x0 := s.X
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if err := s.Step(); err != nil {
			return Outcome{}, err
		}
		if e.ResetOnFall && fd.JustFell() {
			s.Reset(x0)
		}
	}

	out.Steps = s.Steps()
	out.Falls = fd.Falls()
	out.Pushes = s.Pushes()
	out.Final = s.X
	return out, nil
}

// FallRate is the fraction of members that fell at least once.
func FallRate(outcomes []Outcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	fell := 0
	for _, o := range outcomes {
		if o.Falls > 0 {
			fell++
		}
	}
	return float64(fell) / float64(len(outcomes))
}

// MeanFalls is the mean number of falls per member.
func MeanFalls(outcomes []Outcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	total := 0
	for _, o := range outcomes {
		total += o.Falls
	}
	return float64(total) / float64(len(outcomes))
}
