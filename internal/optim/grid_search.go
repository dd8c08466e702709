package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/lipm/internal/experiment"
)

// Objective scores a finished run. Lower is better.
type Objective func(r *experiment.Report) float64

// Falls scores a run by its fall count, breaking ties by mean control effort.
func Falls(r *experiment.Report) float64 {
	return float64(r.Falls) + math.Min(r.MeanEffort, 0.999)
}

// Effort scores a run by its mean control effort.
func Effort(r *experiment.Report) float64 {
	return r.MeanEffort
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("got %d parameters but %d ranges", len(params), len(ranges))
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs every combination of parameter values for steps steps and
// returns the combination with the lowest objective. Combinations that fail
// to build or run are skipped; Search fails only if none succeeds.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	steps int,
	objective Objective,
) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	var lastErr error

	g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		exp, err := buildExperiment(params)
		if err != nil {
			lastErr = err
			return
		}
		report, err := exp.Run(ctx, steps)
		if err != nil {
			lastErr = err
			return
		}

		if val := objective(report); val < best {
			best = val
			bestParams = make(map[string]float64, len(params))
			for k, v := range params {
				bestParams[k] = v
			}
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no parameter combination succeeded: %w", lastErr)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64)) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		eval(current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		g.searchRecursive(ctx, depth+1, next, eval)
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
