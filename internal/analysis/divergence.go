package analysis

import (
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
)

// DivergenceRate estimates the largest Lyapunov exponent of the open-loop
// model (foot fixed at the origin) by trajectory separation, renormalizing
// the separation to d0 after every step.
func DivergenceRate(dyn dynamo.Dynamics, x0 dynamo.State, dt float64, steps int, d0 float64) float64 {
	if steps <= 0 || !(d0 > 0) {
		return 0
	}

	x := x0
	xp := dynamo.State{x0[0] + d0, x0[1]}
	sumLog := 0.0

	for i := 0; i < steps; i++ {
		x = dyn.Propagate(x, 0, dt)
		xp = dyn.Propagate(xp, 0, dt)

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsInf(sep, 0) || math.IsNaN(sep) {
			return 0
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		xp = dynamo.State{
			x[0] + (xp[0]-x[0])*scale,
			x[1] + (xp[1]-x[1])*scale,
		}
	}

	return sumLog / (float64(steps) * dt)
}

// Gap is the difference between two trajectories after one step.
type Gap struct {
	T  float64
	DP float64
	DV float64
}

// Compare runs a and b side by side from x0 under the same policy and
// returns the state gap after each step. Each model sees the control the
// policy chooses for its own state.
func Compare(a, b dynamo.Dynamics, policy dynamo.Policy, x0 dynamo.State, dt float64, steps int) []Gap {
	gaps := make([]Gap, 0, steps)
	xa, xb := x0, x0
	t := 0.0

	for i := 0; i < steps; i++ {
		xa = a.Propagate(xa, policy.Compute(xa, t), dt)
		xb = b.Propagate(xb, policy.Compute(xb, t), dt)
		t += dt
		gaps = append(gaps, Gap{T: t, DP: math.Abs(xa[0] - xb[0]), DV: math.Abs(xa[1] - xb[1])})
	}
	return gaps
}

// MaxGap returns the largest position and velocity gaps.
func MaxGap(gaps []Gap) (dp, dv float64) {
	for _, g := range gaps {
		dp = math.Max(dp, g.DP)
		dv = math.Max(dv, g.DV)
	}
	return dp, dv
}
