package control

import (
	"fmt"
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
)

// CapturePoint steps onto ξ = p + v/ω. Placing the foot there brings the
// mass to rest over it under the continuous dynamics.
type CapturePoint struct {
	Omega float64
	UMin  float64
	UMax  float64
}

func NewCapturePoint(omega, uMin, uMax float64) (*CapturePoint, error) {
	if !(omega > 0) || math.IsInf(omega, 0) {
		return nil, fmt.Errorf("%w: omega=%v must be positive", dynamo.ErrParameterBounds, omega)
	}
	if uMin > uMax {
		return nil, fmt.Errorf("%w: u_min=%v exceeds u_max=%v", dynamo.ErrParameterBounds, uMin, uMax)
	}
	return &CapturePoint{Omega: omega, UMin: uMin, UMax: uMax}, nil
}

// CapturePoint returns the unclamped capture point of x.
func (c *CapturePoint) CapturePoint(x dynamo.State) float64 {
	return x.P() + x.V()/c.Omega
}

func (c *CapturePoint) Compute(x dynamo.State, t float64) float64 {
	return Clamp(c.CapturePoint(x), c.UMin, c.UMax)
}

// Clamp limits u to [lo, hi].
func Clamp(u, lo, hi float64) float64 {
	return math.Min(math.Max(u, lo), hi)
}
