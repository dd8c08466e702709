package dynamo

//go:generate mockgen -source=types.go -destination=mocks/mock_dynamo.go -package=mocks

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// State is the LIPM state: horizontal position and velocity of the mass.
type State [2]float64

// P returns the position component.
func (s State) P() float64 { return s[0] }

// V returns the velocity component.
func (s State) V() float64 { return s[1] }

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return math.Hypot(s[0], s[1])
}

func (s State) Sub(other State) State {
	return State{s[0] - other[0], s[1] - other[1]}
}

// Vec returns the state as a gonum column vector.
func (s State) Vec() *mat.VecDense {
	return mat.NewVecDense(2, []float64{s[0], s[1]})
}

// StateFromVec copies the first two components of v into a State.
func StateFromVec(v mat.Vector) State {
	return State{v.AtVec(0), v.AtVec(1)}
}

func (s State) String() string {
	return fmt.Sprintf("(p=%.4f, v=%.4f)", s[0], s[1])
}

// Record is the per-step observation delivered to every observer.
// T is the clock before the step; X is the pre-step state and XNext the
// committed post-step state.
type Record struct {
	T     float64
	X     State
	U     float64
	XNext State
}

// Dynamics advances the LIPM by one step.
type Dynamics interface {
	Propagate(x State, u float64, dt float64) State
	// AB returns copies of the discrete system matrices x' = A x + B u.
	AB() (*mat.Dense, *mat.VecDense)
	Omega() float64
}

// Policy chooses the foot placement for the current state.
type Policy interface {
	Compute(x State, t float64) float64
}

// Observer consumes one record per step. A returned error aborts the run.
type Observer interface {
	Update(r Record) error
}

// Metric is an observer that reduces the run to a single number.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// NaturalFrequency returns ω = sqrt(g/h) for gravity g and leg height h.
func NaturalFrequency(g, h float64) (float64, error) {
	if !(h > 0) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("%w: leg height h=%v must be positive", ErrParameterBounds, h)
	}
	ratio := g / h
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: g/h=%v must be positive", ErrParameterBounds, ratio)
	}
	return math.Sqrt(ratio), nil
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(r Record) error

func (f ObserverFunc) Update(r Record) error { return f(r) }
