package integrators

import "github.com/san-kum/lipm/internal/dynamo"

// Derivative is the right-hand side of x' = f(x, u) with u held over a step.
type Derivative func(x dynamo.State, u float64) dynamo.State

type Integrator interface {
	Step(f Derivative, x dynamo.State, u, dt float64) dynamo.State
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f Derivative, x dynamo.State, u, dt float64) dynamo.State {
	dx := f(x, u)
	var result dynamo.State
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
