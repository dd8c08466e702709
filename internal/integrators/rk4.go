package integrators

import "github.com/san-kum/lipm/internal/dynamo"

// RK4 is the classical fourth order Runge-Kutta step. The control is a
// zero-order hold, so the stages only differ in state.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f Derivative, x dynamo.State, u, dt float64) dynamo.State {
	k1 := f(x, u)
	k2 := f(axpy(x, dt*0.5, k1), u)
	k3 := f(axpy(x, dt*0.5, k2), u)
	k4 := f(axpy(x, dt, k3), u)

	var result dynamo.State
	dt6 := dt / 6.0
	for i := range x {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}

func axpy(x dynamo.State, a float64, y dynamo.State) dynamo.State {
	var out dynamo.State
	for i := range x {
		out[i] = x[i] + a*y[i]
	}
	return out
}
