package models

import (
	"fmt"
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/integrators"
	"gonum.org/v1/gonum/mat"
)

// Euler integrates the continuous LIPM with one forward Euler step:
//
//	x' = x + (Ac x + Bc u) dt,   Ac = [[0 1] [ω² 0]],   Bc = [0 -ω²]ᵀ
//
// Local truncation error is O(dt²).
type Euler struct {
	omega float64
	dt    float64
	f     integrators.Derivative
	integ integrators.Integrator
	a     *mat.Dense
	b     *mat.VecDense
}

// NewEuler builds the Euler model. dt is the step used for the first-order
// discretization returned by AB.
func NewEuler(omega, dt float64) (*Euler, error) {
	if err := checkParams(omega, dt); err != nil {
		return nil, err
	}
	a, b := taylorAB(omega, dt, 1)
	return &Euler{
		omega: omega,
		dt:    dt,
		f:     derivative(omega),
		integ: integrators.NewEuler(),
		a:     a,
		b:     b,
	}, nil
}

func (e *Euler) Omega() float64 { return e.omega }

func (e *Euler) Propagate(x dynamo.State, u float64, dt float64) dynamo.State {
	return e.integ.Step(e.f, x, u, dt)
}

func (e *Euler) AB() (*mat.Dense, *mat.VecDense) {
	return mat.DenseCopyOf(e.a), mat.VecDenseCopyOf(e.b)
}

// RK4 integrates the continuous LIPM with one classical Runge-Kutta step.
// On this linear system the step is the fourth order Taylor expansion of the
// exact transition, so AB is available in closed form too.
type RK4 struct {
	omega float64
	dt    float64
	f     integrators.Derivative
	integ integrators.Integrator
	a     *mat.Dense
	b     *mat.VecDense
}

func NewRK4(omega, dt float64) (*RK4, error) {
	if err := checkParams(omega, dt); err != nil {
		return nil, err
	}
	a, b := taylorAB(omega, dt, 4)
	return &RK4{
		omega: omega,
		dt:    dt,
		f:     derivative(omega),
		integ: integrators.NewRK4(),
		a:     a,
		b:     b,
	}, nil
}

func (r *RK4) Omega() float64 { return r.omega }

func (r *RK4) Propagate(x dynamo.State, u float64, dt float64) dynamo.State {
	return r.integ.Step(r.f, x, u, dt)
}

func (r *RK4) AB() (*mat.Dense, *mat.VecDense) {
	return mat.DenseCopyOf(r.a), mat.VecDenseCopyOf(r.b)
}

// derivative returns x' = Ac x + Bc u.
func derivative(omega float64) integrators.Derivative {
	w2 := omega * omega
	return func(x dynamo.State, u float64) dynamo.State {
		return dynamo.State{x.V(), w2 * (x.P() - u)}
	}
}

// taylorAB truncates the transition of the continuous model after the given
// order:
//
//	A = Σ (Ac dt)^k / k!,   k = 0..order
//	B = Σ Ac^(k-1) dt^k / k! Bc,   k = 1..order
//
// Order 1 is forward Euler, order 4 is what RK4 computes.
func taylorAB(omega, dt float64, order int) (*mat.Dense, *mat.VecDense) {
	w2 := omega * omega
	acdt := mat.NewDense(2, 2, []float64{
		0, dt,
		w2 * dt, 0,
	})
	bc := mat.NewVecDense(2, []float64{0, -w2})

	term := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	a := mat.DenseCopyOf(term)
	s := mat.NewDense(2, 2, nil)
	for k := 1; k <= order; k++ {
		var st mat.Dense
		st.Scale(dt/float64(k), term)
		s.Add(s, &st)

		next := mat.NewDense(2, 2, nil)
		next.Mul(term, acdt)
		next.Scale(1/float64(k), next)
		term = next
		a.Add(a, term)
	}

	b := mat.NewVecDense(2, nil)
	b.MulVec(s, bc)
	return a, b
}

// Exact is the closed-form discretization of the LIPM over one step:
//
//	A = [[c s/ω] [ω s c]],   B = [1-c  -ω s]ᵀ,   c = cosh(ω dt), s = sinh(ω dt)
//
// It has no truncation error for any dt.
type Exact struct {
	omega float64
	dt    float64
	a     *mat.Dense
	b     *mat.VecDense
}

func NewExact(omega, dt float64) (*Exact, error) {
	if err := checkParams(omega, dt); err != nil {
		return nil, err
	}
	a, b := exactAB(omega, dt)
	return &Exact{omega: omega, dt: dt, a: a, b: b}, nil
}

func exactAB(omega, dt float64) (*mat.Dense, *mat.VecDense) {
	c := math.Cosh(omega * dt)
	s := math.Sinh(omega * dt)
	a := mat.NewDense(2, 2, []float64{
		c, s / omega,
		omega * s, c,
	})
	b := mat.NewVecDense(2, []float64{1 - c, -omega * s})
	return a, b
}

func (e *Exact) Omega() float64 { return e.omega }

// Propagate applies x' = A x + B u. A step other than the construction dt
// gets its own exact matrices.
func (e *Exact) Propagate(x dynamo.State, u float64, dt float64) dynamo.State {
	a, b := e.a, e.b
	if dt != e.dt {
		a, b = exactAB(e.omega, dt)
	}
	var ax, next mat.VecDense
	ax.MulVec(a, x.Vec())
	next.AddScaledVec(&ax, u, b)
	return dynamo.StateFromVec(&next)
}

func (e *Exact) AB() (*mat.Dense, *mat.VecDense) {
	return mat.DenseCopyOf(e.a), mat.VecDenseCopyOf(e.b)
}

// OrbitalEnergy is the LIPM orbital energy about a fixed foot position.
// It is conserved while the foot stays put.
func OrbitalEnergy(x dynamo.State, foot, omega float64) float64 {
	d := x.P() - foot
	return 0.5*x.V()*x.V() - 0.5*omega*omega*d*d
}

func checkParams(omega, dt float64) error {
	if !(omega > 0) || math.IsInf(omega, 0) {
		return fmt.Errorf("%w: omega=%v must be positive", dynamo.ErrParameterBounds, omega)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt=%v must be positive", dynamo.ErrParameterBounds, dt)
	}
	return nil
}
