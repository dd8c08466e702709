package control

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/models"
	"gonum.org/v1/gonum/mat"
)

func TestLQRStabilizes(t *testing.T) {
	w := math.Sqrt(9.81 / 0.6)
	for _, dt := range []float64{0.005, 0.01, 0.05} {
		dyn, _ := models.NewExact(w, dt)
		a, b := dyn.AB()
		ctrl, err := NewLQR(a, b, DefaultLQRWeights)
		if err != nil {
			t.Fatalf("dt=%v: %v", dt, err)
		}

		x := dynamo.State{0.1, 0}
		for i := 0; i < int(5/dt); i++ {
			x = dyn.Propagate(x, ctrl.Compute(x, 0), dt)
		}
		if x.Norm() > 1e-3 {
			t.Errorf("dt=%v: expected convergence to origin, got %v", dt, x)
		}
	}
}

func TestLQRClosedLoopIsStable(t *testing.T) {
	dyn, _ := models.NewExact(4.0, 0.01)
	a, b := dyn.AB()
	ctrl, err := NewLQR(a, b, DefaultLQRWeights)
	if err != nil {
		t.Fatal(err)
	}

	// A − B K
	var closed mat.Dense
	closed.Outer(-1, b, mat.NewVecDense(2, ctrl.K[:]))
	closed.Add(&closed, a)

	var eig mat.Eigen
	if !eig.Factorize(&closed, mat.EigenNone) {
		t.Fatal("eigendecomposition failed")
	}
	for _, v := range eig.Values(nil) {
		if mag := math.Hypot(real(v), imag(v)); mag >= 1 {
			t.Errorf("closed loop eigenvalue %v outside the unit circle", v)
		}
	}
}

func TestLQRAtOrigin(t *testing.T) {
	dyn, _ := models.NewEuler(4.0, 0.01)
	a, b := dyn.AB()
	ctrl, _ := NewLQR(a, b, DefaultLQRWeights)
	if u := ctrl.Compute(dynamo.State{}, 0); u != 0 {
		t.Errorf("expected zero control at the origin, got %v", u)
	}
}

func TestLQRInvalid(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0.01, 0.16, 1})
	b := mat.NewVecDense(2, []float64{0, -0.16})

	tests := []struct {
		name string
		a    mat.Matrix
		b    mat.Vector
		w    LQRWeights
		want error
	}{
		{"zero R", a, b, LQRWeights{Q: [2]float64{1, 1}, R: 0}, dynamo.ErrParameterBounds},
		{"negative Q", a, b, LQRWeights{Q: [2]float64{-1, 1}, R: 1}, dynamo.ErrParameterBounds},
		{"wrong A", mat.NewDense(3, 3, nil), b, DefaultLQRWeights, dynamo.ErrDimensionMismatch},
		{"wrong B", a, mat.NewVecDense(3, nil), DefaultLQRWeights, dynamo.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLQR(tt.a, tt.b, tt.w); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNone(t *testing.T) {
	ctrl := NewNone()
	if u := ctrl.Compute(dynamo.State{1.0, 2.0}, 3.0); u != 0 {
		t.Errorf("expected 0, got %v", u)
	}
}
