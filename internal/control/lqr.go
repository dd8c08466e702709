package control

import (
	"fmt"

	"github.com/san-kum/lipm/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

const (
	maxRiccatiIter = 20000
	riccatiTol     = 1e-10
)

// DefaultLQRWeights penalizes position ten times more than velocity.
var DefaultLQRWeights = LQRWeights{Q: [2]float64{10, 1}, R: 1}

// LQRWeights are the state (diagonal Q) and foot placement (R) costs.
type LQRWeights struct {
	Q [2]float64
	R float64
}

// LQR is infinite-horizon discrete LQR state feedback u = −K x toward the
// origin. K comes from iterating the Riccati recursion on (A, B) to a fixed
// point. The result is not clamped.
type LQR struct {
	K [2]float64
}

func NewLQR(a mat.Matrix, b mat.Vector, w LQRWeights) (*LQR, error) {
	if !(w.R > 0) || w.Q[0] < 0 || w.Q[1] < 0 {
		return nil, fmt.Errorf("%w: lqr weights Q=%v R=%v", dynamo.ErrParameterBounds, w.Q, w.R)
	}
	if r, c := a.Dims(); r != 2 || c != 2 {
		return nil, fmt.Errorf("%w: A is %dx%d, want 2x2", dynamo.ErrDimensionMismatch, r, c)
	}
	if b.Len() != 2 {
		return nil, fmt.Errorf("%w: B has %d rows, want 2", dynamo.ErrDimensionMismatch, b.Len())
	}

	q := mat.NewDiagDense(2, w.Q[:])
	p := mat.DenseCopyOf(q)
	for i := 0; i < maxRiccatiIter; i++ {
		// K = (R + BᵀPB)⁻¹ BᵀPA
		var pb, kt mat.VecDense
		pb.MulVec(p, b)
		denom := w.R + mat.Dot(b, &pb)
		kt.MulVec(a.T(), &pb)
		kt.ScaleVec(1/denom, &kt)

		// P = Q + AᵀPA − Kᵀ (R + BᵀPB) K
		var pa, correction mat.Dense
		next := mat.NewDense(2, 2, nil)
		pa.Mul(p, a)
		next.Mul(a.T(), &pa)
		correction.Outer(denom, &kt, &kt)
		next.Sub(next, &correction)
		next.Add(next, q)

		if mat.EqualApprox(next, p, riccatiTol) {
			return &LQR{K: [2]float64{kt.AtVec(0), kt.AtVec(1)}}, nil
		}
		p = next
	}
	return nil, fmt.Errorf("%w: riccati recursion did not converge in %d iterations", dynamo.ErrDegenerateModel, maxRiccatiIter)
}

func (l *LQR) Compute(x dynamo.State, t float64) float64 {
	return -(l.K[0]*x.P() + l.K[1]*x.V())
}
