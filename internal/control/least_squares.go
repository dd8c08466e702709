package control

import (
	"fmt"
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// degenerateTol bounds BᵀB from below; smaller means B carries no control authority.
const degenerateTol = 1e-9

// LeastSquares picks the u minimizing ‖A x + B u − x_ref‖² with
// x_ref = (0, TargetVel). With one input and two states the target is
// generally unreachable in one step; the normal equation gives the best
// compromise:
//
//	u = Bᵀ (x_ref − A x) / (BᵀB)
//
// The result is not clamped.
type LeastSquares struct {
	TargetVel float64
	a         *mat.Dense
	b         *mat.VecDense
	btb       float64
}

func NewLeastSquares(a mat.Matrix, b mat.Vector, targetVel float64) (*LeastSquares, error) {
	if r, c := a.Dims(); r != 2 || c != 2 {
		return nil, fmt.Errorf("%w: A is %dx%d, want 2x2", dynamo.ErrDimensionMismatch, r, c)
	}
	if b.Len() != 2 {
		return nil, fmt.Errorf("%w: B has %d rows, want 2", dynamo.ErrDimensionMismatch, b.Len())
	}

	bCol := mat.VecDenseCopyOf(b)
	btb := mat.Dot(bCol, bCol)
	if math.Abs(btb) < degenerateTol {
		return nil, fmt.Errorf("%w: BᵀB=%g", dynamo.ErrDegenerateModel, btb)
	}

	return &LeastSquares{
		TargetVel: targetVel,
		a:         mat.DenseCopyOf(a),
		b:         bCol,
		btb:       btb,
	}, nil
}

func (l *LeastSquares) Compute(x dynamo.State, t float64) float64 {
	var drift, y mat.VecDense
	drift.MulVec(l.a, x.Vec())
	y.SubVec(mat.NewVecDense(2, []float64{0, l.TargetVel}), &drift)
	return mat.Dot(l.b, &y) / l.btb
}
