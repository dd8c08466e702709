package control

import "github.com/san-kum/lipm/internal/dynamo"

// None keeps the foot at the origin. It is the open-loop baseline.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(x dynamo.State, t float64) float64 {
	return 0
}
