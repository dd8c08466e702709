package observers

import (
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
)

// Stability is the fraction of steps that start with |p| and |v| inside threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Update(r dynamo.Record) error {
	s.samples++
	if math.Abs(r.X.P()) > s.threshold || math.Abs(r.X.V()) > s.threshold {
		s.violations++
	}
	return nil
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
