package observers

import (
	"fmt"
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
)

// DefaultLimitFactor is the leg stretch tolerated before a step counts as a fall.
const DefaultLimitFactor = 1.2

// FallDetector counts steps whose leg would have to stretch past
// h*limitFactor to reach the chosen foot placement.
//
// JustFell is a one-shot signal: it reflects only the most recent Update and
// is overwritten by the next one. Poll it right after each step.
type FallDetector struct {
	h           float64
	limitFactor float64
	falls       int
	justFell    bool
}

func NewFallDetector(h, limitFactor float64) (*FallDetector, error) {
	if !(h > 0) {
		return nil, fmt.Errorf("%w: leg height h=%v must be positive", dynamo.ErrParameterBounds, h)
	}
	if !(limitFactor > 0) {
		return nil, fmt.Errorf("%w: limit factor %v must be positive", dynamo.ErrParameterBounds, limitFactor)
	}
	return &FallDetector{h: h, limitFactor: limitFactor}, nil
}

func (f *FallDetector) Update(r dynamo.Record) error {
	f.justFell = false

	leg := math.Hypot(r.X.P()-r.U, f.h)
	if leg > f.Threshold() {
		f.falls++
		f.justFell = true
	}
	return nil
}

func (f *FallDetector) Falls() int { return f.falls }

func (f *FallDetector) JustFell() bool { return f.justFell }

func (f *FallDetector) H() float64 { return f.h }

// Threshold is the longest tolerated leg length.
func (f *FallDetector) Threshold() float64 {
	return f.h * f.limitFactor
}
