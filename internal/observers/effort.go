package observers

import (
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
)

// ControlEffort is the mean absolute foot placement.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Update(r dynamo.Record) error {
	c.sum += math.Abs(r.U)
	c.samples++
	return nil
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
