package observers

import (
	"math"

	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/models"
)

// EnergyDrift tracks the largest per-step change of orbital energy about the
// applied foot. Exact dynamics conserve it, so nonzero drift comes from
// integration error or pushes.
type EnergyDrift struct {
	omega    float64
	maxDrift float64
}

func NewEnergyDrift(omega float64) *EnergyDrift {
	return &EnergyDrift{omega: omega}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Update(r dynamo.Record) error {
	before := models.OrbitalEnergy(r.X, r.U, e.omega)
	after := models.OrbitalEnergy(r.XNext, r.U, e.omega)
	e.maxDrift = math.Max(e.maxDrift, math.Abs(after-before))
	return nil
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() { e.maxDrift = 0 }
