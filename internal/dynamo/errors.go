package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulator construction and stepping.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates (A, B) matrices of the wrong shape.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrDegenerateModel indicates a control column B numerically indistinguishable from zero.
	ErrDegenerateModel = errors.New("dynamo: degenerate model (B too close to zero)")

	// ErrUnknownDynamics indicates an unrecognized dynamics_type.
	ErrUnknownDynamics = errors.New("dynamo: unknown dynamics type")

	// ErrUnknownPolicy indicates an unrecognized policy_type.
	ErrUnknownPolicy = errors.New("dynamo: unknown policy type")
)

// SimulationError wraps a stepping failure with the step it happened on.
// Time and State are the pre-step clock and state; neither was committed.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
