package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lipm/internal/control"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/models"
)

// PolicyParams carries what a policy constructor may need. Dynamics is the
// already built model, so policies can derive from its discrete (A, B).
type PolicyParams struct {
	Omega     float64
	UMin      float64
	UMax      float64
	TargetVel float64
	Dynamics  dynamo.Dynamics
}

type Registry struct {
	dynamics map[string]func(omega, dt float64) (dynamo.Dynamics, error)
	policies map[string]func(PolicyParams) (dynamo.Policy, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		dynamics: make(map[string]func(omega, dt float64) (dynamo.Dynamics, error)),
		policies: make(map[string]func(PolicyParams) (dynamo.Policy, error)),
	}

	r.dynamics["continuous"] = func(omega, dt float64) (dynamo.Dynamics, error) {
		return models.NewEuler(omega, dt)
	}
	r.dynamics["discrete"] = func(omega, dt float64) (dynamo.Dynamics, error) {
		return models.NewExact(omega, dt)
	}
	r.dynamics["rk4"] = func(omega, dt float64) (dynamo.Dynamics, error) {
		return models.NewRK4(omega, dt)
	}

	r.policies["capture_point"] = func(p PolicyParams) (dynamo.Policy, error) {
		return control.NewCapturePoint(p.Omega, p.UMin, p.UMax)
	}
	r.policies["least_square"] = func(p PolicyParams) (dynamo.Policy, error) {
		a, b := p.Dynamics.AB()
		return control.NewLeastSquares(a, b, p.TargetVel)
	}
	r.policies["lqr"] = func(p PolicyParams) (dynamo.Policy, error) {
		a, b := p.Dynamics.AB()
		return control.NewLQR(a, b, control.DefaultLQRWeights)
	}
	r.policies["none"] = func(p PolicyParams) (dynamo.Policy, error) {
		return control.NewNone(), nil
	}

	return r
}

func (r *Registry) GetDynamics(name string, omega, dt float64) (dynamo.Dynamics, error) {
	fn, ok := r.dynamics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownDynamics, name)
	}
	return fn(omega, dt)
}

func (r *Registry) GetPolicy(name string, params PolicyParams) (dynamo.Policy, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPolicy, name)
	}
	return fn(params)
}

func (r *Registry) ListDynamics() []string {
	return sortedKeys(r.dynamics)
}

func (r *Registry) ListPolicies() []string {
	return sortedKeys(r.policies)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
