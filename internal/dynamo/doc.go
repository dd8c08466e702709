// Package dynamo provides the core primitives of the LIPM balance simulator.
//
// A Linear Inverted Pendulum Model reduces a walking robot to a point mass on a
// massless leg of constant height h. Along one horizontal axis the state is the
// mass position p and velocity v, and the only input is the foot placement u:
//
//	p'' = ω² (p - u),   ω = sqrt(g / h)
//
// The package defines the shared vocabulary of the simulator:
//
//   - [State]: the (p, v) pair
//   - [Dynamics]: advances a state by one step and exposes its discrete (A, B)
//   - [Policy]: chooses the foot placement from the current state
//   - [Observer]: receives one [Record] per completed step
//
// Concrete dynamics live in package models, policies in package control, the
// stepping loop in package sim and the observers in package observers.
//
// # Thread Safety
//
// Dynamics and policies are immutable after construction and may be shared.
// Simulators and observers are NOT thread-safe.
package dynamo
