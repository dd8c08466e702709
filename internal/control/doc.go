// Package control provides foot-placement policies for the LIPM.
//
// Policies implement [dynamo.Policy] and map the current state to a foot
// placement:
//
//   - [CapturePoint]: places the foot on the instantaneous capture point,
//     clamped to the reachable range
//   - [LeastSquares]: one-step lookahead that minimizes the distance of the
//     predicted next state from a target state
//   - [LQR]: discrete LQR state feedback solved from the model's (A, B)
//   - [None]: keeps the foot at the origin
//
// # Usage
//
//	a, b := dyn.AB()
//	pol, err := control.NewLeastSquares(a, b, 0)
//	u := pol.Compute(x, t)
//
// No policy depends on t; it is accepted so all policies share one
// signature.
package control
