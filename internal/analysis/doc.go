// Package analysis provides post-run tools for LIPM trajectories.
//
//   - [GeneratePhasePortrait]: closed-loop (p, v) trajectory
//   - [PhasePortraitToASCII]: terminal rendering of a portrait
//   - [VelocityReversals]: states where the mass turns around
//   - [DivergenceRate]: open-loop growth rate, ω for the exact model
//   - [Compare]: per-step gap between two dynamics models under one policy
//   - [DominantFrequency]: strongest oscillation in a logged signal
//
// # Model Error
//
// The Euler model underestimates the open-loop instability:
//
//	rate := analysis.DivergenceRate(euler, x0, dt, 1000, 1e-6)
//	// rate ≈ ln(1+ω·dt)/dt < ω
package analysis
