// Package viz renders a running LIPM simulation in the terminal.
//
// [Model] is a Bubble Tea model that steps an experiment on every tick and
// draws the stick figure on a Braille [Canvas]: the leg from foot to center
// of mass, the foot, and the capture point on the ground. Below it scrolls a
// plot of position, foot placement and capture point.
//
// When the fall detector fires the experiment resets the mass to rest at the
// origin and the view clears its history.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial state
//	← →   - Push the mass left or right
//	+ -   - Simulation steps per frame
//	T     - Cycle color themes
//	Q     - Quit
package viz
