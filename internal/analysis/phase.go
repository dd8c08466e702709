package analysis

import (
	"strings"

	"github.com/san-kum/lipm/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait is a (position, velocity) trajectory.
type PhasePortrait struct {
	Points []Point
}

// FromSeries builds a portrait from logged positions and velocities.
func FromSeries(p, v []float64) *PhasePortrait {
	n := min(len(p), len(v))
	portrait := &PhasePortrait{Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		portrait.Points[i] = Point{X: p[i], Y: v[i]}
	}
	return portrait
}

// GeneratePhasePortrait steps dyn under policy from x0 and records every
// post-step state. No constraint or disturbance is applied.
func GeneratePhasePortrait(dyn dynamo.Dynamics, policy dynamo.Policy, x0 dynamo.State, dt float64, steps int) *PhasePortrait {
	portrait := &PhasePortrait{Points: make([]Point, 0, steps+1)}
	portrait.Points = append(portrait.Points, Point{X: x0.P(), Y: x0.V()})

	x := x0
	t := 0.0
	for i := 0; i < steps; i++ {
		x = dyn.Propagate(x, policy.Compute(x, t), dt)
		t += dt
		if !x.IsValid() {
			break
		}
		portrait.Points = append(portrait.Points, Point{X: x.P(), Y: x.V()})
	}
	return portrait
}

// VelocityReversals returns the states right after each sign change of the
// velocity.
func VelocityReversals(portrait *PhasePortrait) []Point {
	if portrait == nil {
		return nil
	}
	var out []Point
	for i := 1; i < len(portrait.Points); i++ {
		prev, curr := portrait.Points[i-1].Y, portrait.Points[i].Y
		if (prev < 0 && curr >= 0) || (prev > 0 && curr <= 0) {
			out = append(out, portrait.Points[i])
		}
	}
	return out
}

// PhasePortraitToASCII plots the portrait with p across and v up. Axes are
// drawn where they cross the visible area.
func PhasePortraitToASCII(portrait *PhasePortrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	toCell := func(x, y float64) (row, col int) {
		col = int((x - minX) / rangeX * float64(width-1))
		row = height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col
	}

	if minX <= 0 && maxX >= 0 {
		_, col := toCell(0, minY)
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _ := toCell(minX, 0)
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range portrait.Points {
		row, col := toCell(p.X, p.Y)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}
	first := portrait.Points[0]
	if row, col := toCell(first.X, first.Y); row >= 0 && row < height && col >= 0 && col < width {
		canvas[row][col] = 'o'
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
