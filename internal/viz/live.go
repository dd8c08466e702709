package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/experiment"
	"github.com/san-kum/lipm/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 12
	historyCapacity = 200
	frameInterval   = 20 * time.Millisecond
	pushKick        = 0.3
	maxStepsPerTick = 16
	fallFlashFrames = 25

	worldXMin = -2.0
	worldXMax = 2.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps an experiment on every tick and draws it. The experiment should
// be built with experiment.WithResetOnFall so a fall restarts the figure.
type Model struct {
	exp     *experiment.Experiment
	sim     *sim.Simulator
	omega   float64
	h       float64
	initial dynamo.State

	canvas *Canvas
	p      []float64
	u      []float64
	xi     []float64

	running       bool
	stepsPerFrame int
	theme         int
	styles        styles
	fallFlash     int
	lastFallAt    float64
	err           error
}

func NewModel(exp *experiment.Experiment) Model {
	s := exp.Simulator()
	return Model{
		exp:           exp,
		sim:           s,
		omega:         s.Dynamics().Omega(),
		h:             exp.Falls.H(),
		initial:       s.X,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		p:             make([]float64, 0, historyCapacity),
		u:             make([]float64, 0, historyCapacity),
		xi:            make([]float64, 0, historyCapacity),
		running:       true,
		stepsPerFrame: 1,
		styles:        newStyles(Themes[0]),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "left", "h":
			m.sim.X[1] -= pushKick
		case "right", "l":
			m.sim.X[1] += pushKick
		case "+", "=":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.step()
			}
		}
		if m.fallFlash > 0 {
			m.fallFlash--
		}
		return m, tick()
	}
	return m, nil
}

// step advances one step and records the displayed series. A fall clears
// the history.
func (m *Model) step() {
	before := m.sim.T
	if err := m.exp.Step(); err != nil {
		m.err = err
		m.running = false
		return
	}
	if m.exp.Falls.JustFell() {
		m.lastFallAt = before + m.sim.Dt()
		m.fallFlash = fallFlashFrames
		m.clearHistory()
		return
	}

	x := m.sim.X
	m.p = appendBounded(m.p, x.P())
	m.u = appendBounded(m.u, m.sim.Control())
	m.xi = appendBounded(m.xi, x.P()+x.V()/m.omega)
}

func (m *Model) restart() {
	m.sim.Reset(m.initial)
	m.clearHistory()
	m.fallFlash = 0
	m.err = nil
}

func (m *Model) clearHistory() {
	m.p, m.u, m.xi = m.p[:0], m.u[:0], m.xi[:0]
}

func appendBounded(s []float64, v float64) []float64 {
	if len(s) == historyCapacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

// toDots maps world coordinates (meters, y up) to canvas dots.
func (m *Model) toDots(wx, wy float64) (int, int) {
	w, h := m.canvas.Dots()
	yMin, yMax := -0.1, m.h+0.5
	x := (wx - worldXMin) / (worldXMax - worldXMin) * float64(w-1)
	y := float64(h-1) - (wy-yMin)/(yMax-yMin)*float64(h-1)
	return int(x + 0.5), int(y + 0.5)
}

func (m *Model) draw() {
	m.canvas.Clear()
	x := m.sim.X
	foot := m.sim.Control()
	xi := x.P() + x.V()/m.omega

	gx0, gy := m.toDots(worldXMin, 0)
	gx1, _ := m.toDots(worldXMax, 0)
	m.canvas.Line(gx0, gy, gx1, gy)

	fx, fy := m.toDots(foot, 0)
	cx, cy := m.toDots(x.P(), m.h)
	m.canvas.Line(fx, fy, cx, cy)
	m.canvas.Box(cx, cy, 2)
	m.canvas.Box(fx, fy-1, 1)

	px, py := m.toDots(xi, 0)
	m.canvas.Cross(px, py+2, 2)
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	left := st.canvas.Render(m.canvas.String())
	if len(m.p) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.p, m.u, m.xi},
			asciigraph.Height(8),
			asciigraph.Width(canvasWidth),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
			asciigraph.Caption("p (blue)  u (red)  xi (green)"))
		left = lipgloss.JoinVertical(lipgloss.Left, left, chart)
	}

	var s strings.Builder
	s.WriteString(st.header.Render("LIPM BALANCE") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(st.alert.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	x := m.sim.X
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.T))
	row("Position", fmt.Sprintf("%+.3f m", x.P()))
	row("Velocity", fmt.Sprintf("%+.3f m/s", x.V()))
	row("Foot", fmt.Sprintf("%+.3f m", m.sim.Control()))
	row("Capture pt", fmt.Sprintf("%+.3f m", x.P()+x.V()/m.omega))
	row("Falls", fmt.Sprintf("%d", m.exp.Falls.Falls()))
	row("Pushes", fmt.Sprintf("%d", m.sim.Pushes()))
	row("Speed", fmt.Sprintf("%dx", m.stepsPerFrame))
	row("Theme", Themes[m.theme].Name)

	if m.fallFlash > 0 {
		s.WriteString("\n" + st.alert.Render(fmt.Sprintf("FALL at t=%.2fs, reset", m.lastFallAt)) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause R:Restart Q:Quit\n←→:Push +-:Speed T:Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, st.stats.Render(s.String()))
}
