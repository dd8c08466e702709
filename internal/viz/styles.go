package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name    string
	Figure  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Muted   lipgloss.Color
	Alert   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "terminal",
		Figure:  lipgloss.Color("49"),
		Label:   lipgloss.Color("245"),
		Value:   lipgloss.Color("252"),
		Muted:   lipgloss.Color("240"),
		Alert:   lipgloss.Color("196"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
	},
	{
		Name:    "retro",
		Figure:  lipgloss.Color("#00ff00"),
		Label:   lipgloss.Color("#00cc00"),
		Value:   lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Alert:   lipgloss.Color("#ff0000"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
	},
	{
		Name:    "ocean",
		Figure:  lipgloss.Color("#00a8cc"),
		Label:   lipgloss.Color("#4488aa"),
		Value:   lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#335577"),
		Alert:   lipgloss.Color("#ff4444"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
	},
}

type styles struct {
	canvas  lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	alert   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	help    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Figure).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(40),
		header:  lipgloss.NewStyle().Foreground(t.Figure).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Label).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Value),
		alert:   lipgloss.NewStyle().Foreground(t.Alert).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
