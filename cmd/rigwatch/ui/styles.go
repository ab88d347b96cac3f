// Package ui provides the terminal dashboard for rigwatch: tabbed pages for
// sensor trends, alerts and expert guidance, the session summary, channel
// statistics, and the ML screen-overload detections.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic palette. Alert styling mirrors rig-floor conventions: red for
// active alerts, green for nominal, yellow for degraded collaborators.
var (
	colorAlert  = lipgloss.Color("#e53935")
	colorOK     = lipgloss.Color("#8BC34A")
	colorWarn   = lipgloss.Color("#FFC107")
	colorAccent = lipgloss.Color("#2196F3")
	colorMuted  = lipgloss.Color("#6c7a89")
)

// Styles holds the render styles shared by all pages.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Body      lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Alert     lipgloss.Style
	OK        lipgloss.Style
	Warn      lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
}

// DefaultStyles returns the dashboard styling.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Body:      lipgloss.NewStyle(),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Alert:     lipgloss.NewStyle().Bold(true).Foreground(colorAlert),
		OK:        lipgloss.NewStyle().Foreground(colorOK),
		Warn:      lipgloss.NewStyle().Foreground(colorWarn),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, true, false),
		TabIdle:   lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
	}
}
