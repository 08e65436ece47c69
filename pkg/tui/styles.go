package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#6b7280")
	warning = lipgloss.Color("#FFC107")
	danger  = lipgloss.Color("#e53935")

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(accent)
	statusStyle      = lipgloss.NewStyle().Foreground(muted)
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(danger)
	emptyStyle       = lipgloss.NewStyle().Italic(true).Foreground(muted)
	priceStyle       = lipgloss.NewStyle().Bold(true)
	ratingStyle      = lipgloss.NewStyle().Foreground(warning)
	categoryStyle    = lipgloss.NewStyle().Foreground(muted)
	descriptionStyle = lipgloss.NewStyle().Faint(true)
	helpStyle        = lipgloss.NewStyle().Foreground(muted).MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			MarginRight(1)
)
