package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// Severity colors
var (
	colorCritical = lipgloss.Color("#FF0000")
	colorModerate = lipgloss.Color("#FF8800")
	colorMinor    = lipgloss.Color("#FFFF00")
	colorGood     = lipgloss.Color("#00FF00")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#7B68EE")
	colorBorder   = lipgloss.Color("#444444")
	colorError    = lipgloss.Color("#FF5555")
)

// Panel styles
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleDetailPanel = lipgloss.NewStyle().
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(colorBorder)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	stylePrompt = lipgloss.NewStyle().
			Foreground(colorAccent).Bold(true)

	styleStatus = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).Bold(true).
			Padding(0, 1)

	styleErrorFocused = lipgloss.NewStyle().
				Foreground(colorError).Bold(true).
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorError)

	styleInputInvalid = lipgloss.NewStyle().
				Foreground(colorError)
)

// severityStyle returns the lipgloss style for a severity level.
func severityStyle(severity models.Severity) lipgloss.Style {
	switch severity {
	case models.SeverityCritical:
		return lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	case models.SeverityModerate:
		return lipgloss.NewStyle().Foreground(colorModerate).Bold(true)
	case models.SeverityMinor:
		return lipgloss.NewStyle().Foreground(colorMinor)
	default:
		return lipgloss.NewStyle()
	}
}

// categoryStyle returns the lipgloss style for a score category.
func categoryStyle(category string) lipgloss.Style {
	switch category {
	case models.CategoryGood:
		return lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	case models.CategoryFair:
		return lipgloss.NewStyle().Foreground(colorMinor).Bold(true)
	case models.CategoryPoor:
		return lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}
