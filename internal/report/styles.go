// Package report renders a scored result for terminal display.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verocta-ai/spendscore/internal/model"
)

// Theme colors.
var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#34D399")
	// SuccessColor indicates healthy values.
	SuccessColor = lipgloss.Color("#10B981")
	// WarningColor indicates values that need attention.
	WarningColor = lipgloss.Color("#F59E0B")
	// ErrorColor indicates problem values.
	ErrorColor = lipgloss.Color("#EF4444")
	// InfoColor indicates informational elements.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box          lipgloss.Style
	ScoreBanner  lipgloss.Style
	ProgressFill lipgloss.Style
	ProgressRest lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Subtitle: lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true),
		Success: lipgloss.NewStyle().Foreground(SuccessColor),
		Warning: lipgloss.NewStyle().Foreground(WarningColor),
		Error:   lipgloss.NewStyle().Foreground(ErrorColor),
		Info:    lipgloss.NewStyle().Foreground(InfoColor),
		Subtle:  lipgloss.NewStyle().Foreground(SubtleColor),
		Normal:  lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)

	s.ScoreBanner = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	s.ProgressFill = lipgloss.NewStyle().Foreground(SuccessColor)
	s.ProgressRest = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))

	return s
}

// LevelStyle returns the style carrying a result level's display color.
func (s *Styles) LevelStyle(result *model.ScoreResult) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(result.Color))
}

// PriorityStyle returns the style for a recommendation priority.
func (s *Styles) PriorityStyle(priority model.Priority) lipgloss.Style {
	switch priority {
	case model.PriorityHigh:
		return s.Error
	case model.PriorityMedium:
		return s.Warning
	default:
		return s.Subtle
	}
}
