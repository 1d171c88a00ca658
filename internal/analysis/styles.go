package analysis

import (
	"strings"

	"github.com/Veraticus/crux/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box           lipgloss.Style
	KPIBox        lipgloss.Style
	InsightBox    lipgloss.Style
	Figure        lipgloss.Style
	HeatCold      lipgloss.Style
	HeatMild      lipgloss.Style
	HeatWarm      lipgloss.Style
	HeatHot       lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.KPIBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.PrimaryColor).
		Padding(0, 1).
		MarginTop(1)

	s.InsightBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(cli.InfoColor).
		Padding(0, 1).
		MarginTop(1)

	s.Figure = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	// Heatmap buckets, coldest to hottest.
	s.HeatCold = lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2"))
	s.HeatMild = lipgloss.NewStyle().Foreground(cli.InfoColor)
	s.HeatWarm = lipgloss.NewStyle().Foreground(cli.WarningColor)
	s.HeatHot = lipgloss.NewStyle().Bold(true).Foreground(cli.ErrorColor)

	s.ProgressFill = lipgloss.NewStyle().
		Foreground(cli.SuccessColor)

	s.ProgressEmpty = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#333333"))

	return s
}

// WithWidth returns a new Styles instance adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s

	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
		newStyles.KPIBox = s.KPIBox.Width(width - 4)
		newStyles.InsightBox = s.InsightBox.Width(width - 4)
	}

	return &newStyles
}

// ForRatio returns the style for a weekend/weekday ratio: weekends trailing is a warning.
func (s *Styles) ForRatio(ratio float64) lipgloss.Style {
	switch {
	case ratio == 0:
		return s.Subtle
	case ratio < 1:
		return s.Warning
	default:
		return s.Success
	}
}

// ForHeat picks a heatmap bucket for value relative to the hottest cell.
func (s *Styles) ForHeat(value, hottest float64) lipgloss.Style {
	if hottest <= 0 {
		return s.HeatCold
	}
	switch share := value / hottest; {
	case share >= 0.85:
		return s.HeatHot
	case share >= 0.6:
		return s.HeatWarm
	case share >= 0.35:
		return s.HeatMild
	default:
		return s.HeatCold
	}
}

// RenderProgressBar creates a bar filled to progress (0..1).
func (s *Styles) RenderProgressBar(progress float64, width int) string {
	if width <= 0 {
		width = 30
	}

	filled := int(float64(width) * progress)
	filled = max(0, min(filled, width))

	// Raw characters keep the width predictable.
	return repeatChar("█", filled) + repeatChar("░", width-filled)
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string, style lipgloss.Style) string {
	if title != "" {
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return style.Render(titleStyled + "\n" + content)
	}
	return style.Render(content)
}

func repeatChar(char string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(char, n)
}
