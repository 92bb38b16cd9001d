package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// progressColor returns the bar color for a completion percentage.
// Higher is better: 0-50% blue, 50-80% yellow, 80%+ green.
func progressColor(percent int) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorSuccess
	case percent >= 50:
		return ColorWarning
	default:
		return ColorSecondary
	}
}

// RenderBar renders a bracketed progress bar for a 0-100 percentage.
func RenderBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100
	empty := width - filled

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteRune('[')
	for i := 0; i < filled; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := 0; i < empty; i++ {
		sb.WriteRune(BarEmpty)
	}
	sb.WriteRune(']')

	style := lipgloss.NewStyle().Foreground(progressColor(percent))
	return style.Render(sb.String())
}
