package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// DisableColors forces monochrome output (for --no-color or NO_COLOR).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// AutoDetectColors applies the color profile termenv detects for the
// current terminal.
func AutoDetectColors() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
