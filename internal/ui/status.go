package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"loadstate/internal/loading"
)

// StatusLine renders a one-line summary of a snapshot: status symbol,
// message or error, and progress bar when loading.
func StatusLine(snap loading.Snapshot, width int) string {
	symbol, style := statusSymbol(snap)

	var parts []string
	parts = append(parts, style.Render(symbol))

	switch {
	case snap.Err != "":
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorError).Render(snap.Err))
	case snap.Loading:
		parts = append(parts, snap.Message)
		if snap.Stage != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(ColorMuted).Render("("+snap.Stage+")"))
		}
		if snap.Progress > 0 {
			parts = append(parts, RenderBar(snap.Progress, barWidth(width)))
		}
	default:
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorMuted).Render("idle"))
	}

	return strings.Join(parts, " ")
}

// StatusPanel renders the full snapshot field-by-field, for the demo's
// inspector view.
func StatusPanel(snap loading.Snapshot) string {
	label := lipgloss.NewStyle().Foreground(ColorMuted)
	value := lipgloss.NewStyle().Foreground(ColorPrimary)

	row := func(name, val string) string {
		return fmt.Sprintf("%s %s", label.Render(fmt.Sprintf("%-10s", name)), value.Render(val))
	}

	lines := []string{
		row("loading", fmt.Sprintf("%t", snap.Loading)),
		row("type", snap.Type.String()),
		row("progress", fmt.Sprintf("%d%%", snap.Progress)),
		row("stable", fmt.Sprintf("%t", snap.Stable)),
		row("skeleton", fmt.Sprintf("%t", snap.ShouldShowSkeleton)),
		row("renderKey", shortKey(snap.RenderKey)),
	}
	if snap.Message != "" {
		lines = append(lines, row("message", snap.Message))
	}
	if snap.Stage != "" {
		lines = append(lines, row("stage", snap.Stage))
	}
	if snap.Err != "" {
		lines = append(lines, row("error", snap.Err))
	}

	return strings.Join(lines, "\n")
}

func statusSymbol(snap loading.Snapshot) (string, lipgloss.Style) {
	switch {
	case snap.Err != "":
		return SymbolFail, lipgloss.NewStyle().Foreground(ColorError)
	case snap.Loading && !snap.Stable:
		return SymbolUnstable, lipgloss.NewStyle().Foreground(ColorWarning)
	case snap.Loading:
		return SymbolProgress, lipgloss.NewStyle().Foreground(ColorSecondary)
	default:
		return SymbolPending, lipgloss.NewStyle().Foreground(ColorMuted)
	}
}

// shortKey abbreviates a render key for display.
func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}

func barWidth(width int) int {
	w := width / 3
	if w < 10 {
		w = 10
	}
	return w
}
