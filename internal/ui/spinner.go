package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) used in Bubble
// Tea programs.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}

// Spinner is a Bubble Tea component for the loading indicator shown
// next to the coordinator's message. It is composed into larger models.
type Spinner struct {
	model  spinner.Model
	Active bool
}

// NewSpinner creates a spinner component.
func NewSpinner() Spinner {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return Spinner{model: sp}
}

// Init returns the initial command for the spinner (tick).
func (s Spinner) Init() tea.Cmd {
	return s.model.Tick
}

// Update handles spinner animation messages while the spinner is active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.Active {
		return s, nil
	}
	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.model, cmd = s.model.Update(tickMsg)
		return s, cmd
	}
	return s, nil
}

// View renders the current frame, or a static pending symbol when idle.
func (s Spinner) View() string {
	if !s.Active {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(SymbolPending)
	}
	return s.model.View()
}
