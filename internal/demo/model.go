package demo

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loadstate/internal/config"
	"loadstate/internal/loading"
	"loadstate/internal/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorInfo)
	helpStyle    = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorSuccess).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorError).
			Padding(0, 1)
)

// Model is the Bubble Tea model for the loadstate demo. It owns a
// coordinator and renders skeleton placeholders, content, or errors
// from its snapshots.
type Model struct {
	coord    *loading.Coordinator
	registry *loading.Registry
	cfg      config.DemoConfig

	snaps   <-chan loading.Snapshot
	unsub   func()
	spinner ui.Spinner

	snap     loading.Snapshot
	width    int
	quitting bool
}

// NewModel builds the demo model around an existing coordinator and
// skeleton registry. The caller remains responsible for closing the
// coordinator.
func NewModel(coord *loading.Coordinator, registry *loading.Registry, cfg config.DemoConfig) *Model {
	ch, unsub := subscribe(coord)
	return &Model{
		coord:    coord,
		registry: registry,
		cfg:      cfg,
		snaps:    ch,
		unsub:    unsub,
		spinner:  ui.NewSpinner(),
		snap:     coord.Snapshot(),
		width:    cfg.Width,
	}
}

// Init starts the snapshot listener, the spinner, and the configured
// scenario.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listen(m.snaps),
		m.spinner.Init(),
	}
	if cmd := startFetch(m.coord, m.cfg); cmd != nil {
		cmds = append(cmds, cmd)
		if prog := progressTicks(m.cfg); prog != nil {
			cmds = append(cmds, prog)
		}
	}
	return tea.Batch(cmds...)
}

// Update handles key presses, snapshot deliveries, and scenario ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil

	case snapshotMsg:
		m.snap = loading.Snapshot(msg)
		m.spinner.Active = m.snap.Loading
		return m, listen(m.snaps)

	case fetchDoneMsg:
		m.coord.Stop()
		return m, nil

	case fetchProgressMsg:
		m.coord.SetProgress(msg.percent)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.unsub()
		return m, tea.Quit
	case "s":
		m.coord.Start(loading.StartConfig{Type: loading.TypeContent})
	case "x":
		m.coord.Stop()
	case "p":
		m.coord.SetProgress(m.snap.Progress + 15)
	case "g":
		m.coord.SetStage(nextStage(m.snap.Stage))
	case "e":
		m.coord.SetError("Could not reach the server")
	case "E":
		m.coord.SetError("")
	case "r":
		m.coord.ForceRefresh()
	case "c":
		m.coord.Clear()
	}
	return m, nil
}

// View renders the demo: status line, content area, and inspector.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("loadstate demo"))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("scenario: " + m.scenarioName()))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(ui.StatusLine(m.snap, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.contentView())
	b.WriteString("\n\n")

	b.WriteString(ui.StatusPanel(m.snap))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("s start · x stop · p progress · g stage · e error · E clear error · r refresh · c clear · q quit"))
	b.WriteString("\n")

	return b.String()
}

// contentView swaps between skeleton, error, content, and in-between
// renderings based on the snapshot gates.
func (m *Model) contentView() string {
	switch {
	case m.snap.ShouldShowSkeleton:
		return m.skeletonView()

	case m.snap.Err != "":
		return errorStyle.Render(ui.SymbolFail + " " + m.snap.Err)

	case !m.snap.Loading:
		return contentStyle.Render("Dr. Alvarez, Cardiology\nNext available: Tuesday 9:40 AM\nTelehealth and in-person visits")

	default:
		// loading but not yet stable (or the fallback is disabled):
		// keep showing the previous frame's emptiness rather than
		// flashing a skeleton mid-transition
		return helpStyle.Render(m.snap.Message)
	}
}

func (m *Model) skeletonView() string {
	fn, err := m.registry.Lookup(m.cfg.Skeleton)
	if err != nil {
		// unknown renderer configured; card is always registered
		fn, err = m.registry.Lookup("card")
		if err != nil {
			return helpStyle.Render(m.snap.Message)
		}
	}
	return fn(m.width)
}

func (m *Model) scenarioName() string {
	if m.cfg.Scenario == "" {
		return ScenarioInteractive
	}
	return m.cfg.Scenario
}

// nextStage cycles the demo's fetch stages.
func nextStage(current string) string {
	stages := []string{"profile", "appointments", "records"}
	for i, s := range stages {
		if s == current {
			return stages[(i+1)%len(stages)]
		}
	}
	return stages[0]
}
