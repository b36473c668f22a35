package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/game"
)

// Model is the Bubble Tea model driving one game session.
// Input events accumulate into an InputFrame between ticks; each TickMsg
// hands the frame to the simulation and clears it.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	frame    core.InputFrame
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(g *game.Game, cfg core.RuntimeConfig) Model {
	return Model{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(),
		frame:  core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.MapKeyToFrame(msg, &m.frame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, m.screen.Width(), &m.frame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.game.Step(m.frame)
		m.frame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.game.Snapshot())
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the given game session.
// Seed defaulting happens before game construction, so cfg is used as-is.
func Run(g *game.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(g, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Paddle follows the cursor
	)

	_, err := p.Run()
	return err
}
