package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Match modes recorded in the history.
const (
	ModeLocal = "local"
	ModeDemo  = "demo"
	ModeSSH   = "ssh"
)

// ModelOptions configures a game Model. Every field is optional.
type ModelOptions struct {
	Store         *storage.Store
	Logger        *log.Logger
	Metrics       *Metrics
	Mode          string
	Player        string        // ssh user name, empty locally
	KeyHold       time.Duration // see HeldKeys
	ScreenshotDir string        // defaults to ~/.pong/screenshots
	Demo          bool          // the player paddle follows the ball
	Clock         func() time.Time
}

// Model is the Bubble Tea model for one pong match.
type Model struct {
	game      *pong.Game
	screen    *core.Screen
	opts      ModelOptions
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	held      *HeldKeys
	pending   core.InputFrame // one-shot actions for the next tick
	gameState core.GameState
	started   time.Time
	match     uint64 // id carried by this model's ticks

	standalone bool // back-to-menu quits when there is no menu
	quitting   bool
	backToMenu bool
	saved      bool // current match already written to history
}

// NewModel creates a model and starts a fresh match.
func NewModel(opts ModelOptions, cfg core.RuntimeConfig) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = config.Default().Display.KeyHold
	}
	if opts.Mode == "" {
		opts.Mode = ModeLocal
		if opts.Demo {
			opts.Mode = ModeDemo
		}
	}

	game := pong.New()
	game.SetDemo(opts.Demo)
	game.Reset(cfg)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(opts.KeyHold),
		pending:   core.NewInputFrame(),
		gameState: game.State(),
		started:   opts.Clock(),
		match:     nextMatchID(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.match)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Match != m.match {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.opts.Logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	case "b":
		if m.gameState.Paused {
			m.finish()
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		if isQuit {
			m.finish()
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionUp, core.ActionDown:
		m.held.Press(action, m.opts.Clock())
	case core.ActionPause, core.ActionRestart:
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize re-lays out the match without restarting it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	now := m.opts.Clock()

	frame := m.held.Frame(now)
	for a := range m.pending.Actions {
		frame.Set(a)
	}
	m.pending.Clear()

	if frame.Has(core.ActionRestart) {
		m.finish()
		m.saved = false
		m.started = now
		m.held.Reset()
	}

	prev := m.gameState
	result := m.game.Step(frame)
	m.gameState = result.State

	if !result.State.Paused && !frame.Has(core.ActionRestart) {
		m.opts.Metrics.ObserveTick(result.PlayerPoints, result.AIPoints, result.Collisions)
	}
	if result.PlayerPoints+result.AIPoints > 0 {
		m.opts.Logger.Debug("point",
			"player", m.opts.Player,
			"score", fmt.Sprintf("%d : %d", result.State.AIScore, result.State.PlayerScore),
		)
	}
	if result.State.Paused != prev.Paused {
		m.opts.Logger.Debug("pause toggled", "paused", result.State.Paused)
	}

	return m, tickCmd(m.config.TickRate, m.match)
}

// finish writes the current match to history once.
// Matches that never ticked are not recorded.
func (m *Model) finish() {
	if m.saved || m.opts.Store == nil || m.game.Sim().Tick() == 0 {
		return
	}
	m.saved = true

	result := storage.MatchResult{
		Mode:        m.opts.Mode,
		Player:      m.opts.Player,
		PlayerScore: m.gameState.PlayerScore,
		AIScore:     m.gameState.AIScore,
		Ticks:       m.game.Sim().Tick(),
		Duration:    m.opts.Clock().Sub(m.started),
	}
	if _, err := m.opts.Store.SaveMatch(result); err != nil {
		m.opts.Logger.Warn("could not save match", "error", err)
		return
	}
	m.opts.Metrics.MatchSaved()
}

// saveScreenshot saves the current screen to a text file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		base := config.Dir()
		if base == "" {
			return "", fmt.Errorf("screenshot: no home directory")
		}
		dir = filepath.Join(base, "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := m.opts.Clock().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single match in the local terminal.
func Run(opts ModelOptions, cfg core.RuntimeConfig) error {
	model := NewModel(opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
