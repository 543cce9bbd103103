package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helixfall/internal/core"
	"github.com/vovakirdan/helixfall/internal/registry"
	"github.com/vovakirdan/helixfall/internal/storage"
)

// LocalPlayer is recorded as the player of rounds played in a local terminal.
const LocalPlayer = "local"

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	log        *log.Logger
	keys       *KeyMapper
	help       help.Model
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	scoreboard *ScoreboardModel
	rounds     int
	quitting   bool
}

// Option configures a Model.
type Option func(*Model)

// WithPlayer sets the name recorded with finished rounds.
func WithPlayer(name string) Option {
	return func(m *Model) {
		if name != "" {
			m.player = name
		}
	}
}

// WithLogger sets the logger used for ledger errors and round summaries.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		player:     LocalPlayer,
		log:        log.New(io.Discard),
		keys:       NewKeyMapper(),
		help:       help.New(),
		held:       NewHeldKeys(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// playfieldHeight leaves the last terminal row for the help bar.
func playfieldHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.handleScoreboardKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionScores:
		m.openScoreboard()
	case isLevelAction(action):
		m.held.Press(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleScoreboardKey routes keys to the scoreboard while it is open.
func (m Model) handleScoreboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scoreboard.Update(msg)
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}
	m.scoreboard = &sb
	return m, cmd
}

// openScoreboard shows the session scoreboard; the game is frozen meanwhile.
func (m *Model) openScoreboard() {
	sb := NewScoreboardModel(m.store, m.game.ID(), m.game.Title(), m.config.ScreenW, m.config.ScreenH)
	m.scoreboard = &sb
	m.held.Release()
	m.inputFrame.Clear()
}

// handleResize processes window resize events.
// The playfield is laid out on every render, so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	if m.scoreboard != nil {
		m.scoreboard.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m, tickCmd(m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.RoundOver != nil {
		m.recordRound(*result.RoundOver)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRound writes a finished round to the ledger.
func (m *Model) recordRound(r core.RoundResult) {
	m.rounds++
	m.log.Debug("round over",
		"player", m.player,
		"score", r.Score,
		"bounces", r.Bounces,
		"forfeit", r.Forfeit,
	)
	if m.store == nil {
		return
	}

	_, err := m.store.SaveRound(storage.RoundRecord{
		GameID:        m.game.ID(),
		Player:        m.player,
		Score:         r.Score,
		Bounces:       r.Bounces,
		LivesGained:   r.LivesGained,
		DurationTicks: r.Ticks,
		Seed:          m.config.Seed,
		Forfeit:       r.Forfeit,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.log.Error("cannot record round", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".helixfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
	}
}

// Rounds returns how many rounds finished while this model ran.
func (m Model) Rounds() int {
	return m.rounds
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	if m.config.ScreenH > 1 {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	}
	return b.String()
}

// Run starts the Bubble Tea program with the given model and returns
// the model as it was when the program exited.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (Model, error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
