package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/slice-arcade/internal/audio"
	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/registry"
	"github.com/vovakirdan/slice-arcade/internal/reward"
)

const rewardTimeout = 30 * time.Second

// GameModel runs one game: the tick loop while a session is live, then the
// game-over screen with the reward outcome.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	player     string
	config     core.RuntimeConfig
	input      core.InputFrame
	keys       *KeyMapper
	state      core.GameState
	tickID     int
	running    bool
	scoreSaved bool
	reward     string
	replay     bool
	backToMenu bool
	quitting   bool
}

// NewGameModel creates a game model. Call Start to begin a session.
func NewGameModel(game registry.Game, svc Services, player string, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:    svc.withDefaults(),
		player: player,
		config: cfg,
		input:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
	}
}

// Start resets the game into a fresh session and starts a new tick loop.
// Ticks of any earlier loop are dropped from now on.
func (m GameModel) Start() (GameModel, tea.Cmd) {
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.tickID++
	m.running = true
	m.scoreSaved = false
	m.reward = ""
	m.replay = false
	m.backToMenu = false
	m.input.Clear()
	m.svc.Logger.Info("session started", "game", m.game.ID(), "player", m.player, "seed", m.config.Seed)
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// Restart starts another session with a new seed.
func (m GameModel) Restart() (GameModel, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	return m.Start()
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keys.MapMouse(msg); ok && m.running {
			m.input.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		return m.handleTick(msg)

	case rewardMsg:
		m.reward = rewardMessage(msg)
		if msg.err == nil {
			m.svc.Audio.Play(audio.SoundCoin)
		} else {
			m.svc.Logger.Warn("no reward paid", "player", m.player, "score", m.state.Score, "err", msg.err)
		}
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.running = false
		return m, tea.Quit
	}

	if !m.running {
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			m.replay = m.state.GameOver
		case core.ActionBack:
			m.backToMenu = true
		}
		return m, nil
	}

	switch action {
	case core.ActionPause:
		m.input.Set(core.ActionPause)
	case core.ActionBack:
		if m.state.Paused {
			m.running = false
			m.backToMenu = true
		}
	}
	return m, nil
}

// handleResize keeps the session when the game can adapt in place.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) GameModel {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if m.running {
		m.game.Reset(m.config)
	}
	return m
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(msg TickMsg) (GameModel, tea.Cmd) {
	if msg.ID != m.tickID || !m.running {
		return m, nil
	}

	result := m.game.Step(m.input)
	m.input.Clear()
	m.state = result.State

	for _, ev := range result.Events {
		switch ev {
		case core.EventSlice:
			m.svc.Audio.Play(audio.SoundSlice)
		case core.EventExplosion:
			m.svc.Audio.Play(audio.SoundExplosion)
		case core.EventGameOver:
			m.svc.Audio.Play(audio.SoundGameOver)
		}
	}

	if m.state.GameOver {
		m.running = false
		return m.finish()
	}
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// finish records the score once and requests the reward payout.
func (m GameModel) finish() (GameModel, tea.Cmd) {
	score := m.state.Score
	m.svc.Logger.Info("session over", "game", m.game.ID(), "player", m.player, "score", score)
	if m.scoreSaved || score <= 0 {
		return m, nil
	}
	m.scoreSaved = true

	if m.svc.Store != nil {
		if _, err := m.svc.Store.SaveScore(m.game.ID(), m.player, score); err != nil {
			m.svc.Logger.Warn("could not save score", "err", err)
		}
	}

	if m.svc.Rewards == nil {
		return m, nil
	}
	m.reward = "Claiming reward..."
	return m, claimReward(m.svc.Rewards, m.player, score)
}

func claimReward(rewards *reward.Service, player string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rewardTimeout)
		defer cancel()
		receipt, err := rewards.Transfer(ctx, player, score)
		return rewardMsg{receipt: receipt, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.Logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.Logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.state.GameOver {
		mid := m.screen.Height() / 2
		if m.reward != "" {
			m.screen.DrawTextCentered(mid+4, m.reward)
		}
		m.screen.DrawTextCentered(mid+6, "R: Play Again  |  B: Menu  |  Q: Quit")
	}
	return RenderScreen(m.screen)
}

// State returns the last game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// Running reports whether a session tick loop is live.
func (m GameModel) Running() bool {
	return m.running
}

// Reward returns the reward line shown on the game-over screen.
func (m GameModel) Reward() string {
	return m.reward
}

// WantsReplay returns true if the player asked for another game.
func (m GameModel) WantsReplay() bool {
	return m.replay
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
