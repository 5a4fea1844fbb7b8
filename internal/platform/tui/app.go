package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/registry"
)

const admitTimeout = 5 * time.Second

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
	viewWallet
)

// Options selects the game, the player and where the app starts.
type Options struct {
	GameID   string
	Player   string
	SkipMenu bool // start playing right away
}

// startMsg asks the app to run the entry gate and start a session.
type startMsg struct{}

// App is the top-level model: start menu, game, scoreboard and wallet. It is
// used for local play and for every SSH session.
type App struct {
	svc      Services
	opts     Options
	title    string
	config   core.RuntimeConfig
	active   view
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	wallet   WalletModel
	quitting bool
}

// NewApp creates the app. The game must be registered.
func NewApp(svc Services, cfg core.RuntimeConfig, opts Options) App {
	title := opts.GameID
	for _, g := range registry.List() {
		if g.ID == opts.GameID {
			title = g.Title
		}
	}

	return App{
		svc:    svc.withDefaults(),
		opts:   opts,
		title:  title,
		config: cfg,
		menu:   NewMenuModel(title, opts.Player, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init starts the first session right away when the menu is skipped.
func (a App) Init() tea.Cmd {
	if a.opts.SkipMenu {
		return func() tea.Msg { return startMsg{} }
	}
	return nil
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.config.ScreenW = msg.Width
		a.config.ScreenH = msg.Height
		a.menu, _ = a.menu.Update(msg)

	case startMsg:
		return a.startGame()
	}

	var cmd tea.Cmd
	switch a.active {
	case viewMenu:
		a.menu, cmd = a.menu.Update(msg)
		return a.afterMenu(cmd)

	case viewGame:
		a.game, cmd = a.game.Update(msg)
		switch {
		case a.game.IsQuitting():
			a.quitting = true
			return a, tea.Quit
		case a.game.BackToMenu():
			a.active = viewMenu
			return a, nil
		case a.game.WantsReplay():
			return a.replay()
		}
		return a, cmd

	case viewScores:
		a.scores, cmd = a.scores.Update(msg)
		if a.scores.IsQuitting() {
			a.quitting = true
		}
		if a.scores.Done() {
			a.active = viewMenu
		}
		return a, cmd

	case viewWallet:
		a.wallet, cmd = a.wallet.Update(msg)
		if a.wallet.IsQuitting() {
			a.quitting = true
		}
		if a.wallet.Done() {
			a.active = viewMenu
		}
		return a, cmd
	}
	return a, nil
}

// afterMenu acts on a menu selection.
func (a App) afterMenu(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	choice := a.menu.Choice()
	a.menu = a.menu.Consume()

	switch choice {
	case ChoicePlay:
		return a.startGame()
	case ChoiceScores:
		a.scores = NewScoreboardModel(a.svc.Store, a.opts.GameID, a.title, a.opts.Player, a.config.ScreenW, a.config.ScreenH)
		a.active = viewScores
	case ChoiceWallet:
		a.wallet = NewWalletModel(a.svc, a.opts.Player, a.config.ScreenW, a.config.ScreenH)
		a.active = viewWallet
	case ChoiceQuit:
		a.quitting = true
		return a, tea.Quit
	}
	return a, cmd
}

// startGame runs the entry gate and starts a fresh session. A refused entry
// returns to the menu with the reason.
func (a App) startGame() (tea.Model, tea.Cmd) {
	if err := a.admit(); err != nil {
		a.menu = a.menu.WithStatus(admitMessage(err))
		a.active = viewMenu
		return a, nil
	}

	game, err := registry.Create(a.opts.GameID)
	if err != nil {
		a.menu = a.menu.WithStatus(err.Error())
		a.active = viewMenu
		return a, nil
	}

	var cmd tea.Cmd
	a.game, cmd = NewGameModel(game, a.svc, a.opts.Player, a.config).Start()
	a.active = viewGame
	return a, cmd
}

// replay charges another entry and restarts the same game.
func (a App) replay() (tea.Model, tea.Cmd) {
	if err := a.admit(); err != nil {
		a.menu = a.menu.WithStatus(admitMessage(err))
		a.active = viewMenu
		return a, nil
	}

	var cmd tea.Cmd
	a.game, cmd = a.game.Restart()
	return a, cmd
}

func (a App) admit() error {
	ctx, cancel := context.WithTimeout(context.Background(), admitTimeout)
	defer cancel()

	if err := admit(ctx, a.svc.Gate, a.opts.Player); err != nil {
		a.svc.Logger.Info("entry refused", "player", a.opts.Player, "err", err)
		return err
	}
	return nil
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	switch a.active {
	case viewGame:
		return a.game.View()
	case viewScores:
		return a.scores.View()
	case viewWallet:
		return a.wallet.View()
	default:
		return a.menu.View()
	}
}

// Run starts the Bubble Tea program with mouse support for slicing.
func Run(svc Services, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewApp(svc, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
