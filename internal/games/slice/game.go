// Package slice implements Cyber Slice: fruit and bombs are launched from the
// bottom of the playfield and the player slices fruit with mouse gestures
// while avoiding bombs.
package slice

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/registry"
)

// ID is the registry id of the game.
const ID = "slice"

// Visual characters for the HUD
const (
	LifeChar     = '♥'
	LostLifeChar = '♡'
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Session to the fixed-tick registry.Game contract. Each Step
// advances a simulated clock by one tick, so play is deterministic for a seed.
type Game struct {
	cfg     config.SliceConfig
	loaded  bool
	runtime core.RuntimeConfig
	frame   *core.Screen
	surface *ScreenSurface
	session *Session
	clock   time.Time
	last    FrameResult
	paused  bool
}

// New creates a new game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed config.
func NewWithConfig(cfg config.SliceConfig) *Game {
	return &Game{cfg: cfg, loaded: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cyber Slice"
}

// Reset discards any previous session and starts a fresh one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime

	if !g.loaded {
		cfg, err := config.LoadSlice(configPath)
		if err != nil {
			if logger != nil {
				logger.Warn("using default slice config", "err", err)
			}
			cfg = config.DefaultSliceConfig()
		}
		config.ApplySlicePreset(&cfg, difficultyPreset)
		g.cfg = cfg
		g.loaded = true
	}

	g.frame = core.NewScreen(runtime.ScreenW, runtime.ScreenH)
	g.surface = NewScreenSurface(g.frame, g.cfg.Terminal.CellWidth, g.cfg.Terminal.CellHeight)
	g.session = NewSession(g.surface,
		WithConfig(g.cfg),
		WithRand(rand.New(rand.NewSource(runtime.Seed))),
		WithLogger(logger),
	)
	g.session.SetTrailScale(g.surface.CellSize())
	g.clock = time.Unix(0, 0)
	g.paused = false
	//nolint:errcheck // A fresh session is always idle
	g.session.Start(g.clock)
	g.last = FrameResult{Lives: g.session.Lives()}
}

// Resize changes the playfield without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.frame != nil {
		g.frame.Resize(w, h)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.session.Phase() != PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	// A gesture never spans a pause.
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.session.EndSlice()
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, ev := range in.Pointer {
		// Aim at the middle of the cell
		p := core.Vec{X: float64(ev.X) + 0.5, Y: float64(ev.Y) + 0.5}
		switch ev.Kind {
		case core.PointerPress:
			g.session.StartSlice(p)
		case core.PointerMove:
			g.session.MoveSlice(p)
		case core.PointerRelease:
			g.session.EndSlice()
		}
	}

	g.clock = g.clock.Add(time.Second / time.Duration(g.runtime.TickRate))
	g.frame.Clear()
	res, ok := g.session.Update(g.clock)
	if !ok {
		return core.StepResult{State: g.State()}
	}
	g.last = res

	var events []core.Event
	if res.SlicedFruits > 0 {
		events = append(events, core.EventSlice)
	}
	if res.HitBomb {
		events = append(events, core.EventExplosion)
	}
	if res.GameOver {
		events = append(events, core.EventGameOver)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the last frame plus the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.frame == nil {
		return
	}
	dst.CopyFrom(g.frame)

	// Draw HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.last.Score), core.ColorBrightCyan)
	hearts := strings.Repeat(string(LifeChar), g.last.Lives) +
		strings.Repeat(string(LostLifeChar), max(g.cfg.Gameplay.Lives-g.last.Lives, 0))
	dst.DrawTextColored(dst.Width()-len([]rune(hearts))-3, 0, " "+hearts+" ", core.ColorBrightRed)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.last.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.last.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.last.Score,
		Lives:    g.last.Lives,
		GameOver: g.last.GameOver,
		Paused:   g.paused,
	}
}

// LastFrame returns the most recent frame result.
func (g *Game) LastFrame() FrameResult {
	return g.last
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
