package slice

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
)

// ErrNotIdle is returned by Start on a session that was already started.
var ErrNotIdle = errors.New("slice: session already started")

// Phase is the lifecycle state of a session: Idle -> Running -> Stopped.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FrameResult is what one Update reports to the presentation layer.
type FrameResult struct {
	GameOver     bool
	SlicedFruits int
	HitBomb      bool
	Lives        int
	Score        int
}

// Session owns one play attempt: the live objects, the gesture trail and the
// score/lives bookkeeping. It is not safe for concurrent use; Update and the
// gesture methods must be called from the goroutine driving the frames.
type Session struct {
	cfg        config.SliceConfig
	rng        *rand.Rand
	surface    Surface
	logger     *log.Logger
	difficulty *config.DifficultyManager

	phase   Phase
	fruits  []*Object
	bombs   []*Object
	blasts  []*Object // sliced bombs playing out their explosion
	trail   *Trail
	spawner *Spawner
	score   int
	lives   int
	ticks   int
	last    time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithConfig replaces the default game configuration.
func WithConfig(cfg config.SliceConfig) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithRand sets the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates an idle session drawing onto surface.
func NewSession(surface Surface, opts ...Option) *Session {
	s := &Session{
		cfg:     config.DefaultSliceConfig(),
		surface: surface,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.cfg.Gameplay.Lives <= 0 {
		s.cfg.Gameplay.Lives = 3
	}
	s.trail = NewTrail(s.cfg.Trail.MaxPoints)
	s.spawner = NewSpawner(s.cfg.Spawn)
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	return s
}

// Start moves an idle session to running with empty collections, full lives
// and a zero score. now is the reference time for the first frame delta.
func (s *Session) Start(now time.Time) error {
	if s.phase != PhaseIdle {
		return ErrNotIdle
	}
	s.fruits = nil
	s.bombs = nil
	s.blasts = nil
	s.trail.End()
	s.spawner.Reset()
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.ticks = 0
	s.last = now
	s.phase = PhaseRunning
	s.logger.Info("session started", "lives", s.lives)
	return nil
}

// Stop ends a running session. Calling it again is a no-op.
func (s *Session) Stop() {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseStopped
	s.logger.Info("session stopped", "score", s.score, "ticks", s.ticks)
}

// Update runs one frame at time now. It reports false, and does nothing,
// unless the session is running.
func (s *Session) Update(now time.Time) (FrameResult, bool) {
	if s.phase != PhaseRunning {
		return FrameResult{}, false
	}

	dt := now.Sub(s.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	s.last = now
	s.ticks++

	width, height := s.surface.Size()
	phys := s.cfg.Physics

	s.spawner.Interval = s.difficulty.SpawnInterval(s.cfg.Spawn.Interval, s.score, s.ticks)
	s.spawner.BombChance = s.difficulty.BombChance(s.cfg.Spawn.BombChance, s.score, s.ticks)
	if s.spawner.Advance(dt) {
		o := s.spawner.Spawn(s.rng, width, height, phys)
		if o.Kind == KindBomb {
			s.bombs = append(s.bombs, o)
		} else {
			s.fruits = append(s.fruits, o)
		}
		s.logger.Debug("spawned", "kind", o.Kind, "skin", o.Skin, "x", o.Pos.X)
	}

	floor := height + s.cfg.Gameplay.DropMargin

	// Missed fruit costs nothing.
	fruits := s.fruits[:0]
	for _, f := range s.fruits {
		f.Update(phys)
		f.Draw(s.surface)
		if f.Top() <= floor {
			fruits = append(fruits, f)
		}
	}
	clear(s.fruits[len(fruits):])
	s.fruits = fruits

	bombs := s.bombs[:0]
	for _, b := range s.bombs {
		b.Update(phys)
		b.Draw(s.surface)
		if b.Pos.Y <= floor && !b.Sliced {
			bombs = append(bombs, b)
		}
	}
	clear(s.bombs[len(bombs):])
	s.bombs = bombs

	blasts := s.blasts[:0]
	for _, b := range s.blasts {
		b.Update(phys)
		b.Draw(s.surface)
		if !b.Blast.Done() {
			blasts = append(blasts, b)
		}
	}
	clear(s.blasts[len(blasts):])
	s.blasts = blasts

	if s.trail.Len() >= 2 {
		s.surface.DrawTrail(s.trail.points)
	}

	tally := Resolve(s.trail.points, s.fruits, s.bombs, s.cfg.Gameplay.SliceImpulse)
	s.score += tally.SlicedFruits * s.cfg.Gameplay.FruitPoints

	if tally.HitBomb {
		// A counted bomb leaves play now; only its explosion remains.
		live := s.bombs[:0]
		for _, b := range s.bombs {
			if b.Sliced {
				s.blasts = append(s.blasts, b)
				continue
			}
			live = append(live, b)
		}
		clear(s.bombs[len(live):])
		s.bombs = live

		s.lives--
		s.logger.Debug("bomb hit", "lives", s.lives)
		if s.lives <= 0 {
			s.lives = 0
			s.Stop()
		}
	}

	return FrameResult{
		GameOver:     s.lives <= 0,
		SlicedFruits: tally.SlicedFruits,
		HitBomb:      tally.HitBomb,
		Lives:        s.lives,
		Score:        s.score,
	}, true
}

// StartSlice begins a gesture at a display-space point.
func (s *Session) StartSlice(p core.Vec) {
	s.trail.Start(p)
}

// MoveSlice extends the current gesture. It does nothing without one.
func (s *Session) MoveSlice(p core.Vec) {
	s.trail.Move(p)
}

// EndSlice clears the gesture.
func (s *Session) EndSlice() {
	s.trail.End()
}

// SetTrailScale sets the display-to-simulation factor for gesture points.
func (s *Session) SetTrailScale(sx, sy float64) {
	s.trail.SetScale(sx, sy)
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Trail returns a copy of the gesture trail in simulation space.
func (s *Session) Trail() []core.Vec { return s.trail.Points() }

// Fruits returns copies of the live fruit.
func (s *Session) Fruits() []Object { return snapshot(s.fruits) }

// Bombs returns copies of the live bombs.
func (s *Session) Bombs() []Object { return snapshot(s.bombs) }

func snapshot(objs []*Object) []Object {
	out := make([]Object, len(objs))
	for i, o := range objs {
		out[i] = *o
	}
	return out
}
