package slice

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
)

// fakeSurface records draw calls.
type fakeSurface struct {
	w, h    float64
	sprites int
	halves  int
	blasts  int
	trails  [][]core.Vec
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{w: w, h: h}
}

func (f *fakeSurface) Size() (float64, float64) { return f.w, f.h }

func (f *fakeSurface) DrawSprite(Skin, core.Vec, float64, float64) { f.sprites++ }

func (f *fakeSurface) DrawHalf(Skin, core.Vec, float64, float64, bool) { f.halves++ }

func (f *fakeSurface) DrawBlast(core.Vec, float64, float64) { f.blasts++ }

func (f *fakeSurface) DrawTrail(points []core.Vec) {
	f.trails = append(f.trails, append([]core.Vec(nil), points...))
}

var t0 = time.Unix(1000, 0)

const frame = time.Second / 60

// quietConfig never spawns on its own so tests control every object.
func quietConfig() config.SliceConfig {
	cfg := config.DefaultSliceConfig()
	cfg.Spawn.Interval = 1e9
	return cfg
}

func newTestSession(t *testing.T, cfg config.SliceConfig, seed int64) (*Session, *fakeSurface) {
	t.Helper()
	surf := newFakeSurface(800, 600)
	s := NewSession(surf,
		WithConfig(cfg),
		WithRand(rand.New(rand.NewSource(seed))),
		WithLogger(log.New(io.Discard)),
	)
	return s, surf
}

func startedSession(t *testing.T) (*Session, *fakeSurface) {
	t.Helper()
	s, surf := newTestSession(t, quietConfig(), 1)
	if err := s.Start(t0); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return s, surf
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestSession(t, quietConfig(), 1)

	if s.Phase() != PhaseIdle {
		t.Fatalf("new session phase = %v, want idle", s.Phase())
	}
	if _, ok := s.Update(t0); ok {
		t.Error("Update on idle session should report nothing")
	}

	if err := s.Start(t0); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.Phase() != PhaseRunning || s.Lives() != 3 || s.Score() != 0 {
		t.Fatalf("after Start: phase %v lives %d score %d", s.Phase(), s.Lives(), s.Score())
	}
	if err := s.Start(t0); !errors.Is(err, ErrNotIdle) {
		t.Errorf("second Start() = %v, want ErrNotIdle", err)
	}

	s.Stop()
	s.Stop()
	if s.Phase() != PhaseStopped {
		t.Errorf("phase = %v, want stopped", s.Phase())
	}
	if err := s.Start(t0); !errors.Is(err, ErrNotIdle) {
		t.Errorf("Start() after Stop = %v, want ErrNotIdle", err)
	}
	if _, ok := s.Update(t0.Add(frame)); ok {
		t.Error("Update on stopped session should report nothing")
	}
}

func TestSessionSpawnsOnInterval(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultSliceConfig(), 5)
	if err := s.Start(t0); err != nil {
		t.Fatal(err)
	}

	s.Update(t0.Add(time.Second))
	if n := len(s.Fruits()) + len(s.Bombs()); n != 0 {
		t.Fatalf("objects after 1s = %d, want 0", n)
	}

	s.Update(t0.Add(1600 * time.Millisecond))
	if n := len(s.Fruits()) + len(s.Bombs()); n != 1 {
		t.Fatalf("objects after 1.6s = %d, want 1", n)
	}

	objs := append(s.Fruits(), s.Bombs()...)
	// Spawned at height+30 and advanced one tick.
	if objs[0].Pos.Y >= 630 || objs[0].Pos.Y < 600 {
		t.Errorf("spawned Y = %v, want just below the bottom edge", objs[0].Pos.Y)
	}
}

func TestSessionSliceFruitScenario(t *testing.T) {
	s, surf := startedSession(t)
	s.fruits = append(s.fruits, fruitAt(400, 300))
	s.fruits[0].Vel = core.Vec{}

	s.StartSlice(core.Vec{X: 400, Y: 300})
	s.MoveSlice(core.Vec{X: 480, Y: 300})

	res, ok := s.Update(t0.Add(frame))
	if !ok {
		t.Fatal("Update reported nothing while running")
	}
	if res.SlicedFruits != 1 || res.Score != 10 || res.HitBomb || res.Lives != 3 || res.GameOver {
		t.Fatalf("frame = %+v, want 1 fruit, score 10, 3 lives", res)
	}
	if len(surf.trails) != 1 {
		t.Errorf("trail drawn %d times, want 1", len(surf.trails))
	}

	fruits := s.Fruits()
	if len(fruits) != 1 || !fruits[0].Sliced {
		t.Fatalf("want the sliced fruit still in play, got %+v", fruits)
	}
	s.EndSlice()

	removed := false
	now := t0.Add(frame)
	for i := 0; i < 600; i++ {
		now = now.Add(frame)
		res, _ = s.Update(now)
		if res.SlicedFruits != 0 {
			t.Fatal("a sliced fruit was counted twice")
		}
		if len(s.Fruits()) == 0 {
			removed = true
			break
		}
	}
	if !removed {
		t.Fatal("sliced fruit never fell off screen")
	}
	if s.Score() != 10 || s.Lives() != 3 {
		t.Errorf("score %d lives %d, want 10 and 3", s.Score(), s.Lives())
	}
	if surf.halves == 0 {
		t.Error("halves were never drawn")
	}
}

func TestSessionBombScenario(t *testing.T) {
	s, surf := startedSession(t)
	s.bombs = append(s.bombs, bombAt(400, 300))

	s.StartSlice(core.Vec{X: 400, Y: 300})
	s.MoveSlice(core.Vec{X: 480, Y: 300})

	res, _ := s.Update(t0.Add(frame))
	if !res.HitBomb || res.Lives != 2 || res.GameOver {
		t.Fatalf("frame = %+v, want bomb hit with 2 lives", res)
	}
	if len(s.Bombs()) != 0 {
		t.Errorf("live bombs = %d, want the hit bomb removed", len(s.Bombs()))
	}

	// The gesture is still there but the bomb is gone: no second penalty.
	res, _ = s.Update(t0.Add(2 * frame))
	if res.HitBomb || res.Lives != 2 {
		t.Errorf("next frame = %+v, want no bomb hit and 2 lives", res)
	}
	if surf.blasts == 0 {
		t.Error("explosion was never drawn")
	}
}

func TestSessionThreeBombsEndGame(t *testing.T) {
	s, _ := startedSession(t)
	now := t0

	for i := 1; i <= 3; i++ {
		s.bombs = append(s.bombs, bombAt(400, 300))
		s.StartSlice(core.Vec{X: 400, Y: 300})
		s.MoveSlice(core.Vec{X: 480, Y: 300})
		now = now.Add(frame)

		res, ok := s.Update(now)
		if !ok {
			t.Fatalf("hit %d: Update reported nothing", i)
		}
		if res.Lives != 3-i {
			t.Fatalf("hit %d: lives = %d, want %d", i, res.Lives, 3-i)
		}
		if res.GameOver != (i == 3) {
			t.Fatalf("hit %d: GameOver = %v", i, res.GameOver)
		}
		s.EndSlice()
	}

	if s.Phase() != PhaseStopped {
		t.Errorf("phase = %v, want stopped", s.Phase())
	}
	if _, ok := s.Update(now.Add(frame)); ok {
		t.Error("Update after game over should report nothing")
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, want 0", s.Lives())
	}
}

func TestSessionTwoBombsOneFrame(t *testing.T) {
	s, _ := startedSession(t)
	s.bombs = append(s.bombs, bombAt(400, 300), bombAt(410, 300))
	s.StartSlice(core.Vec{X: 405, Y: 300})
	s.MoveSlice(core.Vec{X: 480, Y: 300})

	res, _ := s.Update(t0.Add(frame))
	if res.Lives != 2 {
		t.Errorf("lives = %d, want one life lost per bomb-hit frame", res.Lives)
	}
}

func TestSessionMissedFruitIsFree(t *testing.T) {
	s, _ := startedSession(t)
	f := fruitAt(400, 649)
	f.Vel = core.Vec{Y: 5}
	s.fruits = append(s.fruits, f)

	res, _ := s.Update(t0.Add(frame))
	if len(s.Fruits()) != 0 {
		t.Error("fruit past the drop margin was kept")
	}
	if res.Lives != 3 || res.Score != 0 {
		t.Errorf("frame = %+v, want no penalty", res)
	}
}

func TestSessionResizeMovesFloor(t *testing.T) {
	s, surf := startedSession(t)
	f := fruitAt(100, 500)
	f.Vel = core.Vec{}
	s.fruits = append(s.fruits, f)

	surf.h = 400
	s.Update(t0.Add(frame))
	if len(s.Fruits()) != 0 {
		t.Error("fruit below the shrunk playfield was kept")
	}
}

func TestSessionInvariantsUnderRandomPlay(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultSliceConfig(), 2024)
	if err := s.Start(t0); err != nil {
		t.Fatal(err)
	}
	gestures := rand.New(rand.NewSource(77))

	now := t0
	prevScore, prevLives := 0, s.Lives()
	for i := 0; i < 20000 && s.Phase() == PhaseRunning; i++ {
		switch gestures.Intn(20) {
		case 0:
			s.StartSlice(core.Vec{X: gestures.Float64() * 800, Y: gestures.Float64() * 600})
		case 1:
			s.EndSlice()
		default:
			s.MoveSlice(core.Vec{X: gestures.Float64() * 800, Y: gestures.Float64() * 600})
		}
		now = now.Add(frame)

		res, ok := s.Update(now)
		if !ok {
			t.Fatal("running session reported nothing")
		}
		if res.Score < prevScore {
			t.Fatalf("score went down: %d -> %d", prevScore, res.Score)
		}
		if res.Lives < 0 || res.Lives > prevLives || prevLives-res.Lives > 1 {
			t.Fatalf("lives went %d -> %d", prevLives, res.Lives)
		}
		if res.HitBomb != (res.Lives == prevLives-1) {
			t.Fatalf("lives %d -> %d with HitBomb=%v", prevLives, res.Lives, res.HitBomb)
		}
		if len(s.Trail()) > 10 {
			t.Fatalf("trail has %d points", len(s.Trail()))
		}
		prevScore, prevLives = res.Score, res.Lives
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, int, int) {
		s, _ := newTestSession(t, config.DefaultSliceConfig(), 42)
		if err := s.Start(t0); err != nil {
			t.Fatal(err)
		}
		now := t0
		for i := 0; i < 3000; i++ {
			if i%30 == 0 {
				s.StartSlice(core.Vec{X: float64(i % 800), Y: 300})
			}
			s.MoveSlice(core.Vec{X: float64((i * 7) % 800), Y: float64((i * 3) % 600)})
			now = now.Add(frame)
			s.Update(now)
		}
		return s.Score(), s.Lives(), len(s.Fruits()) + len(s.Bombs())
	}

	s1, l1, n1 := run()
	s2, l2, n2 := run()
	if s1 != s2 || l1 != l2 || n1 != n2 {
		t.Errorf("runs differ: (%d,%d,%d) vs (%d,%d,%d)", s1, l1, n1, s2, l2, n2)
	}
}

func TestSessionClockGoingBackwards(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultSliceConfig(), 1)
	if err := s.Start(t0); err != nil {
		t.Fatal(err)
	}
	s.Update(t0.Add(-time.Hour))
	if n := len(s.Fruits()) + len(s.Bombs()); n != 0 {
		t.Errorf("negative delta spawned %d objects", n)
	}
}
