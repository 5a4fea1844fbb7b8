package slice

import (
	"strings"
	"testing"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(quietConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
	return g
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", ID, err)
	}
	if g.Title() != "Cyber Slice" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("slice game should support resizing in place")
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	g := newTestGame(t)
	first := g.Session()
	if first.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running after Reset", first.Phase())
	}

	state := g.State()
	if state.Lives != 3 || state.Score != 0 || state.GameOver {
		t.Errorf("state = %+v, want 3 lives, score 0", state)
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.Session() == first {
		t.Error("Reset should create a new session")
	}
}

func TestPresetsKeepStartingLives(t *testing.T) {
	for _, preset := range []config.DifficultyPreset{
		config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed,
	} {
		t.Run(string(preset), func(t *testing.T) {
			cfg := quietConfig()
			config.ApplySlicePreset(&cfg, preset)
			g := NewWithConfig(cfg)
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
			if lives := g.State().Lives; lives != 3 {
				t.Errorf("lives at start = %d, want 3", lives)
			}
		})
	}
}

func TestPointerSlicesFruit(t *testing.T) {
	g := newTestGame(t)
	// Cell (40, 12) covers pixels [320,328) x [192,208).
	f := fruitAt(324, 200)
	f.Vel = core.Vec{}
	g.session.fruits = append(g.session.fruits, f)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: 40, Y: 12})
	in.AddPointer(core.PointerEvent{Kind: core.PointerMove, X: 45, Y: 12})

	res := g.Step(in)

	if !res.Has(core.EventSlice) {
		t.Errorf("events = %v, want slice", res.Events)
	}
	if res.State.Score != 10 {
		t.Errorf("score = %d, want 10", res.State.Score)
	}
	if g.LastFrame().SlicedFruits != 1 {
		t.Errorf("LastFrame = %+v", g.LastFrame())
	}
}

func TestPointerReleaseEndsGesture(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: 1, Y: 1})
	in.AddPointer(core.PointerEvent{Kind: core.PointerMove, X: 2, Y: 1})
	g.Step(in)
	if len(g.Session().Trail()) != 2 {
		t.Fatalf("trail = %v, want 2 points", g.Session().Trail())
	}

	in.Clear()
	in.AddPointer(core.PointerEvent{Kind: core.PointerRelease, X: 2, Y: 1})
	g.Step(in)
	if len(g.Session().Trail()) != 0 {
		t.Errorf("trail = %v, want empty after release", g.Session().Trail())
	}
}

func TestBombEndsGameWithEvents(t *testing.T) {
	g := newTestGame(t)
	in := core.NewInputFrame()

	var last core.StepResult
	for i := 0; i < 3; i++ {
		g.session.bombs = append(g.session.bombs, bombAt(324, 200))
		in.Clear()
		in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: 40, Y: 12})
		in.AddPointer(core.PointerEvent{Kind: core.PointerMove, X: 45, Y: 12})
		last = g.Step(in)
		if !last.Has(core.EventExplosion) {
			t.Fatalf("hit %d: events = %v, want explosion", i+1, last.Events)
		}
	}

	if !last.State.GameOver || !last.Has(core.EventGameOver) {
		t.Fatalf("result = %+v, want game over", last)
	}

	// Further steps change nothing.
	after := g.Step(core.NewInputFrame())
	if after.State != last.State || len(after.Events) != 0 {
		t.Errorf("step after game over = %+v", after)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(t)
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("want paused")
	}

	clock := g.clock
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.clock.Equal(clock) {
		t.Error("clock advanced while paused")
	}

	g.Step(in)
	if g.State().Paused {
		t.Error("want unpaused after second toggle")
	}
}

func TestPauseEndsGesture(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: 40, Y: 12})
	in.AddPointer(core.PointerEvent{Kind: core.PointerMove, X: 45, Y: 12})
	g.Step(in)
	if len(g.Session().Trail()) != 2 {
		t.Fatalf("trail = %v, want 2 points", g.Session().Trail())
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	release := core.NewInputFrame()
	release.AddPointer(core.PointerEvent{Kind: core.PointerRelease, X: 45, Y: 12})
	g.Step(release)

	g.Step(pause)
	if g.State().Paused {
		t.Fatal("want unpaused")
	}
	if n := len(g.Session().Trail()); n != 0 {
		t.Fatalf("trail has %d points after pause, want 0", n)
	}

	// A bomb on the old trailing point is not hit without a new gesture.
	g.session.bombs = append(g.session.bombs, bombAt(324, 200))
	res := g.Step(core.NewInputFrame())
	if res.Has(core.EventExplosion) || res.State.Lives != 3 {
		t.Errorf("result = %+v, want no bomb hit and 3 lives", res)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newTestGame(t)
	s := g.Session()
	g.Resize(100, 30)

	if g.Session() != s {
		t.Error("Resize replaced the session")
	}
	w, h := g.surface.Size()
	if w != 800 || h != 480 {
		t.Errorf("surface size = %vx%v, want 800x480", w, h)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t)
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	top := dst.Row(0)
	if !strings.Contains(top, "Score: 0") {
		t.Errorf("top row %q missing score", top)
	}
	if strings.Count(top, string(LifeChar)) != 3 {
		t.Errorf("top row %q, want 3 hearts", top)
	}
}

func TestRenderDrawsObjects(t *testing.T) {
	g := newTestGame(t)
	f := fruitAt(324, 200)
	f.Vel = core.Vec{}
	f.Skin = SkinCyberApple
	g.session.fruits = append(g.session.fruits, f)
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if dst.GetCell(40, 12).Color != SkinCyberApple.Color() {
		t.Errorf("cell (40,12) = %+v, want the fruit", dst.GetCell(40, 12))
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := NewWithConfig(quietConfig())
		g.cfg.Spawn.Interval = 0.5
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 777})
		in := core.NewInputFrame()
		for i := 0; i < 2000; i++ {
			in.Clear()
			if i%40 == 0 {
				in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: i % 80, Y: 12})
			}
			in.AddPointer(core.PointerEvent{Kind: core.PointerMove, X: (i * 3) % 80, Y: (i / 3) % 24})
			g.Step(in)
		}
		return g.State()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("states differ: %+v vs %+v", a, b)
	}
}
