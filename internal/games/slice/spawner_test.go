package slice

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/slice-arcade/internal/config"
)

func TestSpawnerThreshold(t *testing.T) {
	s := NewSpawner(config.DefaultSliceConfig().Spawn)

	if s.Advance(1.5) {
		t.Fatal("spawned at exactly the interval, want strictly greater")
	}
	if !s.Advance(0.01) {
		t.Fatal("did not spawn past the interval")
	}
	if s.Advance(1.0) {
		t.Error("accumulator was not reset after spawning")
	}
}

func TestSpawnerOnePerCall(t *testing.T) {
	// A long stall still produces a single spawn.
	s := NewSpawner(config.DefaultSliceConfig().Spawn)
	if !s.Advance(10) {
		t.Fatal("want spawn after a 10s gap")
	}
	if s.Advance(0) {
		t.Error("want no second spawn from the same gap")
	}
}

func TestSpawnPosition(t *testing.T) {
	cfg := config.DefaultSliceConfig()
	s := NewSpawner(cfg.Spawn)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		o := s.Spawn(rng, 640, 384, cfg.Physics)
		if o.Pos.X < 0 || o.Pos.X >= 640 {
			t.Fatalf("X = %v, want [0, 640)", o.Pos.X)
		}
		if o.Pos.Y != 414 {
			t.Fatalf("Y = %v, want 414", o.Pos.Y)
		}
		if o.Vel.Y >= 0 {
			t.Fatalf("Vel.Y = %v, want upward launch", o.Vel.Y)
		}
	}
}

func TestSpawnBombRatio(t *testing.T) {
	cfg := config.DefaultSliceConfig()
	s := NewSpawner(cfg.Spawn)
	rng := rand.New(rand.NewSource(99))

	const n = 20000
	bombs := 0
	for i := 0; i < n; i++ {
		if s.Spawn(rng, 800, 600, cfg.Physics).Kind == KindBomb {
			bombs++
		}
	}

	ratio := float64(bombs) / n
	if ratio < 0.18 || ratio > 0.22 {
		t.Errorf("bomb ratio = %.3f, want about 0.2", ratio)
	}
}
