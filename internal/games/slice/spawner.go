package slice

import (
	"math/rand"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
)

// Spawner drops one object per interval of accumulated time.
type Spawner struct {
	Interval   float64 // seconds
	BombChance float64
	Offset     float64 // pixels below the bottom edge
	timer      float64
}

// NewSpawner creates a spawner from config.
func NewSpawner(cfg config.SliceSpawn) *Spawner {
	return &Spawner{
		Interval:   cfg.Interval,
		BombChance: cfg.BombChance,
		Offset:     cfg.Offset,
	}
}

// Advance adds dt seconds to the accumulator. It reports true, and resets the
// accumulator, once the accumulator exceeds the interval.
func (s *Spawner) Advance(dt float64) bool {
	s.timer += dt
	if s.timer > s.Interval {
		s.timer = 0
		return true
	}
	return false
}

// Reset zeroes the accumulator.
func (s *Spawner) Reset() {
	s.timer = 0
}

// Spawn creates one object just below a playfield of the given size.
func (s *Spawner) Spawn(rng *rand.Rand, width, height float64, p config.SlicePhysics) *Object {
	pos := core.Vec{X: rng.Float64() * width, Y: height + s.Offset}
	if rng.Float64() < s.BombChance {
		return NewBomb(rng, pos, p)
	}
	return NewFruit(rng, pos, p)
}
