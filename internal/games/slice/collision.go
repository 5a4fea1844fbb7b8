package slice

import "github.com/vovakirdan/slice-arcade/internal/core"

// Tally is what one collision pass struck.
type Tally struct {
	SlicedFruits int
	HitBomb      bool
}

// Resolve tests every unsliced object against the trail segments and slices
// the ones it hits. An object is struck when its center is closer than its
// radius to the trailing point of a segment; the earliest such segment wins.
// Objects are mutated in place and never removed here.
func Resolve(trail []core.Vec, fruits, bombs []*Object, impulse float64) Tally {
	var t Tally
	if len(trail) < 2 {
		return t
	}

	for _, f := range fruits {
		if f.Sliced {
			continue
		}
		if p1, p2, ok := strike(trail, f); ok {
			f.slice(p2.Sub(p1).Angle(), impulse)
			t.SlicedFruits++
		}
	}

	for _, b := range bombs {
		if b.Sliced {
			continue
		}
		if _, _, ok := strike(trail, b); ok {
			b.detonate()
			t.HitBomb = true
		}
	}

	return t
}

// strike returns the first segment whose trailing point is within reach of o.
func strike(trail []core.Vec, o *Object) (core.Vec, core.Vec, bool) {
	for i := 1; i < len(trail); i++ {
		p1, p2 := trail[i-1], trail[i]
		if core.Dist(o.Pos, p1) < o.Radius {
			return p1, p2, true
		}
	}
	return core.Vec{}, core.Vec{}, false
}
