package slice

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/core"
)

// Kind tags the two falling object variants.
type Kind uint8

const (
	KindFruit Kind = iota
	KindBomb
)

func (k Kind) String() string {
	if k == KindBomb {
		return "bomb"
	}
	return "fruit"
}

// Half is one piece of a sliced fruit.
type Half struct {
	Pos core.Vec
	Vel core.Vec
	Rot float64
}

// Blast is the explosion left by a sliced bomb.
type Blast struct {
	Radius    float64
	MaxRadius float64
	Speed     float64
	Opacity   float64
}

// Done reports whether the explosion has faded out.
func (b Blast) Done() bool {
	return b.Radius >= b.MaxRadius
}

// Object is a fruit or a bomb. Pos, Vel and Rot describe live motion and
// freeze once Sliced is set; after that only the kind's decay state moves.
type Object struct {
	Kind     Kind
	Skin     Skin
	Pos      core.Vec
	Vel      core.Vec
	Radius   float64
	Rot      float64
	RotSpeed float64
	Sliced   bool

	// Fruit decay
	SliceAngle float64
	Halves     [2]Half

	// Bomb decay
	Blast Blast
}

// NewFruit creates a fruit at pos with a random upward launch.
func NewFruit(rng *rand.Rand, pos core.Vec, p config.SlicePhysics) *Object {
	o := &Object{
		Kind:   KindFruit,
		Pos:    pos,
		Radius: p.Radius,
		Vel: core.Vec{
			X: (rng.Float64() - 0.5) * 2,
			Y: -10 - rng.Float64()*2,
		},
		RotSpeed: (rng.Float64() - 0.5) * 0.1,
	}
	o.Skin = randomFruitSkin(rng)
	return o
}

// NewBomb creates a bomb at pos. Bombs launch faster and wider than fruit.
func NewBomb(rng *rand.Rand, pos core.Vec, p config.SlicePhysics) *Object {
	return &Object{
		Kind:   KindBomb,
		Skin:   SkinCyberBomb,
		Pos:    pos,
		Radius: p.Radius,
		Vel: core.Vec{
			X: (rng.Float64() - 0.5) * 4,
			Y: -15 - rng.Float64()*3,
		},
		RotSpeed: (rng.Float64() - 0.5) * 0.1,
		Blast: Blast{
			MaxRadius: p.ExplosionMaxRadius,
			Speed:     p.ExplosionSpeed,
			Opacity:   1,
		},
	}
}

// Update advances the object by one tick.
func (o *Object) Update(p config.SlicePhysics) {
	if !o.Sliced {
		gravity := p.FruitGravity
		if o.Kind == KindBomb {
			gravity = p.BombGravity
		}
		o.Pos = o.Pos.Add(o.Vel)
		o.Vel.Y += gravity
		o.Rot += o.RotSpeed
		return
	}

	switch o.Kind {
	case KindFruit:
		spin := [2]float64{p.HalfSpin, -p.HalfSpin}
		drift := [2]float64{p.HalfDrift, -p.HalfDrift}
		for i := range o.Halves {
			h := &o.Halves[i]
			h.Rot += spin[i]
			h.Vel.X += drift[i]
			h.Vel.Y += p.HalfGravity
			h.Pos = h.Pos.Add(h.Vel)
		}
	case KindBomb:
		b := &o.Blast
		b.Radius = math.Min(b.Radius+b.Speed, b.MaxRadius)
		if b.MaxRadius > 0 {
			b.Opacity = math.Max(0, 1-b.Radius/b.MaxRadius)
		} else {
			b.Opacity = 0
		}
	}
}

// Top returns the smallest y the object currently occupies. A sliced fruit
// is only gone once both halves are gone.
func (o *Object) Top() float64 {
	if o.Sliced && o.Kind == KindFruit {
		return math.Min(o.Halves[0].Pos.Y, o.Halves[1].Pos.Y)
	}
	return o.Pos.Y
}

// slice splits a fruit along the gesture direction. The halves separate
// left and right around the frozen center and inherit its fall speed.
func (o *Object) slice(angle, impulse float64) {
	o.Sliced = true
	o.SliceAngle = angle
	push := math.Cos(angle) * impulse
	offset := core.Vec{X: o.Radius / 2}
	o.Halves[0] = Half{
		Pos: o.Pos.Sub(offset),
		Vel: core.Vec{X: o.Vel.X + push, Y: o.Vel.Y},
	}
	o.Halves[1] = Half{
		Pos: o.Pos.Add(offset),
		Vel: core.Vec{X: o.Vel.X - push, Y: o.Vel.Y},
	}
}

// detonate starts the bomb's explosion.
func (o *Object) detonate() {
	o.Sliced = true
	o.Blast.Radius = 0
	o.Blast.Opacity = 1
}

// Draw renders the object's current visual state. It does not mutate o.
func (o *Object) Draw(s Surface) {
	if !o.Sliced {
		s.DrawSprite(o.Skin, o.Pos, o.Radius, o.Rot)
		return
	}
	switch o.Kind {
	case KindFruit:
		s.DrawHalf(o.Skin, o.Halves[0].Pos, o.Radius, o.Halves[0].Rot, false)
		s.DrawHalf(o.Skin, o.Halves[1].Pos, o.Radius, o.Halves[1].Rot, true)
	case KindBomb:
		s.DrawBlast(o.Pos, o.Blast.Radius, o.Blast.Opacity)
	}
}
