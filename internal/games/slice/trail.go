package slice

import "github.com/vovakirdan/slice-arcade/internal/core"

// DefaultTrailPoints bounds the gesture trail.
const DefaultTrailPoints = 10

// Trail holds the most recent points of the current slice gesture in
// simulation space. Points arrive in display space and are scaled on entry.
type Trail struct {
	points []core.Vec
	max    int
	scale  core.Vec
}

// NewTrail creates an empty trail keeping at most max points.
func NewTrail(max int) *Trail {
	if max < 2 {
		max = DefaultTrailPoints
	}
	return &Trail{
		points: make([]core.Vec, 0, max),
		max:    max,
		scale:  core.Vec{X: 1, Y: 1},
	}
}

// SetScale sets the display-to-simulation factor for each axis.
func (t *Trail) SetScale(sx, sy float64) {
	t.scale = core.Vec{X: sx, Y: sy}
}

// Start begins a gesture at p, dropping any previous points.
func (t *Trail) Start(p core.Vec) {
	t.points = append(t.points[:0], t.toSim(p))
}

// Move extends the gesture. Without a started gesture it does nothing.
func (t *Trail) Move(p core.Vec) {
	if len(t.points) == 0 {
		return
	}
	t.points = append(t.points, t.toSim(p))
	if over := len(t.points) - t.max; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

// End clears the gesture.
func (t *Trail) End() {
	t.points = t.points[:0]
}

// Len returns the number of points in the trail.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []core.Vec {
	out := make([]core.Vec, len(t.points))
	copy(out, t.points)
	return out
}

func (t *Trail) toSim(p core.Vec) core.Vec {
	return p.Scale(t.scale.X, t.scale.Y)
}
