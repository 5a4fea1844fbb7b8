package slice

import (
	"testing"

	"github.com/vovakirdan/slice-arcade/internal/core"
)

func TestTrailStartResets(t *testing.T) {
	tr := NewTrail(10)
	tr.Start(core.Vec{X: 1, Y: 1})
	tr.Move(core.Vec{X: 2, Y: 2})
	tr.Start(core.Vec{X: 5, Y: 5})

	pts := tr.Points()
	if len(pts) != 1 || pts[0] != (core.Vec{X: 5, Y: 5}) {
		t.Errorf("Points() = %v, want [{5 5}]", pts)
	}
}

func TestTrailMoveWithoutStart(t *testing.T) {
	tr := NewTrail(10)
	tr.Move(core.Vec{X: 3, Y: 4})
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for move without start", tr.Len())
	}
}

func TestTrailKeepsMostRecent(t *testing.T) {
	tr := NewTrail(10)
	tr.Start(core.Vec{X: 0})
	for i := 1; i < 25; i++ {
		tr.Move(core.Vec{X: float64(i)})
		if tr.Len() > 10 {
			t.Fatalf("Len() = %d after %d moves, want <= 10", tr.Len(), i)
		}
	}

	pts := tr.Points()
	if len(pts) != 10 {
		t.Fatalf("Len = %d, want 10", len(pts))
	}
	for i, p := range pts {
		if p.X != float64(15+i) {
			t.Errorf("pts[%d].X = %v, want %v", i, p.X, 15+i)
		}
	}
}

func TestTrailEndClears(t *testing.T) {
	tr := NewTrail(10)
	tr.Start(core.Vec{X: 1})
	tr.Move(core.Vec{X: 2})
	tr.End()
	if tr.Len() != 0 {
		t.Errorf("Len() = %d after End, want 0", tr.Len())
	}
	tr.End()
	if tr.Len() != 0 {
		t.Error("End on empty trail should stay empty")
	}
}

func TestTrailScale(t *testing.T) {
	tr := NewTrail(10)
	tr.SetScale(8, 16)
	tr.Start(core.Vec{X: 1.5, Y: 2.5})
	tr.Move(core.Vec{X: 3, Y: 1})

	pts := tr.Points()
	want := []core.Vec{{X: 12, Y: 40}, {X: 24, Y: 16}}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("pts[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestTrailPointsIsCopy(t *testing.T) {
	tr := NewTrail(10)
	tr.Start(core.Vec{X: 1})
	pts := tr.Points()
	pts[0].X = 99
	if tr.Points()[0].X != 1 {
		t.Error("Points() must not alias the trail")
	}
}
