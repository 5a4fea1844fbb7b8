package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set(ActionPause) not visible through Has")
	}

	f.Clear()
	if f.Has(ActionPause) {
		t.Error("Clear should drop actions")
	}
}

func TestInputFramePointerOrder(t *testing.T) {
	f := NewInputFrame()
	f.AddPointer(PointerEvent{Kind: PointerPress, X: 1, Y: 1})
	f.AddPointer(PointerEvent{Kind: PointerMove, X: 2, Y: 1})
	f.AddPointer(PointerEvent{Kind: PointerRelease, X: 2, Y: 1})

	if len(f.Pointer) != 3 {
		t.Fatalf("expected 3 pointer events, got %d", len(f.Pointer))
	}
	if f.Pointer[0].Kind != PointerPress || f.Pointer[2].Kind != PointerRelease {
		t.Errorf("pointer events out of order: %+v", f.Pointer)
	}

	clone := f.Clone()
	f.Clear()
	if len(f.Pointer) != 0 {
		t.Error("Clear should drop pointer events")
	}
	if len(clone.Pointer) != 3 {
		t.Error("Clone must not share pointer storage")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action should stringify as Unknown")
	}
	if PointerMove.String() != "Move" {
		t.Errorf("PointerMove.String() = %q", PointerMove.String())
	}
}
