package core

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", Vec{1, 1}, Vec{1, 1}, 0},
		{"3-4-5", Vec{0, 0}, Vec{3, 4}, 5},
		{"negative coords", Vec{-1, -1}, Vec{2, 3}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dist(tc.a, tc.b); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() = %f, expected %f", got, tc.expected)
			}
			if got := Dist(tc.b, tc.a); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() (reversed) = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestVecAngle(t *testing.T) {
	if got := (Vec{1, 0}).Angle(); got != 0 {
		t.Errorf("Angle of +x = %f, expected 0", got)
	}
	if got := (Vec{0, 1}).Angle(); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Angle of +y = %f, expected pi/2", got)
	}
}

func TestVecScale(t *testing.T) {
	v := Vec{2, 3}.Scale(8, 16)
	if v.X != 16 || v.Y != 48 {
		t.Errorf("Scale() = %+v, expected {16 48}", v)
	}
}

func TestRectContainsAndCentered(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 20) {
		t.Error("bottom-right edge is exclusive")
	}

	c := r.Centered(10, 4)
	if c.X != 15 || c.Y != 13 || c.W != 10 || c.H != 4 {
		t.Errorf("Centered() = %+v", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f", got)
	}
}
