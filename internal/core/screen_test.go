package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '@', ColorRed)
	cell := s.GetCell(3, 2)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected '@' in red", cell)
	}

	// Out of bounds writes are dropped
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 99, 'X', ColorRed)
	if got := s.GetCell(-1, 0); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("out of bounds GetCell should be blank, got %+v", got)
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "é♥x")

	if s.Row(0) != "é♥x       " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		expectCells    [][2]int
	}{
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical reversed", 1, 3, 1, 1, [][2]int{{1, 1}, {1, 2}, {1, 3}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"single point", 2, 2, 2, 2, [][2]int{{2, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(5, 5)
			s.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, '*', ColorWhite)

			count := strings.Count(s.String(), "*")
			if count != len(tc.expectCells) {
				t.Errorf("line drew %d cells, expected %d", count, len(tc.expectCells))
			}
			for _, c := range tc.expectCells {
				if s.Get(c[0], c[1]) != '*' {
					t.Errorf("expected '*' at (%d, %d)", c[0], c[1])
				}
			}
		})
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, row := range expected {
		if s.Row(y) != row {
			t.Errorf("Row(%d) = %q, expected %q", y, s.Row(y), row)
		}
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, 'A', ColorGreen)
	s.SetColored(3, 3, 'B', ColorGreen)

	s.Resize(2, 2)
	if s.Get(1, 1) != 'A' {
		t.Error("Resize should keep content inside new bounds")
	}

	s.Resize(5, 5)
	if s.Get(3, 3) != ' ' {
		t.Error("content cut by shrinking should not come back")
	}
	if s.Width() != 5 || s.Height() != 5 {
		t.Errorf("size = %dx%d, expected 5x5", s.Width(), s.Height())
	}
}

func TestScreenCopyFrom(t *testing.T) {
	src := NewScreen(3, 3)
	src.SetColored(2, 2, 'Z', ColorCyan)

	dst := NewScreen(5, 2)
	dst.Set(4, 1, 'Q')
	dst.CopyFrom(src)

	if dst.Get(4, 1) != ' ' {
		t.Error("CopyFrom should clear cells outside the source")
	}
	if dst.Get(2, 2) != ' ' {
		t.Error("out of range cells must not be written")
	}

	src.SetColored(1, 1, 'Y', ColorCyan)
	dst.CopyFrom(src)
	if got := dst.GetCell(1, 1); got.Rune != 'Y' || got.Color != ColorCyan {
		t.Errorf("GetCell(1, 1) = %+v", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	if s.String() != "abc\nde " {
		t.Errorf("String() = %q", s.String())
	}
}
