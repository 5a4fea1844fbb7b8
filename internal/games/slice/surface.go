package slice

import (
	"math"

	"github.com/vovakirdan/slice-arcade/internal/core"
)

// Surface is the drawing target of a session. Coordinates are simulation
// pixels. Size is read every frame, so the surface may change size between
// frames.
type Surface interface {
	Size() (width, height float64)
	DrawSprite(skin Skin, center core.Vec, radius, rot float64)
	DrawHalf(skin Skin, center core.Vec, radius, rot float64, right bool)
	DrawBlast(center core.Vec, radius, opacity float64)
	DrawTrail(points []core.Vec)
}

// Glyphs used by the terminal surface.
const (
	TrailChar     = '•'
	HighlightChar = '✦'
)

// ScreenSurface draws onto a terminal cell buffer where each cell covers
// cellW x cellH simulation pixels.
type ScreenSurface struct {
	screen *core.Screen
	cellW  float64
	cellH  float64
}

// NewScreenSurface wraps screen. Non-positive cell sizes fall back to 1.
func NewScreenSurface(screen *core.Screen, cellW, cellH float64) *ScreenSurface {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &ScreenSurface{screen: screen, cellW: cellW, cellH: cellH}
}

// CellSize returns the pixel size of one cell.
func (s *ScreenSurface) CellSize() (float64, float64) {
	return s.cellW, s.cellH
}

// Size returns the playfield size in pixels.
func (s *ScreenSurface) Size() (float64, float64) {
	return float64(s.screen.Width()) * s.cellW, float64(s.screen.Height()) * s.cellH
}

// DrawSprite fills the disc of the object with its skin plus a highlight
// that turns with rot.
func (s *ScreenSurface) DrawSprite(skin Skin, center core.Vec, radius, rot float64) {
	s.fillDisc(center, radius, func(core.Vec) (rune, core.Color, bool) {
		return skin.Glyph(), skin.Color(), true
	})
	tip := core.Vec{
		X: center.X + math.Cos(rot)*radius*0.5,
		Y: center.Y + math.Sin(rot)*radius*0.5,
	}
	x, y := s.cell(tip)
	s.screen.SetColored(x, y, HighlightChar, core.ColorBrightWhite)
}

// DrawHalf fills one side of the disc, split along the line through center
// at angle rot.
func (s *ScreenSurface) DrawHalf(skin Skin, center core.Vec, radius, rot float64, right bool) {
	cos, sin := math.Cos(rot), math.Sin(rot)
	s.fillDisc(center, radius, func(d core.Vec) (rune, core.Color, bool) {
		local := d.X*cos + d.Y*sin
		if right != (local >= 0) {
			return 0, 0, false
		}
		return skin.Glyph(), skin.Color(), true
	})
}

// DrawBlast draws three rings: red outside, orange, then a yellow core.
// Fainter blasts use lighter shading.
func (s *ScreenSurface) DrawBlast(center core.Vec, radius, opacity float64) {
	if opacity <= 0 || radius <= 0 {
		return
	}
	shade := '░'
	switch {
	case opacity > 0.66:
		shade = '█'
	case opacity > 0.33:
		shade = '▓'
	}
	s.fillDisc(center, radius, func(d core.Vec) (rune, core.Color, bool) {
		dist := d.Len()
		switch {
		case dist <= radius*0.4:
			return shade, core.ColorBrightYellow, true
		case dist <= radius*0.7:
			return shade, core.ColorOrange, true
		default:
			return shade, core.ColorRed, true
		}
	})
}

// DrawTrail connects the trail points with a line.
func (s *ScreenSurface) DrawTrail(points []core.Vec) {
	for i := 1; i < len(points); i++ {
		x0, y0 := s.cell(points[i-1])
		x1, y1 := s.cell(points[i])
		s.screen.DrawLine(x0, y0, x1, y1, TrailChar, core.ColorBrightWhite)
	}
}

// fillDisc visits every cell whose center lies inside the disc. paint gets
// the offset of the cell center from the disc center.
func (s *ScreenSurface) fillDisc(center core.Vec, radius float64, paint func(d core.Vec) (rune, core.Color, bool)) {
	x0, y0 := s.cell(core.Vec{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := s.cell(core.Vec{X: center.X + radius, Y: center.Y + radius})
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.screen.Width()-1), min(y1, s.screen.Height()-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := core.Vec{
				X: (float64(x)+0.5)*s.cellW - center.X,
				Y: (float64(y)+0.5)*s.cellH - center.Y,
			}
			if d.Len() > radius {
				continue
			}
			if r, c, ok := paint(d); ok {
				s.screen.SetColored(x, y, r, c)
			}
		}
	}
}

// cell maps a pixel position to the cell containing it.
func (s *ScreenSurface) cell(p core.Vec) (int, int) {
	return int(math.Floor(p.X / s.cellW)), int(math.Floor(p.Y / s.cellH))
}
