package slice

import (
	"math/rand"

	"github.com/vovakirdan/slice-arcade/internal/core"
)

// Skin is the visual identity of a falling object. It has no gameplay effect.
type Skin uint8

const (
	SkinCyberApple Skin = iota
	SkinCyberBanana
	SkinCyberOrange
	SkinCyberWatermelon
	SkinCyberBomb
)

// FruitSkins is the set a fruit draws its skin from.
var FruitSkins = []Skin{
	SkinCyberApple,
	SkinCyberBanana,
	SkinCyberOrange,
	SkinCyberWatermelon,
}

var skinNames = map[Skin]string{
	SkinCyberApple:      "cyberapple",
	SkinCyberBanana:     "cyberbanana",
	SkinCyberOrange:     "cyberorange",
	SkinCyberWatermelon: "cyberwatermelon",
	SkinCyberBomb:       "cyberbomb",
}

// String returns the asset name of the skin.
func (s Skin) String() string {
	if name, ok := skinNames[s]; ok {
		return name
	}
	return "unknown"
}

// Color returns the terminal color used to draw the skin.
func (s Skin) Color() core.Color {
	switch s {
	case SkinCyberApple:
		return core.ColorBrightRed
	case SkinCyberBanana:
		return core.ColorBrightYellow
	case SkinCyberOrange:
		return core.ColorOrange
	case SkinCyberWatermelon:
		return core.ColorBrightGreen
	case SkinCyberBomb:
		return core.ColorGray
	default:
		return core.ColorDefault
	}
}

// Glyph returns the fill rune of the skin.
func (s Skin) Glyph() rune {
	switch s {
	case SkinCyberApple:
		return '●'
	case SkinCyberBanana:
		return '◗'
	case SkinCyberOrange:
		return '◉'
	case SkinCyberWatermelon:
		return '▓'
	case SkinCyberBomb:
		return '◆'
	default:
		return '?'
	}
}

// randomFruitSkin draws uniformly from FruitSkins.
func randomFruitSkin(rng *rand.Rand) Skin {
	return FruitSkins[rng.Intn(len(FruitSkins))]
}
