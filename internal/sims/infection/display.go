package infection

import (
	"image/color"

	"goi/internal/core"
)

var factionPalette = buildFactionPalette()

// Palette exposes the color palette used for rendering faction grids. Index 0
// is the dead cell; indices 1..9 are the live factions.
func (w *World) Palette() []color.RGBA {
	return factionPalette
}

func buildFactionPalette() []color.RGBA {
	return []color.RGBA{
		{R: 16, G: 16, B: 20, A: 255},    // dead
		{R: 235, G: 80, B: 70, A: 255},   // faction 1
		{R: 80, G: 170, B: 240, A: 255},  // faction 2
		{R: 120, G: 210, B: 100, A: 255}, // faction 3
		{R: 240, G: 200, B: 70, A: 255},  // faction 4
		{R: 190, G: 110, B: 230, A: 255}, // faction 5
		{R: 70, G: 210, B: 200, A: 255},  // faction 6
		{R: 240, G: 140, B: 60, A: 255},  // faction 7
		{R: 230, G: 120, B: 180, A: 255}, // faction 8
		{R: 160, G: 160, B: 160, A: 255}, // faction 9
	}
}

// glyphFor maps a faction to its ASCII representation: '.' for dead cells,
// the decimal digit otherwise.
func glyphFor(f core.Faction) byte {
	if f == core.Dead {
		return '.'
	}
	return byte('0' + f)
}
