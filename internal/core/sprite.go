package core

import (
	"math"
	"sort"
)

// Sprite is one world-space drawable in a frame's draw list.
type Sprite struct {
	Pos   Vec2
	Glyph rune
	Color Color
	Label string // Optional text drawn to the right of the glyph
}

// SortByDepth orders sprites back-to-front by world Y so nearer entities
// overwrite farther ones. Ties keep their insertion order.
func SortByDepth(sprites []Sprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Pos.Y < sprites[j].Pos.Y
	})
}

// Viewport maps world pixels to screen cells.
type Viewport struct {
	Offset  Vec2    // World position of the top-left screen cell (camera)
	CellW   float64 // World pixels per cell column
	CellH   float64 // World pixels per cell row
	OriginX int     // Screen column of world x = Offset.X
	OriginY int     // Screen row of world y = Offset.Y
}

// ToCell projects a world position onto the screen.
func (v Viewport) ToCell(p Vec2) (int, int) {
	x := int(math.Floor((p.X-v.Offset.X)/v.CellW)) + v.OriginX
	y := int(math.Floor((p.Y-v.Offset.Y)/v.CellH)) + v.OriginY
	return x, y
}

// ToWorld maps a screen cell back to the world position of its center.
func (v Viewport) ToWorld(x, y int) Vec2 {
	return Vec2{
		X: (float64(x-v.OriginX)+0.5)*v.CellW + v.Offset.X,
		Y: (float64(y-v.OriginY)+0.5)*v.CellH + v.Offset.Y,
	}
}

// DrawSprites paints sprites onto the screen in slice order.
func (s *Screen) DrawSprites(v Viewport, sprites []Sprite) {
	for _, sp := range sprites {
		x, y := v.ToCell(sp.Pos)
		s.SetColored(x, y, sp.Glyph, sp.Color)
		if sp.Label != "" {
			s.DrawTextColored(x+1, y, sp.Label, sp.Color)
		}
	}
}
