package towers

import (
	"math"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// Tile is a grid coordinate.
type Tile struct {
	X, Y int
}

// Grid is the isometric map: dimensions, projection, and the enemy route.
type Grid struct {
	W, H         int
	TileW, TileH float64
	path         []Tile
	onPath       map[Tile]bool
}

// NewGrid builds a grid from content, expanding the path corners into one
// waypoint per tile.
func NewGrid(m config.MapConfig) *Grid {
	g := &Grid{
		W:      m.Width,
		H:      m.Height,
		TileW:  m.TileWidth,
		TileH:  m.TileHeight,
		path:   ExpandPath(m.Path),
		onPath: make(map[Tile]bool),
	}
	for _, t := range g.path {
		g.onPath[t] = true
	}
	return g
}

// ExpandPath walks straight segments between corners, emitting every tile
// once. Corners must share a row or column with their predecessor.
func ExpandPath(corners [][2]int) []Tile {
	if len(corners) == 0 {
		return nil
	}
	out := []Tile{{corners[0][0], corners[0][1]}}
	for i := 1; i < len(corners); i++ {
		cur := out[len(out)-1]
		dst := Tile{corners[i][0], corners[i][1]}
		dx, dy := sign(dst.X-cur.X), sign(dst.Y-cur.Y)
		for cur != dst {
			cur = Tile{cur.X + dx, cur.Y + dy}
			out = append(out, cur)
		}
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// TileToWorld returns the top vertex of a tile's diamond. The map is shifted
// right by half its width so tile (0, 0) sits at the horizontal centre.
func (g *Grid) TileToWorld(t Tile) core.Vec2 {
	isoX := float64(t.X-t.Y) * (g.TileW / 2)
	isoY := float64(t.X+t.Y) * (g.TileH / 2)
	return core.V(isoX+float64(g.W)*g.TileW/2, isoY)
}

// TileCenter returns the centre of a tile's diamond.
func (g *Grid) TileCenter(t Tile) core.Vec2 {
	return g.TileToWorld(t).Add(core.V(0, g.TileH/2))
}

// WorldToTile is the inverse projection. Every point inside a diamond maps
// to that diamond's tile.
func (g *Grid) WorldToTile(p core.Vec2) Tile {
	isoX := p.X - float64(g.W)*g.TileW/2
	isoY := p.Y
	return Tile{
		X: int(math.Floor(isoX/g.TileW + isoY/g.TileH)),
		Y: int(math.Floor(isoY/g.TileH - isoX/g.TileW)),
	}
}

// InBounds reports whether t is on the map.
func (g *Grid) InBounds(t Tile) bool {
	return t.X >= 0 && t.X < g.W && t.Y >= 0 && t.Y < g.H
}

// OnPath reports whether t is part of the enemy route.
func (g *Grid) OnPath(t Tile) bool {
	return g.onPath[t]
}

// NearPath reports whether t is orthogonally adjacent to the route.
func (g *Grid) NearPath(t Tile) bool {
	return g.onPath[Tile{t.X + 1, t.Y}] || g.onPath[Tile{t.X - 1, t.Y}] ||
		g.onPath[Tile{t.X, t.Y + 1}] || g.onPath[Tile{t.X, t.Y - 1}]
}

// Buildable reports whether a tower may stand on t: in bounds, off the path,
// and not touching it.
func (g *Grid) Buildable(t Tile) bool {
	return g.InBounds(t) && !g.OnPath(t) && !g.NearPath(t)
}

// Path returns the expanded route.
func (g *Grid) Path() []Tile {
	return g.path
}

// Waypoint returns the world position of path step i.
func (g *Grid) Waypoint(i int) core.Vec2 {
	return g.TileToWorld(g.path[i])
}
