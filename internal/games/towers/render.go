package towers

import (
	"fmt"
	"math"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// Terminal scale: world pixels per screen cell.
const (
	CellW = 16
	CellH = 16
)

// ViewportFor maps the camera to screen cells. Row 0 is the HUD.
func ViewportFor(camera core.Vec2) core.Viewport {
	return core.Viewport{Offset: camera, CellW: CellW, CellH: CellH, OriginY: 1}
}

// Frame is everything the renderer needs for one tick. The simulation never
// reads it back.
type Frame struct {
	Scene    Scene
	Grid     *Grid
	Viewport core.Viewport
	Sprites  []core.Sprite // Entities, back to front
	Overlay  []core.Sprite // Range ring and build preview
	Effects  []core.Sprite // Particles, always on top
	Towers   []TowerButton
	HUD      HUD
	Debug    []string
	Labels   map[Tile]string // Path indices in debug mode
}

// TowerButton is one entry of the build bar.
type TowerButton struct {
	Key       int
	Name      string
	Cost      int
	Armed     bool
	CanAfford bool
}

// Renderer consumes frames.
type Renderer interface {
	Present(f Frame)
}

// RenderWorld assembles the frame for the current scene and presents it.
type RenderWorld struct{}

// Name implements chain.Event.
func (RenderWorld) Name() string { return "RenderWorld" }

// Execute implements chain.Event.
func (RenderWorld) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	f := Frame{
		Scene:    ctx.Scene,
		Grid:     w.Grid,
		Viewport: ctx.Viewport,
		HUD:      ctx.HUD,
	}

	lift := core.V(0, w.Grid.TileH/2)
	for _, t := range w.Towers {
		f.Sprites = append(f.Sprites, core.Sprite{Pos: t.Pos.Add(lift), Glyph: glyph(t.Glyph, 'T'), Color: t.Color})
	}
	for _, e := range w.Enemies {
		f.Sprites = append(f.Sprites, core.Sprite{Pos: e.Pos.Add(lift), Glyph: glyph(e.Glyph, 'e'), Color: e.Color})
	}
	for _, p := range w.Projectiles {
		f.Sprites = append(f.Sprites, core.Sprite{Pos: p.Pos.Add(lift), Glyph: projectileGlyph(p), Color: core.ColorBrightWhite})
	}
	core.SortByDepth(f.Sprites)

	f.Effects = fx.Sprites(w.Particles)
	for i := range f.Effects {
		f.Effects[i].Pos = f.Effects[i].Pos.Add(lift)
	}

	if w.Selected != nil {
		f.Overlay = append(f.Overlay, rangeRing(w.Selected.Pos.Add(lift), w.Selected.RangePixels(w.Grid.TileW), core.ColorYellow)...)
	}
	if w.SelectedType != "" && w.HoverValid {
		f.Overlay = append(f.Overlay, buildPreview(w)...)
	}

	for i, def := range w.Content.Towers {
		f.Towers = append(f.Towers, TowerButton{
			Key:       i + 1,
			Name:      def.Name,
			Cost:      def.Cost,
			Armed:     def.ID == w.SelectedType,
			CanAfford: w.CanAfford(def.Cost),
		})
	}

	if w.Debug {
		f.Labels = make(map[Tile]string)
		for i, t := range w.Grid.Path() {
			f.Labels[t] = fmt.Sprint(i % 10)
		}
		f.Debug = debugLines(ctx)
	}

	ctx.Frame = f
	if ctx.Renderer != nil {
		ctx.Renderer.Present(f)
	}
	return chain.Success()
}

func glyph(s string, fallback rune) rune {
	if r := []rune(s); len(r) > 0 {
		return r[0]
	}
	return fallback
}

func projectileGlyph(p *Projectile) rune {
	switch p.Kind {
	case "cannonball":
		return 'o'
	case "magic_bolt":
		return '*'
	case "bullet":
		return '.'
	}
	return '\''
}

// rangeRing samples a circle every few degrees.
func rangeRing(center core.Vec2, radius float64, c core.Color) []core.Sprite {
	const steps = 48
	out := make([]core.Sprite, 0, steps)
	for i := 0; i < steps; i++ {
		a := float64(i) / steps * 2 * math.Pi
		out = append(out, core.Sprite{
			Pos:   center.Add(core.V(math.Cos(a)*radius, math.Sin(a)*radius)),
			Glyph: '·',
			Color: c,
		})
	}
	return out
}

func buildPreview(w *World) []core.Sprite {
	def, ok := w.Content.Tower(w.SelectedType)
	if !ok {
		return nil
	}
	color := core.ColorBrightGreen
	if !w.Grid.Buildable(w.Hovered) || w.TowerAt(w.Hovered) != nil || !w.CanAfford(def.Cost) {
		color = core.ColorBrightRed
	}
	center := w.Grid.TileCenter(w.Hovered)
	preview := rangeRing(center, def.Range*w.Grid.TileW, color)
	return append(preview, core.Sprite{Pos: center, Glyph: glyph(def.Glyph, 'T'), Color: color})
}

func debugLines(ctx *TickContext) []string {
	w := ctx.World
	lines := []string{
		fmt.Sprintf("tick %d", w.Tick),
		fmt.Sprintf("enemies %d  projectiles %d  particles %d", len(w.Enemies), len(w.Projectiles), len(w.Particles)),
		fmt.Sprintf("queue %d  spawn timer %d", len(w.SpawnQueue), w.SpawnTimer),
		fmt.Sprintf("camera %.0f,%.0f", w.Camera.X, w.Camera.Y),
	}
	if w.HoverValid {
		lines = append(lines, fmt.Sprintf("hover %d,%d", w.Hovered.X, w.Hovered.Y))
	}
	if ctx.Metrics != nil {
		s := ctx.Metrics.Snapshot()
		lines = append(lines, fmt.Sprintf("events %d ok %d fail %d avg %s", s.Total, s.Succeeded, s.Failed, s.Average()))
	}
	return lines
}

// ScreenRenderer keeps the last presented frame and paints it on demand.
type ScreenRenderer struct {
	frame Frame
	ready bool
}

// Present implements Renderer.
func (r *ScreenRenderer) Present(f Frame) {
	r.frame = f
	r.ready = true
}

// Frame returns the last presented frame.
func (r *ScreenRenderer) Frame() (Frame, bool) {
	return r.frame, r.ready
}

// Draw paints the last frame onto dst.
func (r *ScreenRenderer) Draw(dst *core.Screen) {
	if !r.ready {
		return
	}
	f := r.frame

	if f.Scene == SceneMenu {
		drawMenu(dst)
		return
	}

	drawTiles(dst, f)
	dst.DrawSprites(f.Viewport, f.Overlay)
	dst.DrawSprites(f.Viewport, f.Sprites)
	dst.DrawSprites(f.Viewport, f.Effects)
	drawHUD(dst, f)

	for i, line := range f.Debug {
		dst.DrawTextColored(dst.Width()-len(line)-1, 1+i, line, core.ColorYellow)
	}

	switch f.Scene {
	case ScenePaused:
		drawBanner(dst, "PAUSED", "P resume  R restart  Q quit", core.ColorBrightYellow)
	case SceneGameOver:
		drawBanner(dst, "GAME OVER", fmt.Sprintf("Wave %d  Score %d   R restart  Q quit", f.HUD.Wave, f.HUD.Score), core.ColorBrightRed)
	}
}

// drawTiles fills every screen cell by projecting it back onto the grid.
func drawTiles(dst *core.Screen, f Frame) {
	g := f.Grid
	for y := 1; y < dst.Height()-1; y++ {
		for x := 0; x < dst.Width(); x++ {
			t := g.WorldToTile(f.Viewport.ToWorld(x, y))
			if !g.InBounds(t) {
				continue
			}

			var ch rune
			var c core.Color
			switch {
			case g.OnPath(t):
				ch, c = '░', core.ColorBrown
			case g.Buildable(t):
				ch, c = '.', core.ColorGreen
				if (t.X+t.Y)%2 == 1 {
					c = core.ColorBrightGreen
				}
			default:
				ch, c = ',', core.ColorGray
			}
			if f.HUD.HoverValid && t == f.HUD.Hovered {
				c = core.ColorBrightWhite
			}
			dst.SetColored(x, y, ch, c)
		}
	}

	for t, label := range f.Labels {
		x, y := f.Viewport.ToCell(g.TileCenter(t))
		dst.DrawTextColored(x, y, label, core.ColorYellow)
	}
}

func drawHUD(dst *core.Screen, f Frame) {
	h := f.HUD
	status := fmt.Sprintf("Gold %d  Lives %d  Score %d  Wave %d", h.Gold, h.Lives, h.Score, h.Wave)
	if h.WaveActive {
		status += fmt.Sprintf("  Enemies %d", h.Enemies)
	} else {
		status += "  [Enter] next wave"
	}
	dst.DrawTextColored(0, 0, status, core.ColorBrightWhite)

	x := 0
	y := dst.Height() - 1
	for _, b := range f.Towers {
		label := fmt.Sprintf("[%d]%s %d ", b.Key, b.Name, b.Cost)
		c := core.ColorWhite
		switch {
		case b.Armed:
			c = core.ColorBrightYellow
		case !b.CanAfford:
			c = core.ColorGray
		}
		dst.DrawTextColored(x, y, label, c)
		x += len([]rune(label))
	}

	if h.Selected != nil {
		info := fmt.Sprintf("%s  dmg %d  range %.1f", h.Selected.Name, h.Selected.Damage, h.Selected.Range)
		dst.DrawTextColored(dst.Width()-len(info), 0, info, core.ColorYellow)
	}
}

func drawMenu(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-3, "ISOMETRIC DEFENSE", core.ColorBrightYellow)
	dst.DrawTextCentered(mid-1, "Build towers beside the road. Hold the line.")
	dst.DrawTextCenteredColored(mid+1, "Enter  start", core.ColorBrightGreen)
	dst.DrawTextCentered(mid+2, "1-4 arm tower   click build   arrows pan   Enter wave   P pause   ~ debug")
	dst.DrawTextCenteredColored(mid+4, "Q quit", core.ColorGray)
}

func drawBanner(dst *core.Screen, title, hint string, c core.Color) {
	w := max(len([]rune(hint))+4, 24)
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, c)
	dst.DrawTextCenteredColored(box.Y+1, title, c)
	dst.DrawTextCentered(box.Y+3, hint)
}
