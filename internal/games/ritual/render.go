package ritual

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
	"github.com/vovakirdan/chain-arcade/internal/fx"
)

// Terminal scale: world pixels per screen cell. Cells are twice as tall as
// they are wide, so the circle stays round.
const (
	CellW = 8
	CellH = 16
)

// Casers carry state, so each call gets its own.
func upper(s string) string { return cases.Upper(language.English).String(s) }

// Title returns s in title case, e.g. "fire" as "Fire".
func Title(s string) string { return cases.Title(language.English).String(s) }

// ViewportFor centres the ritual circle on a w x h screen.
func ViewportFor(c config.CircleConfig, w, h int) core.Viewport {
	return core.Viewport{
		Offset: core.V(c.CenterX-float64(w)*CellW/2, c.CenterY-float64(h)*CellH/2),
		CellW:  CellW,
		CellH:  CellH,
	}
}

// ElementLabel returns the symbol and display name of an element id.
func ElementLabel(content config.RitualsContent, id string) string {
	if el, ok := content.Element(id); ok {
		return el.Symbol + " " + el.Name
	}
	return Title(id)
}

// Render draws the current scene.
func (g *Game) Render(dst *core.Screen) {
	switch g.scene {
	case SceneSelect:
		g.drawSelect(dst)
	case SceneGameplay:
		if g.ritual != nil {
			g.drawRitual(dst, g.ritual)
		}
	case SceneResults:
		g.drawResults(dst)
	default:
		g.drawMenu(dst)
	}

	v := ViewportFor(g.content.Circle, dst.Width(), dst.Height())
	dst.DrawSprites(v, fx.Sprites(g.particles))
}

func (g *Game) drawMenu(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-4, upper(g.Title()), core.ColorBrightMagenta)
	dst.DrawTextCentered(mid-2, "Answer the circle. Pick each glowing node before its light fades.")
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("Level %d   Total %d", g.progress.Level, g.progress.Total), core.ColorYellow)
	dst.DrawTextCenteredColored(mid+2, "Enter  begin", core.ColorBrightGreen)
	dst.DrawTextCenteredColored(mid+4, "Q quit", core.ColorGray)
}

func (g *Game) drawSelect(dst *core.Screen) {
	choices := g.Available()
	dst.DrawTextColored(2, 1, upper("choose a ritual"), core.ColorBrightMagenta)
	dst.DrawTextColored(2, 2, fmt.Sprintf("Level %d   Total %d", g.progress.Level, g.progress.Total), core.ColorYellow)

	for i, def := range choices {
		y := 4 + i
		c := core.ColorWhite
		marker := "  "
		if i == g.cursor {
			c = core.ColorBrightYellow
			marker = "> "
		}
		line := fmt.Sprintf("%s%-22s %-10s %-11s ", marker, def.Name, stars(def.Difficulty), def.FaultTolerance)
		dst.DrawTextColored(2, y, line, c)
		g.drawSequence(dst, 2+len([]rune(line)), y, def.Sequence, -1)
	}

	if locked := len(g.content.Rituals) - len(choices); locked > 0 {
		dst.DrawTextColored(2, 5+len(choices), fmt.Sprintf("%d more rituals unlock at higher levels", locked), core.ColorGray)
	}

	if len(choices) > 0 {
		def := choices[g.cursor]
		dst.DrawText(2, dst.Height()-3, def.Description)
		dst.DrawTextColored(2, dst.Height()-2, fmt.Sprintf("Window %d ticks   Misses allowed %s",
			Window(g.content.QTE, def.Difficulty), missLabel(def)), core.ColorCyan)
	}
	dst.DrawTextColored(2, dst.Height()-1, "Up/Down choose   Enter begin   Esc back", core.ColorGray)
}

func (g *Game) drawRitual(dst *core.Screen, r *ActiveRitual) {
	v := ViewportFor(g.content.Circle, dst.Width(), dst.Height())
	circle := g.content.Circle
	center := core.V(circle.CenterX, circle.CenterY)

	// Ring through the nodes.
	const steps = 72
	for i := 0; i < steps; i++ {
		a := float64(i) / steps * 2 * math.Pi
		x, y := v.ToCell(center.Add(core.V(math.Cos(a)*circle.NodeRadius, math.Sin(a)*circle.NodeRadius)))
		dst.SetColored(x, y, '·', core.ColorPurple)
	}

	pending, waiting := r.Pending()
	for i, n := range r.Nodes() {
		x, y := v.ToCell(n.Pos)
		el, _ := g.content.Element(n.Element)
		symbol := []rune(el.Symbol)
		glyph := '?'
		if len(symbol) > 0 {
			glyph = symbol[0]
		}

		switch n.State {
		case NodePending:
			dst.SetColored(x-1, y, '[', core.ColorBrightYellow)
			dst.SetColored(x, y, glyph, el.Color)
			dst.SetColored(x+1, y, ']', core.ColorBrightYellow)
		case NodeCompleted:
			dst.SetColored(x, y, glyph, core.ColorBrightGreen)
		case NodeFailed:
			dst.SetColored(x, y, 'x', core.ColorBrightRed)
		default:
			dst.SetColored(x, y, glyph, core.ColorGray)
		}
		if i < 8 {
			dst.SetColored(x, y-1, rune('1'+i), core.ColorGray)
		}
	}

	head := fmt.Sprintf("%s  %s  difficulty %d", upper(r.Def.Name), r.Def.FaultTolerance, r.Def.Difficulty)
	dst.DrawTextColored(1, 0, head, core.ColorBrightMagenta)
	dst.DrawTextColored(dst.Width()-len(r.State().String())-1, 0, r.State().String(), core.ColorGray)

	if waiting {
		need := ElementLabel(g.content, r.Required())
		dst.DrawTextCenteredColored(dst.Height()-4, "Invoke "+need, core.ColorBrightWhite)
		dst.DrawTextCenteredColored(dst.Height()-3, timerBar(pending, g.now, 30), timerColor(pending, g.now))
	}

	g.drawSequence(dst, 1, dst.Height()-2, r.Def.Sequence, r.Step())

	status := fmt.Sprintf("Hits %d  Misses %d/%s  Bonus %d   1-%d or click   Esc abandon",
		r.Hits(), r.Misses(), missLabel(r.Def), r.TimeBonus(), min(len(r.Nodes()), 8))
	dst.DrawTextColored(1, dst.Height()-1, status, core.ColorWhite)
}

// drawSequence prints the element symbols of seq; the step at cursor is
// highlighted and earlier steps are dimmed.
func (g *Game) drawSequence(dst *core.Screen, x, y int, seq []string, cursor int) {
	for i, id := range seq {
		el, _ := g.content.Element(id)
		c := el.Color
		switch {
		case cursor >= 0 && i < cursor:
			c = core.ColorGray
		case i == cursor:
			c = core.ColorBrightWhite
		}
		dst.DrawTextColored(x, y, el.Symbol, c)
		x += len([]rune(el.Symbol)) + 1
	}
}

func (g *Game) drawResults(dst *core.Screen) {
	res := g.result
	mid := dst.Height() / 2

	if res.Success {
		dst.DrawTextCenteredColored(mid-5, upper("ritual complete"), core.ColorBrightGreen)
	} else {
		dst.DrawTextCenteredColored(mid-5, upper("ritual failed"), core.ColorBrightRed)
	}
	dst.DrawTextCentered(mid-3, res.Ritual)
	dst.DrawTextCentered(mid-1, fmt.Sprintf("Hits %d   Misses %d   %.1fs", res.Hits, res.Misses, float64(res.Ticks)/core.TicksPerSecond))

	switch {
	case res.Success:
		dst.DrawTextCenteredColored(mid+1, fmt.Sprintf("Score %d", res.Score), core.ColorBrightYellow)
		if res.Perfect {
			dst.DrawTextCenteredColored(mid+2, "Perfect!", core.ColorBrightCyan)
		}
	case res.Reason != "":
		dst.DrawTextCenteredColored(mid+1, res.Reason, core.ColorRed)
	}

	if res.LevelUp {
		dst.DrawTextCenteredColored(mid+3, fmt.Sprintf("Level up! Now level %d", res.NewLevel), core.ColorBrightMagenta)
	}
	dst.DrawTextCenteredColored(mid+5, "Enter continue   Esc menu", core.ColorGray)
}

func stars(difficulty int) string {
	return strings.Repeat("*", core.Clamp(difficulty, 0, 10))
}

func missLabel(def config.RitualDef) string {
	if n := MissCap(def); n > 0 {
		return fmt.Sprint(n)
	}
	return "any"
}

func timerBar(c Challenge, now, width int) string {
	left := c.Remaining(now)
	filled := 0
	if c.Window > 0 {
		filled = left * width / c.Window
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func timerColor(c Challenge, now int) core.Color {
	switch left := c.Remaining(now); {
	case left*3 < c.Window:
		return core.ColorBrightRed
	case left*3 < c.Window*2:
		return core.ColorBrightYellow
	}
	return core.ColorBrightGreen
}
