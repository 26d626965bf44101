// Package fx implements the short-lived particle bursts both games use for
// hits, deaths, and ritual feedback.
package fx

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/chain-arcade/internal/core"
)

// Drag is the per-tick horizontal velocity retention.
const Drag = 0.98

// Particle is one point in a burst. Positions are world pixels, y grows down.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    int
	MaxLife int
	Gravity float64
	Glyph   rune
	Color   core.Color
}

// Dead reports whether the particle has expired.
func (p Particle) Dead() bool {
	return p.Life <= 0
}

// Alpha returns remaining life as 0..255.
func (p Particle) Alpha() int {
	if p.MaxLife <= 0 {
		return 0
	}
	a := int(float64(p.Life) / float64(p.MaxLife) * 255)
	return core.Clamp(a, 0, 255)
}

// FadedGlyph fades the particle's rune as it ages.
func (p Particle) FadedGlyph() rune {
	switch a := p.Alpha(); {
	case a > 170:
		return p.Glyph
	case a > 85:
		return '+'
	default:
		return '.'
	}
}

// Preset describes a burst.
type Preset struct {
	Count    int        `yaml:"count"`
	Spread   float64    `yaml:"spread"`
	SpeedMin float64    `yaml:"speed_min"`
	SpeedMax float64    `yaml:"speed_max"`
	Lifetime int        `yaml:"lifetime"`
	Gravity  float64    `yaml:"gravity"`
	Glyph    string     `yaml:"glyph"`
	Color    core.Color `yaml:"color"`
}

// Emit creates preset.Count particles around pos, each with a random heading
// and speed in [SpeedMin, SpeedMax].
func Emit(rng *rand.Rand, pos core.Vec2, preset Preset) []Particle {
	glyph := '*'
	if r := []rune(preset.Glyph); len(r) > 0 {
		glyph = r[0]
	}

	out := make([]Particle, 0, preset.Count)
	for i := 0; i < preset.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := preset.SpeedMin + rng.Float64()*(preset.SpeedMax-preset.SpeedMin)
		offset := core.V((rng.Float64()-0.5)*preset.Spread, (rng.Float64()-0.5)*preset.Spread)

		out = append(out, Particle{
			Pos:     pos.Add(offset),
			Vel:     core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Life:    preset.Lifetime,
			MaxLife: preset.Lifetime,
			Gravity: preset.Gravity,
			Glyph:   glyph,
			Color:   preset.Color,
		})
	}
	return out
}

// Step advances every particle one tick and then compacts out the dead ones,
// reusing the backing array.
func Step(ps []Particle) []Particle {
	for i := range ps {
		p := &ps[i]
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += p.Gravity
		p.Vel.X *= Drag
		p.Life--
	}

	alive := ps[:0]
	for _, p := range ps {
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	return alive
}

// Sprites converts live particles into draw-list entries.
func Sprites(ps []Particle) []core.Sprite {
	out := make([]core.Sprite, 0, len(ps))
	for _, p := range ps {
		out = append(out, core.Sprite{Pos: p.Pos, Glyph: p.FadedGlyph(), Color: p.Color})
	}
	return out
}
