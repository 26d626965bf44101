package towers

import (
	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// UpdateTowers ticks cooldowns, keeps or re-acquires targets, and fires.
type UpdateTowers struct{}

// Name implements chain.Event.
func (UpdateTowers) Name() string { return "UpdateTowers" }

// Execute implements chain.Event.
func (UpdateTowers) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	for _, t := range w.Towers {
		if t.Cooldown > 0 {
			t.Cooldown--
		}

		if !validTarget(w, t, t.Target) {
			t.Target = FindTarget(w, t)
		}

		if t.Target != nil && t.Cooldown <= 0 {
			fire(w, t, t.Target)
			t.Cooldown = int(float64(core.TicksPerSecond) / t.FireRate)
		}
	}
	return chain.Success()
}

// RangePixels converts the tower's tile range to world pixels.
func (t *Tower) RangePixels(tileW float64) float64 {
	return t.Range * tileW
}

// InRange reports whether e is within the tower's range.
func InRange(w *World, t *Tower, e *Enemy) bool {
	return t.Pos.Dist(e.Pos) <= t.RangePixels(w.Grid.TileW)
}

// CanTarget reports whether t is able to shoot at e at all.
func CanTarget(t *Tower, e *Enemy) bool {
	return !e.Flying || t.CanHitFlying
}

func validTarget(w *World, t *Tower, e *Enemy) bool {
	return e != nil && e.Health > 0 && w.HasEnemy(e) && CanTarget(t, e) && InRange(w, t, e)
}

// FindTarget picks the eligible enemy furthest along the path. Ties keep the
// earliest spawned enemy.
func FindTarget(w *World, t *Tower) *Enemy {
	var best *Enemy
	for _, e := range w.Enemies {
		if e.Health <= 0 || !CanTarget(t, e) || !InRange(w, t, e) {
			continue
		}
		if best == nil || e.PathIndex > best.PathIndex {
			best = e
		}
	}
	return best
}

func fire(w *World, t *Tower, target *Enemy) {
	w.Projectiles = append(w.Projectiles, &Projectile{
		Pos:          t.Pos,
		TargetPos:    target.Pos,
		Target:       target,
		Speed:        t.ProjectileSpeed,
		Damage:       t.Damage,
		Kind:         t.Projectile,
		SplashRadius: t.SplashRadius,
		SlowEffect:   t.SlowEffect,
		SlowDuration: t.SlowDuration,
		Source:       t,
	})
}

// UpdateProjectiles homes projectiles on their live targets and flags hits.
// Damage is applied later by CheckCollisions.
type UpdateProjectiles struct{}

// Name implements chain.Event.
func (UpdateProjectiles) Name() string { return "UpdateProjectiles" }

// Execute implements chain.Event.
func (UpdateProjectiles) Execute(ctx *TickContext) chain.Result {
	w := ctx.World
	threshold := w.Content.Timing.HitThreshold

	for _, p := range w.Projectiles {
		if p.Hit {
			continue
		}
		if p.Target != nil && w.HasEnemy(p.Target) {
			p.TargetPos = p.Target.Pos
		}

		delta := p.TargetPos.Sub(p.Pos)
		dist := delta.Len()
		if dist < threshold {
			p.Hit = true
			continue
		}
		p.Pos = p.Pos.Add(delta.Scale(min(p.Speed, dist) / dist))
	}

	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.Hit || !offScreen(w, p.Pos) {
			kept = append(kept, p)
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
	return chain.Success()
}

func offScreen(w *World, p core.Vec2) bool {
	t := w.Content.Timing
	return p.X < t.BoundsMinX || p.X > t.BoundsMaxX || p.Y < t.BoundsMinY || p.Y > t.BoundsMaxY
}

// CheckCollisions applies damage for every projectile flagged as a hit and
// then discards those projectiles.
type CheckCollisions struct{}

// Name implements chain.Event.
func (CheckCollisions) Name() string { return "CheckCollisions" }

// Execute implements chain.Event.
func (CheckCollisions) Execute(ctx *TickContext) chain.Result {
	w := ctx.World

	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Hit {
			kept = append(kept, p)
			continue
		}
		if p.SplashRadius > 0 {
			applySplash(w, p)
		} else {
			applySingle(w, p)
		}
		w.SpawnParticles(p.Pos, impactParticles(p.Kind))
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
	return chain.Success()
}

func impactParticles(kind string) string {
	if kind == "magic_bolt" {
		return "magic"
	}
	return "explosion"
}

func applySingle(w *World, p *Projectile) {
	if p.Target == nil || !w.HasEnemy(p.Target) {
		return
	}
	p.Target.Health -= p.Damage
	applySlow(w, p, p.Target)
}

// SplashMultiplier is the damage falloff: 1 at the centre, 0.5 at the edge.
func SplashMultiplier(dist, radius float64) float64 {
	return 1 - (dist/radius)*0.5
}

func applySplash(w *World, p *Projectile) {
	radius := p.SplashRadius * w.Grid.TileW
	for _, e := range w.Enemies {
		dist := e.Pos.Dist(p.Pos)
		if dist > radius {
			continue
		}
		e.Health -= int(float64(p.Damage) * SplashMultiplier(dist, radius))
		applySlow(w, p, e)
	}
}

// applySlow overwrites any slow already on e; the last hit wins.
func applySlow(w *World, p *Projectile, e *Enemy) {
	if p.SlowEffect <= 0 {
		return
	}
	e.SlowFactor = p.SlowEffect
	e.SlowedUntil = w.Tick + p.SlowDuration
}
