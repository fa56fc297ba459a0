package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-cave/internal/core"
)

// BurstOpts describes a spray of sparks.
type BurstOpts struct {
	Pos Vec2
	// Base color and per-channel random jitter.
	Color                   core.Color
	JitterR, JitterG, JitterB int
	// Spark count is drawn from [MinSparks, MaxSparks].
	MinSparks, MaxSparks int
	// Directions are drawn from [A1, A2] degrees.
	A1, A2 float64
	MaxAge float64
}

// Burst spawns sparks flying out of opts.Pos.
func (w *World) Burst(opts BurstOpts) {
	if opts.A1 == 0 && opts.A2 == 0 {
		opts.A2 = 360
	}
	if opts.MaxAge == 0 {
		opts.MaxAge = 1
	}
	r, g, b := opts.Color.Channels()
	jitter := func(base uint8, d int) uint8 {
		return core.Channel(int(base) + w.rng.Range(-d, d))
	}

	n := w.rng.Range(opts.MinSparks, opts.MaxSparks)
	for range n {
		a := float64(w.rng.Range(int(opts.A1), int(opts.A2)))
		speed := float64(w.rng.Range(50, 250))
		w.mustSpawn(Attrs{
			Pos:    opts.Pos,
			Vel:    V(speed, 0).Rotate(a),
			Angle:  a,
			MaxAge: opts.MaxAge,
			Color:  core.RGB(jitter(r, opts.JitterR), jitter(g, opts.JitterG), jitter(b, opts.JitterB)),
		}, &Spark{})
	}
}

// impact is the short spray thrown back from where a rocket hit.
func (w *World) impact(rocket *Entity, c core.Color) {
	w.Burst(BurstOpts{
		Pos:       rocket.Pos,
		Color:     c,
		JitterR:   15,
		JitterG:   15,
		JitterB:   15,
		MinSparks: 1,
		MaxSparks: 2,
		A1:        rocket.Angle - 45 + 180,
		A2:        rocket.Angle + 45 + 180,
		MaxAge:    0.3,
	})
}

// wound is the red spray shown when a ship or enemy takes rocket damage.
func (w *World) wound(rocket *Entity) {
	w.Burst(BurstOpts{
		Pos:       rocket.Pos,
		Color:     core.ColorDarkRed,
		JitterR:   50,
		MinSparks: 1,
		MaxSparks: 2,
		A1:        rocket.Angle - 45 + 180,
		A2:        rocket.Angle + 45 + 180,
		MaxAge:    0.3,
	})
}

// Say spawns a floating message that rises for two seconds.
func (w *World) Say(pos Vec2, text string, c core.Color, delay float64) ID {
	return w.mustSpawn(Attrs{Pos: pos, Color: c}, &Flytext{
		Text:  text,
		Drift: V(0, 50),
		Delay: delay,
	})
}

// Puff spawns a smoke cloud; a zero gravity means it just drifts.
func (w *World) Puff(pos Vec2, gravity Vec2, maxAge float64) ID {
	return w.mustSpawn(Attrs{Pos: pos, MaxAge: maxAge}, &Smoke{
		Gravity:    gravity,
		HasGravity: gravity != Vec2{},
	})
}

// onDeath runs the reactions of a killed entity: explosions, truce and
// rewards for terrain or enemies destroyed by damage.
func (w *World) onDeath(e *Entity) {
	switch v := e.Variant.(type) {
	case *Player:
		w.truce = true
		w.Burst(BurstOpts{
			Pos:       e.Pos,
			Color:     core.ColorYellow,
			JitterR:   5,
			JitterG:   5,
			JitterB:   5,
			MinSparks: 400,
			MaxSparks: 500,
			MaxAge:    3,
		})
		w.log.Debug("player died", "tick", w.tick, "level", w.active)
	case *Turret:
		w.Burst(BurstOpts{
			Pos:       e.Pos,
			Color:     core.ColorDarkRed,
			JitterR:   50,
			JitterG:   5,
			JitterB:   5,
			MinSparks: 50,
			MaxSparks: 100,
			MaxAge:    1,
		})
		if e.HP <= 0 {
			w.stats.EnemiesDestroyed++
			w.reward(e.Pos, w.cfg.Economy.GoldPerTurret)
		}
	case *Guardian:
		if e.HP <= 0 {
			w.stats.EnemiesDestroyed++
		}
	case *Tile:
		if e.HP <= 0 {
			w.stats.TilesDestroyed++
			if v.Status == TileGolden {
				w.reward(e.Pos, w.cfg.Economy.GoldPerGoldenTile)
			}
		}
	}
}

func (w *World) reward(pos Vec2, gold int) {
	if gold <= 0 {
		return
	}
	w.cfg.Economy.Gold += gold
	w.stats.GoldEarned += gold
	w.Say(pos, fmt.Sprintf("+%d gold", gold), core.ColorOrange, 0)
}
