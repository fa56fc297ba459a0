package sim

import "github.com/vovakirdan/tui-cave/internal/core"

// Resolver applies the combat rules between entity groups once per tick.
// Pairs are scanned in a fixed order: ship against terrain, rockets against
// terrain, rockets against the ship, the ship against teleport markers and
// rockets against enemies. Every scan works on a copy of its groups, and
// reactions skip participants that already died this tick.
type Resolver struct {
	w *World
}

// NewResolver returns a resolver bound to w.
func NewResolver(w *World) *Resolver {
	return &Resolver{w: w}
}

// Resolve runs all group pairs, then kills everything left at or below zero
// hitpoints. It does nothing while no player is alive.
func (r *Resolver) Resolve() {
	w := r.w
	players := w.kind(KindPlayer)
	if len(players) == 0 {
		return
	}

	r.shipTerrain(players)
	r.rocketTerrain()
	r.shipRockets(players)
	r.shipMarkers(players)
	r.enemyRockets()

	w.reap()
}

func hits(a *Entity, group []*Entity) []*Entity {
	var out []*Entity
	for _, b := range group {
		if !b.dead && Overlaps(a, b) {
			out = append(out, b)
		}
	}
	return out
}

func (r *Resolver) ownedByPlayer(rocket *Entity) bool {
	return rocket.Boss == r.w.playerID
}

// shipTerrain: terrain is impassable. Each touched tile loses a hitpoint;
// healing tiles heal the ship, the rest scrape it. The ship is rolled back
// to where it was before this tick and stopped.
func (r *Resolver) shipTerrain(players []*Entity) {
	w := r.w
	tiles := w.kind(KindTile)
	for _, p := range players {
		if p.dead {
			continue
		}
		crash := hits(p, tiles)
		for _, t := range crash {
			t.HP--
			if tile, ok := t.Variant.(*Tile); ok && tile.Status == TileHealing {
				p.HP++
				w.emit(SoundPlayerHeal)
			} else {
				p.HP--
				w.emit(SoundHitGround)
				w.Burst(BurstOpts{
					Pos:       t.Pos,
					Color:     core.ColorDarkRed,
					JitterR:   50,
					JitterG:   5,
					JitterB:   5,
					MinSparks: 1,
					MaxSparks: 2,
				})
			}
			if pl, ok := p.Variant.(*Player); ok {
				p.Pos = pl.OldPos
			}
			p.Vel = Vec2{}
			w.follow(p)
		}
	}
}

// rocketTerrain: rockets never pass through terrain. Player rockets chip
// normal and golden tiles by their damage; a healing tile instead heals the
// rocket's owner and keeps its own hitpoints.
func (r *Resolver) rocketTerrain() {
	w := r.w
	tiles := w.kind(KindTile)
	for _, rocket := range w.kind(KindRocket) {
		if rocket.dead {
			continue
		}
		crash := hits(rocket, tiles)
		if len(crash) == 0 {
			continue
		}
		for _, t := range crash {
			if !r.ownedByPlayer(rocket) {
				continue
			}
			tile := t.Variant.(*Tile)
			switch tile.Status {
			case TileHealing:
				w.emit(SoundPlayerHeal)
				if owner, ok := w.Lookup(rocket.Boss); ok {
					owner.HP += rocket.Damage
				}
				w.impact(rocket, core.ColorGreen)
			case TileGolden:
				w.emit(SoundHitGround)
				w.impact(rocket, core.ColorOrange)
				t.HP -= rocket.Damage
			default:
				w.emit(SoundHitGround)
				w.impact(rocket, core.RGB(128, 128, 128))
				t.HP -= rocket.Damage
			}
			w.log.Debug("rocket hit tile", "tile", t.id, "status", tile.Status, "hp", t.HP)
		}
		w.die(rocket)
	}
}

// shipRockets: enemy rockets hurt the ship; any rocket touching it is spent.
func (r *Resolver) shipRockets(players []*Entity) {
	w := r.w
	rockets := w.kind(KindRocket)
	for _, p := range players {
		if p.dead {
			continue
		}
		for _, rocket := range hits(p, rockets) {
			if !r.ownedByPlayer(rocket) {
				p.HP -= rocket.Damage
				w.emit(SoundPlayerDamage)
				w.wound(rocket)
			}
			w.die(rocket)
		}
	}
}

// shipMarkers: touching a source marker jumps to the next level and onto
// its destination marker.
func (r *Resolver) shipMarkers(players []*Entity) {
	w := r.w
	numbers := w.kind(KindNumber)
	for _, p := range players {
		if p.dead {
			continue
		}
		for _, n := range hits(p, numbers) {
			if n.dead {
				continue
			}
			label := n.Variant.(*Number).Label
			var level int
			var dest rune
			switch label {
			case MarkerSourceA:
				level, dest = 1, MarkerDestA
			case MarkerSourceB:
				level, dest = 2, MarkerDestB
			default:
				continue
			}
			if err := w.ChangeLevel(level); err != nil {
				w.log.Warn("teleport failed", "err", err)
				continue
			}
			w.GoToTeleport(dest)
			w.Say(p.Pos, "level "+string(rune('1'+level)), core.ColorCyan, 0)
		}
	}
}

// enemyRockets: player rockets damage turrets and guardians; any rocket
// touching an enemy is spent.
func (r *Resolver) enemyRockets() {
	w := r.w
	rockets := w.kind(KindRocket)
	for _, e := range w.kind(KindTurret, KindGuardian) {
		if e.dead {
			continue
		}
		for _, rocket := range hits(e, rockets) {
			if r.ownedByPlayer(rocket) {
				e.HP -= rocket.Damage
				w.emit(SoundEnemyDamage)
				w.wound(rocket)
			}
			w.die(rocket)
		}
	}
}
