package sim

import "math"

// update runs one entity's tick: expiry, boss rules, motion, aging, the
// edge policy, then the variant's own behaviour.
func (w *World) update(e *Entity, dt float64) {
	if p, ok := e.Variant.(*Player); ok {
		p.OldPos = e.Pos
	}

	if e.expired() {
		w.die(e)
		return
	}

	moved := false
	if e.Boss != 0 {
		boss, ok := w.directory[e.Boss]
		switch {
		case !ok && e.KillWithBoss:
			w.die(e)
			return
		case ok && e.Sticky:
			e.Pos = boss.Pos
			moved = true
		}
	}
	if !moved && !e.Static {
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
		e.Distance += e.Vel.Len() * dt
	}
	e.Age += dt

	w.applyEdge(e)
	if e.dead {
		return
	}
	if e.expired() {
		w.die(e)
		return
	}

	w.updateVariant(e, dt)
}

// applyEdge enforces the boundary policy. World space is y-up: the top edge
// is y=0 and the bottom edge is y=-height.
func (w *World) applyEdge(e *Entity) {
	if e.Edge == EdgeNone {
		return
	}
	width, height := w.cfg.World.Width, w.cfg.World.Height

	if e.Pos.X < 0 {
		switch e.Edge {
		case EdgeKill:
			w.die(e)
			return
		case EdgeBounce:
			e.Pos.X = 0
			e.Vel.X = -e.Vel.X
		case EdgeWarp:
			e.Pos.X = width
		}
	}
	if e.Pos.Y > 0 {
		switch e.Edge {
		case EdgeKill:
			w.die(e)
			return
		case EdgeBounce:
			e.Pos.Y = 0
			e.Vel.Y = -e.Vel.Y
		case EdgeWarp:
			e.Pos.Y = -height
		}
	}
	if e.Pos.X > width {
		switch e.Edge {
		case EdgeKill:
			w.die(e)
			return
		case EdgeBounce:
			e.Pos.X = width
			e.Vel.X = -e.Vel.X
		case EdgeWarp:
			e.Pos.X = 0
		}
	}
	if e.Pos.Y < -height {
		switch e.Edge {
		case EdgeKill:
			e.HP = 0
			w.die(e)
		case EdgeBounce:
			e.Pos.Y = -height
			e.Vel.Y = -e.Vel.Y
		case EdgeWarp:
			e.Pos.Y = 0
		}
	}
}

func (w *World) updateVariant(e *Entity, dt float64) {
	switch v := e.Variant.(type) {
	case *Player:
		e.Vel = e.Vel.Add(V(0, -w.cfg.Player.Gravity))
		e.HP = min(e.HP, w.cfg.Player.Hitpoints)
	case *Cannon:
		w.aimCannon(e)
		if e.Boss != w.playerID {
			w.enemyFire(e)
		}
	case *Guardian:
		dist := v.Anchor.Sub(e.Pos)
		if dist.Len() > v.MaxDist {
			e.Vel = dist.Normalize().Scale(v.Speed)
		}
	case *Flame:
		if boss, ok := w.directory[e.Boss]; ok {
			e.Angle = boss.Angle - 180
		}
	case *Smoke:
		if v.HasGravity {
			e.Vel = e.Vel.Add(v.Gravity.Scale(dt))
		}
	case *Flytext:
		if v.Visible(e) {
			e.Vel = v.Drift
			v.Drift = v.Drift.Scale(v.Accel)
		}
	case *Number:
		v.pulse(e.Age)
	}
}

// pulse grows the label while the phase counter rises and flips direction
// each time it wraps.
func (n *Number) pulse(age float64) {
	d := int(math.Floor(age*shrinkSpeed)) % shrinkDuration
	if d < n.old {
		n.sign = -n.sign
	}
	n.old = d
	n.Size = max(numberMinSize, n.Size+float64(d)*n.sign)
}

// aimCannon turns a cannon toward its target. The player's cannon follows the
// pointer, or the ship heading when there is none; enemy cannons track the player.
func (w *World) aimCannon(c *Entity) {
	var target Vec2
	switch {
	case c.Boss == w.playerID:
		if !w.hasAim {
			if p, ok := w.Player(); ok {
				c.Angle = p.Angle
			}
			return
		}
		target = w.aim
	default:
		p, ok := w.Player()
		if !ok {
			return
		}
		target = p.Pos
	}
	diff := target.Sub(c.Pos)
	if diff.LenSq() == 0 {
		return
	}
	c.Angle = V(1, 0).AngleTo(diff)
}

// enemyFire launches an enemy rocket from the barrel tip at low probability.
func (w *World) enemyFire(c *Entity) {
	if w.truce || w.rng.Float64() >= w.cfg.Enemies.FireChance {
		return
	}
	dir := Unit(c.Angle)
	w.mustSpawn(Attrs{
		Pos:   c.Pos.Add(dir.Scale(25)),
		Vel:   dir.Scale(w.cfg.Enemies.RocketSpeed),
		Angle: c.Angle,
		Boss:  c.Boss,
	}, &Rocket{Enemy: true})
}

// follow puts every sticky entity riding on boss back on top of it. Cannons
// re-aim from the new spot.
func (w *World) follow(boss *Entity) {
	for _, e := range w.Entities() {
		if !e.Sticky || e.Boss != boss.id {
			continue
		}
		e.Pos = boss.Pos
		if _, ok := e.Variant.(*Cannon); ok {
			w.aimCannon(e)
		}
	}
}
