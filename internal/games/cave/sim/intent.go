package sim

// Intent is the input snapshot for one Step. It says what the player wants,
// not which device asked for it.
type Intent struct {
	Thrust      bool
	Brake       bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool

	// NudgeX and NudgeY count arrow presses; each adds ±nudge to velocity.
	NudgeX, NudgeY int

	Damp bool
	Stop bool

	// Level selects a slot: 1..LevelCount, 0 for no change.
	Level int

	ToggleTruce bool
	Regenerate  bool

	// Aim is the pointer in world coordinates, valid when HasAim is set.
	Aim    Vec2
	HasAim bool
}

// applyIntent runs discrete commands first, then held controls.
func (w *World) applyIntent(in Intent) {
	if in.HasAim {
		w.aim, w.hasAim = in.Aim, true
	}
	if in.Level >= 1 && in.Level <= LevelCount {
		if err := w.ChangeLevel(in.Level - 1); err != nil {
			w.log.Warn("level change failed", "err", err)
		}
	}
	if in.ToggleTruce {
		w.SetTruce(!w.truce)
	}
	if in.Regenerate {
		w.Regenerate()
	}

	p, ok := w.Player()
	if !ok {
		return
	}
	if in.Fire {
		angle := p.Angle
		if c, ok := w.Lookup(w.cannonID); ok {
			angle = c.Angle
		}
		w.Fire(angle)
	}

	nudge := w.cfg.Player.Nudge
	p.Vel = p.Vel.Add(V(float64(in.NudgeX)*nudge, float64(in.NudgeY)*nudge))
	if in.Damp {
		p.Vel = p.Vel.Scale(0.1)
	}
	if in.Stop {
		w.resetSpeed()
		p.Vel = Vec2{}
	}

	if in.RotateLeft {
		p.Angle += w.cfg.Player.RotateStep
	}
	if in.RotateRight {
		p.Angle -= w.cfg.Player.RotateStep
	}
	if in.Thrust {
		w.Advance()
	}
	if in.Brake {
		p.Vel = p.Vel.Sub(Unit(p.Angle))
	}
}

// Fire launches the configured number of rockets fanned evenly across
// ±shooting angle around angle. Each rocket inherits the ship's velocity.
func (w *World) Fire(angle float64) {
	p, ok := w.Player()
	if !ok || w.cfg.Weapons.Rockets <= 0 {
		return
	}
	n := w.cfg.Weapons.Rockets
	spread := w.cfg.Weapons.ShootingAngle
	tip := p.Pos.Add(Unit(angle).Scale(25))
	step := 2 * spread / float64(n+1)
	b := angle - spread
	speed := 100 * w.cfg.Weapons.RocketSpeed

	for range n {
		b += step
		w.mustSpawn(Attrs{
			Pos:         tip,
			Vel:         Unit(b).Scale(speed).Add(p.Vel),
			Angle:       b,
			MaxDistance: w.cfg.Weapons.RocketRange,
			Boss:        p.id,
		}, &Rocket{})
	}
	w.stats.RocketsFired += n
	w.emit(SoundPlayerShoot)
}

// Advance pushes the ship forward and lights the engine flame.
func (w *World) Advance() {
	p, ok := w.Player()
	if !ok {
		return
	}
	p.Vel = p.Vel.Add(Unit(p.Angle).Scale(w.cfg.Player.Speed))
	w.mustSpawn(Attrs{
		Pos:   p.Pos,
		Angle: p.Angle - 180,
		Boss:  p.id,
	}, &Flame{})
}
