package sim

import (
	"math"

	"github.com/vovakirdan/tui-cave/internal/core"
)

// ID identifies an entity for the lifetime of a World. IDs are never reused.
// The zero ID means "no entity".
type ID uint64

// Kind is the tag of an entity's variant.
type Kind int

const (
	KindPlayer Kind = iota
	KindCannon
	KindRocket
	KindTurret
	KindGuardian
	KindTile
	KindSpark
	KindFlame
	KindSmoke
	KindFlytext
	KindNumber
)

var kindNames = [...]string{
	KindPlayer:   "player",
	KindCannon:   "cannon",
	KindRocket:   "rocket",
	KindTurret:   "turret",
	KindGuardian: "guardian",
	KindTile:     "tile",
	KindSpark:    "spark",
	KindFlame:    "flame",
	KindSmoke:    "smoke",
	KindFlytext:  "flytext",
	KindNumber:   "number",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Edge is the world-boundary policy of an entity.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeKill
	EdgeBounce
	EdgeWarp
)

// Draw layers, lower drawn first.
const (
	LayerTerrain  = 1
	LayerDefault  = 4
	LayerParticle = 7
	LayerPlayer   = 8
	LayerCannon   = 9
	LayerHUD      = 10
)

// Attribute defaults for fields left at their zero value.
const (
	DefaultRadius    = 5
	DefaultMass      = 15
	DefaultDamage    = 10
	DefaultHitpoints = 100
)

// Attrs are the construction arguments common to every entity.
// Zero numeric fields take the documented defaults; MaxAge and MaxDistance
// of zero mean unlimited. At most one of the edge flags may be set.
type Attrs struct {
	Pos, Vel      Vec2
	Angle         float64
	Radius        float64 // default 5
	Width, Height float64 // default 2*Radius
	Mass          float64 // default 15
	Damage        float64 // default 10
	Hitpoints     float64 // default 100
	Static        bool

	MaxAge      float64
	MaxDistance float64

	KillOnEdge   bool
	BounceOnEdge bool
	WarpOnEdge   bool

	Boss           ID
	KillWithBoss   bool
	StickyWithBoss bool

	Layer int // default LayerDefault
	Color core.Color
}

// Entity is one live (or just-killed) object in the world.
type Entity struct {
	id   ID
	kind Kind

	Pos, Vel      Vec2
	Angle         float64
	Radius        float64
	Width, Height float64
	Mass          float64
	Damage        float64
	HP, MaxHP     float64
	Static        bool

	MaxAge      float64
	MaxDistance float64
	Edge        Edge
	Age         float64
	Distance    float64

	Boss         ID
	KillWithBoss bool
	Sticky       bool

	Layer int
	Color core.Color

	// Variant holds the per-kind payload; it is always a pointer to one of
	// the payload structs below.
	Variant Variant

	dead bool
}

// ID returns the entity's identifier.
func (e *Entity) ID() ID { return e.id }

// Kind returns the entity's variant tag.
func (e *Entity) Kind() Kind { return e.kind }

// Alive reports whether the entity has not been killed.
func (e *Entity) Alive() bool { return !e.dead }

// Bounds returns the entity's axis-aligned collision box.
func (e *Entity) Bounds() core.RectF {
	return core.CenteredRect(e.Pos.X, e.Pos.Y, e.Width, e.Height)
}

// Overlaps reports whether the collision boxes of a and b intersect.
func Overlaps(a, b *Entity) bool {
	return a.Bounds().Intersects(b.Bounds())
}

func (e *Entity) expired() bool {
	if e.HP <= 0 {
		return true
	}
	if e.MaxAge > 0 && e.Age > e.MaxAge {
		return true
	}
	return e.MaxDistance > 0 && e.Distance > e.MaxDistance
}

// Variant is the closed set of entity payloads.
type Variant interface {
	kind() Kind
}

// Player is the ship. OldPos is the position before the current tick's
// motion, used to roll back terrain contact.
type Player struct {
	OldPos Vec2
}

// Cannon turns to face its target each tick. Its boss is its mount.
type Cannon struct{}

// Rocket is a projectile. Enemy rockets are drawn differently and hurt the player.
type Rocket struct {
	Enemy bool
}

type Turret struct{}

// Guardian patrols around Anchor and steers back once farther than MaxDist.
type Guardian struct {
	Anchor  Vec2
	Speed   float64
	MaxDist float64
}

// TileStatus selects the tile material.
type TileStatus int

const (
	TileNormal TileStatus = iota
	TileGolden
	TileHealing
)

func (s TileStatus) String() string {
	switch s {
	case TileNormal:
		return "normal"
	case TileGolden:
		return "golden"
	case TileHealing:
		return "healing"
	default:
		return "unknown"
	}
}

// MaxHitpoints returns the starting hitpoints of a tile of this status.
func (s TileStatus) MaxHitpoints() float64 {
	switch s {
	case TileGolden:
		return 800
	case TileHealing:
		return 100
	default:
		return 200
	}
}

type Tile struct {
	Status TileStatus
}

type Spark struct{}

// Flame is the engine exhaust; it sticks to the ship and faces backwards.
type Flame struct{}

// Smoke optionally falls under Gravity and greys out as it ages.
type Smoke struct {
	Gravity    Vec2
	HasGravity bool
}

// Flytext is a floating message. It is hidden for Delay seconds, then drifts
// with Drift, multiplied by Accel every tick, and dies after Duration.
type Flytext struct {
	Text     string
	Drift    Vec2
	Accel    float64
	Delay    float64
	Duration float64
}

// Visible reports whether the delay has elapsed.
func (f *Flytext) Visible(e *Entity) bool {
	return e.Age >= f.Delay
}

// Number is a pulsing label. Teleport markers carry their letter in Label.
type Number struct {
	Label rune
	Size  float64
	old   int
	sign  float64
}

// A flame lives for roughly one rendered frame.
const flameLife = 0.05

// Number oscillation parameters.
const (
	numberStartSize = 60
	numberMinSize   = 4
	shrinkSpeed     = 5
	shrinkDuration  = 5
)

func (*Player) kind() Kind   { return KindPlayer }
func (*Cannon) kind() Kind   { return KindCannon }
func (*Rocket) kind() Kind   { return KindRocket }
func (*Turret) kind() Kind   { return KindTurret }
func (*Guardian) kind() Kind { return KindGuardian }
func (*Tile) kind() Kind     { return KindTile }
func (*Spark) kind() Kind    { return KindSpark }
func (*Flame) kind() Kind    { return KindFlame }
func (*Smoke) kind() Kind    { return KindSmoke }
func (*Flytext) kind() Kind  { return KindFlytext }
func (*Number) kind() Kind   { return KindNumber }

// Tint returns the color a renderer should use for e.
func Tint(e *Entity) core.Color {
	switch v := e.Variant.(type) {
	case *Tile:
		switch v.Status {
		case TileHealing:
			g := core.ClampF(255*e.HP/100, 0, 255)
			return core.RGB(core.Channel(int(255-g)), core.Channel(int(g)), 0)
		case TileGolden:
			return core.ColorOrange.Scale(0.4 + 0.6*hpRatio(e))
		default:
			return core.ColorGray.Scale(0.6 + 0.4*hpRatio(e))
		}
	case *Smoke:
		c := core.Channel(int(e.Age * 100))
		return core.RGB(c, c, c)
	case *Rocket:
		if v.Enemy {
			return core.ColorPink
		}
		return core.ColorRocket
	}
	return e.Color
}

func hpRatio(e *Entity) float64 {
	if e.MaxHP <= 0 {
		return 1
	}
	return core.ClampF(e.HP/e.MaxHP, 0, 1)
}

// newEntity applies base defaults, then the variant's fixed parameters,
// then validates.
func newEntity(a Attrs, v Variant, w *World) (*Entity, error) {
	if v == nil {
		return nil, &ConfigError{Field: "variant", Value: nil, Reason: "required"}
	}
	if err := checkAttrs(a); err != nil {
		return nil, err
	}

	if a.Radius == 0 {
		a.Radius = DefaultRadius
	}
	if a.Width == 0 {
		a.Width = a.Radius * 2
	}
	if a.Height == 0 {
		a.Height = a.Radius * 2
	}
	if a.Mass == 0 {
		a.Mass = DefaultMass
	}
	if a.Damage == 0 {
		a.Damage = DefaultDamage
	}
	if a.Hitpoints == 0 {
		a.Hitpoints = DefaultHitpoints
	}
	if a.Layer == 0 {
		a.Layer = LayerDefault
	}

	e := &Entity{
		kind:         v.kind(),
		Pos:          a.Pos,
		Vel:          a.Vel,
		Angle:        a.Angle,
		Radius:       a.Radius,
		Width:        a.Width,
		Height:       a.Height,
		Mass:         a.Mass,
		Damage:       a.Damage,
		HP:           a.Hitpoints,
		Static:       a.Static,
		MaxAge:       a.MaxAge,
		MaxDistance:  a.MaxDistance,
		Boss:         a.Boss,
		KillWithBoss: a.KillWithBoss,
		Sticky:       a.StickyWithBoss,
		Layer:        a.Layer,
		Color:        a.Color,
		Variant:      v,
	}
	switch {
	case a.KillOnEdge:
		e.Edge = EdgeKill
	case a.BounceOnEdge:
		e.Edge = EdgeBounce
	case a.WarpOnEdge:
		e.Edge = EdgeWarp
	}

	if err := overwrite(e, w); err != nil {
		return nil, err
	}
	e.MaxHP = e.HP
	return e, nil
}

func checkAttrs(a Attrs) error {
	if !a.Pos.Finite() {
		return &ConfigError{"pos", a.Pos, "must be finite"}
	}
	if !a.Vel.Finite() {
		return &ConfigError{"vel", a.Vel, "must be finite"}
	}
	if math.IsNaN(a.Angle) || math.IsInf(a.Angle, 0) {
		return &ConfigError{"angle", a.Angle, "must be finite"}
	}
	nonNegative := []struct {
		field string
		v     float64
	}{
		{"radius", a.Radius},
		{"width", a.Width},
		{"height", a.Height},
		{"mass", a.Mass},
		{"max_age", a.MaxAge},
		{"max_distance", a.MaxDistance},
	}
	for _, f := range nonNegative {
		if f.v < 0 || math.IsNaN(f.v) {
			return &ConfigError{f.field, f.v, "must not be negative"}
		}
	}
	edges := 0
	for _, set := range []bool{a.KillOnEdge, a.BounceOnEdge, a.WarpOnEdge} {
		if set {
			edges++
		}
	}
	if edges > 1 {
		return &ConfigError{"edge", edges, "at most one edge policy may be set"}
	}
	return nil
}

// overwrite applies each variant's fixed parameters over the caller's.
func overwrite(e *Entity, w *World) error {
	ts := float64(w.cfg.Terrain.TileSize)
	switch v := e.Variant.(type) {
	case *Player:
		e.Mass = 400
		e.Radius = 25
		e.Width, e.Height = ts, ts
		e.Layer = LayerPlayer
		e.HP = w.cfg.Player.Hitpoints
		e.Color = core.ColorYellow
		v.OldPos = e.Pos
	case *Cannon:
		e.Sticky = true
		e.KillWithBoss = true
		e.Layer = LayerCannon
		e.Width, e.Height = 50, 50
		e.Color = core.RGB(100, 0, 0)
	case *Rocket:
		e.Layer = LayerTerrain
		e.Edge = EdgeKill
		e.Radius = 3
		e.Mass = 20
		e.Damage = 500
		e.Width, e.Height = 10, 5
		e.Color = core.ColorRocket
		if v.Enemy {
			e.Color = core.ColorPink
		}
	case *Turret:
		e.Width, e.Height = 20, 20
		e.Color = core.RGB(250, 0, 0)
	case *Guardian:
		v.Speed = float64(w.rng.Range(5, 15))
		e.Vel = V(v.Speed, 0).Rotate(float64(w.rng.Range(0, 360)))
		v.Anchor = e.Pos
		v.MaxDist = 100
		e.Width, e.Height = 30, 30
		e.Color = core.RGB(255, 0, 255)
	case *Tile:
		if v.Status < TileNormal || v.Status > TileHealing {
			return &ConfigError{"tile_status", int(v.Status), "unknown tile status"}
		}
		e.Layer = LayerTerrain
		e.HP = v.Status.MaxHitpoints()
		e.Static = true
		e.Width, e.Height = ts, ts
	case *Spark:
		e.Layer = LayerParticle
		e.Width, e.Height = 10, 3
	case *Flame:
		e.Sticky = true
		e.MaxAge = flameLife
		e.Width, e.Height = 60, 10
		e.Color = core.RGB(255, 66, 0)
	case *Smoke:
		e.Width, e.Height = 50, 50
	case *Flytext:
		e.Layer = LayerParticle
		if v.Duration == 0 {
			v.Duration = 2
		}
		e.MaxAge = v.Delay + v.Duration
		if v.Accel == 0 {
			v.Accel = 1
		}
		e.Vel = Vec2{}
	case *Number:
		v.Size = numberStartSize
		v.sign = 1
		e.Width, e.Height = 20, 20
		e.Color = core.RGB(120, 0, 220)
	}
	return nil
}
