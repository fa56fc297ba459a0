// Package sim is the cave simulation core: entities, terrain, collisions and
// the per-frame update. It is single-threaded and deterministic for a given
// seed, configuration and intent script; nothing in it blocks or touches I/O.
package sim

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cave/internal/config"
)

// LevelCount is the number of level slots generated per world.
const LevelCount = 3

// Stats accumulates run totals for scoring.
type Stats struct {
	TilesDestroyed   int
	EnemiesDestroyed int
	GoldEarned       int
	RocketsFired     int
	MaxLevel         int
	Time             float64
}

// StepInfo describes what happened during one Step.
type StepInfo struct {
	Tick        uint64
	DT          float64
	Sounds      []Sound
	PlayerAlive bool
	Level       int
}

// Option configures a World.
type Option func(*World)

// WithLogger routes the world's debug events to l.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSink sends audio cues to s as they happen.
func WithSink(s Sink) Option {
	return func(w *World) {
		if s != nil {
			w.sink = s
		}
	}
}

// World owns every entity, the id directory, the level grids and its own copy
// of the configuration. Entities refer to each other only by ID.
type World struct {
	cfg     config.Cave
	pending *config.Cave

	rng  *RNG
	log  *log.Logger
	sink Sink

	nextID    ID
	directory map[ID]*Entity
	order     []*Entity
	spawned   []*Entity
	stepping  bool

	resolver *Resolver
	levels   [LevelCount]Grid
	active   int

	playerID ID
	cannonID ID
	aim      Vec2
	hasAim   bool
	truce    bool

	tick   uint64
	stats  Stats
	sounds []Sound
}

// NewWorld validates cfg, generates all level slots, paints level 0 and
// spawns the player with its cannon at the centre of the world.
func NewWorld(cfg config.Cave, seed int64, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: new world: %w", err)
	}

	w := &World{
		cfg:       cfg,
		rng:       NewRNG(seed),
		log:       log.New(io.Discard),
		sink:      NopSink{},
		directory: make(map[ID]*Entity),
		truce:     cfg.Peace,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.resolver = NewResolver(w)

	w.generateLevels()
	w.paint()
	if err := w.spawnPlayer(); err != nil {
		return nil, err
	}
	w.log.Debug("world created", "seed", seed, "tiles", len(w.kind(KindTile)))
	return w, nil
}

func (w *World) spawnPlayer() error {
	center := V(w.cfg.World.Width/2, -w.cfg.World.Height/2)
	id, err := w.Spawn(Attrs{Pos: center, BounceOnEdge: true}, &Player{})
	if err != nil {
		return err
	}
	w.playerID = id
	w.cannonID, err = w.Spawn(Attrs{Pos: center, Boss: id}, &Cannon{})
	return err
}

// Spawn creates an entity and registers its ID. During a Step the entity
// joins the update order only after the current pass finishes.
func (w *World) Spawn(a Attrs, v Variant) (ID, error) {
	e, err := newEntity(a, v, w)
	if err != nil {
		return 0, err
	}
	w.nextID++
	e.id = w.nextID
	if _, dup := w.directory[e.id]; dup {
		panic(fmt.Sprintf("sim: duplicate entity id %d", e.id))
	}
	w.directory[e.id] = e
	if w.stepping {
		w.spawned = append(w.spawned, e)
	} else {
		w.order = append(w.order, e)
	}
	return e.id, nil
}

// mustSpawn is for internal call sites whose attributes are valid by construction.
func (w *World) mustSpawn(a Attrs, v Variant) ID {
	id, err := w.Spawn(a, v)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the live entity with the given ID.
func (w *World) Lookup(id ID) (*Entity, bool) {
	e, ok := w.directory[id]
	return e, ok
}

// Kill destroys an entity, running its death reactions. Unknown IDs are ignored.
func (w *World) Kill(id ID) {
	if e, ok := w.directory[id]; ok {
		w.die(e)
	}
}

// die removes e from the directory immediately and runs death reactions.
func (w *World) die(e *Entity) {
	if !w.discard(e) {
		return
	}
	w.onDeath(e)
}

// discard removes e without death reactions. It reports whether e was alive.
func (w *World) discard(e *Entity) bool {
	if e.dead {
		return false
	}
	e.dead = true
	delete(w.directory, e.id)
	return true
}

// Entities returns the live entities in spawn order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order)+len(w.spawned))
	for _, e := range w.order {
		if !e.dead {
			out = append(out, e)
		}
	}
	for _, e := range w.spawned {
		if !e.dead {
			out = append(out, e)
		}
	}
	return out
}

// DrawList returns the live entities ordered back to front by layer.
func (w *World) DrawList() []*Entity {
	out := w.Entities()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

// kind returns the live, merged entities of one kind in spawn order.
func (w *World) kind(kinds ...Kind) []*Entity {
	var out []*Entity
	for _, e := range w.order {
		if e.dead {
			continue
		}
		for _, k := range kinds {
			if e.kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (w *World) merge() {
	if len(w.spawned) == 0 {
		return
	}
	w.order = append(w.order, w.spawned...)
	w.spawned = w.spawned[:0]
}

func (w *World) compact() {
	live := w.order[:0]
	for _, e := range w.order {
		if !e.dead {
			live = append(live, e)
		}
	}
	clear(w.order[len(live):])
	w.order = live
}

// Player returns the player entity while it is alive.
func (w *World) Player() (*Entity, bool) {
	return w.Lookup(w.playerID)
}

// PlayerID returns the ID the player was spawned with.
func (w *World) PlayerID() ID { return w.playerID }

// CannonID returns the ID of the player's cannon.
func (w *World) CannonID() ID { return w.cannonID }

// Truce reports whether enemy cannons are holding fire.
func (w *World) Truce() bool { return w.truce }

// SetTruce changes the truce flag. Once the player is dead truce stays on.
func (w *World) SetTruce(on bool) {
	if !on {
		if _, alive := w.Player(); !alive {
			return
		}
	}
	w.truce = on
}

// Stats returns run totals so far.
func (w *World) Stats() Stats { return w.stats }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// ActiveLevel returns the painted level slot.
func (w *World) ActiveLevel() int { return w.active }

// Level returns a copy of the grid generated for slot n.
func (w *World) Level(n int) Grid {
	if n < 0 || n >= LevelCount {
		return Grid{}
	}
	return w.levels[n].Clone()
}

// Config returns the configuration currently in effect.
func (w *World) Config() config.Cave { return w.cfg }

// SetConfig validates cfg and queues it for the start of the next Step.
// Terrain changes regenerate the levels when the config is applied.
func (w *World) SetConfig(cfg config.Cave) error {
	if err := cfg.Validate(); err != nil {
		w.log.Warn("config rejected", "err", err)
		return fmt.Errorf("sim: set config: %w", err)
	}
	w.pending = &cfg
	return nil
}

// resetSpeed queues thrust back to 1 on top of any config already pending,
// so the running tick keeps the speed it started with.
func (w *World) resetSpeed() {
	next := w.cfg
	if w.pending != nil {
		next = *w.pending
	}
	next.Player.Speed = 1
	w.pending = &next
}

func (w *World) applyPending() {
	if w.pending == nil {
		return
	}
	next := *w.pending
	w.pending = nil

	regen := next.Terrain != w.cfg.Terrain ||
		next.Enemies.Density != w.cfg.Enemies.Density ||
		next.World.Width != w.cfg.World.Width ||
		next.World.Height != w.cfg.World.Height
	if next.Peace != w.cfg.Peace {
		w.SetTruce(next.Peace)
	}
	w.cfg = next

	if p, ok := w.Player(); ok {
		ts := float64(next.Terrain.TileSize)
		p.Width, p.Height = ts, ts
		p.MaxHP = next.Player.Hitpoints
	}
	w.log.Debug("config applied", "regenerate", regen)
	if regen {
		w.Regenerate()
	}
}

// Step advances the world by dt seconds: pending config, intents, the update
// pass, collision resolution and compaction, in that order.
func (w *World) Step(in Intent, dt float64) StepInfo {
	w.applyPending()

	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = min(dt, w.cfg.World.MaxDT)

	w.tick++
	w.stats.Time += dt
	w.sounds = nil
	w.stepping = true

	w.applyIntent(in)
	w.merge()

	n := len(w.order)
	for i := 0; i < n; i++ {
		if e := w.order[i]; !e.dead {
			w.update(e, dt)
		}
	}
	w.merge()

	w.resolver.Resolve()
	w.merge()
	w.compact()
	w.stepping = false

	_, alive := w.Player()
	return StepInfo{
		Tick:        w.tick,
		DT:          dt,
		Sounds:      w.sounds,
		PlayerAlive: alive,
		Level:       w.active,
	}
}

// reap kills every entity whose hitpoints dropped to zero or below.
func (w *World) reap() {
	for _, e := range w.order {
		if !e.dead && e.HP <= 0 {
			w.die(e)
		}
	}
	for _, e := range w.spawned {
		if !e.dead && e.HP <= 0 {
			w.die(e)
		}
	}
}

func (w *World) emit(s Sound) {
	w.sounds = append(w.sounds, s)
	w.sink.Play(s)
}
