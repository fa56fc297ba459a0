package sim

import "math"

// EntityState is the replay-relevant state of one entity.
type EntityState struct {
	ID    ID
	Kind  Kind
	X, Y  float64
	VX    float64
	VY    float64
	Angle float64
	HP    float64
	Age   float64
}

// Snapshot is a flat copy of the world used for determinism checks.
type Snapshot struct {
	Tick     uint64
	Level    int
	Truce    bool
	Gold     int
	RNGState uint64
	Entities []EntityState
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	live := w.Entities()
	states := make([]EntityState, len(live))
	for i, e := range live {
		states[i] = EntityState{
			ID:    e.id,
			Kind:  e.kind,
			X:     e.Pos.X,
			Y:     e.Pos.Y,
			VX:    e.Vel.X,
			VY:    e.Vel.Y,
			Angle: e.Angle,
			HP:    e.HP,
			Age:   e.Age,
		}
	}
	return Snapshot{
		Tick:     w.tick,
		Level:    w.active,
		Truce:    w.truce,
		Gold:     w.cfg.Economy.Gold,
		RNGState: w.rng.state,
		Entities: states,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	if snap.Truce {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.Gold) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState
	for _, e := range snap.Entities {
		h = h*31 + uint64(e.ID)
		h = h*31 + uint64(e.Kind) //#nosec G115 -- hash computation
		for _, f := range []float64{e.X, e.Y, e.VX, e.VY, e.Angle, e.HP, e.Age} {
			h = h*31 + math.Float64bits(f)
		}
	}
	return h
}
