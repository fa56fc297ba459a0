package sim

// Sound is a named audio cue. The core fires cues and never waits on them.
type Sound string

const (
	SoundHitGround    Sound = "hit_ground"
	SoundPlayerShoot  Sound = "player_shoot"
	SoundPlayerDamage Sound = "player_damage"
	SoundPlayerHeal   Sound = "player_heal"
	SoundEnemyDamage  Sound = "enemy_damage"
)

// Sounds lists every cue the core can emit.
var Sounds = []Sound{
	SoundHitGround,
	SoundPlayerShoot,
	SoundPlayerDamage,
	SoundPlayerHeal,
	SoundEnemyDamage,
}

// Sink receives audio cues as they happen. Play must not block.
type Sink interface {
	Play(s Sound)
}

// NopSink drops every cue.
type NopSink struct{}

func (NopSink) Play(Sound) {}

// Recorder keeps every cue it receives, in order.
type Recorder struct {
	Played []Sound
}

func (r *Recorder) Play(s Sound) {
	r.Played = append(r.Played, s)
}

// Count returns how many times s was played.
func (r *Recorder) Count(s Sound) int {
	n := 0
	for _, p := range r.Played {
		if p == s {
			n++
		}
	}
	return n
}
