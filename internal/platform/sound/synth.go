// Package sound turns the cave's audio cues into generated tones. Cues are
// short, so every one is synthesised on demand and mixed by the speaker.
package sound

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

const sampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone describes one cue: a pitch sweep from Freq to EndFreq over Duration.
type Tone struct {
	Wave     Wave
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Release  time.Duration
	Volume   float64
}

// Tones maps every cue the simulation emits to its sound.
var Tones = map[sim.Sound]Tone{
	sim.SoundHitGround:    {Wave: WaveNoise, Duration: 120 * time.Millisecond, Release: 100 * time.Millisecond, Volume: 0.3},
	sim.SoundPlayerShoot:  {Wave: WaveSquare, Freq: 880, EndFreq: 440, Duration: 80 * time.Millisecond, Release: 40 * time.Millisecond, Volume: 0.15},
	sim.SoundPlayerDamage: {Wave: WaveSaw, Freq: 160, EndFreq: 90, Duration: 200 * time.Millisecond, Release: 120 * time.Millisecond, Volume: 0.35},
	sim.SoundPlayerHeal:   {Wave: WaveSine, Freq: 660, EndFreq: 990, Duration: 150 * time.Millisecond, Release: 60 * time.Millisecond, Volume: 0.25},
	sim.SoundEnemyDamage:  {Wave: WaveSquare, Freq: 220, EndFreq: 180, Duration: 100 * time.Millisecond, Release: 60 * time.Millisecond, Volume: 0.2},
}

// oscillator plays a swept wave for a fixed number of samples, fading out
// over the last release samples.
type oscillator struct {
	tone    Tone
	rate    beep.SampleRate
	total   int
	release int
	pos     int
	phase   float64
}

// NewCue returns a finite streamer for t at the given rate.
func NewCue(t Tone, rate beep.SampleRate) beep.Streamer {
	osc := &oscillator{
		tone:    t,
		rate:    rate,
		total:   rate.N(t.Duration),
		release: min(rate.N(t.Release), rate.N(t.Duration)),
	}
	if t.Volume <= 0 {
		return &effects.Volume{Streamer: osc, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: osc, Base: 2, Volume: math.Log2(t.Volume)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		progress := float64(o.pos) / float64(o.total)
		freq := o.tone.Freq + (o.tone.EndFreq-o.tone.Freq)*progress

		var val float64
		switch o.tone.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		if left := o.total - o.pos; o.release > 0 && left < o.release {
			val *= float64(left) / float64(o.release)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// Synth plays cues through the default audio device.
type Synth struct {
	mu     sync.Mutex
	ready  bool
	muted  bool
	volume float64
}

// NewSynth opens the speaker. The returned Synth is silent until then, and
// stays silent if the device cannot be opened.
func NewSynth(volume float64) (*Synth, error) {
	s := &Synth{volume: volume}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return s, err
	}
	s.ready = true
	return s, nil
}

// SetMuted silences or restores playback.
func (s *Synth) SetMuted(m bool) {
	s.mu.Lock()
	s.muted = m
	s.mu.Unlock()
}

// Play starts the cue and returns at once. Unknown cues are ignored.
func (s *Synth) Play(cue sim.Sound) {
	s.mu.Lock()
	on := s.ready && !s.muted
	s.mu.Unlock()
	if !on {
		return
	}
	t, ok := Tones[cue]
	if !ok {
		return
	}
	t.Volume *= s.volume
	speaker.Play(NewCue(t, sampleRate))
}

// Close stops everything still playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		speaker.Clear()
		speaker.Close()
		s.ready = false
	}
}

var _ sim.Sink = (*Synth)(nil)
