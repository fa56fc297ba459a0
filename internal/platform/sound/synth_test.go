package sound

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

func TestEveryCueHasATone(t *testing.T) {
	for _, s := range sim.Sounds {
		tone, ok := Tones[s]
		if !ok {
			t.Errorf("Tones[%q] missing", s)
			continue
		}
		if tone.Duration <= 0 || tone.Release > tone.Duration {
			t.Errorf("Tones[%q] = %+v, expected 0 < Release <= Duration", s, tone)
		}
	}
}

func TestCueLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	tests := []struct {
		name string
		tone Tone
		want int
	}{
		{"sine", Tone{Wave: WaveSine, Freq: 100, Duration: 50 * time.Millisecond, Volume: 1}, 50},
		{"square with release", Tone{Wave: WaveSquare, Freq: 100, Duration: 30 * time.Millisecond, Release: 10 * time.Millisecond, Volume: 0.5}, 30},
		{"silent noise", Tone{Wave: WaveNoise, Duration: 20 * time.Millisecond}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue := NewCue(tt.tone, rate)
			buf := make([][2]float64, 16)
			total := 0
			for {
				n, ok := cue.Stream(buf)
				total += n
				if !ok {
					break
				}
				if total > 1000 {
					t.Fatal("cue never ends")
				}
			}
			if total != tt.want {
				t.Errorf("streamed %d samples, expected %d", total, tt.want)
			}
		})
	}
}

func TestCueStaysInRange(t *testing.T) {
	for s, tone := range Tones {
		cue := NewCue(tone, sampleRate)
		buf := make([][2]float64, 512)
		n, _ := cue.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v < -1 || v > 1 {
				t.Fatalf("%s sample %d = %f, expected within [-1, 1]", s, i, v)
			}
		}
	}
}

func TestReleaseFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	cue := NewCue(Tone{Wave: WaveSquare, Freq: 1, Duration: 20 * time.Millisecond, Release: 10 * time.Millisecond, Volume: 1}, rate)
	buf := make([][2]float64, 20)
	n, _ := cue.Stream(buf)
	if n != 20 {
		t.Fatalf("Stream() = %d, expected 20", n)
	}
	if buf[0][0] != 1 {
		t.Errorf("first sample = %f, expected 1", buf[0][0])
	}
	if last := buf[19][0]; last <= 0 || last >= 0.2 {
		t.Errorf("last sample = %f, expected a small positive tail", last)
	}
}

func TestSilentSynthIgnoresCues(t *testing.T) {
	s := &Synth{volume: 1}
	s.Play(sim.SoundPlayerShoot)
	s.SetMuted(true)
	s.Play(sim.SoundHitGround)
	s.Close()
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)

	LogSink{Logger: l}.Play(sim.SoundEnemyDamage)
	if !strings.Contains(buf.String(), "enemy_damage") {
		t.Errorf("log = %q, expected the cue name", buf.String())
	}

	LogSink{}.Play(sim.SoundEnemyDamage)
}

func TestTee(t *testing.T) {
	a, b := &sim.Recorder{}, &sim.Recorder{}
	sink := Tee(a, nil, b)
	sink.Play(sim.SoundPlayerHeal)
	sink.Play(sim.SoundPlayerHeal)

	for i, r := range []*sim.Recorder{a, b} {
		if got := r.Count(sim.SoundPlayerHeal); got != 2 {
			t.Errorf("sink %d Count() = %d, expected 2", i, got)
		}
	}
}
