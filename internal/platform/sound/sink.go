package sound

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

// LogSink writes every cue to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

func (l LogSink) Play(s sim.Sound) {
	if l.Logger != nil {
		l.Logger.Debug("sound", "cue", string(s))
	}
}

// Tee sends each cue to every sink in turn. Nil sinks are skipped.
func Tee(sinks ...sim.Sink) sim.Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type tee []sim.Sink

func (t tee) Play(s sim.Sound) {
	for _, sink := range t {
		sink.Play(s)
	}
}
