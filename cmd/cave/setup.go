package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
	"github.com/vovakirdan/tui-cave/internal/platform/sound"
	"github.com/vovakirdan/tui-cave/internal/storage"
)

// env holds what the local commands share: logger, config, run history,
// audio and the config watcher. Every part is optional except the config.
type env struct {
	logger  *log.Logger
	logFile *os.File
	cave    config.Cave
	store   *storage.Store
	sink    sim.Sink
	synth   *sound.Synth
	watcher *config.Watcher
}

// openEnv loads the config and opens everything around it. Failures other
// than a bad config are logged and the game runs without that part.
func openEnv(watch bool) (*env, error) {
	e := &env{}
	e.logger, e.logFile = newLogger()

	cave, err := loadCave()
	if err != nil {
		e.Close()
		return nil, err
	}
	e.cave = cave

	if store, err := storage.Open(flagDBPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		e.logger.Warn("run history unavailable", "path", flagDBPath, "err", err)
	} else {
		e.store = store
	}

	sinks := []sim.Sink{}
	if flagSound {
		synth, err := sound.NewSynth(1)
		if err != nil {
			e.logger.Warn("audio unavailable", "err", err)
		} else {
			e.synth = synth
			sinks = append(sinks, synth)
		}
	}
	if flagDebug {
		sinks = append(sinks, sound.LogSink{Logger: e.logger})
	}
	e.sink = sound.Tee(sinks...)

	if watch {
		if path := config.ResolvePath(flagConfig); path != "" {
			w, err := config.Watch(path)
			if err != nil {
				e.logger.Warn("config will not reload", "path", path, "err", err)
			} else {
				e.watcher = w
				e.logger.Debug("watching config", "path", path)
			}
		}
	}
	return e, nil
}

// Close releases everything openEnv acquired.
func (e *env) Close() {
	if e.watcher != nil {
		e.watcher.Close()
	}
	if e.synth != nil {
		e.synth.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// newLogger appends to ~/.cave/cave.log. The terminal belongs to the game,
// so without a log file events are dropped.
func newLogger() (*log.Logger, *os.File) {
	var (
		w io.Writer = io.Discard
		f *os.File
	)
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".cave")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err = os.OpenFile(filepath.Join(dir, "cave.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				w = f
			}
		}
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cave",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f
}

// loadCave reads the config and applies the difficulty preset.
func loadCave() (config.Cave, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Cave{}, err
	}
	cfg, err := config.LoadCave(flagConfig)
	if err != nil {
		return config.Cave{}, err
	}
	config.ApplyCavePreset(&cfg, preset)
	return cfg, nil
}

// runtimeConfig sizes the run to the terminal, 80x24 when it is unknown.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
