package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Quiet period after the last event before the file is read.
const debounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// Valid configs arrive on Configs; read or validation failures arrive on Errors.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan Cave
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so that
// atomic rename-on-save keeps working.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", abs, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", abs, err)
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Configs: make(chan Cave, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Configs)
	defer close(w.Errors)

	// Reload on the trailing edge so a truncate-then-write pair is read once, complete.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// Rename events fire before the new file lands; the following Create reloads it.
		if os.IsNotExist(err) {
			return
		}
		w.send(nil, err)
		return
	}
	cfg, err := ParseCave(data)
	if err != nil {
		w.send(nil, err)
		return
	}
	w.send(&cfg, nil)
}

func (w *Watcher) send(cfg *Cave, err error) {
	if cfg != nil {
		select {
		case w.Configs <- *cfg:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
