package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xtding233/gemcalc/internal/logger"
)

// FileWatcher reports changes to a fixed set of config files.
//
// It watches the parent directories rather than the files so editors that
// save by rename are still seen, and debounces bursts of events per path
// before calling onChange.
type FileWatcher struct {
	Paths    []string
	Debounce time.Duration

	onChange func(string) // called with path that changed
	log      *logger.Logger

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewFileWatcher creates a watcher for given paths and debounce window.
func NewFileWatcher(paths []string, debounce time.Duration, onChange func(string), log *logger.Logger) *FileWatcher {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			p = a
		}
		abs = append(abs, filepath.Clean(p))
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &FileWatcher{
		Paths:    abs,
		Debounce: debounce,
		onChange: onChange,
		log:      logger.OrNop(log),
		stopCh:   make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
}

// Start registers the watches and begins dispatching in a goroutine.
func (w *FileWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dirs := make(map[string]struct{})
	for _, p := range w.Paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			// a profile directory may not exist yet
			w.log.Warn("config watch skipped", "dir", d, "error", err)
		}
	}
	w.watcher = fw
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and waits for the dispatch goroutine.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
		w.wg.Wait()
		w.mu.Lock()
		for _, t := range w.timers {
			t.Stop()
		}
		w.mu.Unlock()
	})
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if path, ok := w.match(ev.Name); ok {
				w.schedule(path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", "error", err)
		}
	}
}

func (w *FileWatcher) match(name string) (string, bool) {
	name = filepath.Clean(name)
	for _, p := range w.Paths {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// schedule fires onChange once the path has been quiet for Debounce.
func (w *FileWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.Debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		w.log.Info("config changed", "path", path)
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}
