package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 5 * time.Second

// Watcher monitors a music root and all its subdirectories and emits a
// debounced event when something changes.
type Watcher struct {
	watcher       *fsnotify.Watcher
	root          string
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	pending       FileEvent
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
	ignored       []string
	logger        *slog.Logger
}

// NewWatcher creates a new file system watcher. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
		logger:    logger,
	}, nil
}

// Ignore drops events for the given files and their siblings written
// alongside them: ".name.*" temporary files and "name-*" journals. Call it
// before Start.
func (w *Watcher) Ignore(paths ...string) {
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.ignored = append(w.ignored, filepath.Clean(p))
	}
}

func (w *Watcher) isIgnored(name string) bool {
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	dir, base := filepath.Split(filepath.Clean(name))
	for _, p := range w.ignored {
		pdir, pbase := filepath.Split(p)
		if dir != pdir {
			continue
		}
		if base == pbase || strings.HasPrefix(base, "."+pbase+".") || strings.HasPrefix(base, pbase+"-") {
			return true
		}
	}
	return false
}

// Start begins watching root and every directory below it.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = root
	w.logger.Info("Watcher.Start: starting file watcher", "path", root)

	if err := w.addTree(root); err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)

	w.logger.Info("Watcher.Start: file watcher started")
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	w.logger.Info("Watcher.Stop: stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

// addTree registers dir and its subdirectories. Symlinked directories are not
// followed.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("Watcher.addTree: skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("Watcher.addTree: can't watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher.watchLoop: file watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	kind, ok := eventType(event.Op)
	if !ok || w.isIgnored(event.Name) {
		return
	}

	if kind == FileCreated {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Watcher.handleEvent: can't watch new directory", "path", event.Name, "error", err)
			}
		}
	}

	w.logger.Debug("Watcher.handleEvent: change detected", "path", event.Name, "op", event.Op.String())

	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.pending = FileEvent{Root: w.root, Path: event.Name, EventType: kind}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.emitDebounceEvent)
}

func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	event := w.pending
	w.debounceMutex.Unlock()
	event.Timestamp = time.Now()

	select {
	case w.eventChan <- event:
		w.logger.Info("Watcher.emitDebounceEvent: emitted file event after debounce", "path", event.Path)
	default:
		w.logger.Warn("Watcher.emitDebounceEvent: event channel full, dropping file event", "path", event.Path)
	}
}
