// Package watcher watches the icon config file for completed writes.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/workstyle/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces into
// one completed write.
const DefaultDebounce = 100 * time.Millisecond

// Event reports a completed write of the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a single file. Each firing is delivered once; the watch
// must be re-armed with Rearm before the next one is guaranteed, since saves
// that replace the file drop the kernel watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    *logger.Logger

	changes chan Event
	done    chan struct{}

	debounceMu sync.Mutex
	timer      *time.Timer
	lastOp     fsnotify.Op
}

// New creates a watcher for path. Start must be called to begin watching.
func New(path string, log *logger.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		debounce:  DefaultDebounce,
		logger:    log.WithPrefix("watcher"),
		changes:   make(chan Event, 1),
		done:      make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce window. Call it before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns the channel of completed writes. It holds at most one
// pending change: a reload reads the whole file, so further writes before it
// is consumed are folded into it.
func (w *Watcher) Changes() <-chan Event {
	return w.changes
}

// Start adds the watch and starts processing events.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.path); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Rearm re-adds the watch on the file. Adding a path that is already watched
// is a no-op, so it is safe to call after every change.
func (w *Watcher) Rearm() error {
	return w.fsWatcher.Add(w.path)
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()

	w.debounceMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.debounceMu.Unlock()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify: %s %s", event.Op, event.Name)
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Debugf("watch error: %v", err)
		}
	}
}

// handleEvent accepts writes, creates, and the rename/remove that an atomic
// save (write temp file, rename over target) produces on the target.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	w.lastOp = event.Op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.debounceMu.Lock()
	op := w.lastOp
	w.timer = nil
	w.debounceMu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	select {
	case w.changes <- Event{Path: w.path, Op: op}:
	default:
		// A change is already pending.
	}
}
