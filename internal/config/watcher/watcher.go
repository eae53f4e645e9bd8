// Package watcher reports changes to a configuration file.
//
// The file's directory is watched rather than the file itself, so editors
// that save by writing a new file and renaming it over the old one are
// still seen. Bursts of events are debounced into one notification.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Op is the kind of file change.
type Op uint8

const (
	OpWrite Op = 1 << iota
	OpCreate
	OpRemove
	OpRename
)

// String returns the operation name.
func (op Op) String() string {
	switch {
	case op&OpRemove != 0:
		return "remove"
	case op&OpRename != 0:
		return "rename"
	case op&OpCreate != 0:
		return "create"
	case op&OpWrite != 0:
		return "write"
	default:
		return "unknown"
	}
}

// Event describes a change to the watched file. Op accumulates every
// operation seen during the debounce window.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler is called from the watcher goroutine after a change settles.
type Handler func(Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before the handler
// runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives errors reported by the OS watcher.
func WithErrorHandler(f func(error)) Option {
	return func(w *Watcher) {
		w.onError = f
	}
}

// Watcher monitors one file.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	path     string
	handler  Handler
	onError  func(error)
	debounce time.Duration

	pending *Event
	timer   *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts watching path and calls h after each settled change.
func New(path string, h Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		handler:  h,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending notifications are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if op := convertOp(ev.Op); op != 0 {
				w.schedule(op)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) schedule(op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending == nil {
		w.pending = &Event{Path: w.path}
	}
	w.pending.Op |= op
	w.pending.Time = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed || w.pending == nil {
		w.mu.Unlock()
		return
	}
	ev := *w.pending
	w.pending = nil
	w.mu.Unlock()

	w.handler(ev)
}

// convertOp converts fsnotify.Op to Op. Chmod alone is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
