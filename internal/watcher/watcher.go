// Package watcher reports changes made to the edited config file by other
// programs.
//
// The parent directory is watched rather than the file itself, since many
// editors save by writing a new file and renaming it over the old one.
// Bursts of events are collapsed into one notification after a quiet period.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Op describes what happened to the file.
type Op uint32

// Operations, as reported by the last event of a burst.
const (
	OpWrite Op = 1 << iota
	OpCreate
	OpRemove
	OpRename
)

// Event is one collapsed change notification.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher watches a single file.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw    *fsnotify.Watcher
	events chan Event
	errors chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	done      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last raw event before an
// Event is delivered.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New starts watching path. The file itself does not need to exist, but its
// directory does.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		events:   make(chan Event, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	w.fsw = fsw

	w.done.Add(1)
	go w.processLoop()

	glog.V(1).Infof("watching %s", abs)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		w.done.Wait()
		close(w.events)
		close(w.errors)
		err = w.fsw.Close()
	})
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.done.Done()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			pending = Event{Path: w.path, Op: op, Time: time.Now()}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.send(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			glog.Warningf("watcher error on %s: %v", w.path, err)
			select {
			case w.errors <- err:
			default:
				// Channel full, drop error
			}
		}
	}
}

func (w *Watcher) send(e Event) {
	select {
	case w.events <- e:
	default:
		// A notification is already pending; the receiver will reload once.
		glog.V(2).Infof("dropping duplicate change event for %s", e.Path)
	}
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod alone is ignored.
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
