package watch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/TimelordUK/logdeck/internal/logger"
)

// Watcher signals that a log file may have changed.
// Signals are hints: the receiver still stats the file to learn what happened.
type Watcher interface {
	Events() <-chan struct{}
	Close()
}

// fileWatcher watches the directory holding one file, so rotation by
// rename or delete-and-create is seen too
type fileWatcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	events    chan struct{}
	log       logger.Logger

	mu     sync.Mutex
	closed bool
}

// New starts watching path. The file itself does not need to exist yet, but
// its directory does.
func New(path string, log logger.Logger) (Watcher, error) {
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

	w := &fileWatcher{
		path:      abs,
		fsWatcher: fsw,
		events:    make(chan struct{}, 1),
		log:       log.WithComponent("WATCHER"),
	}

	w.log.Debug().Msgf("Watching %s", abs)

	go w.processEvents()

	return w, nil
}

// Events returns the change channel. Bursts of changes collapse into a
// single pending signal. The channel is closed by Close.
func (w *fileWatcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and releases resources
func (w *fileWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	w.fsWatcher.Close()
}

// processEvents handles fsnotify events until the watcher is closed
func (w *fileWatcher) processEvents() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.matches(event) {
				w.notify()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// matches returns true if the event concerns the watched file and may
// change its content
func (w *fileWatcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func (w *fileWatcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
