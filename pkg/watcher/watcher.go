// Package watcher reports changes to a box document on disk.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original
// are still seen. Bursts of events are collapsed with a [Debouncer].
//
//	w, err := watcher.New("tags.toml", func() { reload() })
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	go w.Run(ctx)
package watcher

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before onChange runs.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debouncer = NewDebouncer(d) } }

// WithLogger sets the logger used for watch errors.
func WithLogger(l *log.Logger) Option { return func(w *Watcher) { w.logger = l } }

// Watcher calls onChange after the watched file is written, created,
// renamed or removed.
type Watcher struct {
	path      string
	onChange  func()
	debouncer *Debouncer
	logger    *log.Logger
	fsw       *fsnotify.Watcher
	closeOnce sync.Once
}

// New starts watching path. Events are not delivered until Run is called.
func New(path string, onChange func(), opts ...Option) (*Watcher, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w := &Watcher{
		path:      abs,
		onChange:  onChange,
		debouncer: NewDebouncer(0),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(abs))
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer w.debouncer.Cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.debouncer.Trigger(w.onChange)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.debouncer.Cancel()
		err = w.fsw.Close()
	})
	return err
}
