// Package watch re-decodes a configuration document whenever it changes on
// disk.
package watch

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/value"
)

// DefaultDebounceDelay coalesces the burst of events editors emit on save.
const DefaultDebounceDelay = 100 * time.Millisecond

// Callback receives each successfully decoded document.
type Callback func(value.Map)

// ErrorCallback receives load and watch errors.
type ErrorCallback func(error)

// Watcher watches a single document and reports every successful decode.
type Watcher struct {
	path          string
	watcher       *fsnotify.Watcher
	callback      Callback
	errorCallback ErrorCallback
	logger        *slog.Logger
	debounceDelay time.Duration
	last          value.Map
	mu            sync.RWMutex
	stopCh        chan struct{}
	stoppedCh     chan struct{}
	running       bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDelay sets how long the watcher waits for events to settle.
func WithDebounceDelay(delay time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDelay = delay
	}
}

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithErrorCallback sets the error callback for the watcher.
func WithErrorCallback(callback ErrorCallback) Option {
	return func(w *Watcher) {
		w.errorCallback = callback
	}
}

// NewWatcher creates a watcher for the document at path.
func NewWatcher(path string, callback Callback, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:          absPath,
		watcher:       fsWatcher,
		callback:      callback,
		debounceDelay: DefaultDebounceDelay,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start loads the document once, hands it to the callback and begins
// watching. A document that fails to load aborts Start.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.load(); err != nil {
		w.abort()
		return err
	}

	// Watch the directory: editors often replace the file instead of writing it.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.abort()
		return err
	}

	w.logger.Info("watching document", "path", w.path)

	go w.watch(ctx)

	return nil
}

func (w *Watcher) abort() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	_ = w.watcher.Close()
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	return w.watcher.Close()
}

// Last returns the most recent successfully decoded document.
func (w *Watcher) Last() value.Map {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.stoppedCh)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped due to context cancellation")
			return

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			debounceTimer, debounceCh = w.handleEvent(event, debounceTimer, debounceCh)

		case <-debounceCh:
			debounceCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "err", err)
			w.reportError(err)
		}
	}
}

func (w *Watcher) handleEvent(
	event fsnotify.Event,
	debounceTimer *time.Timer,
	debounceCh <-chan time.Time,
) (*time.Timer, <-chan time.Time) {
	if filepath.Clean(event.Name) != w.path {
		return debounceTimer, debounceCh
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return debounceTimer, debounceCh
	}

	w.logger.Debug("document changed", "path", event.Name, "op", event.Op.String())

	if debounceTimer != nil {
		debounceTimer.Stop()
	}
	debounceTimer = time.NewTimer(w.debounceDelay)
	return debounceTimer, debounceTimer.C
}

func (w *Watcher) reload() {
	if err := w.load(); err != nil {
		w.logger.Error("failed to reload document", "path", w.path, "err", err)
		w.reportError(err)
		return
	}
	w.logger.Info("document reloaded", "path", w.path)
}

func (w *Watcher) load() error {
	doc, err := codec.LoadFile(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.last = doc
	w.mu.Unlock()

	if w.callback != nil {
		w.callback(doc)
	}
	return nil
}

func (w *Watcher) reportError(err error) {
	if w.errorCallback != nil {
		w.errorCallback(err)
	}
}
