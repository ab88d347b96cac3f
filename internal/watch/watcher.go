// Package watch re-runs the analysis pipeline whenever the historian CSV on
// disk changes, so a rig export that is appended in place behaves like a
// live feed.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RunFunc executes one pipeline pass over the watched file. Errors are
// logged and the watcher keeps going; a transient half-written file should
// not end the session.
type RunFunc func(path string) error

// Watcher monitors a single CSV file and triggers RunFunc on writes.
// Directory-level watching is used because historians typically replace the
// file atomically (write temp + rename), which drops inode-level watches.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	run         RunFunc
	logger      *zap.Logger
	debounceDur time.Duration
	lastEvent   time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a Watcher for the given file.
func New(path string, run RunFunc, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		path:        filepath.Clean(path),
		run:         run,
		logger:      logger,
		debounceDur: 500 * time.Millisecond, // historian appends arrive in bursts
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or the context is cancelled. An immediate first run
// is triggered so the session starts with current data.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	if err := w.run(w.path); err != nil {
		w.logger.Warn("initial run failed", zap.String("path", w.path), zap.Error(err))
	}

	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.debounce() {
				continue
			}
			w.logger.Debug("file changed, re-running pipeline",
				zap.String("path", w.path),
				zap.String("op", event.Op.String()))
			if err := w.run(w.path); err != nil {
				w.logger.Warn("pipeline run failed", zap.String("path", w.path), zap.Error(err))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// debounce reports whether enough time has passed since the last accepted
// event. Editors and historians fire several writes per save.
func (w *Watcher) debounce() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if now.Sub(w.lastEvent) < w.debounceDur {
		return false
	}
	w.lastEvent = now
	return true
}
