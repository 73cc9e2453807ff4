// Package watch re-runs a callback whenever a profile file changes
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period after the last change before the
// callback runs
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher
type Options struct {
	// Path is the file to watch
	Path string

	Debounce time.Duration
	Logger   zerolog.Logger
}

// Func is called once at start and once per settled change
type Func func(ctx context.Context) error

// Watcher monitors one file through its parent directory, so editors that
// replace the file by renaming are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// New creates a watcher for opts.Path
func New(opts Options) (*Watcher, error) {
	if opts.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no file to watch")
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", opts.Path)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		logger:   opts.Logger.With().Str("component", "watch").Str("path", abs).Logger(),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run calls fn, then waits for changes and calls fn again after each one
// settles. Calls never overlap. Errors from fn are logged and do not stop
// the loop. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create watcher")
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to watch %s", dir).
			WithDetail(errors.DetailPath, dir)
	}

	w.call(ctx, fn)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("Change detected")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.call(ctx, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) call(ctx context.Context, fn Func) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("Run failed, waiting for the next change")
		return
	}
	w.logger.Debug().Msg("Run finished")
}
