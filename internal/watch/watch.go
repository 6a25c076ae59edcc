// Package watch re-runs an action whenever the frame images in a directory
// change.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ajroetker/go-bitframe/internal/store"
)

// Action is run once at start and after every debounced change.
type Action func(ctx context.Context) error

// Watcher watches one directory for frame image changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	action   Action
	log      zerolog.Logger
}

// New returns a watcher on dir. Bursts of events closer together than
// debounce trigger a single run of action.
func New(dir string, debounce time.Duration, log zerolog.Logger, action Action) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{dir: dir, debounce: debounce, action: action, log: log}
}

// Run blocks until ctx is done or the underlying watcher fails. Errors from
// the action are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info().Str("dir", w.dir).Dur("debounce", w.debounce).Msg("watching for frame changes")

	w.runAction(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !store.IsFrameImage(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("frame changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.runAction(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) runAction(ctx context.Context) {
	start := time.Now()
	if err := w.action(ctx); err != nil {
		w.log.Error().Err(err).Msg("re-encode failed")
		return
	}
	w.log.Info().Dur("took", time.Since(start)).Msg("re-encoded")
}
