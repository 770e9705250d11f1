package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goodeyes/frontdesk/internal/logger"
)

// DefaultWatchSettle coalesces the burst of events editors emit on save.
const DefaultWatchSettle = 100 * time.Millisecond

// Watcher reports changes to a single file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename-and-replace keep being observed.
type Watcher struct {
	path   string
	settle time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string) *Watcher {
	return &Watcher{path: filepath.Clean(path), settle: DefaultWatchSettle}
}

// Watch starts watching and returns a channel that receives one value per
// settled change. The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	changes := make(chan struct{}, 1)
	go w.run(ctx, fw, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer fw.Close()

	var (
		timer   *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			settled = timer.C

		case <-settled:
			settled = nil
			select {
			case changes <- struct{}{}:
			default:
				// A change is already pending.
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
