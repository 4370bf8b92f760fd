// monitor.go
package file

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Monitor watches the export directory and fires a callback once the
// concentrator has finished dropping new files. Export batches arrive as
// several files in quick succession, so events are debounced.
type Monitor struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	pending *time.Timer
}

func NewMonitor(dir string, debounce time.Duration, log *zap.Logger) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify watches are not recursive; register every subdirectory.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return &Monitor{
		watcher:  watcher,
		debounce: debounce,
		log:      log,
	}, nil
}

// Watch blocks until ctx is done or the watcher fails, invoking onChange
// after each settled burst of data-file events.
func (m *Monitor) Watch(ctx context.Context, onChange func()) error {
	defer m.watcher.Close()

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !IsDataFile(event.Name) {
				continue
			}
			m.log.Info("export file changed", zap.String("path", event.Name))
			m.schedule(onChange)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Monitor) schedule(onChange func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = time.AfterFunc(m.debounce, onChange)
}
