package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"

	"togglpace/internal/core/model"
	"togglpace/internal/util"
)

// FileSource reads the {today, historical} payload from a local JSON export
// instead of the API. The parsed payload is held in memory; Watch swaps it
// when the file changes on disk.
type FileSource struct {
	path    string
	mu      sync.RWMutex
	payload model.Payload
	watcher *fsnotify.Watcher
}

// NewFileSource loads the payload from path.
func NewFileSource(path string) (*FileSource, error) {
	fs := &FileSource{path: path}
	if err := fs.reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Payload returns the last successfully loaded payload.
func (fs *FileSource) Payload(ctx context.Context) (model.Payload, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.payload, nil
}

// Watch starts watching the file's directory and reloads the payload on
// change. A failed reload keeps the previous payload.
func (fs *FileSource) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(fs.path)); err != nil {
		watcher.Close()
		return err
	}
	fs.watcher = watcher

	go fs.processEvents()
	return nil
}

func (fs *FileSource) processEvents() {
	for {
		select {
		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if event.Name != fs.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := fs.reload(); err != nil {
				util.LogWarnf("Failed to reload %s: %v", fs.path, err)
				continue
			}
			util.LogInfof("Reloaded entries from %s", fs.path)

		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Close stops the watcher, if running.
func (fs *FileSource) Close() error {
	if fs.watcher == nil {
		return nil
	}
	return fs.watcher.Close()
}

func (fs *FileSource) reload() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return fmt.Errorf("failed to read entries file: %w", err)
	}

	var payload model.Payload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to parse entries file: %w", err)
	}

	fs.mu.Lock()
	fs.payload = payload
	fs.mu.Unlock()

	return nil
}
