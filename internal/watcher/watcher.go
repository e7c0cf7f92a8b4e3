package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls back once per burst of changes to any watched mesh file
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]bool
	debounce time.Duration
	timer    *time.Timer
	done     chan struct{}
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]bool),
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Watch registers files. Their directories are watched so that editors replacing the
// file on save are still noticed.
func (fw *FileWatcher) Watch(files []string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	dirs := make(map[string]bool)
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		fw.files[absPath] = true
		dirs[filepath.Dir(absPath)] = true
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

// Run delivers debounced change notifications to callback until Close is called.
// Watcher errors are passed to onError.
func (fw *FileWatcher) Run(callback func(changed string), onError func(error)) {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			absPath, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			fw.mu.Lock()
			if fw.files[absPath] {
				if fw.timer != nil {
					fw.timer.Stop()
				}
				fw.timer = time.AfterFunc(fw.debounce, func() { callback(absPath) })
			}
			fw.mu.Unlock()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}

		case <-fw.done:
			return
		}
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	close(fw.done)
	return fw.watcher.Close()
}
