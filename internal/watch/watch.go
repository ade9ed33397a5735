// Package watch reruns a callback when a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// File blocks until ctx is done, calling fn once per burst of changes to
// path. The parent directory is watched so editors that replace the file
// with a rename are still seen. fn runs on the watching goroutine, so bursts
// that arrive while it runs are coalesced into the next call.
func File(ctx context.Context, path string, debounce time.Duration, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(debounce)
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
			if filepath.Clean(event.Name) != abs || event.Op&relevantOps == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", abs, err)
		case <-timer.C:
			fn()
		}
	}
}
