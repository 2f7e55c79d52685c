// Package configwatch gives the long-lived witness-watch companion
// (SPEC_FULL.md §6A) a way to notice writes in the store's directory
// without polling, adapted from the teacher's fsnotify-based WatchFile.
// witness-watch does not watch or reload .witness.json.
package configwatch

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch watches path and invokes callback on every write event until ctx
// is done. Errors from the underlying watcher are ignored, matching the
// teacher's "best-effort notification, never fatal" stance for a feature
// that only ever drives a refresh, not correctness.
func Watch(ctx context.Context, path string, callback func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					callback()
				}
			case <-watcher.Errors:
			}
		}
	}()

	return watcher.Add(path)
}
