package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lbartels/bionet/pkg/bionet"
)

// reloadDebounce coalesces bursts of write events from editors that save in
// multiple operations.
const reloadDebounce = 200 * time.Millisecond

// Watch monitors the source file and reloads the graph on change, dropping
// every session engine so clients pick up the new network on their next
// frame. Blocks until ctx is canceled.
func (s *Server) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that write via rename
	// replace the inode and silently detach a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	s.logger.Info("watching for changes", "path", path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(event.Name)
			if err != nil || evAbs != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "error", err)

		case <-reload:
			g, err := bionet.ParseFile(path)
			if err != nil {
				s.logger.Warn("reload failed", "path", path, "error", err)
				continue
			}
			bionet.ComputeDegrees(g)
			s.SetGraph(g)
			s.logger.Info("graph reloaded", "path", path, "nodes", len(g.Nodes), "edges", len(g.Edges))
		}
	}
}
