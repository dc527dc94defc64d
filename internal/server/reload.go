package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
)

// Reloader watches catalog and translation files for changes and triggers hot-reload.
// It watches the parent directories so files replaced by rename stay covered.
type Reloader struct {
	watcher *fsnotify.Watcher
	server  *Server
	files   map[string]bool
	paths   []string
	logger  *slog.Logger
}

// NewReloader creates a file watcher for the given paths. Empty and missing
// paths are skipped.
func NewReloader(server *Server, paths []string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}

	r := &Reloader{
		watcher: watcher,
		server:  server,
		files:   make(map[string]bool),
		logger:  server.logger,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		p = filepath.Clean(p)
		if dir := filepath.Dir(p); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, goerr.Wrap(err, "failed to watch directory", goerr.V("path", dir))
			}
			dirs[dir] = true
		}
		if !r.files[p] {
			r.files[p] = true
			r.paths = append(r.paths, p)
		}
	}
	return r, nil
}

// Paths returns the files actually being watched.
func (r *Reloader) Paths() []string {
	return r.paths
}

// reloadDelay is how long the watched files must stay quiet before a reload.
const reloadDelay = 500 * time.Millisecond

// Run watches for file changes and reloads. Blocks until ctx is cancelled.
// Bursts of events (editors often write, chmod and rename in one save)
// collapse into one reload that runs on this goroutine.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var (
		fire    <-chan time.Time
		changed string
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !r.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			changed = event.Name
			fire = time.After(reloadDelay)

		case <-fire:
			fire = nil
			if err := r.server.Reload(); err != nil {
				r.logger.Error("reload failed, keeping previous catalog", "file", changed, "error", err)
				continue
			}
			r.logger.Info("catalog reloaded", "file", changed, "hash", r.server.CatalogHash())

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", "error", err)
		}
	}
}
