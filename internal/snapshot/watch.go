package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"wayfinder/internal/parser"
)

// Watch reloads the repository whenever a snapshot file under its roots
// changes. Bursts of events within the debounce window cause one reload. It
// blocks until ctx is done.
func (r *Repository) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range r.roots {
		if err := r.watchRoot(watcher, root); err != nil {
			return err
		}
	}
	r.logger.Info("watching snapshot files", zap.Strings("roots", r.roots))

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && r.underRoots(event.Name) {
				// new directories need their own watch
				if err := r.watchTree(watcher, event.Name); err != nil {
					r.logger.Warn("failed to watch new path", zap.String("path", event.Name), zap.Error(err))
				}
			}
			if !r.relevant(event) {
				continue
			}
			r.logger.Debug("snapshot file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			timer.Reset(r.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("file watcher error", zap.Error(err))

		case <-timer.C:
			r.reload()
		}
	}
}

func (r *Repository) reload() {
	err := r.Reload()
	if r.onReload != nil {
		r.onReload(err == nil)
	}
	if err != nil {
		r.logger.Error("snapshot reload failed, keeping previous state", zap.Error(err))
		return
	}
	state := r.State()
	r.logger.Info("snapshot reloaded",
		zap.Int("files", len(state.Files)),
		zap.Int("locations", len(state.Campus.Locations)),
		zap.Int("buildings", len(state.Buildings)),
	)
}

func (r *Repository) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if !r.underRoots(event.Name) || isExcluded(event.Name, r.excludes) {
		return false
	}
	if parser.IsSnapshotFile(event.Name) {
		return true
	}
	if event.Has(fsnotify.Create) {
		// a directory moved in may already hold snapshot files
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	}
	// removing a directory can drop many files at once
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// underRoots reports whether path is a root or lies below a directory root.
func (r *Repository) underRoots(path string) bool {
	clean := filepath.Clean(path)
	for _, root := range r.roots {
		root = filepath.Clean(root)
		if clean == root || strings.HasPrefix(clean, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// watchRoot watches a directory root recursively. A file root is watched
// through its parent directory, since editors often replace the file.
func (r *Repository) watchRoot(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err == nil && !info.IsDir() {
		dir := filepath.Dir(root)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		return nil
	}
	return r.watchTree(watcher, root)
}

func (r *Repository) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if isExcluded(path, r.excludes) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		exclude = filepath.Clean(exclude)
		if exclude == clean || (len(clean) > len(exclude) && clean[:len(exclude)+1] == exclude+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
