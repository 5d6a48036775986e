package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/bwlat/bwlat/pkg/types"
)

// RunFunc performs one scan.
type RunFunc func(ctx context.Context) error

// changeOps are the operations that can alter a log file's contents or
// presence. Chmod alone is ignored.
const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch calls run once, then again after every burst of changes to files
// under root whose name contains marker. It blocks until ctx is cancelled.
//
// Errors returned by run are logged and watching continues. Only a failure
// to set up the watcher is returned.
func Watch(ctx context.Context, root, marker string, debounce time.Duration, run RunFunc) error {
	if debounce <= 0 {
		return fmt.Errorf("watch: debounce must be positive, got %s", debounce)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(root); err != nil {
		return fmt.Errorf("watch: %s: %w: %w", root, types.ErrFileAccess, err)
	}
	addTree(fsw, root)

	slog.Info("watch: watching for changes", "root", root, "marker", marker, "debounce", debounce)

	runOnce(ctx, run)

	timer := time.NewTimer(debounce)
	stopTimer(timer)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(fsw, ev, marker) {
				continue
			}
			slog.Debug("watch: change detected", "path", ev.Name, "op", ev.Op.String())
			stopTimer(timer)
			timer.Reset(debounce)

		case <-timer.C:
			runOnce(ctx, run)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}

// runOnce calls run and logs its outcome.
func runOnce(ctx context.Context, run RunFunc) {
	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("watch: run failed", "err", err)
	}
}

// relevant reports whether ev should trigger a re-run. A newly created
// directory is registered with the watcher and counts as a change since it
// may already hold log files.
func relevant(fsw *fsnotify.Watcher, ev fsnotify.Event, marker string) bool {
	if ev.Op&changeOps == 0 {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := fsw.Add(ev.Name); err != nil {
				slog.Warn("watch: cannot watch directory", "path", ev.Name, "err", err)
			}
			addTree(fsw, ev.Name)
			return true
		}
	}
	return strings.Contains(filepath.Base(ev.Name), marker)
}

// addTree registers every directory below dir. Failures are logged and the
// remaining directories are still added.
func addTree(fsw *fsnotify.Watcher, dir string) {
	err := doublestar.GlobWalk(os.DirFS(dir), "**", func(p string, d fs.DirEntry) error {
		if !d.IsDir() || p == "." {
			return nil
		}
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := fsw.Add(full); err != nil {
			slog.Warn("watch: cannot watch directory", "path", full, "err", err)
		}
		return nil
	})
	if err != nil {
		slog.Warn("watch: walk failed", "root", dir, "err", err)
	}
}

// stopTimer stops t and drains a pending fire so Reset starts clean.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
