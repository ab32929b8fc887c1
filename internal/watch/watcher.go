// Package watch runs pipeline actions automatically when notes land in
// watched vault directories.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Target couples a watched vault directory with the action to run for a
// note created or rewritten inside it. The action receives the note path
// relative to the vault root.
type Target struct {
	Dir    string // relative to the vault root
	Action func(ctx context.Context, rel string)
}

// settleDelay debounces file events: editors and sync clients write notes
// in several bursts.
const settleDelay = 500 * time.Millisecond

// Watch observes the target directories until ctx is cancelled. Events for
// one file are coalesced and the matching action runs after the file has
// settled. Missing target directories are skipped with a warning.
func Watch(ctx context.Context, vaultRoot string, targets []Target, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	type watched struct {
		abs    string
		target Target
	}
	var dirs []watched
	for _, t := range targets {
		abs := filepath.Join(vaultRoot, t.Dir)
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			logger.Warn("watcher: target dir missing", slog.String("dir", t.Dir))
			continue
		}
		if err := w.Add(abs); err != nil {
			logger.Warn("watcher: add failed", slog.String("dir", t.Dir), slog.String("error", err.Error()))
			continue
		}
		dirs = append(dirs, watched{abs: abs, target: t})
		logger.Info("watcher: watching", slog.String("dir", t.Dir))
	}
	if len(dirs) == 0 {
		logger.Warn("watcher: nothing to watch")
		<-ctx.Done()
		return nil
	}

	// Pending paths, flushed in one pass once the settle timer fires.
	pending := make(map[string]Target)
	var settle *time.Timer
	var settleCh <-chan time.Time

	schedule := func() {
		if settle == nil {
			settle = time.NewTimer(settleDelay)
			settleCh = settle.C
		} else {
			settle.Reset(settleDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settle != nil {
				settle.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			for abs, target := range pending {
				rel, err := filepath.Rel(vaultRoot, abs)
				if err != nil {
					continue
				}
				logger.Info("watcher: note settled", slog.String("path", rel))
				target.Action(ctx, rel)
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			dir := filepath.Dir(ev.Name)
			for _, d := range dirs {
				if dir == d.abs {
					pending[ev.Name] = d.target
					schedule()
					break
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", err.Error()))
		}
	}
}
