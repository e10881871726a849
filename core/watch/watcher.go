package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"vinylshift/core/audio"
	"vinylshift/core/pipeline"
	"vinylshift/logger"
)

// Runner processes one dropped file.
type Runner interface {
	Run(ctx context.Context, inputPath string, semitones float64, progress chan<- float64) (*pipeline.Result, error)
}

// Watcher applies a fixed pitch adjustment to every supported audio file
// dropped into a directory. A file is picked up only once its size has been
// stable for a moment, so partially copied files are never processed.
type Watcher struct {
	dir       string
	semitones float64
	runner    Runner

	tick      time.Duration
	stability time.Duration
	settle    time.Duration
}

// NewWatcher creates a watcher over dir.
func NewWatcher(dir string, semitones float64, runner Runner) *Watcher {
	return &Watcher{
		dir:       dir,
		semitones: semitones,
		runner:    runner,
		tick:      50 * time.Millisecond,
		stability: 100 * time.Millisecond,
		settle:    30 * time.Millisecond,
	}
}

// Watch blocks, processing drops until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create directory watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	logger.Info("watching for dropped audio files",
		logger.String("dir", w.dir),
		logger.Float64("semitones", w.semitones))

	pending := make(map[string]time.Time)
	processed := make(map[string]bool)
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && w.isCandidate(event.Name) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for path, seen := range pending {
				if now.Sub(seen) < w.stability {
					continue // likely still being written
				}
				if processed[path] {
					delete(pending, path)
					continue
				}

				complete, gone := w.isFileComplete(path)
				if gone {
					delete(pending, path)
					continue
				}
				if !complete {
					continue
				}

				processed[path] = true
				delete(pending, path)
				w.process(ctx, path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("directory watch error", logger.ErrorField(err))
		}
	}
}

// isCandidate filters events down to fresh, supported inputs. Outputs carry
// the _vinyl suffix and must not be reprocessed; dotfiles cover in-progress
// atomic writes.
func (w *Watcher) isCandidate(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.Contains(base, "_vinyl") {
		return false
	}
	return audio.IsSupportedFile(path)
}

// isFileComplete compares the size across a short pause; a growing or empty
// file is still being written.
func (w *Watcher) isFileComplete(path string) (complete, gone bool) {
	info1, err := os.Stat(path)
	if err != nil {
		return false, true
	}
	if info1.Size() == 0 {
		return false, false
	}

	time.Sleep(w.settle)

	info2, err := os.Stat(path)
	if err != nil {
		return false, true
	}
	return info1.Size() == info2.Size(), false
}

func (w *Watcher) process(ctx context.Context, path string) {
	logger.Info("processing dropped file", logger.String("file", path))

	res, err := w.runner.Run(ctx, path, w.semitones, nil)
	if err != nil {
		logger.Error("dropped file failed",
			logger.String("file", path),
			logger.ErrorField(err))
		return
	}
	if res.Warning != "" {
		logger.Warn("dropped file finished with a warning",
			logger.String("file", path),
			logger.String("warning", res.Warning))
	}
	logger.Info("dropped file done", logger.String("deliverable", res.DeliverablePath))
}
