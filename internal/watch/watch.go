// Package watch rescores a raw analysis file whenever it changes on disk.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/batch"
	"github.com/spigell/transferability/internal/metrics"
)

// Watch scores path once, then again on every write or create, and passes each
// new report to onChange. It runs until ctx is canceled.
//
// A file that fails to read, decode or validate is logged and onChange is not
// called, so the caller keeps the previous report.
func Watch(ctx context.Context, path string, engine *metrics.Engine, logger *zap.Logger, onChange func(*metrics.FullReport)) error {
	if engine == nil {
		engine = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors save through rename, which drops a watch on the file itself.
	// Watching the directory survives that.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger = logger.With(zap.String("path", path))
	logger.Info("watching for changes")

	rescore := func() {
		report, err := batch.ScoreFile(path, engine)
		if err != nil {
			logger.Error("rescoring failed, keeping previous report", zap.Error(err))
			return
		}
		logger.Debug("rescored", zap.Int("transferability_index", report.TransferabilityIndex))
		onChange(report)
	}

	rescore()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			rescore()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}
