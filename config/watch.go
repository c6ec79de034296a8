package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// editors tend to write a file several times per save
const reloadDelay = 200 * time.Millisecond

// Watch reloads path whenever it changes and hands every valid result to fn.
// The parent directory is watched so atomic renames are seen too. A file
// that fails to load is logged and skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, fn func(*Config)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}
	logger.Info("config: watching", zap.String("path", abs))

	reload := debounce.New(reloadDelay)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			reload(func() {
				if ctx.Err() != nil {
					return
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Warn("config: reload failed", zap.Error(err))
					return
				}
				logger.Info("config: reloaded", zap.String("path", abs))
				fn(cfg)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config: watcher error", zap.Error(err))
		}
	}
}
