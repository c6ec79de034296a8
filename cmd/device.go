package cmd

import (
	"context"

	"github.com/jsphweid/chordtrainer/config"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/engine"
	"github.com/jsphweid/chordtrainer/midi"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"
)

// watchDevice keeps the engine fed from whatever keyboard is plugged in,
// until ctx is done. Without a usable MIDI backend the engine just stays
// disabled with the reason shown.
func watchDevice(ctx context.Context, e *engine.Engine, cfg *config.Config, logger *zap.Logger) error {
	drv, err := rtmididrv.New()
	if err != nil {
		logger.Error("midi: no driver", zap.Error(err))
		e.DisableInput("MIDI is not available: " + err.Error())
		<-ctx.Done()
		return nil
	}
	defer drv.Close()

	watcher := midi.NewWatcher(drv, logger, cfg.MIDI.Preferred, cfg.MIDI.Excluded, constants.DeviceRescanInterval, midi.Handlers{
		OnMessage:    e.HandleMessage,
		OnConnect:    func(device string) { e.EnableInput([]string{device}) },
		OnDisconnect: e.DisableInput,
	})
	return watcher.Run(ctx)
}

// watchSettings pushes edits of the config file into the running engine.
func watchSettings(ctx context.Context, e *engine.Engine, logger *zap.Logger) error {
	return config.Watch(ctx, configPath, logger, func(cfg *config.Config) {
		if err := e.ApplySettings(cfg.Settings); err != nil {
			logger.Warn("config: settings rejected", zap.Error(err))
		}
	})
}

// saveSettings keeps what was picked in the terminal UI for the next run.
func saveSettings(e *engine.Engine, logger *zap.Logger) {
	changed, err := config.SaveSettings(configPath, e.Snapshot().Settings)
	if err != nil {
		logger.Warn("config: settings not saved", zap.String("path", configPath), zap.Error(err))
		return
	}
	if changed {
		logger.Info("config: settings saved", zap.String("path", configPath))
	}
}
