package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/chordtrainer/engine"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/tui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice in the terminal",
	Long:  `Opens the full-screen trainer and listens to the first usable MIDI keyboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd.Context())
	},
}

func play(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// the terminal belongs to the UI, so logs go to a file or nowhere
	logger, err := logging.ToFile(cfg.Logging.File, cfg.Logging.Level, debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e, err := engine.New(cfg.Settings, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer e.Close()

	program := tea.NewProgram(tui.New(e), tea.WithAltScreen())
	unsubscribe := e.Subscribe(tui.Send(program))
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil {
			return errors.Wrap(err, "terminal UI failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})
	g.Go(func() error {
		return watchDevice(ctx, e, cfg, logger)
	})
	g.Go(func() error {
		return watchSettings(ctx, e, logger)
	})
	err = g.Wait()
	saveSettings(e, logger)
	return err
}
