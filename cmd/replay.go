package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/engine"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/midi"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	replayOpts ReplayOptions
	replayMode string
)

func init() {
	replayCmd.Flags().Float64Var(&replayOpts.Speed, "speed", 1, "playback speed factor")
	replayCmd.Flags().DurationVar(&replayOpts.From, "from", 0, "start this far into the file")
	replayCmd.Flags().IntVar(&replayOpts.Limit, "limit", 0, "stop after this many notes (0 plays everything)")
	replayCmd.Flags().StringVar(&replayMode, "mode", "", "mode override: single, progression or scale")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <file.mid>",
	Short: "Plays a MIDI file into the trainer",
	Long: `Feeds the note events of a Standard MIDI File into a fresh session in real
time, printing every judgment and the final statistics. Timers are not
scaled by --speed, so very fast playback merges chords.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		settings := cfg.Settings
		if replayMode != "" {
			mode, ok := model.ParseMode(replayMode)
			if !ok {
				return errors.Errorf("unknown mode %q", replayMode)
			}
			settings.Mode = mode
		}
		logger, err := logging.New(cfg.Logging.Level, debug)
		if err != nil {
			return err
		}
		defer logger.Sync()

		snap, err := Replay(cmd.Context(), args[0], settings, replayOpts, logger, os.Stdout)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, snap)
		return nil
	},
}

type ReplayOptions struct {
	Speed float64
	From  time.Duration
	Limit int
}

// Replay plays path into a new engine and returns the final state.
func Replay(ctx context.Context, path string, settings model.Settings, opts ReplayOptions, logger *zap.Logger, out io.Writer) (model.Snapshot, error) {
	if opts.Speed <= 0 {
		return model.Snapshot{}, errors.Errorf("speed must be positive, got %v", opts.Speed)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.Snapshot{}, err
	}
	events := midi.Excerpt(midi.ReadNoteEvents(s), opts.From, opts.Limit)

	e, err := engine.New(settings, engine.WithLogger(logger))
	if err != nil {
		return model.Snapshot{}, err
	}
	defer e.Close()

	var mu sync.Mutex
	var printed uint64
	unsubscribe := e.Subscribe(func(snap model.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if snap.Judgments <= printed || snap.Feedback == nil {
			return
		}
		printed = snap.Judgments
		printJudgment(out, *snap.Feedback)
	})
	defer unsubscribe()

	e.EnableInput([]string{filepath.Base(path)})
	logger.Info("replay: starting", zap.String("file", path), zap.Int("events", len(events)), zap.Float64("speed", opts.Speed))

	start := time.Now()
	for _, ev := range events {
		at := start.Add(time.Duration(float64(ev.At) / opts.Speed))
		if err := sleepUntil(ctx, at); err != nil {
			return e.Snapshot(), err
		}
		e.HandleMessage(ev.Data)
	}

	// the last chord still has to settle, be judged and advance
	settle := time.Now().Add(constants.ChordDetectDelay + constants.ChordNextDelay + 50*time.Millisecond)
	if err := sleepUntil(ctx, settle); err != nil {
		return e.Snapshot(), err
	}
	return e.Snapshot(), nil
}

func sleepUntil(ctx context.Context, at time.Time) error {
	wait := time.Until(at)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func printJudgment(out io.Writer, res model.EvaluationResult) {
	if res.IsCorrect {
		fmt.Fprintf(out, "%-6s ok     %s\n", res.Target, strings.Join(res.PlayedNotes, " "))
		return
	}
	line := fmt.Sprintf("%-6s wrong  %s", res.Target, strings.Join(res.PlayedNotes, " "))
	if len(res.MissingNotes) > 0 {
		line += "  missing " + strings.Join(res.MissingNotes, " ")
	}
	if len(res.WrongNotes) > 0 {
		line += "  extra " + strings.Join(res.WrongNotes, " ")
	}
	fmt.Fprintln(out, line)
}

func printSummary(out io.Writer, snap model.Snapshot) {
	switch snap.Settings.Mode {
	case model.Scale:
		fmt.Fprintf(out, "runs: %d, errors: %d\n", snap.ScaleStats.Runs, snap.ScaleStats.Errors)
	case model.Progression:
		st := snap.ProgressionStats
		fmt.Fprintf(out, "correct: %d/%d, best streak: %d, progressions done: %d\n",
			st.Correct, st.Attempts, st.BestStreak, snap.Progression.Completed)
	default:
		st := snap.Stats
		fmt.Fprintf(out, "correct: %d/%d (%.0f%%), best streak: %d\n",
			st.Correct, st.Attempts, st.Accuracy()*100, st.BestStreak)
	}
}
