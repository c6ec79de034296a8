package cmd

import (
	"github.com/jsphweid/chordtrainer/config"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "chordtrainer",
	Short: "Chord, progression and scale drills on a MIDI keyboard",
	Long: `chordtrainer shows a chord, a progression or a scale run, listens to a
MIDI keyboard and judges what you play.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
