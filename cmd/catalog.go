package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [root] [major|minor]",
	Short: "Lists the progression patterns for a key",
	Long:  `Lists every progression pattern the trainer can draw for a key, resolved to chord names. Defaults to C major.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, q, err := parseKey(args)
		if err != nil {
			return err
		}
		fmt.Println(describeCatalog(root, q))
		return nil
	},
}

func describeCatalog(root string, q theory.Quality) string {
	patterns := theory.Patterns(q)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "pattern", "chords")
	for i, p := range patterns {
		t.Row(fmt.Sprint(i+1), p.Name, strings.Join(p.Resolve(root, q), " - "))
	}
	return fmt.Sprintf("%d %s progressions in %s\n%s", len(patterns), q, root, t.String())
}
