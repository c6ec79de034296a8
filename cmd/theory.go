package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(theoryCmd)
}

var theoryCmd = &cobra.Command{
	Use:   "theory [root] [major|minor]",
	Short: "Prints a key's scale, chords and spellings",
	Long:  `Prints the diatonic scale, chords, roman numerals, note sets per difficulty and the scale run of a key. Defaults to C major.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, q, err := parseKey(args)
		if err != nil {
			return err
		}
		fmt.Println(describeKey(root, q))
		return nil
	},
}

func parseKey(args []string) (string, theory.Quality, error) {
	root, q := "C", theory.Major
	if len(args) > 0 {
		if _, ok := theory.PitchClass(args[0]); !ok {
			return "", "", errors.Errorf("unknown root %q", args[0])
		}
		root = theory.Normalize(args[0])
	}
	if len(args) > 1 {
		parsed, ok := theory.ParseQuality(strings.ToLower(args[1]))
		if !ok {
			return "", "", errors.Errorf("unknown quality %q", args[1])
		}
		q = parsed
	}
	return root, q, nil
}

func describeKey(root string, q theory.Quality) string {
	scale := theory.NewScale(root, q)
	numerals := theory.Numerals(q)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("degree", "note", "chord", "spelling", "required (7th tiers)")
	for i := range scale.Notes {
		name := scale.Chords[i]
		spelling := theory.Resolve(name)
		t.Row(numerals[i], scale.Notes[i], name,
			fmt.Sprintf("%s (%s)", strings.Join(spelling.Notes, " "), spelling.Kind),
			strings.Join(theory.ChordNoteSets(name, theory.Seventh).Required.Sorted(), " "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", root, q)
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\nscale run: %s\n", strings.Join(theory.ScaleRun(root, q), " "))
	for _, tier := range []theory.Tier{theory.Triads, theory.Seventh, theory.Extended} {
		fmt.Fprintf(&b, "%-8s pool: %d in key, %d across keys\n", tier,
			len(theory.ChordPool(root, q, tier, theory.InKey)),
			len(theory.ChordPool(root, q, tier, theory.AllKeys)))
	}
	return b.String()
}
