package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			BorderForeground(lipgloss.Color("8"))
)

func (m Model) View() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(titleStyle.Render("chordtrainer"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s %s · %s · %s",
		s.Settings.Mode, s.Settings.KeyRoot, s.Settings.KeyQuality, s.Settings.Difficulty, s.Settings.ChordPool)))
	b.WriteString("\n")
	b.WriteString(m.inputLine())
	b.WriteString("\n\n")

	b.WriteString(m.flashed(cardStyle).Render(m.card()))
	b.WriteString("\n\n")

	if fb := m.feedback(); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n")
	}
	b.WriteString(m.stats())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(badStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) inputLine() string {
	s := m.snap
	if !s.InputEnabled {
		return badStyle.Render("● " + s.InputStatus)
	}
	line := okStyle.Render("● " + s.InputStatus)
	if len(s.Pressed) > 0 {
		names := make([]string, len(s.Pressed))
		for i, n := range s.Pressed {
			names[i] = theory.NoteName(uint8(n))
		}
		line += dimStyle.Render("  holding " + strings.Join(names, " "))
	}
	return line
}

func (m Model) flashed(style lipgloss.Style) lipgloss.Style {
	switch m.snap.Flash {
	case model.FlashSuccess:
		return style.BorderForeground(lipgloss.Color("10"))
	case model.FlashError:
		return style.BorderForeground(lipgloss.Color("9"))
	}
	return style
}

func (m Model) card() string {
	s := m.snap
	switch {
	case s.Chord != nil:
		c := s.Chord
		title := titleStyle.Render(c.Name)
		if c.Numeral != "" {
			title += dimStyle.Render("  " + c.Numeral)
		}
		return title + "\n" + strings.Join(c.Notes, " ")

	case s.Progression != nil:
		p := s.Progression
		cells := make([]string, len(p.Chords))
		for i, name := range p.Chords {
			cell := fmt.Sprintf("%s (%s)", name, p.Numerals[i])
			switch p.Results[i] {
			case model.Correct:
				cell = okStyle.Render(cell)
			case model.Wrong:
				cell = badStyle.Render(cell)
			}
			if i == p.Cursor && !p.Done {
				cell = cursorStyle.Render(cell)
			}
			cells[i] = cell
		}
		out := titleStyle.Render(p.Name) + "\n" + strings.Join(cells, "  →  ")
		if p.Done {
			out += "\n" + dimStyle.Render("done, press enter for the next progression")
		}
		return out

	case s.Scale != nil:
		sc := s.Scale
		cells := make([]string, len(sc.Run))
		for i, note := range sc.Run {
			if i == sc.Cursor {
				cells[i] = cursorStyle.Render(note)
			} else {
				cells[i] = dimStyle.Render(note)
			}
		}
		return titleStyle.Render(fmt.Sprintf("%s %s scale", sc.Root, sc.Quality)) + "\n" +
			strings.Join(cells, " ") + "\n" + "play " + titleStyle.Render(sc.Target)
	}
	return dimStyle.Render("nothing to play")
}

func (m Model) feedback() string {
	fb := m.snap.Feedback
	if fb == nil {
		return ""
	}
	if fb.IsCorrect {
		return okStyle.Render("✓ " + strings.Join(fb.PlayedNotes, " "))
	}
	parts := []string{badStyle.Render("✗ " + strings.Join(fb.PlayedNotes, " "))}
	if len(fb.MissingNotes) > 0 {
		parts = append(parts, "missing "+strings.Join(fb.MissingNotes, " "))
	}
	if len(fb.WrongNotes) > 0 {
		parts = append(parts, "wrong "+strings.Join(fb.WrongNotes, " "))
	}
	return strings.Join(parts, "  ")
}

func (m Model) stats() string {
	s := m.snap
	switch s.Settings.Mode {
	case model.Scale:
		return fmt.Sprintf("runs %d  errors %d", s.ScaleStats.Runs, s.ScaleStats.Errors)
	case model.Progression:
		st := s.ProgressionStats
		completed := 0
		if s.Progression != nil {
			completed = s.Progression.Completed
		}
		return fmt.Sprintf("%d/%d correct  streak %d  best %d  progressions %d",
			st.Correct, st.Attempts, st.Streak, st.BestStreak, completed)
	}
	st := s.Stats
	return fmt.Sprintf("%d/%d correct (%.0f%%)  streak %d  best %d",
		st.Correct, st.Attempts, st.Accuracy()*100, st.Streak, st.BestStreak)
}
