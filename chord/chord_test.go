package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/stretchr/testify/assert"
)

func TestTrackerReportsOnlyRealChanges(t *testing.T) {
	assert := assert.New(t)
	tr := NewTracker()

	assert.True(tr.NoteOn(60))
	assert.False(tr.NoteOn(60))
	assert.True(tr.NoteOn(64))
	assert.Equal(model.Notes{60, 64}, tr.Notes())

	assert.True(tr.NoteOff(60))
	assert.False(tr.NoteOff(60))
	assert.False(tr.NoteOff(72))
	assert.Equal(model.Notes{64}, tr.Notes())

	assert.True(tr.Clear())
	assert.False(tr.Clear())
	assert.Equal(0, tr.Len())
}

func TestTrackerPitchClassesDropOctaves(t *testing.T) {
	tr := NewTracker()
	for _, n := range []uint8{48, 60, 64, 79} {
		tr.NoteOn(n)
	}
	assert.Equal(t, theory.NewNoteSet("C", "E", "G"), tr.PitchClasses())
}

func TestNotesReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.NoteOn(60)
	notes := tr.Notes()
	notes[0] = 61
	assert.Equal(t, model.Notes{60}, tr.Notes())
}

func TestCreateChordKey(t *testing.T) {
	assert := assert.New(t)
	notes := model.Notes{67, 60, 64}
	assert.Equal("60-64-67", CreateChordKey(notes))
	assert.Equal(model.Notes{67, 60, 64}, notes)
	assert.Equal("", CreateChordKey(nil))
}

func TestMatchRuleTable(t *testing.T) {
	sets := theory.NoteSets{
		Required: theory.NewNoteSet("C", "E", "G"),
		All:      theory.NewNoteSet("C", "E", "G", "B"),
	}
	cases := []struct {
		played  []string
		correct bool
		missing []string
		wrong   []string
	}{
		{played: []string{"C", "E", "G"}, correct: true, missing: []string{}, wrong: []string{}},
		{played: []string{"C", "E", "G", "B"}, correct: true, missing: []string{}, wrong: []string{}},
		{played: []string{"C", "E"}, correct: false, missing: []string{"G"}, wrong: []string{}},
		{played: []string{"C", "E", "G", "F"}, correct: false, missing: []string{}, wrong: []string{"F"}},
		{played: []string{"B"}, correct: false, missing: []string{"C", "E", "G"}, wrong: []string{}},
		{played: []string{}, correct: false, missing: []string{"C", "E", "G"}, wrong: []string{}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("played %v", c.played), func(t *testing.T) {
			assert := assert.New(t)
			res := Match("Cmaj7", sets, theory.NewNoteSet(c.played...))
			assert.Equal(c.correct, res.IsCorrect)
			assert.Equal(c.missing, res.MissingNotes)
			assert.Equal(c.wrong, res.WrongNotes)
			assert.Equal("Cmaj7", res.Target)
		})
	}
}

func TestMatchRequiresSomethingCorrect(t *testing.T) {
	empty := theory.NoteSets{Required: theory.NoteSet{}, All: theory.NoteSet{}}
	res := Match("??", empty, theory.NoteSet{})
	assert.False(t, res.IsCorrect)
}

func TestMatchCmaj7TriadAcceptedOnlyFromSeventhTier(t *testing.T) {
	played := PitchClasses(model.Notes{60, 64, 67})
	assert.True(t, Match("Cmaj7", theory.ChordNoteSets("Cmaj7", theory.Seventh), played).IsCorrect)
	assert.True(t, Match("Cmaj7", theory.ChordNoteSets("Cmaj7", theory.Extended), played).IsCorrect)
	assert.False(t, Match("Cmaj7", theory.ChordNoteSets("Cmaj7", theory.Triads), played).IsCorrect)
}

func TestMatchNote(t *testing.T) {
	assert := assert.New(t)

	hit := MatchNote("D", theory.NewNoteSet("D"))
	assert.True(hit.IsCorrect)
	assert.Equal([]string{"D"}, hit.CorrectNotes)

	miss := MatchNote("D", theory.NewNoteSet("E"))
	assert.False(miss.IsCorrect)
	assert.Equal([]string{"D"}, miss.MissingNotes)
	assert.Equal([]string{"E"}, miss.WrongNotes)

	extra := MatchNote("D", theory.NewNoteSet("D", "E"))
	assert.False(extra.IsCorrect)

	flat := MatchNote("Eb", PitchClasses(model.Notes{63}))
	assert.True(flat.IsCorrect)
	assert.Equal("D#", flat.Target)
}
