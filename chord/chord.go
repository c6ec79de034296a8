package chord

import (
	"fmt"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/jsphweid/chordtrainer/util"
)

type OnNotes = map[uint8]bool

// Tracker holds the raw note numbers currently held down. It knows nothing
// about timing; every change is reported so the caller can republish the
// full set.
type Tracker struct {
	on OnNotes
}

func NewTracker() *Tracker {
	return &Tracker{on: make(OnNotes)}
}

// NoteOn adds a note and reports whether the set changed.
func (t *Tracker) NoteOn(note uint8) bool {
	if t.on[note] {
		return false
	}
	t.on[note] = true
	return true
}

// NoteOff removes a note and reports whether the set changed.
func (t *Tracker) NoteOff(note uint8) bool {
	if !t.on[note] {
		return false
	}
	delete(t.on, note)
	return true
}

// Clear releases everything and reports whether anything was held.
func (t *Tracker) Clear() bool {
	if len(t.on) == 0 {
		return false
	}
	t.on = make(OnNotes)
	return true
}

func (t *Tracker) Len() int {
	return len(t.on)
}

// Notes returns a sorted copy of the held note numbers.
func (t *Tracker) Notes() model.Notes {
	return util.SortedKeys(t.on)
}

// PitchClasses reduces the held notes modulo 12.
func (t *Tracker) PitchClasses() theory.NoteSet {
	return PitchClasses(t.Notes())
}

func PitchClasses(notes model.Notes) theory.NoteSet {
	set := make(theory.NoteSet, len(notes))
	for _, n := range notes {
		set[theory.NoteName(n)] = true
	}
	return set
}

// CreateChordKey renders notes as a stable key such as "60-64-67".
func CreateChordKey(notes model.Notes) string {
	sorted := append(model.Notes(nil), notes...)
	util.SortedBy(sorted, func(n uint8) int { return int(n) })
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}
