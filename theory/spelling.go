package theory

import (
	"strings"

	"github.com/jsphweid/chordtrainer/util"
)

type Tier string

const (
	Triads   Tier = "triads"
	Seventh  Tier = "seventh"
	Extended Tier = "extended"
)

func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case Triads, Seventh, Extended:
		return Tier(s), true
	}
	return "", false
}

// seventh degrees become optional from this tier on
func (t Tier) seventhOptional() bool {
	return t == Seventh || t == Extended
}

// explicit spellings for chords a plain triad rule cannot produce (7ths,
// sus, add9) plus the common triads as written on the cards
var spellings = map[string][]string{
	"C":     {"C", "E", "G"},
	"Dm":    {"D", "F", "A"},
	"Em":    {"E", "G", "B"},
	"F":     {"F", "A", "C"},
	"G":     {"G", "B", "D"},
	"Am":    {"A", "C", "E"},
	"Bdim":  {"B", "D", "F"},
	"D":     {"D", "F#", "A"},
	"F#m":   {"F#", "A", "C#"},
	"A":     {"A", "C#", "E"},
	"Bm":    {"B", "D", "F#"},
	"C#dim": {"C#", "E", "G"},
	"E":     {"E", "G#", "B"},
	"C#m":   {"C#", "E", "G#"},
	"G#dim": {"G#", "B", "D"},
	"Bb":    {"Bb", "D", "F"},
	"Gm":    {"G", "Bb", "D"},
	"Edim":  {"E", "G", "Bb"},
	"F#dim": {"F#", "A", "C"},

	"Cmaj7": {"C", "E", "G", "B"},
	"Fmaj7": {"F", "A", "C", "E"},
	"Gmaj7": {"G", "B", "D", "F#"},
	"Dmaj7": {"D", "F#", "A", "C#"},
	"Amaj7": {"A", "C#", "E", "G#"},
	"Am7":   {"A", "C", "E", "G"},
	"Dm7":   {"D", "F", "A", "C"},
	"Em7":   {"E", "G", "B", "D"},
	"Bm7":   {"B", "D", "F#", "A"},
	"F#m7":  {"F#", "A", "C#", "E"},
	"G7":    {"G", "B", "D", "F"},
	"D7":    {"D", "F#", "A", "C"},
	"A7":    {"A", "C#", "E", "G"},
	"C7":    {"C", "E", "G", "Bb"},
	"E7":    {"E", "G#", "B", "D"},

	"Csus2": {"C", "D", "G"},
	"Csus4": {"C", "F", "G"},
	"Cadd9": {"C", "E", "G", "D"},
	"Gsus2": {"G", "A", "D"},
	"Gsus4": {"G", "C", "D"},
	"Gadd9": {"G", "B", "D", "A"},
	"Dsus2": {"D", "E", "A"},
	"Dsus4": {"D", "G", "A"},
	"Dadd9": {"D", "F#", "A", "E"},
	"Asus2": {"A", "B", "E"},
	"Asus4": {"A", "D", "E"},
	"Aadd9": {"A", "C#", "E", "B"},
}

type SpellingKind int

const (
	Unresolved SpellingKind = iota
	Exact
	Derived
)

func (k SpellingKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Derived:
		return "derived"
	default:
		return "unresolved"
	}
}

// Spelling is the ordered member notes of a chord and where they came from.
type Spelling struct {
	Kind  SpellingKind
	Notes []string
}

// Resolve prefers the hand-written table and falls back to building a
// major, minor or diminished triad from the chord name.
func Resolve(chordName string) Spelling {
	if notes, ok := spellings[chordName]; ok {
		normalized := make([]string, len(notes))
		for i, n := range notes {
			normalized[i] = Normalize(n)
		}
		return Spelling{Kind: Exact, Notes: normalized}
	}
	if notes, ok := deriveTriad(chordName); ok {
		return Spelling{Kind: Derived, Notes: notes}
	}
	return Spelling{Kind: Unresolved}
}

func deriveTriad(chordName string) ([]string, bool) {
	// extensions are only known through the table
	if strings.Contains(chordName, "7") || strings.Contains(chordName, "sus") || strings.Contains(chordName, "add") {
		return nil, false
	}

	intervals := [3]int{0, 4, 7}
	root := chordName
	switch {
	case strings.HasSuffix(chordName, "dim"):
		intervals = [3]int{0, 3, 6}
		root = strings.TrimSuffix(chordName, "dim")
	case strings.HasSuffix(chordName, "m"):
		intervals = [3]int{0, 3, 7}
		root = strings.TrimSuffix(chordName, "m")
	}

	idx, ok := PitchClass(root)
	if !ok {
		return nil, false
	}
	notes := make([]string, len(intervals))
	for i, semitones := range intervals {
		notes[i] = NoteNames[(idx+semitones)%12]
	}
	return notes, true
}

// NoteSet is a set of canonical pitch class names.
type NoteSet map[string]bool

func NewNoteSet(notes ...string) NoteSet {
	s := make(NoteSet, len(notes))
	for _, n := range notes {
		s[Normalize(n)] = true
	}
	return s
}

func (s NoteSet) Has(note string) bool {
	return s[note]
}

// Sorted lists the set in chromatic order starting from C.
func (s NoteSet) Sorted() []string {
	return util.SortedBy(util.GetKeys(s), func(n string) int {
		idx, ok := noteIndex[n]
		if !ok {
			return len(NoteNames)
		}
		return idx
	})
}

// NoteSets are the notes a player must press (Required) and the notes they
// may press without penalty (All). Required is always a subset of All.
type NoteSets struct {
	Required NoteSet
	All      NoteSet
}

// Gradable reports whether there is anything to judge against.
func (n NoteSets) Gradable() bool {
	return len(n.All) > 0
}

// ChordNoteSets resolves a chord name for the given difficulty tier. In the
// seventh and extended tiers the 7th of a seventh chord is tolerated but not
// required. An unknown chord yields empty sets.
func ChordNoteSets(chordName string, tier Tier) NoteSets {
	spelling := Resolve(chordName)
	if spelling.Kind == Unresolved {
		return NoteSets{Required: NoteSet{}, All: NoteSet{}}
	}

	all := NewNoteSet(spelling.Notes...)
	required := all
	if tier.seventhOptional() && strings.Contains(chordName, "7") && len(spelling.Notes) > 3 {
		required = NewNoteSet(spelling.Notes[:3]...)
	}
	return NoteSets{Required: required, All: all}
}
