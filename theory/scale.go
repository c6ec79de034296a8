package theory

type Quality string

const (
	Major Quality = "major"
	Minor Quality = "minor"
)

func ParseQuality(s string) (Quality, bool) {
	switch Quality(s) {
	case Major, Minor:
		return Quality(s), true
	}
	return "", false
}

var (
	majorIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorIntervals = [7]int{0, 2, 3, 5, 7, 8, 10}

	// chord-name suffix per scale degree
	majorSuffixes = [7]string{"", "m", "m", "", "", "m", "dim"}
	minorSuffixes = [7]string{"m", "dim", "", "m", "m", "", ""}

	majorNumerals = [7]string{"I", "ii", "iii", "IV", "V", "vi", "vii°"}
	minorNumerals = [7]string{"i", "ii°", "III", "iv", "v", "VI", "VII"}
)

// Scale is a diatonic key: its seven notes and the triad built on each.
type Scale struct {
	Root    string
	Quality Quality
	Notes   [7]string
	Chords  [7]string
}

// NewScale builds the diatonic scale of root. Anything other than Minor is
// treated as Major.
func NewScale(root string, q Quality) Scale {
	intervals, suffixes := majorIntervals, majorSuffixes
	if q == Minor {
		intervals, suffixes = minorIntervals, minorSuffixes
	} else {
		q = Major
	}

	s := Scale{Root: Normalize(root), Quality: q}
	for i, semitones := range intervals {
		note := Transpose(root, semitones)
		s.Notes[i] = note
		s.Chords[i] = note + suffixes[i]
	}
	return s
}

// Numerals returns the roman numeral for each diatonic degree.
func Numerals(q Quality) [7]string {
	if q == Minor {
		return minorNumerals
	}
	return majorNumerals
}

// RomanNumeral labels chordName by its position in the key, or returns ""
// when the chord is not one of the key's diatonic triads.
func RomanNumeral(chordName, root string, q Quality) string {
	chords := NewScale(root, q).Chords
	for i, c := range chords {
		if c == chordName {
			return Numerals(q)[i]
		}
	}
	return ""
}

// ScaleRun is the ascend-then-descend exercise: root up to the octave, then
// back down to the note above the root. 14 positions.
func ScaleRun(root string, q Quality) []string {
	notes := NewScale(root, q).Notes
	run := make([]string, 0, 14)
	run = append(run, notes[:]...)
	run = append(run, notes[0])
	for i := len(notes) - 1; i > 0; i-- {
		run = append(run, notes[i])
	}
	return run
}
