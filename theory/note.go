package theory

// NoteNames is the canonical chromatic alphabet. Every comparison in the
// trainer happens on these sharp-based names.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteIndex = func() map[string]int {
	m := make(map[string]int, len(NoteNames))
	for i, n := range NoteNames {
		m[n] = i
	}
	return m
}()

var flatToSharp = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

// Normalize maps a flat spelling to its canonical sharp name. Anything else
// is returned unchanged.
func Normalize(note string) string {
	if sharp, ok := flatToSharp[note]; ok {
		return sharp
	}
	return note
}

// PitchClass returns 0-11 for a recognized note name.
func PitchClass(note string) (int, bool) {
	idx, ok := noteIndex[Normalize(note)]
	return idx, ok
}

// NoteName reduces a raw MIDI note number to its pitch class name. Octave
// information is discarded.
func NoteName(midiNote uint8) string {
	return NoteNames[midiNote%12]
}

// Transpose moves root by the given number of semitones, wrapping modulo 12.
// An unrecognized root comes back normalized but otherwise untouched.
func Transpose(root string, semitones int) string {
	norm := Normalize(root)
	idx, ok := noteIndex[norm]
	if !ok {
		return norm
	}
	return NoteNames[((idx+semitones)%12+12)%12]
}
