package theory

import "github.com/jsphweid/chordtrainer/util"

type PoolSource string

const (
	InKey   PoolSource = "in-key"
	AllKeys PoolSource = "all-keys"
)

func ParsePoolSource(s string) (PoolSource, bool) {
	switch PoolSource(s) {
	case InKey, AllKeys:
		return PoolSource(s), true
	}
	return "", false
}

// SeventhChords join the pool from the seventh tier on.
var SeventhChords = []string{
	"Cmaj7", "Fmaj7", "Gmaj7", "Dmaj7", "Amaj7",
	"Am7", "Dm7", "Em7", "Bm7", "F#m7",
	"G7", "D7", "A7", "C7", "E7",
}

// ExtendedChords join the pool in the extended tier only.
var ExtendedChords = []string{
	"Csus2", "Csus4", "Cadd9",
	"Gsus2", "Gsus4", "Gadd9",
	"Dsus2", "Dsus4", "Dadd9",
	"Asus2", "Asus4", "Aadd9",
}

// ChordPool lists every chord a single-chord card may ask for.
func ChordPool(root string, q Quality, tier Tier, source PoolSource) []string {
	var pool []string
	if source == AllKeys {
		for _, r := range NoteNames {
			for _, kq := range []Quality{Major, Minor} {
				chords := NewScale(r, kq).Chords
				pool = append(pool, chords[:]...)
			}
		}
	} else {
		chords := NewScale(root, q).Chords
		pool = append(pool, chords[:]...)
	}

	if tier == Seventh || tier == Extended {
		pool = append(pool, SeventhChords...)
	}
	if tier == Extended {
		pool = append(pool, ExtendedChords...)
	}
	return util.Dedupe(pool)
}
