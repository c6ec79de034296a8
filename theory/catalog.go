package theory

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Pattern is a named roman-numeral progression. Degrees index into the
// diatonic chord list of a key (0 = tonic).
type Pattern struct {
	Name    string
	Degrees []int
}

const (
	minPatternLength = 2
	maxPatternLength = 6
)

var majorPatterns = []Pattern{
	{Name: "I-V-vi-IV", Degrees: []int{0, 4, 5, 3}},
	{Name: "vi-IV-I-V", Degrees: []int{5, 3, 0, 4}},
	{Name: "I-vi-IV-V", Degrees: []int{0, 5, 3, 4}},
	{Name: "I-IV-V-IV", Degrees: []int{0, 3, 4, 3}},
	{Name: "I-V-IV-V", Degrees: []int{0, 4, 3, 4}},
	{Name: "I-IV-I-V", Degrees: []int{0, 3, 0, 4}},
	{Name: "I-V-I-IV", Degrees: []int{0, 4, 0, 3}},
	{Name: "I-IV-ii-V", Degrees: []int{0, 3, 1, 4}},
	{Name: "ii-V-I-IV", Degrees: []int{1, 4, 0, 3}},
	{Name: "ii-V-vi-IV", Degrees: []int{1, 4, 5, 3}},
	{Name: "I-V-iii-vi", Degrees: []int{0, 4, 2, 5}},
	{Name: "I-V-ii-IV", Degrees: []int{0, 4, 1, 3}},
	{Name: "I-V-vi-iii", Degrees: []int{0, 4, 5, 2}},
	{Name: "I-iii-vi-IV", Degrees: []int{0, 2, 5, 3}},
	{Name: "I-IV-vi-V", Degrees: []int{0, 3, 5, 4}},
	{Name: "I-IV-V-vi", Degrees: []int{0, 3, 4, 5}},
	{Name: "IV-I-V-I", Degrees: []int{3, 0, 4, 0}},
	{Name: "IV-V-I-V", Degrees: []int{3, 4, 0, 4}},
	{Name: "IV-V-vi-IV", Degrees: []int{3, 4, 5, 3}},
	{Name: "IV-I-ii-V", Degrees: []int{3, 0, 1, 4}},
	{Name: "IV-vi-ii-V", Degrees: []int{3, 5, 1, 4}},
	{Name: "V-vi-IV-V", Degrees: []int{4, 5, 3, 4}},
	{Name: "V-IV-I-V", Degrees: []int{4, 3, 0, 4}},
	{Name: "V-IV-I-IV", Degrees: []int{4, 3, 0, 3}},
	{Name: "V-IV-vi-V", Degrees: []int{4, 3, 5, 4}},
	{Name: "V-ii-I-V", Degrees: []int{4, 1, 0, 4}},
	{Name: "V-iii-vi-IV", Degrees: []int{4, 2, 5, 3}},
	{Name: "ii-IV-V-I", Degrees: []int{1, 3, 4, 0}},
	{Name: "ii-V-I-vi", Degrees: []int{1, 4, 0, 5}},
	{Name: "ii-V-IV-I", Degrees: []int{1, 4, 3, 0}},
	{Name: "ii-V-iii-vi", Degrees: []int{1, 4, 2, 5}},
	{Name: "iii-vi-IV-V", Degrees: []int{2, 5, 3, 4}},
	{Name: "iii-IV-I-V", Degrees: []int{2, 3, 0, 4}},
	{Name: "iii-IV-ii-V", Degrees: []int{2, 3, 1, 4}},
	{Name: "iii-V-vi-IV", Degrees: []int{2, 4, 5, 3}},
	{Name: "I-V-I-V", Degrees: []int{0, 4, 0, 4}},
	{Name: "vi-IV-vi-V", Degrees: []int{5, 3, 5, 4}},
	{Name: "IV-vi-IV-V", Degrees: []int{3, 5, 3, 4}},
	{Name: "I-ii-IV-V", Degrees: []int{0, 1, 3, 4}},
	{Name: "I-V-IV-iii", Degrees: []int{0, 4, 3, 2}},
	{Name: "I-IV-iii-vi", Degrees: []int{0, 3, 2, 5}},
	{Name: "vi-V-IV-V", Degrees: []int{5, 4, 3, 4}},
	{Name: "vi-IV-ii-V", Degrees: []int{5, 3, 1, 4}},
	{Name: "IV-I-vi-V", Degrees: []int{3, 0, 5, 4}},
	{Name: "I-vi-ii-V", Degrees: []int{0, 5, 1, 4}},
	{Name: "I-IV-V", Degrees: []int{0, 3, 4}},
	{Name: "I-V-IV", Degrees: []int{0, 4, 3}},
	{Name: "I-ii-V", Degrees: []int{0, 1, 4}},
	{Name: "I-vi-IV", Degrees: []int{0, 5, 3}},
	{Name: "I-V-vi", Degrees: []int{0, 4, 5}},
	{Name: "vi-IV-V", Degrees: []int{5, 3, 4}},
	{Name: "ii-V-I", Degrees: []int{1, 4, 0}},
	{Name: "I-iii-IV", Degrees: []int{0, 2, 3}},
	{Name: "IV-I-V", Degrees: []int{3, 0, 4}},
	{Name: "V-IV-I", Degrees: []int{4, 3, 0}},
	{Name: "IV-V-vi", Degrees: []int{3, 4, 5}},
	{Name: "I-V", Degrees: []int{0, 4}},
	{Name: "I-vi", Degrees: []int{0, 5}},
	{Name: "vi-IV", Degrees: []int{5, 3}},
	{Name: "IV-V", Degrees: []int{3, 4}},
	{Name: "ii-V", Degrees: []int{1, 4}},
	{Name: "I-V-vi-IV-I", Degrees: []int{0, 4, 5, 3, 0}},
	{Name: "I-IV-I-V-vi", Degrees: []int{0, 3, 0, 4, 5}},
	{Name: "I-V-IV-I-V", Degrees: []int{0, 4, 3, 0, 4}},
	{Name: "I-ii-IV-V-I", Degrees: []int{0, 1, 3, 4, 0}},
	{Name: "I-V-vi-IV-ii-V", Degrees: []int{0, 4, 5, 3, 1, 4}},
	{Name: "I-vi-ii-V-I-V", Degrees: []int{0, 5, 1, 4, 0, 4}},
	{Name: "I-IV-V-vi-IV-V", Degrees: []int{0, 3, 4, 5, 3, 4}},
}

// minor degrees: 0=i, 1=ii°, 2=III, 3=iv, 4=v, 5=VI, 6=VII
var minorPatterns = []Pattern{
	{Name: "i-VI-III-VII", Degrees: []int{0, 5, 2, 6}},
	{Name: "i-VII-VI-VII", Degrees: []int{0, 6, 5, 6}},
	{Name: "i-VI-VII-VII", Degrees: []int{0, 5, 6, 6}},
	{Name: "i-VII-III-VI", Degrees: []int{0, 6, 2, 5}},
	{Name: "i-v-VI-VII", Degrees: []int{0, 4, 5, 6}},
	{Name: "i-iv-VI-VII", Degrees: []int{0, 3, 5, 6}},
	{Name: "i-iv-v-VI", Degrees: []int{0, 3, 4, 5}},
	{Name: "vi-III-VII-i", Degrees: []int{5, 2, 6, 0}},
	{Name: "i-VII-VI", Degrees: []int{0, 6, 5}},
	{Name: "i-iv-v", Degrees: []int{0, 3, 4}},
	{Name: "i-VI-VII", Degrees: []int{0, 5, 6}},
	{Name: "i-III-VII", Degrees: []int{0, 2, 6}},
	{Name: "iv-VI-VII", Degrees: []int{3, 5, 6}},
	{Name: "i-VII", Degrees: []int{0, 6}},
	{Name: "i-VI", Degrees: []int{0, 5}},
	{Name: "III-VI", Degrees: []int{2, 5}},
	{Name: "iv-i", Degrees: []int{3, 0}},
	{Name: "v-VI", Degrees: []int{4, 5}},
	{Name: "i-VI-III-VII-i", Degrees: []int{0, 5, 2, 6, 0}},
	{Name: "i-iv-VI-III-VII", Degrees: []int{0, 3, 5, 2, 6}},
	{Name: "i-VII-VI-iv-i", Degrees: []int{0, 6, 5, 3, 0}},
	{Name: "i-v-VI-VII-i", Degrees: []int{0, 4, 5, 6, 0}},
}

func init() {
	if err := ValidatePatterns(majorPatterns); err != nil {
		panic("major progression catalog: " + err.Error())
	}
	if err := ValidatePatterns(minorPatterns); err != nil {
		panic("minor progression catalog: " + err.Error())
	}
}

// ValidatePatterns checks that every pattern has 2-6 steps and only
// references scale degrees 0-6.
func ValidatePatterns(patterns []Pattern) error {
	if len(patterns) == 0 {
		return errors.New("empty catalog")
	}
	for _, p := range patterns {
		if len(p.Degrees) < minPatternLength || len(p.Degrees) > maxPatternLength {
			return errors.Errorf("pattern %q has %d steps, want %d-%d", p.Name, len(p.Degrees), minPatternLength, maxPatternLength)
		}
		for _, d := range p.Degrees {
			if d < 0 || d > 6 {
				return errors.Errorf("pattern %q references degree %d", p.Name, d)
			}
		}
	}
	return nil
}

// Patterns returns the catalog for a key quality. Minor keys get their own
// catalog written with lowered-degree numerals.
func Patterns(q Quality) []Pattern {
	if q == Minor {
		return minorPatterns
	}
	return majorPatterns
}

func RandomPattern(rng *rand.Rand, q Quality) Pattern {
	patterns := Patterns(q)
	return patterns[rng.Intn(len(patterns))]
}

// Resolve turns the pattern into concrete chord names for the given key.
func (p Pattern) Resolve(root string, q Quality) []string {
	chords := NewScale(root, q).Chords
	res := make([]string, len(p.Degrees))
	for i, d := range p.Degrees {
		res[i] = chords[d]
	}
	return res
}
