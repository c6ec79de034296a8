package session

import (
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
)

// Progression walks a resolved roman-numeral pattern one chord at a time.
// Every judgment, right or wrong, tags the slot and moves on. After the last
// slot it stays Done until Start is called again.
type Progression struct {
	Name      string
	Numerals  []string
	Chords    []string
	Results   []model.ResultTag
	Cursor    int
	Done      bool
	Stats     model.ChordStats
	Completed int
}

func (p *Progression) Start(pattern theory.Pattern, root string, q theory.Quality) {
	numerals := theory.Numerals(q)
	p.Name = pattern.Name
	p.Chords = pattern.Resolve(root, q)
	p.Numerals = make([]string, len(pattern.Degrees))
	for i, d := range pattern.Degrees {
		p.Numerals[i] = numerals[d]
	}
	p.Results = make([]model.ResultTag, len(p.Chords))
	p.Cursor = 0
	p.Done = false
}

// Current is the chord under the cursor. ok is false once the progression is
// done or when none was started.
func (p *Progression) Current() (string, bool) {
	if p.Done || len(p.Chords) == 0 {
		return "", false
	}
	return p.Chords[p.Cursor], true
}

// Judge tags the current slot and advances. It returns false, changing
// nothing, when there is no current chord.
func (p *Progression) Judge(res model.EvaluationResult) bool {
	if _, ok := p.Current(); !ok {
		return false
	}
	p.Results[p.Cursor] = model.TagFor(res.IsCorrect)
	p.Stats.Record(res.IsCorrect)

	if p.Cursor == len(p.Chords)-1 {
		p.Done = true
		p.Completed++
		return true
	}
	p.Cursor++
	return true
}

func (p *Progression) ResetStats() {
	p.Stats = model.ChordStats{}
	p.Completed = 0
}
