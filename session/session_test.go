package session

import (
	"math/rand"
	"testing"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/stretchr/testify/assert"
)

var (
	right = model.EvaluationResult{IsCorrect: true}
	wrong = model.EvaluationResult{IsCorrect: false}
)

func TestSingleDrawStaysInPool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"C", "Dm", "G7"}
	var s Single
	for i := 0; i < 20; i++ {
		s.Draw(rng, pool)
		assert.Contains(t, pool, s.Target)
	}

	s.Draw(rng, nil)
	assert.Equal(t, "", s.Target)
}

func TestSingleJudgeUpdatesStatsEveryTime(t *testing.T) {
	assert := assert.New(t)
	s := Single{Target: "C"}

	assert.True(s.Judge(right))
	assert.True(s.Judge(right))
	assert.False(s.Judge(wrong))

	assert.Equal(model.ChordStats{Streak: 0, BestStreak: 2, Correct: 2, Attempts: 3}, s.Stats)
	assert.Equal("C", s.Target)

	s.ResetStats()
	assert.Equal(model.ChordStats{}, s.Stats)
}

func startFourChordProgression() *Progression {
	p := &Progression{}
	p.Start(theory.Pattern{Name: "I-V-vi-IV", Degrees: []int{0, 4, 5, 3}}, "C", theory.Major)
	return p
}

func TestProgressionFreezesWhenDone(t *testing.T) {
	assert := assert.New(t)
	p := startFourChordProgression()
	assert.Equal([]string{"C", "G", "Am", "F"}, p.Chords)
	assert.Equal([]string{"I", "V", "vi", "IV"}, p.Numerals)

	for i := 0; i < 4; i++ {
		cur, ok := p.Current()
		assert.True(ok)
		assert.Equal(p.Chords[i], cur)
		assert.True(p.Judge(right))
	}

	assert.True(p.Done)
	assert.Equal([]model.ResultTag{model.Correct, model.Correct, model.Correct, model.Correct}, p.Results)
	assert.Equal(3, p.Cursor)
	assert.Equal(1, p.Completed)

	stats := p.Stats
	assert.False(p.Judge(right))
	assert.Equal(3, p.Cursor)
	assert.Equal(stats, p.Stats)
	_, ok := p.Current()
	assert.False(ok)
}

func TestProgressionWrongStillAdvances(t *testing.T) {
	assert := assert.New(t)
	p := startFourChordProgression()

	p.Judge(wrong)
	p.Judge(right)

	assert.Equal(2, p.Cursor)
	assert.Equal([]model.ResultTag{model.Wrong, model.Correct, model.Unset, model.Unset}, p.Results)
	assert.Equal(1, p.Stats.Correct)
	assert.Equal(2, p.Stats.Attempts)
}

func TestProgressionRestart(t *testing.T) {
	p := startFourChordProgression()
	for i := 0; i < 4; i++ {
		p.Judge(right)
	}
	p.Start(theory.Pattern{Name: "ii-V", Degrees: []int{1, 4}}, "C", theory.Major)

	assert.False(t, p.Done)
	assert.Equal(t, 0, p.Cursor)
	assert.Equal(t, []model.ResultTag{model.Unset, model.Unset}, p.Results)
	assert.Equal(t, 1, p.Completed)
}

func TestEmptyProgressionIsNoOp(t *testing.T) {
	var p Progression
	assert.False(t, p.Judge(right))
	assert.Equal(t, 0, p.Stats.Attempts)
}

func TestScaleFullRunWraps(t *testing.T) {
	assert := assert.New(t)
	var s Scale
	s.Start("C", theory.Major)

	for i := 0; i < 14; i++ {
		cur, ok := s.Current()
		assert.True(ok)
		assert.Equal(s.Run[i], cur)
		s.Judge(true)
	}

	assert.Equal(1, s.Stats.Runs)
	assert.Equal(0, s.Stats.Errors)
	assert.Equal(0, s.Cursor)
}

func TestScaleWrongNoteHoldsCursor(t *testing.T) {
	assert := assert.New(t)
	var s Scale
	s.Start("A", theory.Minor)

	s.Judge(true)
	s.Judge(true)
	s.Judge(false)
	s.Judge(false)

	assert.Equal(2, s.Cursor)
	assert.Equal(2, s.Stats.Errors)
	cur, _ := s.Current()
	assert.Equal("C", cur)

	s.Judge(true)
	assert.Equal(3, s.Cursor)
}

func TestScaleStartKeepsStats(t *testing.T) {
	var s Scale
	s.Start("C", theory.Major)
	s.Judge(false)
	s.Start("G", theory.Major)

	assert.Equal(t, 1, s.Stats.Errors)
	assert.Equal(t, 0, s.Cursor)

	s.ResetStats()
	assert.Equal(t, model.ScaleStats{}, s.Stats)
}
