package model

import "github.com/jsphweid/chordtrainer/util"

// ChordStats track chord judgments. Only an explicit reset zeroes them.
type ChordStats struct {
	Streak     int `json:"streak"`
	BestStreak int `json:"best_streak"`
	Correct    int `json:"correct"`
	Attempts   int `json:"attempts"`
}

func (s *ChordStats) Record(correct bool) {
	s.Attempts++
	if correct {
		s.Correct++
		s.Streak++
	} else {
		s.Streak = 0
	}
	s.BestStreak = util.Max(s.BestStreak, s.Streak)
}

// Accuracy is the share of correct attempts, 0 when nothing was attempted.
func (s ChordStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

type ScaleStats struct {
	Runs   int `json:"runs"`
	Errors int `json:"errors"`
}
