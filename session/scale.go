package session

import (
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
)

// Scale drills the ascend/descend run of a key. A wrong note holds the
// cursor; a right note moves it, wrapping to a fresh run after the last.
type Scale struct {
	Root    string
	Quality theory.Quality
	Run     []string
	Cursor  int
	Stats   model.ScaleStats
}

func (s *Scale) Start(root string, q theory.Quality) {
	s.Root = theory.Normalize(root)
	s.Quality = q
	s.Run = theory.ScaleRun(root, q)
	s.Cursor = 0
}

func (s *Scale) Current() (string, bool) {
	if len(s.Run) == 0 {
		return "", false
	}
	return s.Run[s.Cursor], true
}

func (s *Scale) Judge(correct bool) {
	if len(s.Run) == 0 {
		return
	}
	if !correct {
		s.Stats.Errors++
		return
	}
	if s.Cursor == len(s.Run)-1 {
		s.Stats.Runs++
	}
	s.Cursor = (s.Cursor + 1) % len(s.Run)
}

func (s *Scale) ResetStats() {
	s.Stats = model.ScaleStats{}
}
