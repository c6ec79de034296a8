package session

import (
	"math/rand"

	"github.com/jsphweid/chordtrainer/model"
)

// Single asks for one chord at a time drawn from a pool.
type Single struct {
	Target string
	Stats  model.ChordStats
}

// Draw picks a new random target. An empty pool leaves no target, which
// makes every evaluation a no-op.
func (s *Single) Draw(rng *rand.Rand, pool []string) {
	if len(pool) == 0 {
		s.Target = ""
		return
	}
	s.Target = pool[rng.Intn(len(pool))]
}

// Judge records the result and reports whether the card was solved.
func (s *Single) Judge(res model.EvaluationResult) bool {
	s.Stats.Record(res.IsCorrect)
	return res.IsCorrect
}

func (s *Single) ResetStats() {
	s.Stats = model.ChordStats{}
}
