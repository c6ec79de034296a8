package chord

import (
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
)

// Match judges played pitch classes against a chord. Every required note
// must be present and nothing outside All may sound; an extra note fails
// the attempt even when the chord itself is complete.
func Match(target string, sets theory.NoteSets, played theory.NoteSet) model.EvaluationResult {
	correct := make(theory.NoteSet)
	wrong := make(theory.NoteSet)
	for n := range played {
		if sets.All.Has(n) {
			correct[n] = true
		} else {
			wrong[n] = true
		}
	}
	missing := make(theory.NoteSet)
	for n := range sets.Required {
		if !played.Has(n) {
			missing[n] = true
		}
	}

	return model.EvaluationResult{
		Target:       target,
		IsCorrect:    len(missing) == 0 && len(wrong) == 0 && len(correct) > 0,
		CorrectNotes: correct.Sorted(),
		MissingNotes: missing.Sorted(),
		WrongNotes:   wrong.Sorted(),
		PlayedNotes:  played.Sorted(),
	}
}

// MatchNote is the single-note form used for scale runs: exactly one pitch
// class may sound and it has to be the target.
func MatchNote(target string, played theory.NoteSet) model.EvaluationResult {
	target = theory.Normalize(target)
	sets := theory.NoteSets{
		Required: theory.NewNoteSet(target),
		All:      theory.NewNoteSet(target),
	}
	res := Match(target, sets, played)
	res.IsCorrect = res.IsCorrect && len(played) == 1
	return res
}
