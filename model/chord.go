package model

// Notes are raw MIDI note numbers as delivered by the device.
type Notes = []uint8

// EvaluationResult is one judgment of the held notes against a target. All
// note lists hold canonical pitch class names in chromatic order.
type EvaluationResult struct {
	Target       string   `json:"target"`
	IsCorrect    bool     `json:"is_correct"`
	CorrectNotes []string `json:"correct_notes"`
	MissingNotes []string `json:"missing_notes"`
	WrongNotes   []string `json:"wrong_notes"`
	PlayedNotes  []string `json:"played_notes"`
}

type ResultTag string

const (
	Unset   ResultTag = ""
	Correct ResultTag = "correct"
	Wrong   ResultTag = "wrong"
)

func TagFor(correct bool) ResultTag {
	if correct {
		return Correct
	}
	return Wrong
}

// Flash is the transient card highlight after a judgment.
type Flash string

const (
	FlashNone    Flash = ""
	FlashSuccess Flash = "success"
	FlashError   Flash = "error"
)

func FlashFor(correct bool) Flash {
	if correct {
		return FlashSuccess
	}
	return FlashError
}
