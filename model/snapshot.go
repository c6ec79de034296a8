package model

import "github.com/jsphweid/chordtrainer/theory"

// ChordCard is the single-chord target.
type ChordCard struct {
	Name    string   `json:"name"`
	Numeral string   `json:"numeral"`
	Notes   []string `json:"notes"`
}

type ProgressionCard struct {
	Name      string      `json:"name"`
	Chords    []string    `json:"chords"`
	Numerals  []string    `json:"numerals"`
	Results   []ResultTag `json:"results"`
	Cursor    int         `json:"cursor"`
	Done      bool        `json:"done"`
	Completed int         `json:"completed"`
}

type ScaleCard struct {
	Root    string         `json:"root"`
	Quality theory.Quality `json:"quality"`
	Run     []string       `json:"run"`
	Cursor  int            `json:"cursor"`
	Target  string         `json:"target"`
}

// Snapshot is a read-only view of a session. Version increases with every
// published change so consumers can drop stale copies.
type Snapshot struct {
	Version   uint64 `json:"version"`
	SessionID string `json:"session_id"`
	CardID    string `json:"card_id"`

	Settings     Settings `json:"settings"`
	InputEnabled bool     `json:"input_enabled"`
	InputStatus  string   `json:"input_status"`
	Devices      []string `json:"devices"`

	Pressed   []int             `json:"pressed"`
	Feedback  *EvaluationResult `json:"feedback"`
	Flash     Flash             `json:"flash"`
	Judgments uint64            `json:"judgments"`

	Chord       *ChordCard       `json:"chord,omitempty"`
	Progression *ProgressionCard `json:"progression,omitempty"`
	Scale       *ScaleCard       `json:"scale,omitempty"`

	Stats            ChordStats `json:"stats"`
	ProgressionStats ChordStats `json:"progression_stats"`
	ScaleStats       ScaleStats `json:"scale_stats"`
}
