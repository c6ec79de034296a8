package model

import (
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/pkg/errors"
)

type Mode string

const (
	Single      Mode = "single"
	Progression Mode = "progression"
	Scale       Mode = "scale"
)

var Modes = []Mode{Single, Progression, Scale}

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Single, Progression, Scale:
		return Mode(s), true
	}
	return "", false
}

// Settings are the knobs the settings screen exposes to the engine.
type Settings struct {
	Mode        Mode              `json:"mode" yaml:"mode"`
	Difficulty  theory.Tier       `json:"difficulty" yaml:"difficulty"`
	KeyRoot     string            `json:"key_root" yaml:"key_root"`
	KeyQuality  theory.Quality    `json:"key_quality" yaml:"key_quality"`
	ChordPool   theory.PoolSource `json:"chord_pool" yaml:"chord_pool"`
	AutoAdvance bool              `json:"auto_advance" yaml:"auto_advance"`
}

func DefaultSettings() Settings {
	return Settings{
		Mode:        Single,
		Difficulty:  theory.Triads,
		KeyRoot:     "C",
		KeyQuality:  theory.Major,
		ChordPool:   theory.InKey,
		AutoAdvance: true,
	}
}

// Validate rejects values outside the known enums. Flat key roots are
// accepted and normalized.
func (s *Settings) Validate() error {
	if _, ok := ParseMode(string(s.Mode)); !ok {
		return errors.Errorf("unknown mode %q", s.Mode)
	}
	if _, ok := theory.ParseTier(string(s.Difficulty)); !ok {
		return errors.Errorf("unknown difficulty %q", s.Difficulty)
	}
	if _, ok := theory.PitchClass(s.KeyRoot); !ok {
		return errors.Errorf("unknown key root %q", s.KeyRoot)
	}
	s.KeyRoot = theory.Normalize(s.KeyRoot)
	if _, ok := theory.ParseQuality(string(s.KeyQuality)); !ok {
		return errors.Errorf("unknown key quality %q", s.KeyQuality)
	}
	if _, ok := theory.ParsePoolSource(string(s.ChordPool)); !ok {
		return errors.Errorf("unknown chord pool %q", s.ChordPool)
	}
	return nil
}

// Merge applies a partial update and validates the result.
func (s Settings) Merge(req SettingsRequestBody) (Settings, error) {
	if req.Mode != nil {
		s.Mode = Mode(*req.Mode)
	}
	if req.Difficulty != nil {
		s.Difficulty = theory.Tier(*req.Difficulty)
	}
	if req.KeyRoot != nil {
		s.KeyRoot = *req.KeyRoot
	}
	if req.KeyQuality != nil {
		s.KeyQuality = theory.Quality(*req.KeyQuality)
	}
	if req.ChordPool != nil {
		s.ChordPool = theory.PoolSource(*req.ChordPool)
	}
	if req.AutoAdvance != nil {
		s.AutoAdvance = *req.AutoAdvance
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
