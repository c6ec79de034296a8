package engine

import (
	"math/rand"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordtrainer/constants"
	"go.uber.org/zap"
)

// Debouncer schedules f after a fixed delay, replacing whatever it had
// scheduled before.
type Debouncer = func(f func())

// DebouncerFactory builds one Debouncer per delay.
type DebouncerFactory = func(after time.Duration) func(f func())

// Delays are the engine's timer lengths.
type Delays struct {
	ChordDetect time.Duration
	ScaleDetect time.Duration
	ChordNext   time.Duration
	ScaleNext   time.Duration
	Flash       time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		ChordDetect: constants.ChordDetectDelay,
		ScaleDetect: constants.ScaleDetectDelay,
		ChordNext:   constants.ChordNextDelay,
		ScaleNext:   constants.ScaleNextDelay,
		Flash:       constants.FlashDuration,
	}
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithDelays(d Delays) Option {
	return func(e *Engine) {
		e.delays = d
	}
}

// WithDebouncer swaps bep/debounce for another scheduler, e.g. a manual one
// in tests.
func WithDebouncer(factory DebouncerFactory) Option {
	return func(e *Engine) {
		if factory != nil {
			e.newDebouncer = factory
		}
	}
}

func defaultOptions(e *Engine) {
	e.logger = zap.NewNop()
	e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	e.delays = DefaultDelays()
	e.newDebouncer = debounce.New
}
