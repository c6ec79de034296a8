package engine

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/midi"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/session"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Engine is one training session. Device messages and user intents may
// arrive from any goroutine; every mutation happens under mu, and timer
// callbacks carry the generation they were armed in so a superseded timer
// never judges anything.
type Engine struct {
	mu           sync.Mutex
	logger       *zap.Logger
	rng          *rand.Rand
	delays       Delays
	newDebouncer DebouncerFactory

	chordEval  Debouncer
	scaleEval  Debouncer
	chordNext  Debouncer
	scaleNext  Debouncer
	flashReset Debouncer

	sessionID string
	cardID    string
	settings  model.Settings

	tracker     *chord.Tracker
	single      session.Single
	progression session.Progression
	scale       session.Scale

	feedback *model.EvaluationResult
	flash    model.Flash

	inputEnabled bool
	inputStatus  string
	devices      []string

	// gen changes whenever the pressed set changes or is cleared
	gen       uint64
	flashGen  uint64
	judgments uint64
	advancing bool
	closed    bool

	version   uint64
	listeners map[int]func(model.Snapshot)
	nextID    int
}

// New validates settings and draws the first card. Input starts disabled
// until a device is reported with EnableInput.
func New(settings model.Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "engine settings")
	}

	e := &Engine{
		settings:    settings,
		tracker:     chord.NewTracker(),
		sessionID:   uuid.NewString(),
		inputStatus: "waiting for MIDI keyboard",
		listeners:   make(map[int]func(model.Snapshot)),
		version:     1,
	}
	defaultOptions(e)
	for _, opt := range opts {
		opt(e)
	}

	e.chordEval = e.newDebouncer(e.delays.ChordDetect)
	e.scaleEval = e.newDebouncer(e.delays.ScaleDetect)
	e.chordNext = e.newDebouncer(e.delays.ChordNext)
	e.scaleNext = e.newDebouncer(e.delays.ScaleNext)
	e.flashReset = e.newDebouncer(e.delays.Flash)

	e.newCardLocked()
	e.logger.Info("engine: session started",
		zap.String("session", e.sessionID),
		zap.String("mode", string(settings.Mode)))
	return e, nil
}

// HandleMessage takes one raw device message. Anything that is not a note
// on or off, or that arrives while input is disabled, is ignored.
func (e *Engine) HandleMessage(raw []byte) {
	ev, ok := midi.Decode(raw)
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed || !e.inputEnabled {
		e.mu.Unlock()
		return
	}
	var changed bool
	if ev.On {
		changed = e.tracker.NoteOn(ev.Pitch)
	} else {
		changed = e.tracker.NoteOff(ev.Pitch)
	}
	if !changed {
		e.mu.Unlock()
		return
	}
	e.gen++
	e.armEvaluationLocked()
	e.unlockAndPublish()
}

func (e *Engine) armEvaluationLocked() {
	gen := e.gen
	if e.settings.Mode == model.Scale {
		e.scaleEval(func() { e.evaluate(gen) })
		return
	}
	e.chordEval(func() { e.evaluate(gen) })
}

// evaluate runs against whatever target is active when the timer fires.
func (e *Engine) evaluate(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.gen || !e.inputEnabled || e.tracker.Len() == 0 {
		e.mu.Unlock()
		return
	}

	var judged bool
	switch e.settings.Mode {
	case model.Single:
		judged = e.judgeSingleLocked()
	case model.Progression:
		judged = e.judgeProgressionLocked()
	case model.Scale:
		judged = e.judgeScaleLocked()
	}
	if !judged {
		e.mu.Unlock()
		return
	}
	e.unlockAndPublish()
}

func (e *Engine) judgeSingleLocked() bool {
	target := e.single.Target
	if e.advancing || target == "" {
		return false
	}
	sets := theory.ChordNoteSets(target, e.settings.Difficulty)
	if !sets.Gradable() {
		return false
	}

	res := chord.Match(target, sets, e.tracker.PitchClasses())
	e.single.Judge(res)
	e.setFeedbackLocked(res)
	e.logJudgment(res)

	if res.IsCorrect && e.settings.AutoAdvance {
		e.advancing = true
		card := e.cardID
		e.chordNext(func() { e.advance(card) })
	}
	return true
}

// advance draws the next single-chord card unless the user already moved on.
func (e *Engine) advance(card string) {
	e.mu.Lock()
	if e.closed || card != e.cardID {
		e.mu.Unlock()
		return
	}
	e.newCardLocked()
	e.unlockAndPublish()
}

func (e *Engine) judgeProgressionLocked() bool {
	target, ok := e.progression.Current()
	if !ok {
		return false
	}
	sets := theory.ChordNoteSets(target, e.settings.Difficulty)
	if !sets.Gradable() {
		return false
	}

	res := chord.Match(target, sets, e.tracker.PitchClasses())
	e.progression.Judge(res)
	e.setFeedbackLocked(res)
	e.logJudgment(res)

	// held notes carry into the next step, which is judged on the next change
	if e.progression.Done {
		e.logger.Info("engine: progression done",
			zap.String("progression", e.progression.Name),
			zap.Int("completed", e.progression.Completed))
	}
	return true
}

func (e *Engine) judgeScaleLocked() bool {
	target, ok := e.scale.Current()
	if !ok {
		return false
	}

	res := chord.MatchNote(target, e.tracker.PitchClasses())
	e.scale.Judge(res.IsCorrect)
	e.setFeedbackLocked(res)
	e.logJudgment(res)

	judged := e.tracker.Notes()
	judgment := e.judgments
	e.scaleNext(func() { e.releaseJudged(judged, judgment) })
	return true
}

// releaseJudged drops the notes of a judged scale step. Notes pressed since
// then stay and get their own evaluation.
func (e *Engine) releaseJudged(notes model.Notes, judgment uint64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	released := false
	for _, n := range notes {
		if e.tracker.NoteOff(n) {
			released = true
		}
	}
	cleared := false
	if judgment == e.judgments && e.feedback != nil {
		e.feedback = nil
		cleared = true
	}
	if !released && !cleared {
		e.mu.Unlock()
		return
	}
	if released {
		e.gen++
		if e.tracker.Len() > 0 {
			e.armEvaluationLocked()
		}
	}
	e.unlockAndPublish()
}

func (e *Engine) setFeedbackLocked(res model.EvaluationResult) {
	e.feedback = &res
	e.judgments++
	e.flash = model.FlashFor(res.IsCorrect)
	e.flashGen++
	flashGen := e.flashGen
	e.flashReset(func() { e.resetFlash(flashGen) })
}

func (e *Engine) resetFlash(flashGen uint64) {
	e.mu.Lock()
	if e.closed || flashGen != e.flashGen || e.flash == model.FlashNone {
		e.mu.Unlock()
		return
	}
	e.flash = model.FlashNone
	e.unlockAndPublish()
}

func (e *Engine) logJudgment(res model.EvaluationResult) {
	e.logger.Debug("engine: evaluated",
		zap.String("mode", string(e.settings.Mode)),
		zap.String("target", res.Target),
		zap.Strings("played", res.PlayedNotes),
		zap.String("chord_key", chord.CreateChordKey(e.tracker.Notes())),
		zap.Bool("correct", res.IsCorrect))
}

// clearPressedLocked empties the pressed set and voids pending evaluations.
func (e *Engine) clearPressedLocked() {
	e.tracker.Clear()
	e.gen++
}

func (e *Engine) newCardLocked() {
	e.clearPressedLocked()
	e.feedback = nil
	e.flash = model.FlashNone
	e.flashGen++
	e.advancing = false
	e.cardID = uuid.NewString()

	s := e.settings
	switch s.Mode {
	case model.Single:
		e.single.Draw(e.rng, theory.ChordPool(s.KeyRoot, s.KeyQuality, s.Difficulty, s.ChordPool))
		e.logger.Info("engine: new chord", zap.String("chord", e.single.Target))
	case model.Progression:
		e.progression.Start(theory.RandomPattern(e.rng, s.KeyQuality), s.KeyRoot, s.KeyQuality)
		e.logger.Info("engine: new progression",
			zap.String("progression", e.progression.Name),
			zap.Strings("chords", e.progression.Chords))
	case model.Scale:
		e.scale.Start(s.KeyRoot, s.KeyQuality)
		e.logger.Info("engine: new scale run",
			zap.String("root", e.scale.Root),
			zap.String("quality", string(e.scale.Quality)))
	}
}

// NewCard replaces the current target: a new chord, a new progression or a
// restarted scale run.
func (e *Engine) NewCard() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.newCardLocked()
	e.unlockAndPublish()
}

// Reset zeroes the active mode's statistics and draws a new card.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	switch e.settings.Mode {
	case model.Single:
		e.single.ResetStats()
	case model.Progression:
		e.progression.ResetStats()
	case model.Scale:
		e.scale.ResetStats()
	}
	e.logger.Info("engine: stats reset", zap.String("mode", string(e.settings.Mode)))
	e.newCardLocked()
	e.unlockAndPublish()
}

// NewProgressionIfDone starts the next progression, but only once the
// current one is finished.
func (e *Engine) NewProgressionIfDone() bool {
	e.mu.Lock()
	if e.closed || e.settings.Mode != model.Progression || !e.progression.Done {
		e.mu.Unlock()
		return false
	}
	e.newCardLocked()
	e.unlockAndPublish()
	return true
}

// ApplySettings validates and installs new settings. A change to anything
// but auto-advance redraws the card.
func (e *Engine) ApplySettings(settings model.Settings) error {
	return e.UpdateSettings(func(model.Settings) (model.Settings, error) {
		return settings, nil
	})
}

// UpdateSettings derives new settings from the current ones while holding
// the engine lock, so concurrent partial updates do not overwrite each
// other. The result is validated before it is installed.
func (e *Engine) UpdateSettings(update func(model.Settings) (model.Settings, error)) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	prev := e.settings
	settings, err := update(prev)
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		e.mu.Unlock()
		return err
	}

	e.settings = settings
	if !sameCard(prev, settings) {
		e.logger.Info("engine: settings changed",
			zap.String("mode", string(settings.Mode)),
			zap.String("difficulty", string(settings.Difficulty)),
			zap.String("key", settings.KeyRoot+" "+string(settings.KeyQuality)),
			zap.String("pool", string(settings.ChordPool)))
		e.newCardLocked()
	}
	e.unlockAndPublish()
	return nil
}

func sameCard(a, b model.Settings) bool {
	a.AutoAdvance = b.AutoAdvance
	return a == b
}

// EnableInput marks the keyboard as connected.
func (e *Engine) EnableInput(devices []string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.inputEnabled = true
	e.devices = append([]string(nil), devices...)
	e.inputStatus = "connected: " + strings.Join(devices, ", ")
	e.logger.Info("engine: input enabled", zap.Strings("devices", devices))
	e.unlockAndPublish()
}

// DisableInput stops all judging and surfaces reason to the presentation
// layer. Held notes are dropped since their releases will never arrive.
func (e *Engine) DisableInput(reason string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.inputEnabled = false
	e.devices = nil
	e.inputStatus = reason
	e.clearPressedLocked()
	e.logger.Warn("engine: input disabled", zap.String("reason", reason))
	e.unlockAndPublish()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn for every published snapshot. Deliveries from
// different goroutines may interleave; compare Version to drop stale ones.
func (e *Engine) Subscribe(fn func(model.Snapshot)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Close stops judging. Timers that are still pending fire into a closed
// engine and do nothing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.listeners = make(map[int]func(model.Snapshot))
	e.logger.Info("engine: closed", zap.String("session", e.sessionID))
}

// unlockAndPublish bumps the version, releases mu and notifies listeners.
func (e *Engine) unlockAndPublish() {
	e.version++
	snap := e.snapshotLocked()
	listeners := make([]func(model.Snapshot), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (e *Engine) snapshotLocked() model.Snapshot {
	s := e.settings
	snap := model.Snapshot{
		Version:          e.version,
		SessionID:        e.sessionID,
		CardID:           e.cardID,
		Settings:         s,
		InputEnabled:     e.inputEnabled,
		InputStatus:      e.inputStatus,
		Devices:          append([]string(nil), e.devices...),
		Flash:            e.flash,
		Judgments:        e.judgments,
		Stats:            e.single.Stats,
		ProgressionStats: e.progression.Stats,
		ScaleStats:       e.scale.Stats,
	}

	notes := e.tracker.Notes()
	snap.Pressed = make([]int, len(notes))
	for i, n := range notes {
		snap.Pressed[i] = int(n)
	}
	if e.feedback != nil {
		fb := *e.feedback
		snap.Feedback = &fb
	}

	switch s.Mode {
	case model.Single:
		if e.single.Target != "" {
			snap.Chord = &model.ChordCard{
				Name:    e.single.Target,
				Numeral: theory.RomanNumeral(e.single.Target, s.KeyRoot, s.KeyQuality),
				Notes:   theory.Resolve(e.single.Target).Notes,
			}
		}
	case model.Progression:
		p := e.progression
		snap.Progression = &model.ProgressionCard{
			Name:      p.Name,
			Chords:    append([]string(nil), p.Chords...),
			Numerals:  append([]string(nil), p.Numerals...),
			Results:   append([]model.ResultTag(nil), p.Results...),
			Cursor:    p.Cursor,
			Done:      p.Done,
			Completed: p.Completed,
		}
	case model.Scale:
		target, _ := e.scale.Current()
		snap.Scale = &model.ScaleCard{
			Root:    e.scale.Root,
			Quality: e.scale.Quality,
			Run:     append([]string(nil), e.scale.Run...),
			Cursor:  e.scale.Cursor,
			Target:  target,
		}
	}
	return snap
}
