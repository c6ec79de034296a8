package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/jsphweid/chordtrainer/util"
)

// Trainer is the part of the engine the terminal UI drives.
type Trainer interface {
	NewCard()
	Reset()
	NewProgressionIfDone() bool
	ApplySettings(settings model.Settings) error
	Snapshot() model.Snapshot
}

// SnapshotMsg delivers a published engine snapshot to the program.
type SnapshotMsg model.Snapshot

type Model struct {
	trainer Trainer
	snap    model.Snapshot
	help    help.Model
	err     string
	width   int
}

func New(trainer Trainer) Model {
	return Model{
		trainer: trainer,
		snap:    trainer.Snapshot(),
		help:    help.New(),
	}
}

// Send returns an engine listener that forwards snapshots into a running
// program, e.g. engine.Subscribe(tui.Send(program)). Delivery happens off
// the caller's goroutine since Update itself triggers publishes.
func Send(program *tea.Program) func(model.Snapshot) {
	return func(snap model.Snapshot) {
		go program.Send(SnapshotMsg(snap))
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Snapshot is the state currently on screen.
func (m Model) Snapshot() model.Snapshot {
	return m.snap
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.observe(model.Snapshot(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// observe keeps the newest snapshot; deliveries can arrive out of order.
func (m *Model) observe(snap model.Snapshot) {
	if snap.Version >= m.snap.Version {
		m.snap = snap
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = ""
	settings := m.snap.Settings

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.NewCard):
		m.trainer.NewCard()
	case key.Matches(msg, keys.Reset):
		m.trainer.Reset()
	case key.Matches(msg, keys.Next):
		if !m.trainer.NewProgressionIfDone() {
			return m, nil
		}
	case key.Matches(msg, keys.Mode):
		settings.Mode = util.Cycle(model.Modes, settings.Mode)
		m.apply(settings)
	case key.Matches(msg, keys.Difficulty):
		settings.Difficulty = util.Cycle([]theory.Tier{theory.Triads, theory.Seventh, theory.Extended}, settings.Difficulty)
		m.apply(settings)
	case key.Matches(msg, keys.Key):
		settings.KeyRoot = util.Cycle(theory.NoteNames[:], settings.KeyRoot)
		m.apply(settings)
	case key.Matches(msg, keys.Quality):
		settings.KeyQuality = util.Cycle([]theory.Quality{theory.Major, theory.Minor}, settings.KeyQuality)
		m.apply(settings)
	case key.Matches(msg, keys.Pool):
		settings.ChordPool = util.Cycle([]theory.PoolSource{theory.InKey, theory.AllKeys}, settings.ChordPool)
		m.apply(settings)
	case key.Matches(msg, keys.AutoAdvance):
		settings.AutoAdvance = !settings.AutoAdvance
		m.apply(settings)
	default:
		return m, nil
	}

	m.observe(m.trainer.Snapshot())
	return m, nil
}

func (m *Model) apply(settings model.Settings) {
	if err := m.trainer.ApplySettings(settings); err != nil {
		m.err = err.Error()
	}
}
