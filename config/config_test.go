package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "chordtrainer.yaml")
	writeFile(t, path, `
mode: progression
difficulty: seventh
key_root: Eb
key_quality: minor
chord_pool: all-keys
auto_advance: false
logging:
  level: debug
midi:
  preferred: [launchkey]
server:
  addr: ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(model.Settings{
		Mode:        model.Progression,
		Difficulty:  theory.Seventh,
		KeyRoot:     "D#",
		KeyQuality:  theory.Minor,
		ChordPool:   theory.AllKeys,
		AutoAdvance: false,
	}, cfg.Settings)
	assert.Equal("debug", cfg.Logging.Level)
	assert.Equal([]string{"launchkey"}, cfg.MIDI.Preferred)
	assert.Equal([]string{"Midi Through", "Dummy"}, cfg.MIDI.Excluded)
	assert.Equal(":9000", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad yaml", "mode: [single"},
		{"bad mode", "mode: arpeggio"},
		{"bad root", "key_root: H"},
		{"bad level", "logging:\n  level: loud"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "chordtrainer.yaml")
			writeFile(t, path, c.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("TRAINER_MODE", "scale")
	t.Setenv("TRAINER_DIFFICULTY", "extended")
	t.Setenv("TRAINER_KEY", "A Minor")
	t.Setenv("TRAINER_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "chordtrainer.yaml")
	writeFile(t, path, "mode: single\nkey_root: G\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(model.Scale, cfg.Mode)
	assert.Equal(theory.Extended, cfg.Difficulty)
	assert.Equal("A", cfg.KeyRoot)
	assert.Equal(theory.Minor, cfg.KeyQuality)
	assert.Equal("warn", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordtrainer.yaml")
	cfg := DefaultConfig()
	cfg.Mode = model.Scale
	cfg.MIDI.Preferred = []string{"keystation"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveSettings(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "nested", "chordtrainer.yaml")
	t.Setenv("TRAINER_LOG_LEVEL", "debug")

	settings := model.DefaultSettings()
	settings.Mode = model.Scale
	settings.KeyRoot = "Eb"
	changed, err := SaveSettings(path, settings)
	require.NoError(t, err)
	assert.True(changed)

	cfg, err := readFile(path)
	require.NoError(t, err)
	assert.Equal(model.Scale, cfg.Mode)
	assert.Equal("D#", cfg.KeyRoot)
	assert.Equal("info", cfg.Logging.Level)

	settings.KeyRoot = "D#"
	changed, err = SaveSettings(path, settings)
	require.NoError(t, err)
	assert.False(changed)

	writeFile(t, path, "logging:\n  level: warn\nmidi:\n  preferred: [keystation]\n")
	settings.Difficulty = theory.Seventh
	changed, err = SaveSettings(path, settings)
	require.NoError(t, err)
	assert.True(changed)

	cfg, err = readFile(path)
	require.NoError(t, err)
	assert.Equal("warn", cfg.Logging.Level)
	assert.Equal([]string{"keystation"}, cfg.MIDI.Preferred)
	assert.Equal(theory.Seventh, cfg.Difficulty)

	settings.Mode = "arpeggio"
	_, err = SaveSettings(path, settings)
	assert.Error(err)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordtrainer.yaml")
	writeFile(t, path, "mode: single\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(cfg *Config) { got <- cfg })
	}()

	// the watch is registered asynchronously, so keep writing until it sees one
	var cfg *Config
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("mode: scale\nkey_root: F\n"), 0644)
		select {
		case cfg = <-got:
			return true
		default:
			return false
		}
	}, 5*time.Second, 300*time.Millisecond)

	assert.Equal(t, model.Scale, cfg.Mode)
	assert.Equal(t, "F", cfg.KeyRoot)

	cancel()
	assert.NoError(t, <-done)
}
