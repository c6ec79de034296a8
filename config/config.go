package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the trainer's YAML file. The training settings sit at the top
// level so a minimal file can be as short as "mode: scale".
type Config struct {
	model.Settings `yaml:",inline"`

	Logging LoggingConfig `yaml:"logging"`
	MIDI    MIDIConfig    `yaml:"midi"`
	Server  ServerConfig  `yaml:"server"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// only used by the terminal UI, which owns stderr
	File string `yaml:"file"`
}

// MIDIConfig holds case-insensitive device name patterns.
type MIDIConfig struct {
	Preferred []string `yaml:"preferred"`
	Excluded  []string `yaml:"excluded"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: model.DefaultSettings(),
		Logging: LoggingConfig{
			Level: "info",
		},
		MIDI: MIDIConfig{
			Excluded: []string{"Midi Through", "Dummy"},
		},
		Server: ServerConfig{
			Addr:           constants.GetListenAddr(),
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides win over the file.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// SaveSettings replaces only the training settings in the file at path. The
// other sections are kept as written, without environment overrides. It
// reports whether the file changed.
func SaveSettings(path string, settings model.Settings) (bool, error) {
	if err := settings.Validate(); err != nil {
		return false, err
	}
	cfg, err := readFile(path)
	if err != nil {
		return false, err
	}
	if cfg.Settings == settings {
		return false, nil
	}
	cfg.Settings = settings
	return true, cfg.Save(path)
}

func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("TRAINER_MODE"); mode != "" {
		c.Mode = model.Mode(mode)
	}
	if difficulty := os.Getenv("TRAINER_DIFFICULTY"); difficulty != "" {
		c.Difficulty = theory.Tier(difficulty)
	}
	// "A", "A minor" or "Bb major"
	if key := os.Getenv("TRAINER_KEY"); key != "" {
		fields := strings.Fields(key)
		if len(fields) > 0 {
			c.KeyRoot = fields[0]
		}
		if len(fields) > 1 {
			c.KeyQuality = theory.Quality(strings.ToLower(fields[1]))
		}
	}
	if level := os.Getenv("TRAINER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the training settings and the log level. It normalizes
// a flat key root in place.
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return errors.Wrapf(err, "invalid log level %q", c.Logging.Level)
		}
	}
	return nil
}
