package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/session"
)

// Config is the on-disk configuration file.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

type GameConfig struct {
	Rounds        int           `yaml:"rounds"`
	RoundTime     time.Duration `yaml:"round_time"`
	CorrectPoints int           `yaml:"correct_points"`
	WrongPoints   int           `yaml:"wrong_points"`
	Mode          string        `yaml:"mode"`
}

type GeneratorConfig struct {
	Operations               []string `yaml:"operations"`
	Numerators               []int64  `yaml:"numerators"`
	Denominators             []int64  `yaml:"denominators"`
	DistractorMaxNumerator   int64    `yaml:"distractor_max_numerator"`
	DistractorMaxDenominator int64    `yaml:"distractor_max_denominator"`
	MaxDistractorAttempts    int      `yaml:"max_distractor_attempts"`
	SimplifyFactorMin        int64    `yaml:"simplify_factor_min"`
	SimplifyFactorMax        int64    `yaml:"simplify_factor_max"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := session.DefaultConfig()
	p := problemgen.DefaultConfig()

	ops := make([]string, len(p.Operations))
	for i, op := range p.Operations {
		ops[i] = string(op)
	}

	return Config{
		Game: GameConfig{
			Rounds:        g.Rounds,
			RoundTime:     g.RoundTime,
			CorrectPoints: g.CorrectPoints,
			WrongPoints:   g.WrongPoints,
			Mode:          string(g.Mode),
		},
		Generator: GeneratorConfig{
			Operations:               ops,
			Numerators:               p.Numerators,
			Denominators:             p.Denominators,
			DistractorMaxNumerator:   p.DistractorMaxNumerator,
			DistractorMaxDenominator: p.DistractorMaxDenominator,
			MaxDistractorAttempts:    p.MaxDistractorAttempts,
			SimplifyFactorMin:        p.SimplifyFactorMin,
			SimplifyFactorMax:        p.SimplifyFactorMax,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the game and generator sections.
func (c Config) Validate() error {
	var errs []error
	if err := c.SessionConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("game: %w", err))
	}
	if err := c.GeneratorConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generator: %w", err))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log: unknown level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// SessionConfig converts the game section.
func (c Config) SessionConfig() session.Config {
	return session.Config{
		Rounds:        c.Game.Rounds,
		RoundTime:     c.Game.RoundTime,
		CorrectPoints: c.Game.CorrectPoints,
		WrongPoints:   c.Game.WrongPoints,
		Mode:          session.Mode(c.Game.Mode),
	}
}

// GeneratorConfig converts the generator section.
func (c Config) GeneratorConfig() problemgen.Config {
	ops := make([]problemgen.Operation, len(c.Generator.Operations))
	for i, op := range c.Generator.Operations {
		ops[i] = problemgen.Operation(op)
	}
	return problemgen.Config{
		Operations:               ops,
		Numerators:               c.Generator.Numerators,
		Denominators:             c.Generator.Denominators,
		DistractorMaxNumerator:   c.Generator.DistractorMaxNumerator,
		DistractorMaxDenominator: c.Generator.DistractorMaxDenominator,
		MaxDistractorAttempts:    c.Generator.MaxDistractorAttempts,
		SimplifyFactorMin:        c.Generator.SimplifyFactorMin,
		SimplifyFactorMax:        c.Generator.SimplifyFactorMax,
	}
}

// DefaultPath resolves the config file path in priority order:
// 1. FRACMOLE_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/fracmole/config.yaml
// 3. ~/.config/fracmole/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("FRACMOLE_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fracmole", "config.yaml"), nil
}

// Resolve loads path when set. Otherwise it loads the default path if a
// file exists there, falling back to Default.
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	p, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	return Load(p)
}
