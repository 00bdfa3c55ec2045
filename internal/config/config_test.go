package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/session"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, session.DefaultConfig(), cfg.SessionConfig())
	assert.Equal(t, problemgen.DefaultConfig(), cfg.GeneratorConfig())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
game:
  rounds: 5
  round_time: 8s
  mode: typed
generator:
  operations: [add, simplify]
  denominators: [2, 4, 8]
log:
  level: debug
  file: /tmp/fracmole.log
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	sc := cfg.SessionConfig()
	assert.Equal(t, 5, sc.Rounds)
	assert.Equal(t, 8*time.Second, sc.RoundTime)
	assert.Equal(t, session.ModeTyped, sc.Mode)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3, sc.CorrectPoints)
	assert.Equal(t, 1, sc.WrongPoints)

	gc := cfg.GeneratorConfig()
	assert.Equal(t, []problemgen.Operation{problemgen.OpAdd, problemgen.OpSimplify}, gc.Operations)
	assert.Equal(t, []int64{2, 4, 8}, gc.Denominators)
	assert.Equal(t, problemgen.DefaultConfig().Numerators, gc.Numerators)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/fracmole.log", cfg.Log.File)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "game:\n  lives: 3\n", "field lives not found"},
		{"bad mode", "game:\n  mode: mouse\n", "mode must be"},
		{"zero rounds", "game:\n  rounds: 0\n", "rounds must be at least 1"},
		{"bad operation", "generator:\n  operations: [multiply]\n", "unknown operation"},
		{"zero denominator", "generator:\n  denominators: [0, 2]\n", "must be positive"},
		{"bad log level", "log:\n  level: loud\n", "unknown level"},
		{"malformed", "game: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  rounds: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Game.Rounds)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("FRACMOLE_CONFIG", "/etc/fracmole.yaml")
		p, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, "/etc/fracmole.yaml", p)
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("FRACMOLE_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		p, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/xdg", "fracmole", "config.yaml"), p)
	})
}

func TestResolve(t *testing.T) {
	t.Run("missing default file", func(t *testing.T) {
		t.Setenv("FRACMOLE_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("default file present", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("FRACMOLE_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, "fracmole"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(home, "fracmole", "config.yaml"), []byte("game:\n  rounds: 7\n"), 0o644))

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Game.Rounds)
	})

	t.Run("explicit path", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
