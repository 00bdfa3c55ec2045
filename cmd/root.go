package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/config"
	"github.com/abhisek/fracmole/internal/logging"
	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "fracmole",
	Short: "Whack-a-mole fraction practice",
	Long: "Fracmole is a terminal game for practising fraction addition, subtraction and simplification.\n" +
		"Whack the mole holding the right answer before it ducks back into its hole.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides FRACMOLE_DB env var)")
	pf.String("config", "", "Path to YAML config file (overrides FRACMOLE_CONFIG env var)")
	pf.Uint64("seed", 0, "Seed for the question generator (random when unset)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write JSON logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FRACMOLE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Log.File = f
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger. console may be nil, in which case
// only the log file (if any) receives output.
func newLogger(cfg config.Config, console io.Writer) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// newGenerator builds a generator from cfg, seeded when --seed is set.
func newGenerator(cmd *cobra.Command, cfg problemgen.Config, logger *zap.Logger) *problemgen.Generator {
	opts := []problemgen.Option{problemgen.WithLogger(logger)}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, problemgen.WithSeed(seed))
	}
	return problemgen.New(cfg, opts...)
}

// openStore opens the game database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// commandSetup loads config and a stderr logger for non-TUI commands.
func commandSetup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
