package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/app"
	"github.com/abhisek/fracmole/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		typed, _ := cmd.Flags().GetBool("typed")
		return runApp(cmd, typed)
	},
}

func init() {
	playCmd.Flags().Bool("typed", false, "Type answers instead of whacking moles")
}

// runApp loads config, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command, typed bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if typed {
		cfg.Game.Mode = string(session.ModeTyped)
	}

	// The alt screen owns the terminal, so logs go to the file only.
	logger, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("starting fracmole", zap.String("mode", cfg.Game.Mode))
	return app.Run(app.Options{
		Generator:     newGenerator(cmd, cfg.GeneratorConfig(), logger),
		Repo:          st.GameRepo(),
		SessionConfig: cfg.SessionConfig(),
		Logger:        logger,
	})
}
