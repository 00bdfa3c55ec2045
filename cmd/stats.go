package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show game statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.GameRepo()
		totals, err := repo.Totals(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if totals.Games == 0 {
			fmt.Fprintln(out, "No games played yet.")
			return nil
		}

		fmt.Fprintf(out, "Games played:   %d\n", totals.Games)
		fmt.Fprintf(out, "Best score:     %d\n", totals.BestScore)
		fmt.Fprintf(out, "Average score:  %.1f\n", totals.AverageScore)
		fmt.Fprintf(out, "Accuracy:       %.0f%% (%d/%d rounds)\n",
			totals.Accuracy(), totals.Correct, totals.Rounds)

		games, err := repo.RecentGames(ctx, limit)
		if err != nil {
			return err
		}
		if len(games) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s  %-6s  %-7s  %-7s  %s\n", "Finished", "Mode", "Score", "Correct", "")
		fmt.Fprintln(out, strings.Repeat("─", 50))
		for _, g := range games {
			note := ""
			if g.Quit {
				note = "quit early"
			}
			fmt.Fprintf(out, "%-16s  %-6s  %3d/%-3d  %3d/%-3d  %s\n",
				g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Mode,
				g.Score, g.MaxScore, g.Correct, g.Rounds, note)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent games to list")
}
