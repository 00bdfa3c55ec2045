package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fracmole/internal/problemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print generated questions",
	Long:  "Generate questions without starting a game. With --json each question is printed as one JSON object per line.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")
		ops, _ := cmd.Flags().GetStringSlice("ops")
		if n < 1 {
			return fmt.Errorf("count must be at least 1, got %d", n)
		}

		cfg, logger, err := commandSetup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		genCfg := cfg.GeneratorConfig()
		if len(ops) > 0 {
			genCfg.Operations, err = parseOperations(ops)
			if err != nil {
				return err
			}
		}
		if err := genCfg.Validate(); err != nil {
			return fmt.Errorf("generator config: %w", err)
		}
		gen := newGenerator(cmd, genCfg, logger)

		out := cmd.OutOrStdout()
		for i := 1; i <= n; i++ {
			q := gen.Generate()
			if asJSON {
				raw, err := problemgen.MarshalQuestion(q)
				if err != nil {
					return fmt.Errorf("question %d: %w", i, err)
				}
				fmt.Fprintln(out, string(raw))
				continue
			}
			fmt.Fprintf(out, "%3d. %-16s %s   answer: %s\n",
				i, q.Text, strings.Join(q.OptionStrings(), "  "), q.CorrectAnswer)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 10, "Number of questions to generate")
	generateCmd.Flags().Bool("json", false, "Print questions as JSON lines")
	generateCmd.Flags().StringSlice("ops", nil, "Operations to draw from (add, subtract, simplify)")
}

// parseOperations maps operation names to problemgen operations.
func parseOperations(names []string) ([]problemgen.Operation, error) {
	ops := make([]problemgen.Operation, 0, len(names))
	for _, name := range names {
		op := problemgen.Operation(strings.ToLower(strings.TrimSpace(name)))
		if !op.Valid() {
			return nil, fmt.Errorf("unknown operation %q", name)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
