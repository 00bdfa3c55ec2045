package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fracmole/internal/fraction"
)

var checkCmd = &cobra.Command{
	Use:   "check <a/b> <c/d>",
	Short: "Check whether two fractions are equal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f1, err := fraction.Parse(args[0])
		if err != nil {
			return fmt.Errorf("first fraction: %w", err)
		}
		f2, err := fraction.Parse(args[1])
		if err != nil {
			return fmt.Errorf("second fraction: %w", err)
		}

		out := cmd.OutOrStdout()
		if fraction.Equals(f1, f2) {
			fmt.Fprintf(out, "%s = %s (both %s)\n", f1, f2, fraction.Simplify(f1))
			return nil
		}
		fmt.Fprintf(out, "%s ≠ %s (%s vs %s)\n", f1, f2, fraction.Simplify(f1), fraction.Simplify(f2))
		return nil
	},
}
