package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/problemgen"
)

// errVerifyFailed is returned when any generated question fails validation.
var errVerifyFailed = errors.New("generated questions failed validation")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Generate many questions and validate each one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		workers, _ := cmd.Flags().GetInt("workers")

		cfg, logger, err := commandSetup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		gen := newGenerator(cmd, cfg.GeneratorConfig(), logger)
		report, err := problemgen.Audit(cmd.Context(), gen, n, workers)
		if err != nil {
			return err
		}
		logger.Debug("audit finished",
			zap.Int("total", report.Total),
			zap.Int("failed", report.FailedCount))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checked %d questions: %d passed, %d failed\n",
			report.Total, report.Passed, report.FailedCount)

		ops := make([]string, 0, len(report.ByOperation))
		for op := range report.ByOperation {
			ops = append(ops, string(op))
		}
		sort.Strings(ops)
		for _, op := range ops {
			fmt.Fprintf(out, "  %-9s %d\n", op, report.ByOperation[problemgen.Operation(op)])
		}

		for _, f := range report.Failures {
			fmt.Fprintf(out, "  FAIL %-16s %s\n", f.Question.Text, f.Err)
		}
		if report.FailedCount > 0 {
			return errVerifyFailed
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().IntP("count", "n", 1000, "Number of questions to generate")
	verifyCmd.Flags().Int("workers", runtime.NumCPU(), "Concurrent workers")
}
