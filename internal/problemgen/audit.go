package problemgen

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxAuditFailures bounds how many failures an AuditReport keeps.
const maxAuditFailures = 20

// AuditReport summarizes a batch run of the generator.
type AuditReport struct {
	Total       int
	Passed      int
	ByOperation map[Operation]int
	Failures    []AuditFailure
	FailedCount int
}

// AuditFailure is one question that failed validation.
type AuditFailure struct {
	Question *Question
	Err      *ValidationError
}

// Audit generates n questions across up to workers goroutines and runs
// validators (DefaultValidators when empty) on each one.
func Audit(ctx context.Context, gen *Generator, n, workers int, validators ...Validator) (*AuditReport, error) {
	if n < 0 {
		return nil, fmt.Errorf("question count must not be negative, got %d", n)
	}
	if workers < 1 {
		workers = 1
	}
	if len(validators) == 0 {
		validators = DefaultValidators()
	}

	report := &AuditReport{ByOperation: make(map[Operation]int)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q := gen.Generate()
			verr := Validate(q, validators...)

			mu.Lock()
			defer mu.Unlock()
			report.Total++
			report.ByOperation[q.Operation]++
			if verr != nil {
				report.FailedCount++
				if len(report.Failures) < maxAuditFailures {
					report.Failures = append(report.Failures, AuditFailure{Question: q, Err: verr})
				}
				return nil
			}
			report.Passed++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("audit interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("audit interrupted: %w", err)
	}
	return report, nil
}
