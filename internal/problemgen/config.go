package problemgen

import (
	"errors"
	"fmt"
)

// Config controls the candidate sets and limits used by the Generator.
type Config struct {
	// Operations are the exercise kinds to draw from, uniformly.
	Operations []Operation

	// Numerators and Denominators are the candidate sets for operands.
	Numerators   []int64
	Denominators []int64

	// Random distractors are drawn from [1, max] for each part.
	DistractorMaxNumerator   int64
	DistractorMaxDenominator int64

	// MaxDistractorAttempts caps random distractor draws before the
	// deterministic fallback kicks in.
	MaxDistractorAttempts int

	// Simplify questions scale a base fraction by a factor in
	// [SimplifyFactorMin, SimplifyFactorMax].
	SimplifyFactorMin int64
	SimplifyFactorMax int64
}

// DefaultConfig returns the standard candidate sets.
func DefaultConfig() Config {
	return Config{
		Operations:               []Operation{OpAdd, OpSubtract, OpSimplify},
		Numerators:               []int64{1, 2, 3, 4, 5, 7, 9, 11},
		Denominators:             []int64{2, 3, 4, 5, 6, 8, 10, 12},
		DistractorMaxNumerator:   20,
		DistractorMaxDenominator: 15,
		MaxDistractorAttempts:    50,
		SimplifyFactorMin:        2,
		SimplifyFactorMax:        5,
	}
}

// Validate reports every problem with the config.
func (c Config) Validate() error {
	var errs []error
	if len(c.Operations) == 0 {
		errs = append(errs, errors.New("operations must not be empty"))
	}
	for _, op := range c.Operations {
		if !op.Valid() {
			errs = append(errs, fmt.Errorf("unknown operation %q", op))
		}
	}
	if len(c.Numerators) == 0 {
		errs = append(errs, errors.New("numerators must not be empty"))
	}
	if len(c.Denominators) == 0 {
		errs = append(errs, errors.New("denominators must not be empty"))
	}
	for _, d := range c.Denominators {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("denominator %d must be positive", d))
		}
	}
	if c.DistractorMaxNumerator < 1 {
		errs = append(errs, errors.New("distractor max numerator must be at least 1"))
	}
	if c.DistractorMaxDenominator < 1 {
		errs = append(errs, errors.New("distractor max denominator must be at least 1"))
	}
	if c.MaxDistractorAttempts < 0 {
		errs = append(errs, errors.New("max distractor attempts must not be negative"))
	}
	if c.SimplifyFactorMin < 2 {
		errs = append(errs, errors.New("simplify factor min must be at least 2"))
	}
	if c.SimplifyFactorMax < c.SimplifyFactorMin {
		errs = append(errs, fmt.Errorf("simplify factor range [%d, %d] is inverted",
			c.SimplifyFactorMin, c.SimplifyFactorMax))
	}
	return errors.Join(errs...)
}
