package problemgen

import (
	"fmt"

	"github.com/abhisek/fracmole/internal/fraction"
)

// OptionsValidator checks the option invariants: the answer is in lowest
// terms, exactly one option equals it, and the distractors are pairwise
// distinct in value. Run after StructuralValidator.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question) *ValidationError {
	if !q.CorrectAnswer.IsLowestTerms() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %s is not in lowest terms", q.CorrectAnswer),
		}
	}

	var distractors []fraction.Fraction
	correct := 0
	for _, opt := range q.Options {
		if fraction.Equals(opt, q.CorrectAnswer) {
			correct++
			continue
		}
		distractors = append(distractors, opt)
	}
	if correct != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%d options equal the answer %s, want 1", correct, q.CorrectAnswer),
		}
	}

	for i := range distractors {
		for j := i + 1; j < len(distractors); j++ {
			if fraction.Equals(distractors[i], distractors[j]) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("duplicate distractors %s and %s", distractors[i], distractors[j]),
				}
			}
		}
	}
	return nil
}
