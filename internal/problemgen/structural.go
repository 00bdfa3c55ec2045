package problemgen

import "fmt"

// StructuralValidator checks that required fields are present and every
// fraction has a non-zero denominator.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "question text is empty"}
	}
	if !q.Operation.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unknown operation %q", q.Operation),
		}
	}
	if q.Operation == OpSimplify && q.Operand2 != nil {
		return &ValidationError{Validator: v.Name(), Message: "simplify question has a second operand"}
	}
	if q.Operation != OpSimplify && q.Operand2 == nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s question is missing its second operand", q.Operation),
		}
	}
	if len(q.Options) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected 4 options, got %d", len(q.Options)),
		}
	}

	if !q.Operand1.IsValid() {
		return &ValidationError{Validator: v.Name(), Message: "operand 1 has a zero denominator"}
	}
	if q.Operand2 != nil && !q.Operand2.IsValid() {
		return &ValidationError{Validator: v.Name(), Message: "operand 2 has a zero denominator"}
	}
	if !q.CorrectAnswer.IsValid() {
		return &ValidationError{Validator: v.Name(), Message: "correct answer has a zero denominator"}
	}
	for i, opt := range q.Options {
		if !opt.IsValid() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d has a zero denominator", i+1),
			}
		}
	}
	return nil
}
