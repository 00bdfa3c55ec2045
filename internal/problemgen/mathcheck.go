package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhisek/fracmole/internal/fraction"
)

// MathCheckValidator recomputes the answer from the question text alone
// and compares it with CorrectAnswer. It also checks that the text agrees
// with the stored operands.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

var (
	// "a/b + c/d = ?" or "a/b - c/d = ?"
	fractionArithRe = regexp.MustCompile(`^(-?\d+)/(\d+) ([+-]) (-?\d+)/(\d+) = \?$`)

	// "Simplify: a/b = ?"
	simplifyRe = regexp.MustCompile(`^Simplify: (-?\d+)/(\d+) = \?$`)
)

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	computed, operands, err := computeAnswer(q.Text)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}

	if operands[0] != q.Operand1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("text shows %s but operand 1 is %s", operands[0], q.Operand1),
		}
	}
	if len(operands) == 2 && (q.Operand2 == nil || operands[1] != *q.Operand2) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("text shows %s but operand 2 does not match", operands[1]),
		}
	}
	if !fraction.Equals(computed, q.CorrectAnswer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but question claims %s", computed, q.CorrectAnswer),
		}
	}
	return nil
}

// computeAnswer extracts the expression from text and evaluates it.
// It returns the result and the operands read from the text.
func computeAnswer(text string) (fraction.Fraction, []fraction.Fraction, error) {
	if m := fractionArithRe.FindStringSubmatch(text); m != nil {
		a, err := parseParts(m[1], m[2])
		if err != nil {
			return fraction.Fraction{}, nil, err
		}
		b, err := parseParts(m[4], m[5])
		if err != nil {
			return fraction.Fraction{}, nil, err
		}
		if m[3] == "+" {
			return fraction.Add(a, b), []fraction.Fraction{a, b}, nil
		}
		return fraction.Subtract(a, b), []fraction.Fraction{a, b}, nil
	}

	if m := simplifyRe.FindStringSubmatch(text); m != nil {
		f, err := parseParts(m[1], m[2])
		if err != nil {
			return fraction.Fraction{}, nil, err
		}
		return fraction.Simplify(f), []fraction.Fraction{f}, nil
	}

	return fraction.Fraction{}, nil, fmt.Errorf("no fraction expression in %q", text)
}

func parseParts(numStr, denStr string) (fraction.Fraction, error) {
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(denStr, 10, 64)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("invalid denominator: %w", err)
	}
	return fraction.New(num, den)
}
