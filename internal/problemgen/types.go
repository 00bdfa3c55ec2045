package problemgen

import "github.com/abhisek/fracmole/internal/fraction"

// Operation is the kind of fraction exercise a question asks for.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpSimplify Operation = "simplify"
)

// AllOperations lists every supported operation in draw order.
var AllOperations = []Operation{OpAdd, OpSubtract, OpSimplify}

// Symbol returns the operator shown in question text, or "" for simplify.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	default:
		return ""
	}
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpSimplify:
		return true
	}
	return false
}

// Question is one generated round: the prompt, the correct answer and
// four shuffled options.
type Question struct {
	// Operation is the exercise kind.
	Operation Operation

	// Operand1 is the left operand for add/subtract, or the unsimplified
	// fraction shown for simplify.
	Operand1 fraction.Fraction

	// Operand2 is the right operand. Nil for simplify.
	Operand2 *fraction.Fraction

	// CorrectAnswer is always in lowest terms.
	CorrectAnswer fraction.Fraction

	// Options holds exactly 4 fractions. One equals CorrectAnswer, the
	// other three are distinct distractors.
	Options []fraction.Fraction

	// Text is the prompt, e.g. "1/2 + 1/3 = ?" or "Simplify: 4/8 = ?".
	Text string
}

// CorrectIndex returns the index of the option equal to CorrectAnswer,
// or -1 if none is.
func (q *Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if fraction.Equals(opt, q.CorrectAnswer) {
			return i
		}
	}
	return -1
}

// OptionStrings returns the options formatted as "a/b".
func (q *Question) OptionStrings() []string {
	out := make([]string, len(q.Options))
	for i, opt := range q.Options {
		out[i] = opt.String()
	}
	return out
}
