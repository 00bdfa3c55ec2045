package problemgen

import (
	"strconv"
	"strings"

	"github.com/abhisek/fracmole/internal/fraction"
)

// CheckAnswer reports whether selected has the same value as correct.
// Equivalent fractions are accepted (e.g., 2/4 matches 1/2).
func CheckAnswer(selected, correct fraction.Fraction) bool {
	return fraction.Equals(selected, correct)
}

// Format renders f as "a/b".
func Format(f fraction.Fraction) string {
	return fraction.Format(f)
}

// CheckChoice checks a learner's pick against the question's options.
// The choice is a 1-based index ("1".."4") or the text of an option.
func CheckChoice(choice string, q *Question) bool {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return false
	}
	if idx, err := strconv.Atoi(choice); err == nil && !strings.Contains(choice, "/") {
		if idx < 1 || idx > len(q.Options) {
			return false
		}
		return CheckAnswer(q.Options[idx-1], q.CorrectAnswer)
	}
	return CheckTyped(choice, q)
}

// CheckTyped parses a typed answer such as "5/6" and compares it to the
// correct answer. Unparseable input and zero denominators are wrong.
func CheckTyped(input string, q *Question) bool {
	f, err := fraction.Parse(input)
	if err != nil {
		return false
	}
	return CheckAnswer(f, q.CorrectAnswer)
}
