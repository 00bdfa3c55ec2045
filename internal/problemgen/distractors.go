package problemgen

import (
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/fraction"
)

const distractorCount = 3

// distractorSet accumulates simplified wrong answers, rejecting any value
// equal to the answer or to an already accepted distractor.
type distractorSet struct {
	answer   fraction.Fraction
	accepted []fraction.Fraction
}

func (s *distractorSet) full() bool { return len(s.accepted) == distractorCount }

func (s *distractorSet) offer(f fraction.Fraction) bool {
	f = fraction.Simplify(f)
	if fraction.Equals(f, s.answer) {
		return false
	}
	for _, a := range s.accepted {
		if fraction.Equals(a, f) {
			return false
		}
	}
	s.accepted = append(s.accepted, f)
	return true
}

// distractors returns three wrong answers for answer. Random draws come
// first; when MaxDistractorAttempts is exhausted, small offsets of the
// answer are tried and finally whole numbers k/1.
func (g *Generator) distractors(answer fraction.Fraction) []fraction.Fraction {
	set := &distractorSet{answer: answer}

	attempts := 0
	for !set.full() && attempts < g.cfg.MaxDistractorAttempts {
		attempts++
		num := 1 + g.rng.Int64N(g.cfg.DistractorMaxNumerator)
		den := 1 + g.rng.Int64N(g.cfg.DistractorMaxDenominator)
		set.offer(fraction.MustNew(num, den))
	}
	if set.full() {
		return set.accepted
	}

	g.logger.Debug("distractor draws exhausted, using offsets",
		zap.Stringer("answer", answer),
		zap.Int("attempts", attempts),
		zap.Int("accepted", len(set.accepted)))

	for _, f := range perturbations(answer) {
		if set.full() {
			return set.accepted
		}
		set.offer(f)
	}

	// At most four values are excluded, so this ends within seven steps.
	for k := int64(1); !set.full(); k++ {
		set.offer(fraction.MustNew(k, 1))
	}
	return set.accepted
}

// perturbations lists answer with ±1..3 applied to its numerator and
// denominator, skipping any candidate with a non-positive part.
func perturbations(answer fraction.Fraction) []fraction.Fraction {
	n, d := answer.Num(), answer.Den()
	var out []fraction.Fraction
	add := func(num, den int64) {
		if num > 0 && den > 0 {
			out = append(out, fraction.MustNew(num, den))
		}
	}
	for k := int64(1); k <= 3; k++ {
		add(n+k, d)
		add(n-k, d)
		add(n, d+k)
		add(n, d-k)
	}
	return out
}
