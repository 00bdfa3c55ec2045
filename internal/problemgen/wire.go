package problemgen

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/fracmole/internal/fraction"
)

// FractionJSON is the wire form of a fraction.
type FractionJSON struct {
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

// QuestionJSON is the wire form of a question, for hosts that render
// questions outside this process.
type QuestionJSON struct {
	Operation     Operation      `json:"operation"`
	Operand1      FractionJSON   `json:"operand1"`
	Operand2      *FractionJSON  `json:"operand2,omitempty"`
	CorrectAnswer FractionJSON   `json:"correct_answer"`
	Options       []FractionJSON `json:"options"`
	CorrectIndex  int            `json:"correct_index"`
	QuestionText  string         `json:"question_text"`
}

func toFractionJSON(f fraction.Fraction) FractionJSON {
	return FractionJSON{Numerator: f.Num(), Denominator: f.Den()}
}

// ToJSON converts q to its wire form.
func (q *Question) ToJSON() QuestionJSON {
	out := QuestionJSON{
		Operation:     q.Operation,
		Operand1:      toFractionJSON(q.Operand1),
		CorrectAnswer: toFractionJSON(q.CorrectAnswer),
		Options:       make([]FractionJSON, len(q.Options)),
		CorrectIndex:  q.CorrectIndex(),
		QuestionText:  q.Text,
	}
	if q.Operand2 != nil {
		op2 := toFractionJSON(*q.Operand2)
		out.Operand2 = &op2
	}
	for i, opt := range q.Options {
		out.Options[i] = toFractionJSON(opt)
	}
	return out
}

// MarshalQuestion encodes q and checks the result against QuestionSchema.
func MarshalQuestion(q *Question) ([]byte, error) {
	raw, err := json.Marshal(q.ToJSON())
	if err != nil {
		return nil, fmt.Errorf("marshal question: %w", err)
	}
	if err := ValidateJSON(raw); err != nil {
		return nil, err
	}
	return raw, nil
}
