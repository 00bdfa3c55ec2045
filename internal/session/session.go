package session

import (
	"time"

	"github.com/abhisek/fracmole/internal/fraction"
	"github.com/abhisek/fracmole/internal/problemgen"
)

// StartRound shows q as the next round's question. It is a no-op once the
// game is finished.
func StartRound(state *SessionState, q *problemgen.Question, now time.Time) {
	if state.Phase == PhaseFinished {
		return
	}
	state.Round++
	state.CurrentQuestion = q
	state.QuestionStartTime = now
	state.Phase = PhaseAsking
}

// HandleChoice scores a whack on option index (0-based).
func HandleChoice(state *SessionState, option int, now time.Time) (*RoundResult, error) {
	if state.Phase != PhaseAsking || state.CurrentQuestion == nil {
		return nil, ErrNotAsking
	}
	q := state.CurrentQuestion
	if option < 0 || option >= len(q.Options) {
		return nil, ErrInvalidOption
	}
	chosen := q.Options[option]
	correct := problemgen.CheckAnswer(chosen, q.CorrectAnswer)
	return recordRound(state, RoundResult{Chosen: &chosen, Correct: correct}, now), nil
}

// HandleTyped scores a typed answer such as "5/6". Input that does not
// parse as a fraction counts as a miss.
func HandleTyped(state *SessionState, input string, now time.Time) (*RoundResult, error) {
	if state.Phase != PhaseAsking || state.CurrentQuestion == nil {
		return nil, ErrNotAsking
	}
	res := RoundResult{Input: input}
	if f, err := fraction.Parse(input); err == nil {
		res.Chosen = &f
		res.Correct = problemgen.CheckAnswer(f, state.CurrentQuestion.CorrectAnswer)
	}
	return recordRound(state, res, now), nil
}

// CheckTimeout records a timed-out round when the clock has run out.
// Timeouts leave the score unchanged. Returns true if the round timed out.
func CheckTimeout(state *SessionState, now time.Time) bool {
	if state.Phase != PhaseAsking {
		return false
	}
	if Remaining(state, now) > 0 {
		return false
	}
	recordRound(state, RoundResult{TimedOut: true}, now)
	return true
}

// Remaining returns the time left in the current round.
func Remaining(state *SessionState, now time.Time) time.Duration {
	if state.Phase != PhaseAsking {
		return 0
	}
	left := state.Config.RoundTime - now.Sub(state.QuestionStartTime)
	if left < 0 {
		return 0
	}
	return left
}

// AdvanceRound leaves the feedback phase. It returns false and finishes
// the game when the last round has been played.
func AdvanceRound(state *SessionState, now time.Time) bool {
	if state.Phase == PhaseFinished {
		return false
	}
	state.CurrentQuestion = nil
	if state.Round >= state.Config.Rounds {
		Finish(state, now)
		return false
	}
	state.Phase = PhaseWaiting
	return true
}

// Finish ends the game.
func Finish(state *SessionState, now time.Time) {
	state.Phase = PhaseFinished
	state.CurrentQuestion = nil
	state.EndTime = now
}

func recordRound(state *SessionState, res RoundResult, now time.Time) *RoundResult {
	res.Number = state.Round
	res.Question = state.CurrentQuestion
	res.Elapsed = now.Sub(state.QuestionStartTime)

	switch {
	case res.TimedOut:
	case res.Correct:
		res.Delta = state.Config.CorrectPoints
		state.TotalCorrect++
	default:
		res.Delta = -state.Config.WrongPoints
	}

	before := state.Score
	state.Score = max(0, state.Score+res.Delta)
	res.Delta = state.Score - before

	state.Results = append(state.Results, res)
	state.Phase = PhaseFeedback
	return state.LastResult()
}
