package session

import "time"

// Summary holds the data displayed on the summary screen and persisted
// at the end of a game.
type Summary struct {
	SessionID  string
	Mode       Mode
	StartedAt  time.Time
	FinishedAt time.Time
	Score      int
	MaxScore   int
	Rounds     int
	Correct    int
	Quit       bool
	Results    []RoundResult
}

// Duration is the wall time of the game.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Percent is Score as a percentage of MaxScore.
func (s *Summary) Percent() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.MaxScore) * 100
}

// Verdict returns the closing message for the final score.
func (s *Summary) Verdict() string {
	return Verdict(s.Score, s.MaxScore)
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *SessionState) *Summary {
	results := make([]RoundResult, len(state.Results))
	copy(results, state.Results)

	return &Summary{
		SessionID:  state.SessionID,
		Mode:       state.Config.Mode,
		StartedAt:  state.StartTime,
		FinishedAt: state.EndTime,
		Score:      state.Score,
		MaxScore:   state.Config.MaxScore(),
		Rounds:     len(state.Results),
		Correct:    state.TotalCorrect,
		Quit:       state.Quit,
		Results:    results,
	}
}

// Verdict maps a score to one of four messages by percentage of max.
func Verdict(score, maxScore int) string {
	var pct float64
	if maxScore > 0 {
		pct = float64(score) / float64(maxScore) * 100
	}
	switch {
	case pct >= 90:
		return "Excellent! You are a fraction champion!"
	case pct >= 70:
		return "Very good! You know your fractions well."
	case pct >= 50:
		return "Not bad! Keep practising."
	default:
		return "More practice needed, but you'll get there!"
	}
}
