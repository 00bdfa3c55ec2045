package game

import (
	"time"

	"github.com/abhisek/fracmole/internal/problemgen"
)

// questionReadyMsg is sent when the next question has been generated.
type questionReadyMsg struct {
	Question *problemgen.Question
	Err      error
}

// timerTickMsg is sent every tick to update the countdown.
type timerTickMsg time.Time

// feedbackDoneMsg ends the feedback display for the given round.
type feedbackDoneMsg struct {
	Round int
}
