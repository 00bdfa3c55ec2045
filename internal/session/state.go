package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/fracmole/internal/fraction"
	"github.com/abhisek/fracmole/internal/problemgen"
)

// Mode selects how the player answers.
type Mode string

const (
	// ModeMoles means the player whacks one of four option moles.
	ModeMoles Mode = "moles"

	// ModeTyped means the player types the answer as "a/b".
	ModeTyped Mode = "typed"
)

// Config holds the rules of a game.
type Config struct {
	Rounds        int
	RoundTime     time.Duration
	CorrectPoints int
	WrongPoints   int
	Mode          Mode
}

// DefaultConfig returns the standard rules: 10 rounds of 5
// seconds, +3 for a hit, -1 for a miss.
func DefaultConfig() Config {
	return Config{
		Rounds:        10,
		RoundTime:     5 * time.Second,
		CorrectPoints: 3,
		WrongPoints:   1,
		Mode:          ModeMoles,
	}
}

// MaxScore is the score for a perfect game.
func (c Config) MaxScore() int {
	return c.Rounds * c.CorrectPoints
}

// Validate reports every problem with the config.
func (c Config) Validate() error {
	var errs []error
	if c.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be at least 1, got %d", c.Rounds))
	}
	if c.RoundTime <= 0 {
		errs = append(errs, fmt.Errorf("round time must be positive, got %s", c.RoundTime))
	}
	if c.CorrectPoints < 1 {
		errs = append(errs, fmt.Errorf("correct points must be at least 1, got %d", c.CorrectPoints))
	}
	if c.WrongPoints < 0 {
		errs = append(errs, fmt.Errorf("wrong points must not be negative, got %d", c.WrongPoints))
	}
	if c.Mode != ModeMoles && c.Mode != ModeTyped {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeMoles, ModeTyped, c.Mode))
	}
	return errors.Join(errs...)
}

// Phase is the current phase of a game.
type Phase int

const (
	PhaseWaiting  Phase = iota // Waiting for the next question
	PhaseAsking                // Question shown, clock running
	PhaseFeedback              // Round scored, showing the outcome
	PhaseFinished              // All rounds played
)

var (
	// ErrNotAsking is returned when an answer arrives outside PhaseAsking.
	ErrNotAsking = errors.New("session: no question is waiting for an answer")

	// ErrInvalidOption is returned for an option index outside the options.
	ErrInvalidOption = errors.New("session: option out of range")
)

// RoundResult records the outcome of one round.
type RoundResult struct {
	Number   int
	Question *problemgen.Question

	// Chosen is the picked or typed fraction. Nil on timeout or
	// unparseable typed input.
	Chosen *fraction.Fraction

	// Input is the raw typed text in ModeTyped.
	Input string

	Correct  bool
	TimedOut bool
	Elapsed  time.Duration
	Delta    int
}

// SessionState tracks the runtime state of one game.
type SessionState struct {
	// SessionID is the UUID for this game.
	SessionID string

	Config Config

	Phase Phase

	// Round is the 1-based number of the current round (0 before start).
	Round int

	// Score never drops below zero.
	Score int

	// TotalCorrect is the count of correct answers so far.
	TotalCorrect int

	// CurrentQuestion is the active question (nil between rounds).
	CurrentQuestion *problemgen.Question

	// QuestionStartTime is when the current question was shown.
	QuestionStartTime time.Time

	StartTime time.Time
	EndTime   time.Time

	// Results holds one entry per finished round.
	Results []RoundResult

	// ShowingQuitConfirm is true when the quit confirmation dialog is displayed.
	ShowingQuitConfirm bool

	// Quit is set when the player ended the game early.
	Quit bool
}

// NewSessionState creates a game that has not started yet.
func NewSessionState(cfg Config, sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Config:    cfg,
		Phase:     PhaseWaiting,
		StartTime: now,
		Results:   make([]RoundResult, 0, cfg.Rounds),
	}
}

// LastResult returns the most recent round result, or nil.
func (s *SessionState) LastResult() *RoundResult {
	if len(s.Results) == 0 {
		return nil
	}
	return &s.Results[len(s.Results)-1]
}
