package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/fracmole/internal/fraction"
	"github.com/abhisek/fracmole/internal/problemgen"
)

var t0 = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// testQuestion is "1/2 + 1/3 = ?" with the answer at option index 1.
func testQuestion() *problemgen.Question {
	op2 := fraction.MustNew(1, 3)
	return &problemgen.Question{
		Operation:     problemgen.OpAdd,
		Operand1:      fraction.MustNew(1, 2),
		Operand2:      &op2,
		CorrectAnswer: fraction.MustNew(5, 6),
		Options: []fraction.Fraction{
			fraction.MustNew(2, 5),
			fraction.MustNew(5, 6),
			fraction.MustNew(7, 3),
			fraction.MustNew(1, 4),
		},
		Text: "1/2 + 1/3 = ?",
	}
}

func testState() *SessionState {
	return NewSessionState(DefaultConfig(), "test-session-id", t0)
}

func TestHandleChoice_Correct(t *testing.T) {
	state := testState()
	StartRound(state, testQuestion(), t0)

	res, err := HandleChoice(state, 1, t0.Add(2*time.Second))
	if err != nil {
		t.Fatalf("HandleChoice: %v", err)
	}
	if !res.Correct || res.Delta != 3 {
		t.Errorf("result = %+v, want correct with delta 3", res)
	}
	if state.Score != 3 || state.TotalCorrect != 1 {
		t.Errorf("score = %d, correct = %d, want 3/1", state.Score, state.TotalCorrect)
	}
	if res.Elapsed != 2*time.Second {
		t.Errorf("elapsed = %s, want 2s", res.Elapsed)
	}
	if state.Phase != PhaseFeedback {
		t.Errorf("phase = %v, want feedback", state.Phase)
	}
}

func TestHandleChoice_WrongFloorsAtZero(t *testing.T) {
	state := testState()
	StartRound(state, testQuestion(), t0)

	res, err := HandleChoice(state, 0, t0)
	if err != nil {
		t.Fatalf("HandleChoice: %v", err)
	}
	if res.Correct {
		t.Error("option 0 should be wrong")
	}
	if state.Score != 0 || res.Delta != 0 {
		t.Errorf("score = %d, delta = %d, want 0/0", state.Score, res.Delta)
	}
}

func TestHandleChoice_WrongAfterCorrect(t *testing.T) {
	state := testState()
	StartRound(state, testQuestion(), t0)
	HandleChoice(state, 1, t0)
	AdvanceRound(state, t0)
	StartRound(state, testQuestion(), t0)

	res, _ := HandleChoice(state, 3, t0)
	if state.Score != 2 || res.Delta != -1 {
		t.Errorf("score = %d, delta = %d, want 2/-1", state.Score, res.Delta)
	}
}

func TestHandleChoice_Errors(t *testing.T) {
	state := testState()
	if _, err := HandleChoice(state, 0, t0); !errors.Is(err, ErrNotAsking) {
		t.Errorf("before start: err = %v, want ErrNotAsking", err)
	}

	StartRound(state, testQuestion(), t0)
	if _, err := HandleChoice(state, 4, t0); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option 4: err = %v, want ErrInvalidOption", err)
	}
	if _, err := HandleChoice(state, -1, t0); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option -1: err = %v, want ErrInvalidOption", err)
	}

	HandleChoice(state, 1, t0)
	if _, err := HandleChoice(state, 1, t0); !errors.Is(err, ErrNotAsking) {
		t.Errorf("second answer: err = %v, want ErrNotAsking", err)
	}
}

func TestHandleTyped(t *testing.T) {
	tests := []struct {
		input     string
		correct   bool
		hasChosen bool
	}{
		{"5/6", true, true},
		{"10/12", true, true},
		{"1/6", false, true},
		{"abc", false, false},
		{"5/0", false, false},
	}
	for _, tc := range tests {
		state := testState()
		StartRound(state, testQuestion(), t0)
		res, err := HandleTyped(state, tc.input, t0)
		if err != nil {
			t.Fatalf("HandleTyped(%q): %v", tc.input, err)
		}
		if res.Correct != tc.correct {
			t.Errorf("HandleTyped(%q) correct = %v, want %v", tc.input, res.Correct, tc.correct)
		}
		if (res.Chosen != nil) != tc.hasChosen {
			t.Errorf("HandleTyped(%q) chosen = %v", tc.input, res.Chosen)
		}
		if res.Input != tc.input {
			t.Errorf("Input = %q, want %q", res.Input, tc.input)
		}
	}
}

func TestCheckTimeout(t *testing.T) {
	state := testState()
	StartRound(state, testQuestion(), t0)

	if CheckTimeout(state, t0.Add(4*time.Second)) {
		t.Fatal("should not time out after 4s")
	}
	if got := Remaining(state, t0.Add(4*time.Second)); got != time.Second {
		t.Errorf("Remaining = %s, want 1s", got)
	}
	if !CheckTimeout(state, t0.Add(5*time.Second)) {
		t.Fatal("should time out after 5s")
	}

	res := state.LastResult()
	if !res.TimedOut || res.Correct || res.Chosen != nil {
		t.Errorf("timeout result = %+v", res)
	}
	if state.Score != 0 {
		t.Errorf("timeout changed score to %d", state.Score)
	}
	if CheckTimeout(state, t0.Add(10*time.Second)) {
		t.Error("timeout recorded twice")
	}
	if Remaining(state, t0.Add(10*time.Second)) != 0 {
		t.Error("Remaining should be 0 outside the asking phase")
	}
}

func TestFullGame(t *testing.T) {
	state := testState()
	now := t0
	rounds := 0
	for {
		StartRound(state, testQuestion(), now)
		rounds++
		// Alternate: correct, wrong, timeout.
		switch rounds % 3 {
		case 1:
			HandleChoice(state, 1, now.Add(time.Second))
		case 2:
			HandleChoice(state, 0, now.Add(time.Second))
		case 0:
			CheckTimeout(state, now.Add(6*time.Second))
		}
		now = now.Add(7 * time.Second)
		if !AdvanceRound(state, now) {
			break
		}
	}

	if rounds != 10 {
		t.Fatalf("played %d rounds, want 10", rounds)
	}
	if state.Phase != PhaseFinished {
		t.Errorf("phase = %v, want finished", state.Phase)
	}
	// Rounds 1,4,7,10 correct (+12), rounds 2,5,8 wrong (-3).
	if state.Score != 9 {
		t.Errorf("score = %d, want 9", state.Score)
	}

	sum := BuildSummary(state)
	if sum.MaxScore != 30 || sum.Correct != 4 || sum.Rounds != 10 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Duration() != 70*time.Second {
		t.Errorf("duration = %s, want 70s", sum.Duration())
	}

	StartRound(state, testQuestion(), now)
	if state.Phase != PhaseFinished || state.Round != 10 {
		t.Error("StartRound should be a no-op after finish")
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		score, max int
		want       string
	}{
		{30, 30, "Excellent! You are a fraction champion!"},
		{27, 30, "Excellent! You are a fraction champion!"},
		{21, 30, "Very good! You know your fractions well."},
		{15, 30, "Not bad! Keep practising."},
		{14, 30, "More practice needed, but you'll get there!"},
		{0, 0, "More practice needed, but you'll get there!"},
	}
	for _, tc := range tests {
		if got := Verdict(tc.score, tc.max); got != tc.want {
			t.Errorf("Verdict(%d, %d) = %q, want %q", tc.score, tc.max, got, tc.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := Config{Rounds: 0, RoundTime: 0, CorrectPoints: 0, WrongPoints: -1, Mode: "mouse"}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error")
	}
	if got := DefaultConfig().MaxScore(); got != 30 {
		t.Errorf("MaxScore = %d, want 30", got)
	}
}
