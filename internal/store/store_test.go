package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/fracmole/internal/fraction"
	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"games", "game_rounds"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestOpenTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

// testSummary builds a three-round game: hit, miss, timeout.
func testSummary(id string, finished time.Time, score int) *session.Summary {
	op2 := fraction.MustNew(1, 3)
	q := &problemgen.Question{
		Operation:     problemgen.OpAdd,
		Operand1:      fraction.MustNew(1, 2),
		Operand2:      &op2,
		CorrectAnswer: fraction.MustNew(5, 6),
		Text:          "1/2 + 1/3 = ?",
	}
	right := fraction.MustNew(5, 6)
	wrong := fraction.MustNew(2, 5)

	return &session.Summary{
		SessionID:  id,
		Mode:       session.ModeMoles,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Score:      score,
		MaxScore:   9,
		Rounds:     3,
		Correct:    1,
		Results: []session.RoundResult{
			{Number: 1, Question: q, Chosen: &right, Correct: true, Elapsed: 1500 * time.Millisecond, Delta: 3},
			{Number: 2, Question: q, Chosen: &wrong, Elapsed: 2 * time.Second, Delta: -1},
			{Number: 3, Question: q, TimedOut: true, Elapsed: 5 * time.Second},
		},
	}
}

func TestSaveGameAndRounds(t *testing.T) {
	s := openTestStore(t)
	repo := s.GameRepo()
	ctx := context.Background()

	finished := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.SaveGame(ctx, GameFromSummary(testSummary("game-1", finished, 2))); err != nil {
		t.Fatalf("save: %v", err)
	}

	games, err := repo.RecentGames(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d, want 1", len(games))
	}
	g := games[0]
	if g.ID != "game-1" || g.Score != 2 || g.MaxScore != 9 || g.Rounds != 3 || g.Correct != 1 {
		t.Errorf("game = %+v", g)
	}
	if g.Mode != "moles" || g.Quit {
		t.Errorf("mode = %q, quit = %v", g.Mode, g.Quit)
	}
	if !g.FinishedAt.Equal(finished) || !g.StartedAt.Equal(finished.Add(-time.Minute)) {
		t.Errorf("times = %s .. %s", g.StartedAt, g.FinishedAt)
	}

	rounds, err := repo.GameRounds(ctx, "game-1")
	if err != nil {
		t.Fatalf("rounds: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("rounds = %d, want 3", len(rounds))
	}
	want := []RoundRecord{
		{1, "1/2 + 1/3 = ?", "5/6", "5/6", true, false, 1500},
		{2, "1/2 + 1/3 = ?", "5/6", "2/5", false, false, 2000},
		{3, "1/2 + 1/3 = ?", "5/6", "", false, true, 5000},
	}
	for i, rd := range rounds {
		if rd != want[i] {
			t.Errorf("round %d = %+v, want %+v", i+1, rd, want[i])
		}
	}
}

func TestSaveGameGeneratesID(t *testing.T) {
	s := openTestStore(t)
	repo := s.GameRepo()
	ctx := context.Background()

	rec := GameFromSummary(testSummary("", time.Now(), 3))
	if err := repo.SaveGame(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated ID")
	}
}

func TestSaveGameDuplicateRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.GameRepo()
	ctx := context.Background()

	rec := GameFromSummary(testSummary("dup", time.Now(), 3))
	if err := repo.SaveGame(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveGame(ctx, rec); err == nil {
		t.Fatal("expected duplicate ID error")
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM game_rounds").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("rounds = %d, want 3", n)
	}
}

func TestRecentGamesNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.GameRepo()
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.SaveGame(ctx, GameFromSummary(testSummary(id, base.Add(time.Duration(i)*time.Hour), i))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	games, err := repo.RecentGames(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(games) != 2 || games[0].ID != "c" || games[1].ID != "b" {
		t.Errorf("games = %+v", games)
	}

	games, err = repo.RecentGames(ctx, 0)
	if err != nil || games != nil {
		t.Errorf("limit 0: games = %v, err = %v", games, err)
	}
}

func TestTotalsAndReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.GameRepo()
	ctx := context.Background()

	empty, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("empty totals = %+v", empty)
	}
	if empty.Accuracy() != 0 {
		t.Errorf("empty accuracy = %v", empty.Accuracy())
	}

	now := time.Now()
	for i, score := range []int{2, 6} {
		id := []string{"x", "y"}[i]
		if err := repo.SaveGame(ctx, GameFromSummary(testSummary(id, now, score))); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	tot, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if tot.Games != 2 || tot.BestScore != 6 || tot.AverageScore != 4 || tot.Rounds != 6 || tot.Correct != 2 {
		t.Errorf("totals = %+v", tot)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	tot, err = repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals after reset: %v", err)
	}
	if tot.Games != 0 {
		t.Errorf("games after reset = %d", tot.Games)
	}
}

func TestGameFromSummaryTypedInput(t *testing.T) {
	sum := testSummary("typed", time.Now(), 0)
	sum.Mode = session.ModeTyped
	sum.Results[1].Chosen = nil
	sum.Results[1].Input = "abc"

	rec := GameFromSummary(sum)
	if rec.Mode != "typed" {
		t.Errorf("mode = %q", rec.Mode)
	}
	if got := rec.RoundDetails[1].ChosenAnswer; got != "abc" {
		t.Errorf("chosen = %q, want raw input", got)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("FRACMOLE_DB", filepath.Join(dir, "env", "game.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != filepath.Join(dir, "env", "game.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("FRACMOLE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if p != filepath.Join(dir, "fracmole", "fracmole.db") {
		t.Errorf("path = %q", p)
	}
}
