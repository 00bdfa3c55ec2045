package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fracmole/internal/session"
)

// GameRecord is one finished game.
type GameRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Mode       string
	Score      int
	MaxScore   int
	Rounds     int
	Correct    int
	Quit       bool

	// RoundDetails is filled by SaveGame callers and by GameRounds.
	// RecentGames leaves it empty.
	RoundDetails []RoundRecord
}

// RoundRecord is one answered (or timed-out) round of a game.
type RoundRecord struct {
	Number        int
	QuestionText  string
	CorrectAnswer string
	// ChosenAnswer is the whacked option or typed text. Empty on timeout.
	ChosenAnswer string
	Correct      bool
	TimedOut     bool
	ElapsedMs    int64
}

// Totals aggregates every stored game.
type Totals struct {
	Games        int
	BestScore    int
	AverageScore float64
	Rounds       int
	Correct      int
}

// Accuracy is the percentage of rounds answered correctly.
func (t Totals) Accuracy() float64 {
	if t.Rounds == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Rounds) * 100
}

// GameRepo persists finished games.
type GameRepo interface {
	// SaveGame stores a game and its rounds in one transaction.
	SaveGame(ctx context.Context, game *GameRecord) error

	// RecentGames returns up to limit games, newest first.
	RecentGames(ctx context.Context, limit int) ([]GameRecord, error)

	// GameRounds returns the rounds of one game in play order.
	GameRounds(ctx context.Context, gameID string) ([]RoundRecord, error)

	// Totals aggregates all games.
	Totals(ctx context.Context) (Totals, error)

	// Reset deletes every game.
	Reset(ctx context.Context) error
}

// GameFromSummary converts a finished game into a record ready to save.
func GameFromSummary(sum *session.Summary) *GameRecord {
	g := &GameRecord{
		ID:         sum.SessionID,
		StartedAt:  sum.StartedAt,
		FinishedAt: sum.FinishedAt,
		Mode:       string(sum.Mode),
		Score:      sum.Score,
		MaxScore:   sum.MaxScore,
		Rounds:     sum.Rounds,
		Correct:    sum.Correct,
		Quit:       sum.Quit,
	}
	for _, r := range sum.Results {
		rec := RoundRecord{
			Number:    r.Number,
			Correct:   r.Correct,
			TimedOut:  r.TimedOut,
			ElapsedMs: r.Elapsed.Milliseconds(),
		}
		if r.Question != nil {
			rec.QuestionText = r.Question.Text
			rec.CorrectAnswer = r.Question.CorrectAnswer.String()
		}
		switch {
		case r.Input != "":
			rec.ChosenAnswer = r.Input
		case r.Chosen != nil:
			rec.ChosenAnswer = r.Chosen.String()
		}
		g.RoundDetails = append(g.RoundDetails, rec)
	}
	return g
}

// gameRepo implements GameRepo with raw SQL.
type gameRepo struct {
	db *sql.DB
}

func (r *gameRepo) SaveGame(ctx context.Context, game *GameRecord) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, started_at, finished_at, mode, score, max_score, rounds, correct, quit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.StartedAt.UnixMilli(), game.FinishedAt.UnixMilli(), game.Mode,
		game.Score, game.MaxScore, game.Rounds, game.Correct, game.Quit,
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	for _, rd := range game.RoundDetails {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO game_rounds (game_id, number, question_text, correct_answer, chosen_answer, correct, timed_out, elapsed_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			game.ID, rd.Number, rd.QuestionText, rd.CorrectAnswer, rd.ChosenAnswer,
			rd.Correct, rd.TimedOut, rd.ElapsedMs,
		)
		if err != nil {
			return fmt.Errorf("save round %d: %w", rd.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game: %w", err)
	}
	return nil
}

func (r *gameRepo) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, mode, score, max_score, rounds, correct, quit
		FROM games ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var (
			g                   GameRecord
			startedMs, finished int64
		)
		if err := rows.Scan(&g.ID, &startedMs, &finished, &g.Mode,
			&g.Score, &g.MaxScore, &g.Rounds, &g.Correct, &g.Quit); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.StartedAt = time.UnixMilli(startedMs)
		g.FinishedAt = time.UnixMilli(finished)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func (r *gameRepo) GameRounds(ctx context.Context, gameID string) ([]RoundRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT number, question_text, correct_answer, chosen_answer, correct, timed_out, elapsed_ms
		FROM game_rounds WHERE game_id = ? ORDER BY number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		var rd RoundRecord
		if err := rows.Scan(&rd.Number, &rd.QuestionText, &rd.CorrectAnswer, &rd.ChosenAnswer,
			&rd.Correct, &rd.TimedOut, &rd.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return rounds, nil
}

func (r *gameRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
			COALESCE(SUM(rounds), 0), COALESCE(SUM(correct), 0)
		FROM games`,
	).Scan(&t.Games, &t.BestScore, &t.AverageScore, &t.Rounds, &t.Correct)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *gameRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM game_rounds`, `DELETE FROM games`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return tx.Commit()
}
