package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ptcgsim/ptcg-server-go/internal/sim"
)

const gamesSchema = `
CREATE TABLE IF NOT EXISTS games (
	id          TEXT PRIMARY KEY,
	player_one  TEXT NOT NULL,
	player_two  TEXT NOT NULL,
	result      TEXT NOT NULL,
	winner      SMALLINT NOT NULL,
	turns       INT NOT NULL,
	steps       INT NOT NULL,
	duration_ms BIGINT NOT NULL,
	checksum    TEXT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS games_finished_at_idx ON games (finished_at DESC);
`

// GameRecord is one persisted finished game.
type GameRecord struct {
	ID         string
	PlayerOne  string
	PlayerTwo  string
	Result     string
	Winner     int
	Turns      int
	Steps      int
	Duration   time.Duration
	Checksum   string
	FinishedAt time.Time
}

// GameRepository persists finished games and their outcomes.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates the repository on a shared DB.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// EnsureSchema creates the games table if it does not exist.
func (r *GameRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, gamesSchema); err != nil {
		return fmt.Errorf("create games schema: %w", err)
	}
	return nil
}

// SaveOutcome records one finished game. Replays of an already-recorded
// game id are ignored.
func (r *GameRepository) SaveOutcome(ctx context.Context, players [2]string, o *sim.Outcome) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO games (
			id, player_one, player_two, result, winner,
			turns, steps, duration_ms, checksum
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`,
		o.GameID,
		players[0],
		players[1],
		o.Result.String(),
		o.WinnerID,
		o.Turns,
		o.Steps,
		o.Duration.Milliseconds(),
		o.Checksum,
	)
	if err != nil {
		return fmt.Errorf("save outcome %s: %w", o.GameID, err)
	}
	return nil
}

// ListRecent returns the most recently finished games, newest first.
func (r *GameRepository) ListRecent(ctx context.Context, limit int) ([]*GameRecord, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, player_one, player_two, result, winner,
		       turns, steps, duration_ms, checksum, finished_at
		FROM games
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent games: %w", err)
	}
	defer rows.Close()

	var out []*GameRecord
	for rows.Next() {
		var rec GameRecord
		var durationMs int64
		if err := rows.Scan(
			&rec.ID, &rec.PlayerOne, &rec.PlayerTwo, &rec.Result, &rec.Winner,
			&rec.Turns, &rec.Steps, &durationMs, &rec.Checksum, &rec.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game record: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// CountGames returns the total number of persisted games.
func (r *GameRepository) CountGames(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
