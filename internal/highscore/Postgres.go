package highscore

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
    id TEXT PRIMARY KEY,
    player_name TEXT NOT NULL,
    points INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_high_scores_points ON ` + tableName + `(points DESC);
`

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Debug("High scores table ensured.", "backend", "postgres")
	return &PostgresStore{pool: pool}, nil
}

// Save inserts a finished run.
func (s *PostgresStore) Save(ctx context.Context, score Score) error {
	score, err := normalize(score)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+tableName+` (id, player_name, points, created_at) VALUES ($1, $2, $3, $4)`,
		score.ID, score.PlayerName, score.Points, score.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", score.PlayerName, err)
	}
	return nil
}

// Top returns a page of runs, best first.
func (s *PostgresStore) Top(ctx context.Context, limit, offset int) ([]Score, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_name, points, created_at
		 FROM `+tableName+`
		 ORDER BY points DESC, created_at ASC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}

	scores, err := pgx.CollectRows(rows, scanScore)
	if err != nil {
		return nil, fmt.Errorf("failed to scan high scores: %w", err)
	}
	return scores, nil
}

// Count returns the number of recorded runs.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+tableName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanScore(row pgx.CollectableRow) (Score, error) {
	var score Score
	err := row.Scan(&score.ID, &score.PlayerName, &score.Points, &score.CreatedAt)
	return score, err
}
