package highscore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the default single-file score table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// sqlite serialises writers anyway
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// createTable creates the high_scores table if it does not exist.
func (s *SQLiteStore) createTable(ctx context.Context) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id TEXT PRIMARY KEY,
		player_name TEXT NOT NULL,
		points INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.", "backend", "sqlite")
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, score Score) error {
	score, err := normalize(score)
	if err != nil {
		return err
	}
	const insertSQL = `
	INSERT INTO ` + tableName + ` (id, player_name, points, created_at)
	VALUES (?, ?, ?, ?);`

	if _, err := s.db.ExecContext(ctx, insertSQL, score.ID, score.PlayerName, score.Points, score.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", score.PlayerName, err)
	}
	return nil
}

// Top retrieves a page of scores, best first and oldest first on ties.
func (s *SQLiteStore) Top(ctx context.Context, limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, points, created_at
	FROM ` + tableName + `
	ORDER BY points DESC, created_at ASC
	LIMIT ? OFFSET ?;`

	rows, err := s.db.QueryContext(ctx, selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var score Score
		if err := rows.Scan(&score.ID, &score.PlayerName, &score.Points, &score.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
