// Package highscore keeps the records of finished runs.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	tableName     = "high_scores"
	MaxNameLength = 20
)

var ErrInvalidScore = errors.New("invalid score")

// Score is one finished run.
type Score struct {
	ID         string
	PlayerName string
	Points     int
	CreatedAt  time.Time
}

// Store persists finished runs.
type Store interface {
	// Save records a finished run.
	Save(ctx context.Context, score Score) error
	// Top returns a page of runs, best first.
	Top(ctx context.Context, limit, offset int) ([]Score, error)
	// Count returns the number of recorded runs.
	Count(ctx context.Context) (int, error)
	// Close releases database resources.
	Close() error
}

// Open picks the backend from the DSN: postgres URLs go to PostgreSQL,
// anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		store, err := NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := NewSQLiteStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// normalize trims and validates a score before it is written.
func normalize(score Score) (Score, error) {
	score.PlayerName = strings.TrimSpace(score.PlayerName)
	if score.PlayerName == "" {
		return score, fmt.Errorf("%w: empty player name", ErrInvalidScore)
	}
	if utf8.RuneCountInString(score.PlayerName) > MaxNameLength {
		score.PlayerName = string([]rune(score.PlayerName)[:MaxNameLength])
	}
	if score.Points < 0 {
		return score, fmt.Errorf("%w: negative points %d", ErrInvalidScore, score.Points)
	}
	if score.ID == "" {
		return score, fmt.Errorf("%w: missing id", ErrInvalidScore)
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	score.CreatedAt = score.CreatedAt.UTC()
	return score, nil
}
