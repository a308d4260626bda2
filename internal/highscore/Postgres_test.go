package highscore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up the table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM "+tableName)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestPostgresStore_SaveAndTop(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, s.Save(ctx, newScore("alice", 40, base)))
	require.NoError(t, s.Save(ctx, newScore("bob", 90, base)))

	top, err := s.Top(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].PlayerName)
	assert.Equal(t, 90, top[0].Points)
	assert.True(t, top[1].CreatedAt.Equal(base))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPostgresStore_RejectsInvalidScore(t *testing.T) {
	s := setupPostgresStore(t)
	assert.ErrorIs(t, s.Save(context.Background(), newScore("", 10, time.Now())), ErrInvalidScore)
}

func TestPostgresStore_DuplicateID(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	score := newScore("carol", 10, time.Now())
	require.NoError(t, s.Save(ctx, score))
	assert.Error(t, s.Save(ctx, score))
}

func TestOpen_PicksPostgresForURLs(t *testing.T) {
	url := getTestDatabaseURL(t)
	store, err := Open(context.Background(), url)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*PostgresStore)
	assert.True(t, ok)
}
