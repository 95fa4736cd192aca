package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashycardy/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied
// and foreign keys enabled. A single connection keeps the memory database alive.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertUser adds a user row directly and returns its id.
func InsertUser(t *testing.T, sqlDB *sql.DB, id string) string {
	t.Helper()
	_, err := sqlDB.Exec(`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`, id, fmt.Sprintf("%s@example.com", id), "x")
	require.NoError(t, err)
	return id
}

// InsertDeck adds a deck row owned by userID and returns its id.
func InsertDeck(t *testing.T, sqlDB *sql.DB, userID, name string) int64 {
	t.Helper()
	res, err := sqlDB.Exec(`INSERT INTO decks (user_id, name) VALUES (?, ?)`, userID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
