// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotheca/internal/core/book"
	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
	"github.com/taibuivan/bibliotheca/internal/platform/database/schema"
	"github.com/taibuivan/bibliotheca/internal/platform/postgres/pgtest"
)

// # Helpers

func newStoredBook(title string) book.NewBook {
	return book.NewBook{
		Title:        title,
		AuthorName:   pgtest.Unique("author"),
		CategoryName: pgtest.Unique("category"),
		BookURL:      "u.example",
		Language:     "ENG",
	}
}

func addFavorite(t *testing.T, pool *pgxpool.Pool, userID string, bookID int64) {
	t.Helper()

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CatalogFavorite.Table, schema.CatalogFavorite.UserID, schema.CatalogFavorite.BookID,
	)
	_, err := pool.Exec(context.Background(), query, userID, bookID)
	require.NoError(t, err)
}

func countRows(t *testing.T, pool *pgxpool.Pool, table, column string, value any) int {
	t.Helper()

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table, column)
	require.NoError(t, pool.QueryRow(context.Background(), query, value).Scan(&count))
	return count
}

// # Tests

/*
TestPostgresRepository_CreateGetList verifies stored values round-trip, shared
entities are reused and listing is newest first.
*/
func TestPostgresRepository_CreateGetList(t *testing.T) {
	pool := pgtest.Open(t, nil)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	older := newStoredBook("older")
	older.Language = "ESP"
	olderID, err := repo.Create(ctx, older)
	require.NoError(t, err)

	newer := newStoredBook("newer")
	newer.AuthorName, newer.CategoryName = older.AuthorName, older.CategoryName
	newerID, err := repo.Create(ctx, newer)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, olderID)
	require.NoError(t, err)
	assert.Equal(t, "ESP", stored.Language)
	assert.Equal(t, "u.example", stored.BookURL)
	assert.Nil(t, stored.PortraitURL)
	assert.False(t, stored.IsFavorite)
	assert.Zero(t, stored.DownloadCount)
	assert.Equal(t, older.AuthorName, stored.AuthorName)

	reread, err := repo.Get(ctx, newerID)
	require.NoError(t, err)
	assert.Equal(t, stored.AuthorID, reread.AuthorID)
	assert.Equal(t, stored.CategoryID, reread.CategoryID)

	books, err := repo.List(ctx)
	require.NoError(t, err)

	positions := map[int64]int{}
	for index, listed := range books {
		positions[listed.ID] = index
	}
	require.Contains(t, positions, olderID)
	require.Contains(t, positions, newerID)
	assert.Less(t, positions[newerID], positions[olderID])
}

/*
TestPostgresRepository_CreateRollback verifies a failed insert leaves no
freshly created author or category behind.
*/
func TestPostgresRepository_CreateRollback(t *testing.T) {
	pool := pgtest.Open(t, nil)
	repo := book.NewPostgresRepository(pool)

	// PostgreSQL rejects NUL bytes in text, failing the book insert after
	// both entities were resolved.
	input := newStoredBook("broken\x00title")

	_, err := repo.Create(context.Background(), input)
	require.Error(t, err)

	assert.Zero(t, countRows(t, pool, schema.CatalogAuthor.Table, schema.CatalogAuthor.Name, input.AuthorName))
	assert.Zero(t, countRows(t, pool, schema.CatalogCategory.Table, schema.CatalogCategory.Name, input.CategoryName))
}

/*
TestPostgresRepository_DeleteClearsFavorites verifies a delete removes the
book and every favorite referencing it.
*/
func TestPostgresRepository_DeleteClearsFavorites(t *testing.T) {
	pool := pgtest.Open(t, nil)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, newStoredBook("doomed"))
	require.NoError(t, err)
	addFavorite(t, pool, pgtest.Unique("user"), id)
	addFavorite(t, pool, pgtest.Unique("user"), id)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Zero(t, countRows(t, pool, schema.CatalogFavorite.Table, schema.CatalogFavorite.BookID, id))

	_, err = repo.Get(ctx, id)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	_, err = repo.Delete(ctx, id)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestPostgresRepository_DeleteWithoutFavoritesTable verifies the book is still
deleted when the favorites cleanup cannot run.

The favorites table is held under an exclusive lock while the repository
uses a short lock timeout, so the cleanup fails the way an unavailable table
would.
*/
func TestPostgresRepository_DeleteWithoutFavoritesTable(t *testing.T) {
	pool := pgtest.Open(t, nil)
	impatient := pgtest.Open(t, map[string]string{"lock_timeout": "200ms"})
	repo := book.NewPostgresRepository(impatient)

	var logs bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

	id, err := repo.Create(ctx, newStoredBook("locked"))
	require.NoError(t, err)
	addFavorite(t, pool, pgtest.Unique("user"), id)

	lock, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer lock.Rollback(context.Background())
	_, err = lock.Exec(ctx, fmt.Sprintf(`LOCK TABLE %s IN ACCESS EXCLUSIVE MODE`, schema.CatalogFavorite.Table))
	require.NoError(t, err)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Contains(t, logs.String(), "favorites_cleanup_failed")

	_, err = repo.Get(ctx, id)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	// The favorite survives for the reconciler.
	var remaining int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.CatalogFavorite.Table, schema.CatalogFavorite.BookID)
	require.NoError(t, lock.QueryRow(ctx, query, id).Scan(&remaining))
	assert.Equal(t, 1, remaining)
}

/*
TestPostgresRepository_IncrementDownloads verifies each call adds exactly one
and unknown ids are accepted.
*/
func TestPostgresRepository_IncrementDownloads(t *testing.T) {
	pool := pgtest.Open(t, nil)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, newStoredBook("popular"))
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, repo.IncrementDownloads(ctx, id))
	}

	stored, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.DownloadCount)

	assert.NoError(t, repo.IncrementDownloads(ctx, -1))
}
