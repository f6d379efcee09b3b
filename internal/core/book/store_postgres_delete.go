// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
	"github.com/taibuivan/bibliotheca/internal/platform/database/schema"
	"github.com/taibuivan/bibliotheca/internal/platform/dberr"
)

/*
Delete removes a book after clearing its favorites.

Steps, in order:
 1. Delete every favorite referencing the book, inside a savepoint. A failure
    rolls back only the savepoint and is logged; the deletion carries on.
 2. Delete the book row.
 3. No row deleted: NOT_FOUND. Step 1 may already have run.

Returns:
  - int64: rows removed from the book table (1 on success)
  - error: NOT_FOUND or a storage failure from step 2
*/
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_delete_book_tx")
	}
	defer transaction.Rollback(ctx)

	// Step 1: Best-effort favorites cleanup
	if err := clearFavorites(ctx, transaction, id); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "favorites_cleanup_failed",
			slog.Int64("book_id", id),
			slog.Any("error", err),
		)
	}

	// Step 2: Book row
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)
	result, err := transaction.Exec(ctx, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_book")
	}

	// Step 3: Nothing to delete
	if result.RowsAffected() == 0 {
		return 0, apperr.NotFound("Book")
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "commit_delete_book")
	}
	return result.RowsAffected(), nil
}

// clearFavorites runs the favorites delete under a savepoint so that its
// failure does not abort the enclosing transaction.
func clearFavorites(ctx context.Context, transaction pgx.Tx, id int64) error {
	savepoint, err := transaction.Begin(ctx)
	if err != nil {
		return err
	}
	defer savepoint.Rollback(ctx)

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogFavorite.Table, schema.CatalogFavorite.BookID)
	if _, err := savepoint.Exec(ctx, query, id); err != nil {
		return err
	}

	return savepoint.Commit(ctx)
}
