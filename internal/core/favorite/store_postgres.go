// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bibliotheca/internal/platform/database/schema"
	"github.com/taibuivan/bibliotheca/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Toggle flips the user's membership for a book and sets the book flag to match.

Both writes share one transaction. An unknown book id still has its
membership recorded while the flag update matches no row; the reconciler
prunes such memberships.

Returns:
  - bool: true when the book is now a favorite of the user
  - error: storage failures
*/
func (repository *PostgresRepository) Toggle(ctx context.Context, userID string, bookID int64) (bool, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return false, dberr.Wrap(err, "begin_toggle_favorite_tx")
	}
	defer transaction.Rollback(ctx)

	// Step 1: Current membership
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CatalogFavorite.Table, schema.CatalogFavorite.UserID, schema.CatalogFavorite.BookID,
	)

	var exists bool
	if err := transaction.QueryRow(ctx, existsQuery, userID, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_favorite")
	}

	// Step 2: Flip membership
	var membershipQuery string
	if exists {
		membershipQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.CatalogFavorite.Table, schema.CatalogFavorite.UserID, schema.CatalogFavorite.BookID,
		)
	} else {
		membershipQuery = fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.CatalogFavorite.Table, schema.CatalogFavorite.UserID, schema.CatalogFavorite.BookID,
		)
	}
	if _, err := transaction.Exec(ctx, membershipQuery, userID, bookID); err != nil {
		return false, dberr.Wrap(err, "write_favorite")
	}

	// Step 3: Book flag follows this toggle
	isFavorite := !exists
	flagQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.IsFavorite, schema.CatalogBook.UpdatedAt, schema.CatalogBook.ID,
	)
	if _, err := transaction.Exec(ctx, flagQuery, bookID, isFavorite); err != nil {
		return false, dberr.Wrap(err, "update_favorite_flag")
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, dberr.Wrap(err, "commit_toggle_favorite")
	}
	return isFavorite, nil
}

// ListForUser returns the user's favorited book ids, most recent first.
func (repository *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		schema.CatalogFavorite.BookID, schema.CatalogFavorite.Table, schema.CatalogFavorite.UserID,
		schema.CatalogFavorite.CreatedAt, schema.CatalogFavorite.BookID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	bookIDs := make([]int64, 0)
	for rows.Next() {
		var bookID int64
		if err := rows.Scan(&bookID); err != nil {
			return nil, dberr.Wrap(err, "scan_favorite")
		}
		bookIDs = append(bookIDs, bookID)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_favorites")
	}
	return bookIDs, nil
}

// PruneOrphans deletes memberships that reference a deleted book.
func (repository *PostgresRepository) PruneOrphans(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s f
		WHERE NOT EXISTS (SELECT 1 FROM %s b WHERE b.%s = f.%s)
	`,
		schema.CatalogFavorite.Table,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogFavorite.BookID,
	)

	result, err := repository.pool.Exec(ctx, query)
	if err != nil {
		return 0, dberr.Wrap(err, "prune_orphan_favorites")
	}
	return result.RowsAffected(), nil
}
