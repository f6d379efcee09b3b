// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bibliotheca/internal/core/entity"
	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
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

// selectBooks is the joined projection shared by List and Get.
var selectBooks = fmt.Sprintf(`
	SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
	       b.%s, a.%s, b.%s, c.%s, b.%s, b.%s
	FROM %s b
	INNER JOIN %s a ON b.%s = a.%s
	INNER JOIN %s c ON b.%s = c.%s
`,
	schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.IsFavorite, schema.CatalogBook.PortraitURL,
	schema.CatalogBook.BookURL, schema.CatalogBook.Language, schema.CatalogBook.DownloadCount,
	schema.CatalogBook.AuthorID, schema.CatalogAuthor.Name, schema.CatalogBook.CategoryID, schema.CatalogCategory.Name,
	schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	schema.CatalogBook.Table,
	schema.CatalogAuthor.Table, schema.CatalogBook.AuthorID, schema.CatalogAuthor.ID,
	schema.CatalogCategory.Table, schema.CatalogBook.CategoryID, schema.CatalogCategory.ID,
)

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID, &book.Title, &book.IsFavorite, &book.PortraitURL, &book.BookURL, &book.Language, &book.DownloadCount,
		&book.AuthorID, &book.AuthorName, &book.CategoryID, &book.CategoryName, &book.CreatedAt, &book.UpdatedAt,
	)
	return book, err
}

/*
List returns the whole catalog ordered by creation time, newest first.

Rows sharing a creation timestamp fall back to identifier order so the
sequence is stable.
*/
func (repository *PostgresRepository) List(ctx context.Context) ([]*Book, error) {
	query := selectBooks + fmt.Sprintf(` ORDER BY b.%s DESC, b.%s DESC`, schema.CatalogBook.CreatedAt, schema.CatalogBook.ID)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_books")
	}

	return books, nil
}

// Get returns a single book by identifier.
func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Book, error) {
	query := selectBooks + fmt.Sprintf(` WHERE b.%s = $1`, schema.CatalogBook.ID)

	book, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return book, nil
}

/*
Create resolves the author and category and inserts the book in a single
transaction, so a failed insert leaves no freshly created author or category
behind.

Returns:
  - int64: identifier of the new book
  - error: resolution or insert failure
*/
func (repository *PostgresRepository) Create(ctx context.Context, book NewBook) (int64, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_create_book_tx")
	}
	defer transaction.Rollback(ctx)

	// Step 1: Author
	authorID, err := entity.Resolve(ctx, transaction, entity.KindAuthor, book.AuthorName)
	if err != nil {
		return 0, err
	}

	// Step 2: Category
	categoryID, err := entity.Resolve(ctx, transaction, entity.KindCategory, book.CategoryName)
	if err != nil {
		return 0, err
	}

	// Step 3: Book row, never a favorite at birth
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, FALSE, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.IsFavorite, schema.CatalogBook.PortraitURL, schema.CatalogBook.BookURL,
		schema.CatalogBook.Language, schema.CatalogBook.AuthorID, schema.CatalogBook.CategoryID,
		schema.CatalogBook.ID,
	)

	var id int64
	err = transaction.QueryRow(ctx, query,
		book.Title, book.PortraitURL, book.BookURL, book.Language, authorID, categoryID,
	).Scan(&id)
	if err != nil {
		return 0, dberr.Wrap(err, "insert_book")
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "commit_create_book")
	}
	return id, nil
}

// IncrementDownloads bumps the counter by exactly one.
func (repository *PostgresRepository) IncrementDownloads(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.DownloadCount, schema.CatalogBook.DownloadCount, schema.CatalogBook.ID,
	)

	_, err := repository.pool.Exec(ctx, query, id)
	return dberr.Wrap(err, "increment_downloads")
}
