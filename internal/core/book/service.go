// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
	"github.com/taibuivan/bibliotheca/internal/platform/validate"
	"github.com/taibuivan/bibliotheca/pkg/pointer"
)

// Service implements the catalog operations.
type Service struct {
	repo  Repository
	cache ListCache
}

// NewService creates the catalog service. A nil cache disables caching.
func NewService(repo Repository, cache ListCache) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{repo: repo, cache: cache}
}

/*
ListBooks returns every book, newest first.

The cache generation is read before the database so that a list fetched
while a write is invalidating the cache is stored under the superseded
generation and never served.
*/
func (service *Service) ListBooks(ctx context.Context) ([]*Book, error) {
	books, generation, found := service.cache.Get(ctx)
	if found {
		return books, nil
	}

	books, err := service.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to retrieve books")
	}
	describeLanguages(books...)

	service.cache.Set(ctx, generation, books)
	return books, nil
}

// GetBook returns a single book.
func (service *Service) GetBook(ctx context.Context, id int64) (*Book, error) {
	if id <= 0 {
		return nil, apperr.NotFound("Book")
	}

	book, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to retrieve book")
	}
	describeLanguages(book)
	return book, nil
}

/*
AddBook validates the input and adds a book on behalf of an administrator.

The role check runs before validation, and validation before any write.
Missing required fields are reported together in a single error.

Returns:
  - int64: identifier of the new book
  - error: UNAUTHORIZED, FORBIDDEN, VALIDATION_ERROR or STORAGE_ERROR
*/
func (service *Service) AddBook(ctx context.Context, caller *sec.AuthClaims, input AddInput) (int64, error) {
	if err := requireAdmin(caller, "Only administrators can add books"); err != nil {
		return 0, err
	}

	book, err := normalize(input)
	if err != nil {
		return 0, err
	}

	id, err := service.repo.Create(ctx, book)
	if err != nil {
		return 0, apperr.Wrap(err, "Failed to add book")
	}
	service.cache.Invalidate(ctx)

	ctxutil.GetLogger(ctx).InfoContext(ctx, "book_added",
		slog.Int64("book_id", id),
		slog.String("title", book.Title),
	)
	return id, nil
}

/*
DeleteBook removes a book and, best effort, its favorites.

Returns:
  - int64: rows removed from the catalog (1)
  - error: UNAUTHORIZED, FORBIDDEN, VALIDATION_ERROR, NOT_FOUND or STORAGE_ERROR
*/
func (service *Service) DeleteBook(ctx context.Context, caller *sec.AuthClaims, id int64) (int64, error) {
	if err := requireAdmin(caller, "Only administrators can delete books"); err != nil {
		return 0, err
	}

	validator := &validate.Validator{}
	if err := validator.RequiredID(FieldBookID, id).ErrMessage("Book ID is required"); err != nil {
		return 0, err
	}

	affected, err := service.repo.Delete(ctx, id)
	if err != nil {
		return 0, apperr.Wrap(err, "Failed to delete book")
	}
	service.cache.Invalidate(ctx)

	ctxutil.GetLogger(ctx).WarnContext(ctx, "book_deleted",
		slog.Int64("book_id", id),
	)
	return affected, nil
}

// IncrementDownloads counts one download. Unknown books are silently accepted.
func (service *Service) IncrementDownloads(ctx context.Context, id int64) error {
	if err := service.repo.IncrementDownloads(ctx, id); err != nil {
		return apperr.Wrap(err, "Failed to update downloads")
	}
	service.cache.Invalidate(ctx)
	return nil
}

// # Helpers

func requireAdmin(caller *sec.AuthClaims, message string) error {
	if caller == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !caller.IsAdmin() {
		return apperr.Forbidden(message)
	}
	return nil
}

/*
normalize checks the required fields and applies the storage defaults.

Values are kept exactly as supplied: names must match existing entities
byte for byte, and the book and portrait references are opaque. Only an empty
language falls back to the default and an empty portrait is stored as null.
*/
func normalize(input AddInput) (NewBook, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, input.Title).
		Required(FieldAuthorName, input.AuthorName).
		Required(FieldCategoryName, input.CategoryName).
		Required(FieldBookURL, input.BookURL)

	if err := validator.ErrMessage("Title, author, category and book URL are required"); err != nil {
		return NewBook{}, err
	}

	book := NewBook{
		Title:        input.Title,
		AuthorName:   input.AuthorName,
		CategoryName: input.CategoryName,
		BookURL:      input.BookURL,
		Language:     strings.TrimSpace(pointer.Val(input.Language)),
	}

	if book.Language == "" {
		book.Language = constants.DefaultBookLanguage
	}
	if portrait := pointer.Val(input.PortraitURL); portrait != "" {
		book.PortraitURL = pointer.To(portrait)
	}
	return book, nil
}
