// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
	"github.com/taibuivan/bibliotheca/internal/platform/validate"
)

// Service implements the favorites operations.
type Service struct {
	repo        Repository
	invalidator CacheInvalidator
}

// NewService creates the favorites service. invalidator may be nil.
func NewService(repo Repository, invalidator CacheInvalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

/*
Toggle flips the caller's favorite marking for a book.

Two calls in a row return true then false; the book flag always matches the
latest result. Book existence is not checked.

Returns:
  - bool: the new state
  - error: UNAUTHORIZED, VALIDATION_ERROR or STORAGE_ERROR
*/
func (service *Service) Toggle(ctx context.Context, caller *sec.AuthClaims, bookID int64) (bool, error) {
	if caller == nil {
		return false, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	if err := validator.RequiredID(FieldBookID, bookID).ErrMessage("Book ID is required"); err != nil {
		return false, err
	}

	isFavorite, err := service.repo.Toggle(ctx, caller.UserID, bookID)
	if err != nil {
		return false, apperr.Wrap(err, "Failed to update favorites")
	}

	if service.invalidator != nil {
		service.invalidator.Invalidate(ctx)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "favorite_toggled",
		slog.Int64("book_id", bookID),
		slog.Bool("is_favorite", isFavorite),
	)
	return isFavorite, nil
}

// ListForUser returns the ids of the caller's favorite books.
func (service *Service) ListForUser(ctx context.Context, caller *sec.AuthClaims) ([]int64, error) {
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	bookIDs, err := service.repo.ListForUser(ctx, caller.UserID)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to retrieve favorites")
	}
	return bookIDs, nil
}

// PruneOrphans removes memberships left behind by deleted books.
func (service *Service) PruneOrphans(ctx context.Context) (int64, error) {
	pruned, err := service.repo.PruneOrphans(ctx)
	if err != nil {
		return 0, apperr.Wrap(err, "Failed to prune favorites")
	}
	return pruned, nil
}
