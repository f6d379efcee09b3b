// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorite implements the per-user favorites ledger.

A toggle flips the (user, book) membership and writes the book's favorite flag
in the same transaction. The flag records the outcome of the latest toggle by
any user; it is not an aggregate over all memberships.

Memberships carry no foreign key to the book, so a failed cleanup during book
deletion can leave orphans behind. [Service.PruneOrphans] removes them and is
run on a schedule.
*/
package favorite

import "context"

// Repository persists favorite memberships.
type Repository interface {
	// Toggle flips the membership and the book flag, returning the new state.
	Toggle(ctx context.Context, userID string, bookID int64) (bool, error)

	// ListForUser returns the ids of the books the user has favorited.
	ListForUser(ctx context.Context, userID string) ([]int64, error)

	// PruneOrphans deletes memberships whose book no longer exists.
	PruneOrphans(ctx context.Context) (int64, error)
}

// CacheInvalidator drops cached catalog projections that embed the favorite flag.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Global field names for validation
const (
	FieldBookID = "book_id"
)
