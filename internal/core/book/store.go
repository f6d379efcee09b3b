// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository persists the catalog.
type Repository interface {
	// List returns every book, newest first.
	List(ctx context.Context) ([]*Book, error)

	// Get returns a single book or apperr NOT_FOUND.
	Get(ctx context.Context, id int64) (*Book, error)

	// Create resolves the author and category and inserts the book.
	Create(ctx context.Context, book NewBook) (int64, error)

	// Delete removes the book's favorites (best effort) and then the book.
	// It returns the number of book rows removed.
	Delete(ctx context.Context, id int64) (int64, error)

	// IncrementDownloads adds one to the download counter. Unknown ids are a no-op.
	IncrementDownloads(ctx context.Context, id int64) error
}

/*
ListCache holds the serialised result of [Repository.List] per generation.

Get reports the current generation alongside the entry; Set stores under the
generation the caller read, and Invalidate moves to a new one. A list
computed before an invalidation therefore lands in a generation nobody reads.

Implementations swallow their own failures: a broken cache must only ever
cost a database round trip. A negative generation means "do not store".
*/
type ListCache interface {
	Get(ctx context.Context) (books []*Book, generation int64, found bool)
	Set(ctx context.Context, generation int64, books []*Book)
	Invalidate(ctx context.Context)
}

// noCache is used when no cache is configured.
type noCache struct{}

func (noCache) Get(context.Context) ([]*Book, int64, bool) { return nil, -1, false }
func (noCache) Set(context.Context, int64, []*Book)        {}
func (noCache) Invalidate(context.Context)                 {}
