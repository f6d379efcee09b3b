// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/bibliotheca/internal/core/book"
	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
)

var (
	admin  = &sec.AuthClaims{UserID: "u-admin", Username: "root", Role: string(sec.RoleAdmin)}
	reader = &sec.AuthClaims{UserID: "u-reader", Username: "ana", Role: string(sec.RoleReader)}
)

// memRepository is an in-memory [book.Repository] mirroring the Postgres
// semantics: find-or-create entities, newest-first listing, lenient increments.
type memRepository struct {
	mu         sync.Mutex
	books      map[int64]*book.Book
	authors    map[string]int64
	categories map[string]int64
	nextBook   int64
	nextEntity int64
	clock      time.Time

	creates int
	lists   int
	failErr error
}

func newMemRepository() *memRepository {
	return &memRepository{
		books:      map[int64]*book.Book{},
		authors:    map[string]int64{},
		categories: map[string]int64{},
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repo *memRepository) resolve(names map[string]int64, name string) int64 {
	if id, found := names[name]; found {
		return id
	}
	repo.nextEntity++
	names[name] = repo.nextEntity
	return repo.nextEntity
}

func (repo *memRepository) List(context.Context) ([]*book.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.lists++
	if repo.failErr != nil {
		return nil, repo.failErr
	}

	books := make([]*book.Book, 0, len(repo.books))
	for _, stored := range repo.books {
		copied := *stored
		books = append(books, &copied)
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].ID > books[j].ID
		}
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

func (repo *memRepository) Get(_ context.Context, id int64) (*book.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, found := repo.books[id]
	if !found {
		return nil, apperr.NotFound("Book")
	}
	copied := *stored
	return &copied, nil
}

func (repo *memRepository) Create(_ context.Context, input book.NewBook) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.creates++
	if repo.failErr != nil {
		return 0, repo.failErr
	}

	repo.nextBook++
	repo.clock = repo.clock.Add(time.Second)
	repo.books[repo.nextBook] = &book.Book{
		ID:           repo.nextBook,
		Title:        input.Title,
		PortraitURL:  input.PortraitURL,
		BookURL:      input.BookURL,
		Language:     input.Language,
		AuthorID:     repo.resolve(repo.authors, input.AuthorName),
		AuthorName:   input.AuthorName,
		CategoryID:   repo.resolve(repo.categories, input.CategoryName),
		CategoryName: input.CategoryName,
		CreatedAt:    repo.clock,
		UpdatedAt:    repo.clock,
	}
	return repo.nextBook, nil
}

func (repo *memRepository) Delete(_ context.Context, id int64) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failErr != nil {
		return 0, repo.failErr
	}
	if _, found := repo.books[id]; !found {
		return 0, apperr.NotFound("Book")
	}
	delete(repo.books, id)
	return 1, nil
}

func (repo *memRepository) IncrementDownloads(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failErr != nil {
		return repo.failErr
	}
	if stored, found := repo.books[id]; found {
		stored.DownloadCount++
	}
	return nil
}

// memCache is an in-memory [book.ListCache] keyed by generation.
type memCache struct {
	mu            sync.Mutex
	generation    int64
	entries       map[int64][]*book.Book
	invalidations int
}

func (cache *memCache) Get(context.Context) ([]*book.Book, int64, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	books, found := cache.entries[cache.generation]
	return books, cache.generation, found
}

func (cache *memCache) Set(_ context.Context, generation int64, books []*book.Book) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.entries == nil {
		cache.entries = map[int64][]*book.Book{}
	}
	cache.entries[generation] = books
}

func (cache *memCache) Invalidate(context.Context) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.generation++
	cache.invalidations++
}

// gatedRepository pauses the first List after it has read the catalog, until
// release is closed.
type gatedRepository struct {
	*memRepository
	once    sync.Once
	listed  chan struct{}
	release chan struct{}
}

func newGatedRepository() *gatedRepository {
	return &gatedRepository{
		memRepository: newMemRepository(),
		listed:        make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (repo *gatedRepository) List(ctx context.Context) ([]*book.Book, error) {
	books, err := repo.memRepository.List(ctx)
	repo.once.Do(func() {
		close(repo.listed)
		<-repo.release
	})
	return books, err
}

func validInput(title string) book.AddInput {
	return book.AddInput{
		Title:        title,
		AuthorName:   "Isabel Allende",
		CategoryName: "Novel",
		BookURL:      "files.example.com/" + title + ".pdf",
	}
}
