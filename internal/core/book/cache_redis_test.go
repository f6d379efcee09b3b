// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotheca/internal/core/book"
)

/*
TestRedisListCache_Unreachable verifies a dead Redis degrades to cache misses
instead of failing catalog reads.
*/
func TestRedisListCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := book.NewRedisListCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, 0, []*book.Book{{ID: 1, Title: "t"}})
	cache.Invalidate(ctx)

	books, generation, found := cache.Get(ctx)
	assert.False(t, found)
	assert.Nil(t, books)
	assert.Negative(t, generation)

	repo := newMemRepository()
	service := book.NewService(repo, cache)
	listed, err := service.ListBooks(ctx)
	assert.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 1, repo.lists)
}

/*
TestRedisListCache_SupersededWriteIgnored verifies that a list stored under a
generation older than the latest invalidation is never served.

Needs a Redis server at TEST_REDIS_URL.
*/
func TestRedisListCache_SupersededWriteIgnored(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	options, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(options)
	defer client.Close()

	cache := book.NewRedisListCache(client, time.Minute)
	ctx := context.Background()

	cache.Invalidate(ctx)
	_, readAt, found := cache.Get(ctx)
	require.False(t, found)

	// A write commits and invalidates while the list is being read.
	cache.Invalidate(ctx)
	cache.Set(ctx, readAt, []*book.Book{{ID: 1, Title: "deleted"}})

	_, current, found := cache.Get(ctx)
	assert.False(t, found)
	assert.Greater(t, current, readAt)

	cache.Set(ctx, current, []*book.Book{{ID: 2, Title: "kept"}})
	books, _, found := cache.Get(ctx)
	require.True(t, found)
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)
}
