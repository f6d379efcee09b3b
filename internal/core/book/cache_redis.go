// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
)

// unknownGeneration is reported when the generation counter cannot be read.
const unknownGeneration int64 = -1

// RedisListCache implements [ListCache] with a generation counter and one
// JSON value per generation.
//
// Keys:
//
//	catalog:books:generation   INCR on every invalidation, no expiry
//	catalog:books:list:<n>     the list read at generation n, expires after ttl
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListCache creates a cache whose entries expire after ttl.
func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func listKey(generation int64) string {
	return constants.CatalogCacheKey + ":" + strconv.FormatInt(generation, 10)
}

// Get returns the list cached for the current generation. A miss, a Redis
// failure and a corrupt entry all report false.
func (cache *RedisListCache) Get(ctx context.Context) ([]*Book, int64, bool) {
	generation, err := cache.client.Get(ctx, constants.CatalogCacheGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		generation, err = 0, nil
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_get_failed", slog.Any("error", err))
		return nil, unknownGeneration, false
	}

	payload, err := cache.client.Get(ctx, listKey(generation)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_get_failed", slog.Any("error", err))
		}
		return nil, generation, false
	}

	var books []*Book
	if err := json.Unmarshal(payload, &books); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_corrupt", slog.Any("error", err))
		return nil, generation, false
	}
	return books, generation, true
}

// Set stores the list under generation for the configured TTL.
func (cache *RedisListCache) Set(ctx context.Context, generation int64, books []*Book) {
	if generation < 0 {
		return
	}

	payload, err := json.Marshal(books)
	if err != nil {
		return
	}

	if err := cache.client.Set(ctx, listKey(generation), payload, cache.ttl).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_set_failed", slog.Any("error", err))
	}
}

// Invalidate moves the cache to a new generation. Entries of older
// generations are left to expire.
func (cache *RedisListCache) Invalidate(ctx context.Context) {
	if err := cache.client.Incr(ctx, constants.CatalogCacheGenerationKey).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_invalidate_failed", slog.Any("error", err))
	}
}
