// Copyright (c) 2026 Kasane. All rights reserved.

package chapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kasanehq/kasane/internal/platform/constants"
)

// # Page List Cache

// PageCache caches the ordered page list of a chapter in Redis.
//
// Page lists are immutable once a chapter is ingested, so the cache only
// needs invalidation on chapter deletion. A miss (or any Redis failure)
// falls back to the database; the cache is an accelerator, never the
// source of truth.
type PageCache struct {
	client *redis.Client
}

// NewPageCache constructs a Redis-backed page list cache.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

/*
Get retrieves the cached page list for a chapter.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)

Returns:
  - []*Page: Ordered page records, or nil on a cache miss
  - error: Connectivity or decode failures (miss is not an error)
*/
func (cache *PageCache) Get(context context.Context, chapterID string) ([]*Page, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixChapterPages + chapterID

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_chapter_pages_get_failed: %w", err)
	}

	var pages []*Page
	if err := json.Unmarshal(payload, &pages); err != nil {
		return nil, fmt.Errorf("redis_chapter_pages_decode_failed: %w", err)
	}

	return pages, nil
}

/*
Set stores the page list for a chapter with the standard TTL.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - pages: []*Page (Ordered page records)

Returns:
  - error: Encode or storage failures
*/
func (cache *PageCache) Set(context context.Context, chapterID string, pages []*Page) error {

	// Use constants for key prefix
	key := constants.RedisPrefixChapterPages + chapterID

	payload, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("redis_chapter_pages_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, constants.ChapterPagesCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_chapter_pages_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached page list for a chapter.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)

Returns:
  - error: Deletion failures
*/
func (cache *PageCache) Invalidate(context context.Context, chapterID string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixChapterPages + chapterID

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_chapter_pages_delete_failed: %w", err)
	}

	return nil
}
