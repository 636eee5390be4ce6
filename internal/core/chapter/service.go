// Copyright (c) 2026 Kasane. All rights reserved.

package chapter

import (
	"context"
	"log/slog"
)

// # Service Layer

// Service orchestrates the business logic for chapters and reader payloads.
type Service struct {
	chapterRepo ChapterRepository
	cache       *PageCache
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
// The cache may be nil, in which case page lists always come from storage.
func NewService(chapterRepo ChapterRepository, cache *PageCache, logger *slog.Logger) *Service {
	return &Service{
		chapterRepo: chapterRepo,
		cache:       cache,
		logger:      logger,
	}
}

// # Chapter Operations

/*
ListChapters retrieves serialisation data for a comic.

Parameters:
  - context: context.Context
  - comicID: string (Owner ID)
  - filter: ChapterFilter (Sorting options)
  - limit: int
  - offset: int

Returns:
  - []*Chapter: Metadata for matched chapters
  - int: Total chapter count for the given comic/filter
  - error: Storage or execution errors
*/
func (service *Service) ListChapters(context context.Context, comicID string, filter ChapterFilter, limit, offset int) ([]*Chapter, int, error) {
	return service.chapterRepo.ListByComic(context, comicID, filter, limit, offset)
}

/*
GetChapter retrieves metadata for a single chapter by its ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: The hydrated domain entity
  - error: ErrNotFound if not found
*/
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	return service.chapterRepo.FindByID(context, id)
}

/*
GetPages assembles the reader payload for a chapter.

Description: Cache-aside retrieval. A Redis hit skips the database entirely;
a miss (or any Redis failure) falls back to storage and repopulates the
cache. Each successful read also bumps the chapter view counter.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)

Returns:
  - []*Page: Ordered page records
  - error: Storage failures or ErrNotFound
*/
func (service *Service) GetPages(context context.Context, chapterID string) ([]*Page, error) {

	// The chapter must exist before we touch the page cache; a stale cache
	// entry must not resurrect a deleted chapter.
	chapter, err := service.chapterRepo.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}

	// Cache probe
	if service.cache != nil {
		pages, err := service.cache.Get(context, chapterID)
		if err != nil {
			service.logger.Warn("chapter_pages_cache_read_failed",
				slog.String("chapter_id", chapterID),
				slog.String("error", err.Error()),
			)
		} else if pages != nil {
			service.bumpViews(context, chapter)
			return pages, nil
		}
	}

	// Storage fallback
	pages, err := service.chapterRepo.ListPages(context, chapterID)
	if err != nil {
		return nil, err
	}

	// Repopulate the cache; failures are logged, never surfaced.
	if service.cache != nil {
		if err := service.cache.Set(context, chapterID, pages); err != nil {
			service.logger.Warn("chapter_pages_cache_write_failed",
				slog.String("chapter_id", chapterID),
				slog.String("error", err.Error()),
			)
		}
	}

	service.bumpViews(context, chapter)
	return pages, nil
}

/*
DeleteChapter removes a chapter from active discovery.

Description: Soft-deletes the chapter row and invalidates its cached page
list so readers cannot open it from a stale cache entry.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Persistence error if removal fails
*/
func (service *Service) DeleteChapter(context context.Context, id string) error {
	if err := service.chapterRepo.SoftDelete(context, id); err != nil {
		return err
	}

	if service.cache != nil {
		if err := service.cache.Invalidate(context, id); err != nil {
			service.logger.Warn("chapter_pages_cache_invalidate_failed",
				slog.String("chapter_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", id))

	return nil
}

// # Internal Helpers

// bumpViews increments the chapter view counter. Counter failures are
// logged and swallowed; they must never break a read.
func (service *Service) bumpViews(context context.Context, chapter *Chapter) {
	if err := service.chapterRepo.IncrementViewCount(context, chapter.ID, 1); err != nil {
		service.logger.Warn("chapter_view_count_failed",
			slog.String("chapter_id", chapter.ID),
			slog.String("error", err.Error()),
		)
	}
}
