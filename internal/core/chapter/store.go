// Copyright (c) 2026 Kasane. All rights reserved.

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters and pages.
type ChapterRepository interface {

	/*
		ListByComic returns the chapters of a comic ordered by chapter number.

		Parameters:
		  - context: context.Context
		  - comicID: string (Owner ID)
		  - filter: ChapterFilter (Sorting options)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Slice of chapters
		  - int: Total matching chapters
		  - error: Database retrieval failures
	*/
	ListByComic(context context.Context, comicID string, filter ChapterFilter, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns metadata for a single chapter.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: The hydrated domain entity
		  - error: apperr.NotFound on absent rows
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		NumberExists reports whether an active chapter with the given number
		already exists for the comic.

		Parameters:
		  - context: context.Context
		  - comicID: string (Owner ID)
		  - number: float64 (Derived chapter number)

		Returns:
		  - bool: true if the number is already taken
		  - error: Database retrieval failures
	*/
	NumberExists(context context.Context, comicID string, number float64) (bool, error)

	/*
		CreateWithPages persists a chapter and its page rows in one transaction.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (Metadata; PageCount is derived from pages)
		  - pages: []*Page (Ordered page rows)

		Returns:
		  - error: apperr.Conflict on a duplicate chapter number, otherwise
		    storage failures. Nothing is persisted on error.
	*/
	CreateWithPages(context context.Context, chapter *Chapter, pages []*Page) error

	/*
		ListPages returns the pages of a chapter sorted by reading position.

		Parameters:
		  - context: context.Context
		  - chapterID: string (UUID)

		Returns:
		  - []*Page: Ordered page records
		  - error: Database retrieval failures
	*/
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	/*
		SoftDelete hides a chapter without physical row removal.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if missing or already deleted
	*/
	SoftDelete(context context.Context, id string) error

	/*
		IncrementViewCount atomically adds delta to the chapter view counter.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - delta: int64

		Returns:
		  - error: Atomic update failure
	*/
	IncrementViewCount(context context.Context, id string, delta int64) error
}
