// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package chapter provides the PostgreSQL implementation for chapter data access.

Notable storage decisions:
  - Chapter + pages are written inside a single ACID transaction so a failed
    page batch never leaves a chapter without its images.
  - Page inserts use pgx batching (pipelining) to reduce round-trips for
    long chapters.
  - A partial unique index on (comicid, chapternumber) WHERE deletedat IS NULL
    backs the duplicate-number contract at the database level.
*/
package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/database/schema"
	"github.com/kasanehq/kasane/internal/platform/dberr"
)

// # PostgreSQL Repository

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// # Chapter Repository Implementation

/*
ListByComic retrieves all chapters linked to a specific comic.

Description: Chapters are ordered by their numeric position so fractional
releases land between their whole-numbered neighbours. COUNT(*) OVER()
returns the total in the same round-trip.

Parameters:
  - context: context.Context
  - comicID: string (Owner ID)
  - filter: ChapterFilter (Sorting)
  - limit: int
  - offset: int

Returns:
  - []*Chapter: Slice of chapters
  - int: Total matching chapters
*/
func (repository *chapterRepository) ListByComic(context context.Context, comicID string, filter ChapterFilter, limit, offset int) ([]*Chapter, int, error) {

	// Query construction
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			c.%s, c.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`,
		schema.CoreChapter.ID,
		schema.CoreChapter.ComicID,
		schema.CoreChapter.UploaderID,
		schema.CoreChapter.Number,
		schema.CoreChapter.Title,
		schema.CoreChapter.SourceName,
		schema.CoreChapter.PageCount,
		schema.CoreChapter.ViewCount,
		schema.CoreChapter.CreatedAt,
		schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.DeletedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.ComicID,
		schema.CoreChapter.DeletedAt,
	))

	// Reading order is ascending by default; "desc" surfaces latest releases.
	sortDir := "ASC"
	if strings.ToLower(filter.SortDir) == "desc" {
		sortDir = "DESC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s %s", schema.CoreChapter.Number, sortDir))
	queryBuilder.WriteString(" LIMIT $2 OFFSET $3")

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), comicID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	// Row iteration and entity hydration
	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.ComicID,
			&chapter.UploaderID,
			&chapter.Number,
			&chapter.Title,
			&chapter.SourceName,
			&chapter.PageCount,
			&chapter.ViewCount,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&chapter.DeletedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}

		chapters = append(chapters, &chapter)
	}

	return chapters, totalCount, nil
}

/*
FindByID returns the metadata associated with a chapter identifier.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: A complete mapping of requested chapter data
  - error: apperr.NotFound on absent rows
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			c.%s, c.%s, c.%s, c.%s, c.%s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`,
		schema.CoreChapter.ID, schema.CoreChapter.ComicID, schema.CoreChapter.UploaderID,
		schema.CoreChapter.Number, schema.CoreChapter.Title, schema.CoreChapter.SourceName,
		schema.CoreChapter.PageCount, schema.CoreChapter.ViewCount,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt, schema.CoreChapter.DeletedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.DeletedAt,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID,
		&chapter.ComicID,
		&chapter.UploaderID,
		&chapter.Number,
		&chapter.Title,
		&chapter.SourceName,
		&chapter.PageCount,
		&chapter.ViewCount,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
		&chapter.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return &chapter, nil
}

/*
NumberExists reports whether an active chapter already claims the number.

Description: Backed by the partial unique index on (comicid, chapternumber);
the ingestion pipeline uses this pre-check to turn collisions into rejection
entries instead of transaction aborts.

Parameters:
  - context: context.Context
  - comicID: string (Owner ID)
  - number: float64

Returns:
  - bool: true if the number is already taken
  - error: Execution failures
*/
func (repository *chapterRepository) NumberExists(context context.Context, comicID string, number float64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s = $2 AND %s IS NULL
		)
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ComicID, schema.CoreChapter.Number, schema.CoreChapter.DeletedAt,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, comicID, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check chapter number: %w", err)
	}

	return exists, nil
}

/*
CreateWithPages persists a chapter and its page rows atomically.

Description: The chapter insert and the batched page inserts share one ACID
transaction. If any page in the batch fails, the whole chapter is rolled
back, so readers never see a chapter with missing images.

Parameters:
  - context: context.Context
  - chapter: *Chapter (Metadata; PageCount is derived from pages)
  - pages: []*Page (Ordered page rows)

Returns:
  - error: apperr.Conflict on a duplicate chapter number, otherwise
    execution failures
*/
func (repository *chapterRepository) CreateWithPages(context context.Context, chapter *Chapter, pages []*Page) error {

	// Transaction boundary setup
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin chapter transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Chapter row insertion
	chapter.PageCount = len(pages)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.ComicID, schema.CoreChapter.UploaderID,
		schema.CoreChapter.Number, schema.CoreChapter.Title, schema.CoreChapter.SourceName,
		schema.CoreChapter.PageCount,
	)

	_, err = transaction.Exec(context, query,
		chapter.ID,
		chapter.ComicID,
		chapter.UploaderID,
		chapter.Number,
		chapter.Title,
		chapter.SourceName,
		chapter.PageCount,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(fmt.Sprintf("Chapter %g already exists for this comic", chapter.Number))
		}
		return fmt.Errorf("postgres: failed to create chapter: %w", err)
	}

	// Page batch construction
	pageQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.CorePage.Table,
		schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber,
		schema.CorePage.Filename, schema.CorePage.ImageURL,
	)

	batch := &pgx.Batch{}
	for _, page := range pages {
		batch.Queue(pageQuery, page.ID, page.ChapterID, page.PageNumber, page.Filename, page.ImageURL)
	}

	// Send batch and verify every queued insert
	result := transaction.SendBatch(context, batch)
	for i := 0; i < len(pages); i++ {
		if _, err := result.Exec(); err != nil {
			result.Close()
			return fmt.Errorf("postgres: failed to batch insert page %d: %w", i+1, err)
		}
	}
	if err := result.Close(); err != nil {
		return fmt.Errorf("postgres: failed to close page batch: %w", err)
	}

	// Commit
	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit chapter transaction: %w", err)
	}

	return nil
}

// # Page Management

/*
ListPages retrieves images associated with a specific chapter.

Returns:
  - []*Page: Collection of page records sorted by reading position
*/
func (repository *chapterRepository) ListPages(context context.Context, chapterID string) ([]*Page, error) {

	// Ordered retrieval query
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber,
		schema.CorePage.Filename, schema.CorePage.ImageURL,
		schema.CorePage.Table,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		var page Page
		err := rows.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.Filename, &page.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, &page)
	}

	return pages, nil
}

/*
SoftDelete hides a chapter record without physical removal.
*/
func (repository *chapterRepository) SoftDelete(context context.Context, id string) error {

	// Timestamp update execution
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.CoreChapter.Table, schema.CoreChapter.DeletedAt,
		schema.CoreChapter.ID, schema.CoreChapter.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("chapter")
	}

	return nil
}

/*
IncrementViewCount atomically updates a chapter's view counter.
*/
func (repository *chapterRepository) IncrementViewCount(context context.Context, id string, delta int64) error {

	// Direct atomic increment to prevent race conditions during heavy traffic
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2",
		schema.CoreChapter.Table, schema.CoreChapter.ViewCount, schema.CoreChapter.ViewCount, schema.CoreChapter.ID)

	_, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment chapter view count: %w", err)
	}

	return nil
}
