// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package comic provides the PostgreSQL implementation for the catalogue's data access.

It leans on a few Postgres features to keep the discovery path fast:
  - Window Functions: COUNT(*) OVER() returns total result counts without a
    separate COUNT query.
  - Partial visibility: every read carries a 'deletedat IS NULL' guard so
    soft-deleted rows never leak into discovery.
  - Atomic counters: view counts are incremented in-place rather than
    read-modify-written.
*/
package comic

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

// comicRepository implements the [ComicRepository] interface using pgx.
type comicRepository struct {
	pool *pgxpool.Pool
}

// NewComicRepository constructs a PostgreSQL backed comic store.
func NewComicRepository(pool *pgxpool.Pool) ComicRepository {
	return &comicRepository{pool: pool}
}

// selectColumns is the shared projection for single-entity lookups.
func selectColumns() string {
	return strings.Join([]string{
		schema.CoreComic.ID,
		schema.CoreComic.Title,
		schema.CoreComic.Slug,
		schema.CoreComic.Synopsis,
		schema.CoreComic.CoverURL,
		schema.CoreComic.Status,
		schema.CoreComic.Language,
		schema.CoreComic.ViewCount,
		schema.CoreComic.CreatedAt,
		schema.CoreComic.UpdatedAt,
		schema.CoreComic.DeletedAt,
	}, ", ")
}

// scanComic maps one projected row into the domain entity.
func scanComic(row pgx.Row) (*Comic, error) {
	comic := &Comic{}
	err := row.Scan(
		&comic.ID,
		&comic.Title,
		&comic.Slug,
		&comic.Synopsis,
		&comic.CoverURL,
		&comic.Status,
		&comic.OriginLanguage,
		&comic.ViewCount,
		&comic.CreatedAt,
		&comic.UpdatedAt,
		&comic.DeletedAt,
	)
	return comic, err
}

// # Repository Implementation

/*
List returns a filtered, paginated slice of comics and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total record count in the
same round-trip as the page itself, and builds the WHERE clause dynamically
from the populated filter fields.

Parameters:
  - context: context.Context
  - filter: Filter (Search, status, sorting)
  - limit: int
  - offset: int

Returns:
  - []*Comic: Slice of hydrated comic entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *comicRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s IS NULL
	`,
		selectColumns(),
		schema.CoreComic.Table,
		schema.CoreComic.DeletedAt,
	))

	// Status Filtering
	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreComic.Status, argID))
		args = append(args, *filter.Status)
		argID++
	}

	// Title Search Filtering
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s ILIKE $%d", schema.CoreComic.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Apply Sorting Logic
	sort := fmt.Sprintf("c.%s", schema.CoreComic.UpdatedAt) // default: recently updated
	switch filter.SortBy {
	case "title":
		sort = fmt.Sprintf("c.%s", schema.CoreComic.Title)
	case "viewcount":
		sort = fmt.Sprintf("c.%s", schema.CoreComic.ViewCount)
	case "createdat":
		sort = fmt.Sprintf("c.%s", schema.CoreComic.CreatedAt)
	}

	// Apply Sorting Direction
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" {
		sortDir = "ASC"
	}

	// Apply Sorting with a stable tiebreak
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, c.%s DESC", sort, sortDir, schema.CoreComic.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comics: %w", err)
	}
	defer rows.Close()

	var comics []*Comic
	var totalCount int

	for rows.Next() {
		comic := &Comic{}
		err := rows.Scan(
			&comic.ID,
			&comic.Title,
			&comic.Slug,
			&comic.Synopsis,
			&comic.CoverURL,
			&comic.Status,
			&comic.OriginLanguage,
			&comic.ViewCount,
			&comic.CreatedAt,
			&comic.UpdatedAt,
			&comic.DeletedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comic: %w", err)
		}

		comics = append(comics, comic)
	}

	return comics, totalCount, nil
}

/*
FindByID retrieves a comic record by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID primary key)

Returns:
  - *Comic: The hydrated comic entity
  - error: apperr.NotFound if the comic does not exist or is soft-deleted
*/
func (repository *comicRepository) FindByID(context context.Context, id string) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`, selectColumns(), schema.CoreComic.Table, schema.CoreComic.ID, schema.CoreComic.DeletedAt)

	comic, err := scanComic(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comic")
		}
		return nil, fmt.Errorf("postgres: failed to find comic by id: %w", err)
	}

	return comic, nil
}

/*
FindBySlug retrieves a comic record using its unique SEO URL slug.

Description: Used for public discovery where the internal UUID is not present
in the frontend URL schema.

Parameters:
  - context: context.Context
  - slug: string (Human-readable URL identifier)

Returns:
  - *Comic: The hydrated comic entity
  - error: apperr.NotFound on an unknown slug
*/
func (repository *comicRepository) FindBySlug(context context.Context, slug string) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`, selectColumns(), schema.CoreComic.Table, schema.CoreComic.Slug, schema.CoreComic.DeletedAt)

	comic, err := scanComic(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comic_slug")
		}
		return nil, fmt.Errorf("postgres: failed to find comic by slug: %w", err)
	}

	return comic, nil
}

/*
Create persists a new comic entity.

Parameters:
  - context: context.Context
  - comic: *Comic (The domain entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate slug, otherwise execution errors
*/
func (repository *comicRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.CoreComic.Table,
		schema.CoreComic.ID, schema.CoreComic.Title, schema.CoreComic.Slug,
		schema.CoreComic.Synopsis, schema.CoreComic.CoverURL, schema.CoreComic.Status,
		schema.CoreComic.Language,
	)

	_, err := repository.pool.Exec(context, query,
		comic.ID,
		comic.Title,
		comic.Slug,
		comic.Synopsis,
		comic.CoverURL,
		comic.Status,
		comic.OriginLanguage,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A comic with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to create comic: %w", err)
	}

	return nil
}

/*
Update persists metadata modifications to an existing comic record.

Description: Builds a PATCH-style partial update with strings.Builder,
appending only populated fields to the SET block. The UpdatedAt stamp is
always refreshed.

Parameters:
  - context: context.Context
  - comic: *Comic (Target ID and updated fields)

Returns:
  - error: apperr.NotFound if the target record does not exist
*/
func (repository *comicRepository) Update(context context.Context, comic *Comic) error {

	// Dynamic SET block construction
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.CoreComic.Table, schema.CoreComic.UpdatedAt))

	var args []any
	argID := 1

	// Only populated fields overwrite existing columns.
	if comic.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.Title, argID))
		args = append(args, comic.Title)
		argID++
	}

	// Slug
	if comic.Slug != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.Slug, argID))
		args = append(args, comic.Slug)
		argID++
	}

	// Synopsis
	if comic.Synopsis != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.Synopsis, argID))
		args = append(args, comic.Synopsis)
		argID++
	}

	// CoverURL
	if comic.CoverURL != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.CoverURL, argID))
		args = append(args, comic.CoverURL)
		argID++
	}

	// Status
	if comic.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.Status, argID))
		args = append(args, comic.Status)
		argID++
	}

	// OriginLanguage
	if comic.OriginLanguage != "" {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", schema.CoreComic.Language, argID))
		args = append(args, comic.OriginLanguage)
		argID++
	}

	// Bound the update to a single active row.
	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d AND %s IS NULL", schema.CoreComic.ID, argID, schema.CoreComic.DeletedAt))
	args = append(args, comic.ID)

	response, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A comic with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to update comic: %w", err)
	}

	if response.RowsAffected() == 0 {
		return apperr.NotFound("comic")
	}

	return nil
}

/*
SoftDelete hides a comic without physical row removal.

Description: Stamps the deletedat column with NOW(). All read paths carry a
'deletedat IS NULL' guard, so the row drops out of discovery immediately.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound if missing or already deleted
*/
func (repository *comicRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.CoreComic.Table, schema.CoreComic.DeletedAt,
		schema.CoreComic.ID, schema.CoreComic.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("comic")
	}

	return nil
}

/*
IncrementViewCount performs a thread-safe counter update.

Description: Tells the database engine to apply the numeric addition directly
on the column instead of a read-modify-write round-trip, which keeps the
counter correct under concurrent reader traffic.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - delta: int64 (Counter jump, usually the flushed Redis tally)

Returns:
  - error: Execution failures
*/
func (repository *comicRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + $1 WHERE %s = $2",
		schema.CoreComic.Table,
		schema.CoreComic.ViewCount, schema.CoreComic.ViewCount,
		schema.CoreComic.ID,
	)

	_, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment view count: %w", err)
	}

	return nil
}
