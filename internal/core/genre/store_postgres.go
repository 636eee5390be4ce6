// Copyright (c) 2026 Kasane. All rights reserved.

package genre

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/database/schema"
	"github.com/kasanehq/kasane/internal/platform/dberr"
)

type genreRepository struct {
	pool *pgxpool.Pool
}

// NewGenreRepository constructs a PostgreSQL backed genre store.
func NewGenreRepository(pool *pgxpool.Pool) Repository {
	return &genreRepository{pool: pool}
}

func (repository *genreRepository) ListGenres(ctx context.Context) ([]*Genre, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC",
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.Table, schema.CoreGenre.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

func (repository *genreRepository) FindBySlug(ctx context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.Table, schema.CoreGenre.Slug)

	g := &Genre{}
	err := repository.pool.QueryRow(ctx, query, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("genre")
		}
		return nil, fmt.Errorf("postgres: failed to find genre by slug: %w", err)
	}

	return g, nil
}

func (repository *genreRepository) Create(ctx context.Context, genre *Genre) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s",
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreGenre.ID, schema.CoreGenre.CreatedAt)

	err := repository.pool.QueryRow(ctx, query, genre.Name, genre.Slug).Scan(&genre.ID, &genre.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A genre with this name already exists")
		}
		return fmt.Errorf("postgres: failed to create genre: %w", err)
	}

	return nil
}

func (repository *genreRepository) ListForComic(ctx context.Context, comicID string) ([]*Genre, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s
		FROM %s g
		JOIN %s cg ON cg.%s = g.%s
		WHERE cg.%s = $1
		ORDER BY g.%s ASC
	`,
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.Table,
		schema.CoreComicGenre.Table, schema.CoreComicGenre.GenreID, schema.CoreGenre.ID,
		schema.CoreComicGenre.ComicID,
		schema.CoreGenre.Name,
	)

	rows, err := repository.pool.Query(ctx, query, comicID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comic_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_comic_genre")
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

// SetForComic replaces the comic's genre set inside one transaction so
// readers never observe a partially updated set.
func (repository *genreRepository) SetForComic(ctx context.Context, comicID string, genreIDs []int) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin genre assignment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreComicGenre.Table, schema.CoreComicGenre.ComicID)
	if _, err := tx.Exec(ctx, deleteQuery, comicID); err != nil {
		return fmt.Errorf("postgres: failed to clear comic genres: %w", err)
	}

	if len(genreIDs) > 0 {
		insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
			schema.CoreComicGenre.Table, schema.CoreComicGenre.ComicID, schema.CoreComicGenre.GenreID)

		batch := &pgx.Batch{}
		for _, genreID := range genreIDs {
			batch.Queue(insertQuery, comicID, genreID)
		}

		results := tx.SendBatch(ctx, batch)
		for range genreIDs {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				if dberr.IsForeignKeyViolation(err) {
					return apperr.ValidationError("Unknown comic or genre reference")
				}
				return fmt.Errorf("postgres: failed to assign genre: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("postgres: failed to finish genre assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit genre assignment: %w", err)
	}

	return nil
}
