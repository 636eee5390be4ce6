// Copyright (c) 2026 Kasane. All rights reserved.

package genre

import "context"

type Repository interface {
	// ListGenres returns all genres ordered by name.
	ListGenres(ctx context.Context) ([]*Genre, error)

	// FindBySlug returns the genre with the given slug.
	//
	// Returns [apperr.NotFound] if no such genre exists.
	FindBySlug(ctx context.Context, slug string) (*Genre, error)

	// Create persists a new genre and fills in its generated ID.
	//
	// Returns [apperr.Conflict] if the slug is taken.
	Create(ctx context.Context, genre *Genre) error

	// ListForComic returns the genres attached to a comic, ordered by name.
	ListForComic(ctx context.Context, comicID string) ([]*Genre, error)

	// SetForComic replaces the comic's genre set atomically.
	SetForComic(ctx context.Context, comicID string, genreIDs []int) error
}
