// Copyright (c) 2026 Kasane. All rights reserved.

package genre

import (
	"context"
	"log/slog"

	"github.com/kasanehq/kasane/internal/platform/validate"
	"github.com/kasanehq/kasane/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(ctx context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(ctx)
}

func (service *Service) GetGenreBySlug(ctx context.Context, genreSlug string) (*Genre, error) {
	return service.repo.FindBySlug(ctx, genreSlug)
}

// CreateGenre validates the name, derives the slug, and persists the genre.
func (service *Service) CreateGenre(ctx context.Context, name string) (*Genre, error) {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 50)

	genreSlug := slug.From(name)
	validator.Slug("slug", genreSlug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	genre := &Genre{Name: name, Slug: genreSlug}
	if err := service.repo.Create(ctx, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created",
		slog.Int("genre_id", genre.ID),
		slog.String("slug", genre.Slug),
	)

	return genre, nil
}

func (service *Service) GenresForComic(ctx context.Context, comicID string) ([]*Genre, error) {
	return service.repo.ListForComic(ctx, comicID)
}

// SetComicGenres replaces the genre set attached to a comic.
func (service *Service) SetComicGenres(ctx context.Context, comicID string, genreIDs []int) ([]*Genre, error) {
	if err := service.repo.SetForComic(ctx, comicID, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("comic_genres_updated",
		slog.String("comic_id", comicID),
		slog.Int("genre_count", len(genreIDs)),
	)

	return service.repo.ListForComic(ctx, comicID)
}
