// Copyright (c) 2026 Kasane. All rights reserved.

package genre

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/platform/apperr"
)

type fakeGenreRepo struct {
	genres  map[int]*Genre
	byComic map[string][]int
	nextID  int
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{
		genres:  map[int]*Genre{},
		byComic: map[string][]int{},
		nextID:  1,
	}
}

func (f *fakeGenreRepo) ListGenres(_ context.Context) ([]*Genre, error) {
	out := make([]*Genre, 0, len(f.genres))
	for _, g := range f.genres {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, apperr.NotFound("genre")
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *Genre) error {
	for _, g := range f.genres {
		if g.Slug == genre.Slug {
			return apperr.Conflict("A genre with this name already exists")
		}
	}
	genre.ID = f.nextID
	f.nextID++
	f.genres[genre.ID] = genre
	return nil
}

func (f *fakeGenreRepo) ListForComic(_ context.Context, comicID string) ([]*Genre, error) {
	out := make([]*Genre, 0)
	for _, id := range f.byComic[comicID] {
		if g, ok := f.genres[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) SetForComic(_ context.Context, comicID string, genreIDs []int) error {
	for _, id := range genreIDs {
		if _, ok := f.genres[id]; !ok {
			return apperr.ValidationError("Unknown comic or genre reference")
		}
	}
	f.byComic[comicID] = genreIDs
	return nil
}

func newTestGenreService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreateGenre_DerivesSlug(t *testing.T) {
	service := newTestGenreService(newFakeGenreRepo())

	genre, err := service.CreateGenre(context.Background(), "Slice of Life")
	require.NoError(t, err)

	assert.NotZero(t, genre.ID)
	assert.Equal(t, "Slice of Life", genre.Name)
	assert.Equal(t, "slice-of-life", genre.Slug)
}

func TestCreateGenre_DuplicateNameConflicts(t *testing.T) {
	service := newTestGenreService(newFakeGenreRepo())

	_, err := service.CreateGenre(context.Background(), "Action")
	require.NoError(t, err)

	_, err = service.CreateGenre(context.Background(), "Action")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestCreateGenre_RejectsEmptyName(t *testing.T) {
	service := newTestGenreService(newFakeGenreRepo())

	_, err := service.CreateGenre(context.Background(), "")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSetComicGenres_ReplacesSet(t *testing.T) {
	repo := newFakeGenreRepo()
	service := newTestGenreService(repo)

	action, err := service.CreateGenre(context.Background(), "Action")
	require.NoError(t, err)
	romance, err := service.CreateGenre(context.Background(), "Romance")
	require.NoError(t, err)

	genres, err := service.SetComicGenres(context.Background(), "comic-1", []int{action.ID, romance.ID})
	require.NoError(t, err)
	assert.Len(t, genres, 2)

	genres, err = service.SetComicGenres(context.Background(), "comic-1", []int{romance.ID})
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Romance", genres[0].Name)
}

func TestSetComicGenres_UnknownGenreRejected(t *testing.T) {
	service := newTestGenreService(newFakeGenreRepo())

	_, err := service.SetComicGenres(context.Background(), "comic-1", []int{99})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
