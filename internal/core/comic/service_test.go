// Copyright (c) 2026 Kasane. All rights reserved.

package comic

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/platform/apperr"
)

// fakeComicRepo is an in-memory ComicRepository used to exercise the service
// without a database.
type fakeComicRepo struct {
	comics map[string]*Comic
}

func newFakeComicRepo() *fakeComicRepo {
	return &fakeComicRepo{comics: map[string]*Comic{}}
}

func (f *fakeComicRepo) List(_ context.Context, _ Filter, _, _ int) ([]*Comic, int, error) {
	var out []*Comic
	for _, c := range f.comics {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeComicRepo) FindByID(_ context.Context, id string) (*Comic, error) {
	if c, ok := f.comics[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("comic")
}

func (f *fakeComicRepo) FindBySlug(_ context.Context, slug string) (*Comic, error) {
	for _, c := range f.comics {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("comic_slug")
}

func (f *fakeComicRepo) Create(_ context.Context, c *Comic) error {
	for _, existing := range f.comics {
		if existing.Slug == c.Slug {
			return apperr.Conflict("A comic with this slug already exists")
		}
	}
	f.comics[c.ID] = c
	return nil
}

func (f *fakeComicRepo) Update(_ context.Context, c *Comic) error {
	existing, ok := f.comics[c.ID]
	if !ok {
		return apperr.NotFound("comic")
	}
	if c.Title != "" {
		existing.Title = c.Title
	}
	if c.Slug != "" {
		existing.Slug = c.Slug
	}
	if c.Synopsis != "" {
		existing.Synopsis = c.Synopsis
	}
	if c.Status != "" {
		existing.Status = c.Status
	}
	if c.CoverURL != "" {
		existing.CoverURL = c.CoverURL
	}
	return nil
}

func (f *fakeComicRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.comics[id]; !ok {
		return apperr.NotFound("comic")
	}
	delete(f.comics, id)
	return nil
}

func (f *fakeComicRepo) IncrementViewCount(_ context.Context, id string, delta int64) error {
	if c, ok := f.comics[id]; ok {
		c.ViewCount += delta
	}
	return nil
}

// fakeBlobStore records Put calls and returns deterministic URLs.
type fakeBlobStore struct {
	objects map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte) (string, error) {
	f.objects[key] = data
	return "/media/" + key, nil
}

func (f *fakeBlobStore) Remove(_ context.Context, prefix string) error {
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			delete(f.objects, key)
		}
	}
	return nil
}

func newTestService(repo ComicRepository) *Service {
	return NewService(repo, newFakeBlobStore(), slog.New(slog.DiscardHandler))
}

func TestCreateComic_GeneratesIdentityAndSlug(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	comic := &Comic{Title: "Blade of Dawn"}
	require.NoError(t, service.CreateComic(context.Background(), comic))

	assert.Len(t, comic.ID, 36)
	assert.Equal(t, "blade-of-dawn", comic.Slug)
	assert.Equal(t, StatusOngoing, comic.Status, "fresh publications default to ongoing")
}

func TestCreateComic_RejectsMissingTitle(t *testing.T) {
	service := newTestService(newFakeComicRepo())

	err := service.CreateComic(context.Background(), &Comic{})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateComic_DuplicateSlugConflicts(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	require.NoError(t, service.CreateComic(context.Background(), &Comic{Title: "Blade of Dawn"}))

	err := service.CreateComic(context.Background(), &Comic{Title: "Blade of Dawn"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestGetComic_ResolvesSlugAndID(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	created := &Comic{Title: "Moonlight Archive"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	bySlug, err := service.GetComic(context.Background(), "moonlight-archive")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := service.GetComic(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "moonlight-archive", byID.Slug)
}

func TestUpdateComic_PartialPatch(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	created := &Comic{Title: "Moonlight Archive", Synopsis: "Original"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	status := StatusCompleted
	updated, err := service.UpdateComic(context.Background(), created.ID, Patch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, "Original", updated.Synopsis, "absent fields stay untouched")
}

func TestUpdateComic_TitleChangeRegeneratesSlug(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	created := &Comic{Title: "Old Title"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	title := "Brand New Title"
	updated, err := service.UpdateComic(context.Background(), created.ID, Patch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestUpdateComic_RejectsInvalidStatus(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	created := &Comic{Title: "Moonlight Archive"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	bogus := Status("archived")
	_, err := service.UpdateComic(context.Background(), created.ID, Patch{Status: &bogus})
	require.Error(t, err)
}

func TestUploadCover_StoresImageAndUpdatesURL(t *testing.T) {
	repo := newFakeComicRepo()
	blobs := newFakeBlobStore()
	service := NewService(repo, blobs, slog.New(slog.DiscardHandler))

	created := &Comic{Title: "Moonlight Archive"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	updated, err := service.UploadCover(context.Background(), created.ID, "cover.PNG", []byte("png-bytes"))
	require.NoError(t, err)

	expectedKey := "comics/" + created.ID + "/cover.png"
	assert.Equal(t, "/media/"+expectedKey, updated.CoverURL)
	assert.Equal(t, []byte("png-bytes"), blobs.objects[expectedKey])
}

func TestUploadCover_RejectsUnsupportedFormat(t *testing.T) {
	repo := newFakeComicRepo()
	service := newTestService(repo)

	created := &Comic{Title: "Moonlight Archive"}
	require.NoError(t, service.CreateComic(context.Background(), created))

	_, err := service.UploadCover(context.Background(), created.ID, "cover.gif", []byte("gif-bytes"))
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDeleteComic_UnknownIDNotFound(t *testing.T) {
	service := newTestService(newFakeComicRepo())

	err := service.DeleteComic(context.Background(), "01912345-0000-7000-8000-000000000000")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
