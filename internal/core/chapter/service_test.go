// Copyright (c) 2026 Kasane. All rights reserved.

package chapter

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/platform/apperr"
)

// fakeChapterRepo is an in-memory ChapterRepository for service tests.
type fakeChapterRepo struct {
	chapters map[string]*Chapter
	pages    map[string][]*Page
	views    map[string]int64
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{
		chapters: map[string]*Chapter{},
		pages:    map[string][]*Page{},
		views:    map[string]int64{},
	}
}

func (f *fakeChapterRepo) ListByComic(_ context.Context, comicID string, _ ChapterFilter, _, _ int) ([]*Chapter, int, error) {
	var out []*Chapter
	for _, c := range f.chapters {
		if c.ComicID == comicID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeChapterRepo) FindByID(_ context.Context, id string) (*Chapter, error) {
	if c, ok := f.chapters[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("chapter")
}

func (f *fakeChapterRepo) NumberExists(_ context.Context, comicID string, number float64) (bool, error) {
	for _, c := range f.chapters {
		if c.ComicID == comicID && c.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChapterRepo) CreateWithPages(_ context.Context, chapter *Chapter, pages []*Page) error {
	for _, existing := range f.chapters {
		if existing.ComicID == chapter.ComicID && existing.Number == chapter.Number {
			return apperr.Conflict("duplicate chapter number")
		}
	}
	chapter.PageCount = len(pages)
	f.chapters[chapter.ID] = chapter
	f.pages[chapter.ID] = pages
	return nil
}

func (f *fakeChapterRepo) ListPages(_ context.Context, chapterID string) ([]*Page, error) {
	return f.pages[chapterID], nil
}

func (f *fakeChapterRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.chapters[id]; !ok {
		return apperr.NotFound("chapter")
	}
	delete(f.chapters, id)
	return nil
}

func (f *fakeChapterRepo) IncrementViewCount(_ context.Context, id string, delta int64) error {
	f.views[id] += delta
	return nil
}

func newTestService(repo ChapterRepository) *Service {
	return NewService(repo, nil, slog.New(slog.DiscardHandler))
}

func seedChapter(t *testing.T, repo *fakeChapterRepo, id string, pages int) {
	t.Helper()

	chapter := &Chapter{ID: id, ComicID: "comic-1", Number: 1}
	rows := make([]*Page, 0, pages)
	for i := 1; i <= pages; i++ {
		rows = append(rows, &Page{ChapterID: id, PageNumber: i})
	}
	require.NoError(t, repo.CreateWithPages(context.Background(), chapter, rows))
}

func TestGetPages_ReturnsOrderedPagesAndBumpsViews(t *testing.T) {
	repo := newFakeChapterRepo()
	seedChapter(t, repo, "ch-1", 3)

	service := newTestService(repo)

	pages, err := service.GetPages(context.Background(), "ch-1")
	require.NoError(t, err)

	require.Len(t, pages, 3)
	for i, page := range pages {
		assert.Equal(t, i+1, page.PageNumber)
	}

	assert.EqualValues(t, 1, repo.views["ch-1"], "a successful read counts as a view")
}

func TestGetPages_UnknownChapterNotFound(t *testing.T) {
	service := newTestService(newFakeChapterRepo())

	_, err := service.GetPages(context.Background(), "missing")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDeleteChapter_RemovesFromDiscovery(t *testing.T) {
	repo := newFakeChapterRepo()
	seedChapter(t, repo, "ch-1", 2)

	service := newTestService(repo)

	require.NoError(t, service.DeleteChapter(context.Background(), "ch-1"))

	_, err := service.GetChapter(context.Background(), "ch-1")
	require.Error(t, err)
}

func TestCreateWithPages_DuplicateNumberConflicts(t *testing.T) {
	repo := newFakeChapterRepo()
	seedChapter(t, repo, "ch-1", 1)

	err := repo.CreateWithPages(context.Background(), &Chapter{ID: "ch-2", ComicID: "comic-1", Number: 1}, nil)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
