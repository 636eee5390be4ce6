// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/core/chapter"
	"github.com/kasanehq/kasane/internal/core/comic"
	"github.com/kasanehq/kasane/internal/platform/apperr"
)

// # Test Doubles

type fakeComics struct {
	known map[string]bool
}

func (f *fakeComics) FindByID(_ context.Context, id string) (*comic.Comic, error) {
	if f.known[id] {
		return &comic.Comic{ID: id, Title: "Test Comic"}, nil
	}
	return nil, apperr.NotFound("comic")
}

type fakeChapters struct {
	created map[float64]*chapter.Chapter
	pages   map[string][]*chapter.Page
}

func newFakeChapters() *fakeChapters {
	return &fakeChapters{
		created: map[float64]*chapter.Chapter{},
		pages:   map[string][]*chapter.Page{},
	}
}

func (f *fakeChapters) NumberExists(_ context.Context, _ string, number float64) (bool, error) {
	_, ok := f.created[number]
	return ok, nil
}

func (f *fakeChapters) CreateWithPages(_ context.Context, ch *chapter.Chapter, pages []*chapter.Page) error {
	if _, ok := f.created[ch.Number]; ok {
		return apperr.Conflict("duplicate chapter number")
	}
	ch.PageCount = len(pages)
	f.created[ch.Number] = ch
	f.pages[ch.ID] = pages
	return nil
}

type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (m *memBlobStore) Put(_ context.Context, key string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return "/media/" + key, nil
}

func (m *memBlobStore) Remove(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

func newTestIngest(comics *fakeComics, chapters *fakeChapters, blobs *memBlobStore) *Service {
	return NewService(
		NewImporter(defaultExts),
		comics,
		chapters,
		blobs,
		slog.New(slog.DiscardHandler),
	)
}

// # Tests

func TestImportArchive_PersistsChaptersAndPages(t *testing.T) {
	comics := &fakeComics{known: map[string]bool{"comic-1": true}}
	chapters := newFakeChapters()
	blobs := newMemBlobStore()
	service := newTestIngest(comics, chapters, blobs)

	archive := buildZip(t, map[string][]byte{
		"Chapter 1/2.png": []byte("page-two"),
		"Chapter 1/1.png": []byte("page-one"),
		"Chapter 2/1.png": []byte("page-three"),
	})

	summary, err := service.ImportArchive(context.Background(), "comic-1", "user-1", archive)
	require.NoError(t, err)

	require.Len(t, summary.Imported, 2)
	assert.Empty(t, summary.Rejected)
	assert.Equal(t, 1.0, summary.Imported[0].Number)
	assert.Equal(t, 2.0, summary.Imported[1].Number)
	assert.Equal(t, 2, summary.Imported[0].PageCount)

	// Page rows carry reading order and the blob URLs.
	created := chapters.created[1.0]
	require.NotNil(t, created)
	assert.Equal(t, "user-1", created.UploaderID)

	pages := chapters.pages[created.ID]
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, "1.png", pages[0].Filename)
	assert.Contains(t, pages[0].ImageURL, "/media/comics/comic-1/chapters/"+created.ID+"/001.png")

	// Blob content matches the archive bytes.
	assert.Equal(t, []byte("page-one"), blobs.objects["comics/comic-1/chapters/"+created.ID+"/001.png"])
	assert.Equal(t, []byte("page-two"), blobs.objects["comics/comic-1/chapters/"+created.ID+"/002.png"])
}

func TestImportArchive_UnknownComic(t *testing.T) {
	service := newTestIngest(&fakeComics{known: map[string]bool{}}, newFakeChapters(), newMemBlobStore())

	archive := buildZip(t, map[string][]byte{"Chapter 1/1.png": []byte("x")})

	_, err := service.ImportArchive(context.Background(), "missing", "user-1", archive)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestImportArchive_CorruptArchiveUnprocessable(t *testing.T) {
	service := newTestIngest(&fakeComics{known: map[string]bool{"comic-1": true}}, newFakeChapters(), newMemBlobStore())

	_, err := service.ImportArchive(context.Background(), "comic-1", "user-1", []byte("not a zip"))
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNPROCESSABLE", appErr.Code)
}

func TestImportArchive_ExistingNumberSkippedAsRejection(t *testing.T) {
	comics := &fakeComics{known: map[string]bool{"comic-1": true}}
	chapters := newFakeChapters()
	service := newTestIngest(comics, chapters, newMemBlobStore())

	// Chapter 1 already lives in the store.
	require.NoError(t, chapters.CreateWithPages(context.Background(),
		&chapter.Chapter{ID: "existing", ComicID: "comic-1", Number: 1}, nil))

	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.png": []byte("x"),
		"Chapter 2/1.png": []byte("x"),
	})

	summary, err := service.ImportArchive(context.Background(), "comic-1", "user-1", archive)
	require.NoError(t, err)

	require.Len(t, summary.Imported, 1)
	assert.Equal(t, 2.0, summary.Imported[0].Number)

	require.Len(t, summary.Rejected, 1)
	assert.Equal(t, "Chapter 1", summary.Rejected[0].Directory)
	assert.Equal(t, RejectNumberTaken, summary.Rejected[0].Reason)
}

func TestImportArchive_ImporterRejectionsSurfaceInSummary(t *testing.T) {
	comics := &fakeComics{known: map[string]bool{"comic-1": true}}
	service := newTestIngest(comics, newFakeChapters(), newMemBlobStore())

	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.png": []byte("x"),
		"Extras/b.txt":    []byte("x"),
	})

	summary, err := service.ImportArchive(context.Background(), "comic-1", "user-1", archive)
	require.NoError(t, err)

	require.Len(t, summary.Imported, 1)
	require.Len(t, summary.Rejected, 1)
	assert.Equal(t, RejectNoNumberFound, summary.Rejected[0].Reason)
}
