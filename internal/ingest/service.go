// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kasanehq/kasane/internal/core/chapter"
	"github.com/kasanehq/kasane/internal/core/comic"
	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/storage"
	"github.com/kasanehq/kasane/pkg/slice"
	"github.com/kasanehq/kasane/pkg/uuid"
)

// pagePutConcurrency bounds parallel blob writes per chapter.
const pagePutConcurrency = 4

// # Collaborator Contracts

// ComicFinder resolves the comic an archive is being imported into.
type ComicFinder interface {
	FindByID(context context.Context, id string) (*comic.Comic, error)
}

// ChapterStore persists accepted chapter groups.
type ChapterStore interface {
	NumberExists(context context.Context, comicID string, number float64) (bool, error)
	CreateWithPages(context context.Context, chapter *chapter.Chapter, pages []*chapter.Page) error
}

// # Import Summary

// ChapterSummary describes one chapter created by an archive import.
type ChapterSummary struct {
	ID         string  `json:"id"`
	Number     float64 `json:"number"`
	SourceName string  `json:"source_name"`
	PageCount  int     `json:"page_count"`
}

// ImportSummary is the API-facing outcome of one archive import.
type ImportSummary struct {
	Imported []ChapterSummary `json:"imported"`
	Rejected []Rejection      `json:"rejected"`
}

// # Service Layer

// Service orchestrates archive imports: pure extraction via [Importer],
// page image persistence via the blob store, and chapter/page rows via
// the chapter repository.
type Service struct {
	importer *Importer
	comics   ComicFinder
	chapters ChapterStore
	blobs    storage.BlobStore
	logger   *slog.Logger
}

// NewService constructs the ingest [Service].
func NewService(importer *Importer, comics ComicFinder, chapters ChapterStore, blobs storage.BlobStore, logger *slog.Logger) *Service {
	return &Service{
		importer: importer,
		comics:   comics,
		chapters: chapters,
		blobs:    blobs,
		logger:   logger,
	}
}

/*
ImportArchive ingests a chapter archive into a comic.

Description: Runs the pure importer, then persists each accepted group as a
chapter with its pages. Page images fan out to the blob store through a
bounded errgroup before the database rows are written, so a chapter row
never references an image that failed to upload. Groups whose number is
already taken by a persisted chapter are skipped and reported, consistent
with the importer's first-seen-wins rule. Storage failures roll back the
current chapter's blobs and abort the call; chapters persisted before the
failure remain.

Parameters:
  - context: context.Context
  - comicID: string (Target comic UUID)
  - uploaderID: string (Authenticated account performing the import)
  - archive: []byte (Complete ZIP contents)

Returns:
  - *ImportSummary: Created chapter summaries plus every rejection
  - error: ErrNotFound for an unknown comic, Unprocessable for fatal
    archive errors, or persistence failures
*/
func (service *Service) ImportArchive(context context.Context, comicID, uploaderID string, archive []byte) (*ImportSummary, error) {

	// Target resolution: the comic must exist and be active.
	if _, err := service.comics.FindByID(context, comicID); err != nil {
		return nil, err
	}

	// Pure extraction; fatal archive errors map to 422s.
	result, err := service.importer.Import(archive)
	if err != nil {
		switch {
		case errors.Is(err, ErrCorruptArchive):
			return nil, apperr.Unprocessable("Archive is corrupt or not a valid ZIP file")
		case errors.Is(err, ErrNoChaptersFound):
			return nil, apperr.Unprocessable("Archive contains no chapter directories")
		}
		return nil, err
	}

	summary := &ImportSummary{Rejected: result.Rejected}
	var imported []*chapter.Chapter

	for _, group := range result.Chapters {

		// Collision with already-persisted chapters is a rejection, not an
		// error; the rest of the archive still imports.
		exists, err := service.chapters.NumberExists(context, comicID, group.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			summary.Rejected = append(summary.Rejected, Rejection{Directory: group.RawName, Reason: RejectNumberTaken})
			continue
		}

		persisted, err := service.persistGroup(context, comicID, uploaderID, group)
		if err != nil {
			return nil, err
		}
		if persisted == nil {
			// Lost a creation race; reported as taken.
			summary.Rejected = append(summary.Rejected, Rejection{Directory: group.RawName, Reason: RejectNumberTaken})
			continue
		}

		imported = append(imported, persisted)
	}

	summary.Imported = slice.Map(imported, func(c *chapter.Chapter) ChapterSummary {
		return ChapterSummary{
			ID:         c.ID,
			Number:     c.Number,
			SourceName: c.SourceName,
			PageCount:  c.PageCount,
		}
	})

	service.logger.Info("archive_import_completed",
		slog.String("comic_id", comicID),
		slog.Int("imported", len(summary.Imported)),
		slog.Int("rejected", len(summary.Rejected)),
	)

	return summary, nil
}

// persistGroup stores one accepted chapter group: page blobs first, then the
// chapter and page rows in a single transaction. It returns (nil, nil) when
// the chapter number was claimed concurrently.
func (service *Service) persistGroup(context context.Context, comicID, uploaderID string, group ChapterGroup) (*chapter.Chapter, error) {
	chapterID := uuid.New()
	prefix := fmt.Sprintf("comics/%s/chapters/%s", comicID, chapterID)

	// Bounded fan-out of page image writes.
	urls := make([]string, len(group.Pages))

	workers, workerContext := errgroup.WithContext(context)
	workers.SetLimit(pagePutConcurrency)

	for i, page := range group.Pages {
		workers.Go(func() error {
			key := fmt.Sprintf("%s/%03d%s", prefix, i+1, page.Extension)
			url, err := service.blobs.Put(workerContext, key, page.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		service.cleanupBlobs(context, prefix)
		return nil, fmt.Errorf("ingest: failed to store pages for %q: %w", group.RawName, err)
	}

	// Row construction
	pages := make([]*chapter.Page, len(group.Pages))
	for i, page := range group.Pages {
		pages[i] = &chapter.Page{
			ID:         uuid.New(),
			ChapterID:  chapterID,
			PageNumber: i + 1,
			Filename:   page.Filename,
			ImageURL:   urls[i],
		}
	}

	record := &chapter.Chapter{
		ID:         chapterID,
		ComicID:    comicID,
		UploaderID: uploaderID,
		Number:     group.Number,
		SourceName: group.RawName,
	}

	if err := service.chapters.CreateWithPages(context, record, pages); err != nil {
		service.cleanupBlobs(context, prefix)

		// A concurrent import claimed the number between the pre-check and
		// the insert; the unique index turns that into a conflict.
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "CONFLICT" {
			return nil, nil
		}
		return nil, err
	}

	service.logger.Info("chapter_ingested",
		slog.String("comic_id", comicID),
		slog.String("chapter_id", chapterID),
		slog.Float64("number", group.Number),
		slog.Int("pages", len(pages)),
	)

	return record, nil
}

// cleanupBlobs best-effort removes a failed chapter's stored images.
func (service *Service) cleanupBlobs(context context.Context, prefix string) {
	if err := service.blobs.Remove(context, prefix); err != nil {
		service.logger.Warn("ingest_blob_cleanup_failed",
			slog.String("prefix", prefix),
			slog.String("error", err.Error()),
		)
	}
}
