// Copyright (c) 2026 Kasane. All rights reserved.

package comic

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/kasanehq/kasane/internal/platform/validate"
	"github.com/kasanehq/kasane/internal/storage"
	"github.com/kasanehq/kasane/pkg/pointer"
	"github.com/kasanehq/kasane/pkg/slug"
	"github.com/kasanehq/kasane/pkg/uuid"
)

// coverExtensions are the formats accepted for cover art uploads.
var coverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// # Service Layer

// Service orchestrates the business logic for the comic catalogue.
// It acts as the primary entry point for managing content metadata.
type Service struct {
	comicRepo ComicRepository
	blobs     storage.BlobStore
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(comicRepo ComicRepository, blobs storage.BlobStore, logger *slog.Logger) *Service {
	return &Service{
		comicRepo: comicRepo,
		blobs:     blobs,
		logger:    logger,
	}
}

// # Comic Lookups

/*
ListComics retrieves a paginated and filtered collection of comics.

Description: This method orchestrates the discovery phase of the catalogue.
Filter criteria are passed directly to the repository layer for
database-level filtering and sorting.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for status, search, sorting)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Comic: Slice of matching publication records
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListComics(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	return service.comicRepo.List(context, filter, limit, offset)
}

/*
GetComic fetches a single publication record by UUID or SEO slug.

Description: The service determines the lookup strategy from the identifier
format. UUID-shaped identifiers hit the primary key; anything else resolves
via the unique URL slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Comic: The hydrated domain entity
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetComic(context context.Context, identifier string) (*Comic, error) {

	// Identity format detection
	if isUUID(identifier) {
		return service.comicRepo.FindByID(context, identifier)
	}

	// Slug resolution
	return service.comicRepo.FindBySlug(context, identifier)
}

// # Comic Management

/*
CreateComic initialises a new publication record in the system.

Description: Performs business validation on the metadata, generates a
time-ordered UUIDv7 identity, and derives the SEO slug from the title
before persisting to the repository.

Parameters:
  - context: context.Context
  - comic: *Comic (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateComic(context context.Context, comic *Comic) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, 500)
	validator.MaxLen(FieldSynopsis, comic.Synopsis, 5000)

	// Lifecycle state defaults to ongoing for fresh publications.
	if comic.Status == "" {
		comic.Status = StatusOngoing
	}
	validator.OneOf(FieldStatus, string(comic.Status),
		string(StatusOngoing),
		string(StatusCompleted),
		string(StatusHiatus),
		string(StatusCancelled),
	)

	// Identity generation
	if comic.ID == "" {
		comic.ID = uuid.New()
	}

	// Slug generation
	if comic.Slug == "" {
		comic.Slug = slug.From(comic.Title)
	}
	validator.Slug(FieldSlug, comic.Slug)

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return err
	}

	// Persistence via Repository
	if err := service.comicRepo.Create(context, comic); err != nil {
		return err
	}

	service.logger.Info("comic_created",
		slog.String("comic_id", comic.ID),
		slog.String("title", comic.Title),
	)

	return nil
}

/*
UpdateComic applies a partial update to an existing publication.

Description: Nil fields in the patch are left untouched. Set fields are
validated before the repository write, and a changed title regenerates
the SEO slug.

Parameters:
  - context: context.Context
  - id: string (UUID of the target comic)
  - patch: Patch (Fields to modify)

Returns:
  - *Comic: The updated entity re-read from storage
  - error: Validation or persistence errors
*/
func (service *Service) UpdateComic(context context.Context, id string, patch Patch) (*Comic, error) {

	// Integrity validation for updated fields
	validator := &validate.Validator{}

	comic := &Comic{ID: id}

	// Title changes cascade into the slug.
	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 500)
		comic.Title = *patch.Title
		comic.Slug = slug.From(*patch.Title)
	}

	// Synopsis
	if patch.Synopsis != nil {
		validator.MaxLen(FieldSynopsis, *patch.Synopsis, 5000)
		comic.Synopsis = *patch.Synopsis
	}

	// Lifecycle state validation
	if patch.Status != nil {
		validator.OneOf(FieldStatus, string(*patch.Status),
			string(StatusOngoing),
			string(StatusCompleted),
			string(StatusHiatus),
			string(StatusCancelled),
		)
		comic.Status = *patch.Status
	}

	// OriginLanguage
	if patch.OriginLanguage != nil {
		validator.MaxLen(FieldLanguage, *patch.OriginLanguage, 16)
		comic.OriginLanguage = pointer.Val(patch.OriginLanguage)
	}

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Execute storage update
	if err := service.comicRepo.Update(context, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_updated", slog.String("comic_id", id))

	return service.comicRepo.FindByID(context, id)
}

/*
UploadCover stores new cover art for a comic and records its public URL.

Description: The image is written to the blob store under a stable key
(one cover per comic; re-uploads overwrite), and the comic's CoverURL is
updated in the same call.

Parameters:
  - context: context.Context
  - id: string (UUID of the target comic)
  - filename: string (Original upload filename, used for the extension)
  - data: []byte (Image bytes)

Returns:
  - *Comic: The updated entity
  - error: Validation, storage, or persistence errors
*/
func (service *Service) UploadCover(context context.Context, id, filename string, data []byte) (*Comic, error) {

	// The comic must exist before we touch the blob store.
	if _, err := service.comicRepo.FindByID(context, id); err != nil {
		return nil, err
	}

	// Extension validation
	ext := strings.ToLower(path.Ext(filename))
	validator := &validate.Validator{}
	validator.Custom("cover", !coverExtensions[ext], "Cover must be a JPEG, PNG, or WebP image")
	validator.Custom("cover", len(data) == 0, "Cover image is empty")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// One cover per comic; re-uploads overwrite the previous object.
	key := fmt.Sprintf("comics/%s/cover%s", id, ext)
	url, err := service.blobs.Put(context, key, data)
	if err != nil {
		return nil, err
	}

	if err := service.comicRepo.Update(context, &Comic{ID: id, CoverURL: url}); err != nil {
		return nil, err
	}

	service.logger.Info("comic_cover_uploaded",
		slog.String("comic_id", id),
		slog.String("cover_url", url),
	)

	return service.comicRepo.FindByID(context, id)
}

/*
DeleteComic removes a comic from active discovery.

Description: Implements soft-delete logic. The record remains in the
database but its visibility is hidden from every read path.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Persistence error if removal fails
*/
func (service *Service) DeleteComic(context context.Context, id string) error {
	if err := service.comicRepo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("comic_deleted", slog.String("comic_id", id))

	return nil
}

// # Internal Helpers

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
