// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/middleware"
	requestutil "github.com/kasanehq/kasane/internal/platform/request"
	"github.com/kasanehq/kasane/internal/platform/respond"
	"github.com/kasanehq/kasane/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for archive imports.
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler constructs a new ingest [Handler]. maxBytes caps the accepted
// archive size and comes from configuration.
func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// RegisterRoutes attaches the import endpoint to the root API router.
// Importing requires at least the uploader role.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(uploader chi.Router) {
		uploader.Use(middleware.RequireRole(sec.RoleUploader))
		uploader.Post("/comics/{comicID}/import", handler.importArchive)
	})
}

/*
POST /api/v1/comics/{comicID}/import.

Description: Uploads a chapter archive as multipart form data (field
"archive") and ingests it into the comic. Partial success is normal:
the response always carries both the created chapter summaries and the
rejection list.

Request:
  - comicID: string (UUID)
  - archive: file (ZIP, size-capped by configuration)

Response:
  - 201: ImportSummary: At least one chapter was created
  - 200: ImportSummary: Archive processed but every group was rejected
  - 404: ErrNotFound: Comic not found
  - 413: PayloadTooLarge: Archive exceeds the size cap
  - 422: Unprocessable: Corrupt archive or no chapter directories
*/
func (handler *Handler) importArchive(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	uploaderID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The cap applies to the whole request body; multipart overhead is
	// negligible next to the archive itself.
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)

	file, _, err := request.FormFile("archive")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(writer, request, apperr.PayloadTooLarge("Archive exceeds the upload limit"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Multipart field 'archive' is required"))
		return
	}
	defer file.Close()

	archive, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.PayloadTooLarge("Archive exceeds the upload limit"))
		return
	}

	summary, err := handler.service.ImportArchive(request.Context(), comicID, uploaderID, archive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Partial success still creates content; only a fully-rejected archive
	// responds 200.
	if len(summary.Imported) > 0 {
		respond.Created(writer, summary)
		return
	}
	respond.OK(writer, summary)
}
