// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package comic provides the HTTP interface for discovery and management of the catalogue.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /comics).
  - Restricted (v1): Mutative endpoints requiring the Admin role (POST, PATCH, DELETE).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package comic

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/middleware"
	requestutil "github.com/kasanehq/kasane/internal/platform/request"
	"github.com/kasanehq/kasane/internal/platform/respond"
	"github.com/kasanehq/kasane/internal/platform/sec"
	"github.com/kasanehq/kasane/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comic management and discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comic [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comic domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listComics)
	router.Get("/{identifier}", handler.getComic)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createComic)
		admin.Patch("/{id}", handler.updateComic)
		admin.Delete("/{id}", handler.deleteComic)
		admin.Post("/{id}/cover", handler.uploadCover)
	})

	return router
}

// # Comic Endpoints

/*
GET /api/v1/comics.

Description: Retrieves a paginated list of comics from the catalogue.

Request:
  - q: string (Title search)
  - status: string (ongoing, completed, hiatus, cancelled)
  - sort: string (title, viewcount, createdat; default recently updated)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Comic: Paginated list of comics
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:   queryParams.Get("q"),
		SortBy:  queryParams.Get("sort"),
		SortDir: queryParams.Get("dir"),
	}

	// Status filter is only applied when it names a known state.
	if status := Status(queryParams.Get("status")); status.IsValid() {
		filter.Status = &status
	}

	comics, total, err := handler.service.ListComics(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comics, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/{identifier}.

Description: Retrieves detailed metadata for a comic using either its UUID
or unique title slug. UUID lookups take precedence.

Response:
  - 200: Comic: Success
  - 404: ErrNotFound: Comic not found
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	comic, err := handler.service.GetComic(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// # Request Payloads

// createComicRequest defines the inbound JSON schema for comic creation.
type createComicRequest struct {
	Title          string `json:"title"`
	Synopsis       string `json:"synopsis"`
	Status         Status `json:"status"`
	OriginLanguage string `json:"origin_language"`
}

// # Mutation Endpoints

/*
POST /api/v1/comics.

Description: Creates a new comic entry in the catalogue. Slugs are
auto-generated from the title.

Response:
  - 201: Comic: Created comic object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Insufficient permissions
  - 409: ErrConflict: Slug already taken
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input createComicRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic := &Comic{
		Title:          input.Title,
		Synopsis:       input.Synopsis,
		Status:         input.Status,
		OriginLanguage: input.OriginLanguage,
	}

	if err := handler.service.CreateComic(request.Context(), comic); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

/*
PATCH /api/v1/comics/{id}.

Description: Applies a partial update to an existing comic. Absent fields
are left untouched.

Response:
  - 200: Comic: Updated comic object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Comic not found
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.UpdateComic(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// maxCoverBytes caps cover art uploads at 8 MiB.
const maxCoverBytes = 8 << 20

/*
POST /api/v1/comics/{id}/cover.

Description: Uploads cover art for a comic as multipart form data
(field "cover"). Re-uploads overwrite the previous cover.

Response:
  - 200: Comic: Updated comic object
  - 400: Validation: Unsupported format or empty file
  - 404: ErrNotFound: Comic not found
  - 413: PayloadTooLarge: File exceeds the size cap
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	request.Body = http.MaxBytesReader(writer, request.Body, maxCoverBytes)

	file, header, err := request.FormFile("cover")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Multipart field 'cover' is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.PayloadTooLarge("Cover image exceeds the upload limit"))
		return
	}

	comic, err := handler.service.UploadCover(request.Context(), id, header.Filename, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
DELETE /api/v1/comics/{id}.

Description: Soft-deletes a comic, hiding it from all discovery endpoints.

Response:
  - 204: No Content
  - 404: ErrNotFound: Comic not found
*/
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteComic(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
