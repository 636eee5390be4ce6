// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package chapter provides the HTTP interface for reading and managing chapters.

# Routing Strategy

  - Public (v1): Chapter lists and reader payloads, accessible to all visitors.
  - Restricted (v1): Deletion requires the Admin role.

Chapter creation has no JSON endpoint; chapters enter the system through the
archive ingestion pipeline.
*/
package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasanehq/kasane/internal/platform/middleware"
	requestutil "github.com/kasanehq/kasane/internal/platform/request"
	"github.com/kasanehq/kasane/internal/platform/respond"
	"github.com/kasanehq/kasane/internal/platform/sec"
	"github.com/kasanehq/kasane/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter reading and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter and page-related endpoints to the root API router.
// Chapter endpoints span both /comics/{id}/... and /chapters/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/comics/{comicID}/chapters", handler.ListChapters)
	api.Get("/chapters/{id}", handler.GetChapter)
	api.Get("/chapters/{id}/pages", handler.GetPages)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Delete("/chapters/{id}", handler.DeleteChapter)
	})
}

// # Chapter Retrieval

/*
GET /api/v1/comics/{comicID}/chapters.

Description: Returns a paginated roster of chapters for a specific comic,
ordered by chapter number.

Request:
  - comicID: string (UUID)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	paginationParams := pagination.FromRequest(request)

	filter := ChapterFilter{
		SortDir: request.URL.Query().Get("dir"),
	}

	chapters, total, err := handler.service.ListChapters(request.Context(), comicID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/chapters/{id}.

Description: Retrieves metadata for a single chapter.

Response:
  - 200: Chapter: Success
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	chapter, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
GET /api/v1/chapters/{id}/pages.

Description: Returns the reader payload: every page of the chapter in
reading order with its public image URL.

Response:
  - 200: []Page: Ordered page list
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) GetPages(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	pages, err := handler.service.GetPages(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pages)
}

// # Chapter Management

/*
DELETE /api/v1/chapters/{id}.

Description: Soft-deletes a chapter and invalidates its cached page list.

Response:
  - 204: No Content
  - 403: ErrForbidden: Insufficient permissions
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteChapter(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
