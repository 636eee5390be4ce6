// Copyright (c) 2026 Kasane. All rights reserved.

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasanehq/kasane/internal/platform/middleware"
	requestutil "github.com/kasanehq/kasane/internal/platform/request"
	"github.com/kasanehq/kasane/internal/platform/respond"
	"github.com/kasanehq/kasane/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches genre endpoints to the root API router.
// Genre endpoints span both /genres and /comics/{id}/genres prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public
	api.Get("/genres", handler.listGenres)
	api.Get("/genres/{slug}", handler.getGenre)
	api.Get("/comics/{comicID}/genres", handler.listComicGenres)

	// Admin
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/genres", handler.createGenre)
		admin.Put("/comics/{comicID}/genres", handler.setComicGenres)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genre, err := handler.service.GetGenreBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

type createGenreRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input createGenreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.CreateGenre(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

func (handler *Handler) listComicGenres(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	genres, err := handler.service.GenresForComic(request.Context(), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

type setComicGenresRequest struct {
	GenreIDs []int `json:"genre_ids"`
}

func (handler *Handler) setComicGenres(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	var input setComicGenresRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genres, err := handler.service.SetComicGenres(request.Context(), comicID, input.GenreIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}
