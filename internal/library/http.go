// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/middleware"
	requestutil "github.com/lehoangduc/mangamirror/internal/platform/request"
	"github.com/lehoangduc/mangamirror/internal/platform/respond"
	"github.com/lehoangduc/mangamirror/internal/platform/validate"
)

// Handler implements the per-user library HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user-state endpoints on the given router.
// Every route requires authentication.
//
// # Endpoints
//   - POST /history/read   : Record the latest chapter read.
//   - GET  /history        : Last 50 reads, newest first.
//   - GET  /library        : Tracked entries.
//   - POST /library/add    : Add/update a tracked entry.
//   - POST /library/remove : Stop tracking an entry.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/history/read", handler.recordRead)
		r.Get("/history", handler.history)
		r.Get("/library", handler.library)
		r.Post("/library/add", handler.add)
		r.Post("/library/remove", handler.remove)
	})
}

// # Request Payloads

type recordReadRequest struct {
	ChapterID string `json:"chapterId"`
}

type libraryAddRequest struct {
	MangaID string `json:"mangaId"`
	Status  string `json:"status"`
}

type libraryRemoveRequest struct {
	MangaID string `json:"mangaId"`
}

func (handler *Handler) recordRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordReadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.ChapterID == "" {
		respond.Error(writer, request, validate.RequiredError("chapterId", "Chapter ID is required"))
		return
	}

	if err := handler.service.RecordRead(request.Context(), userID, input.ChapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Reading history updated")
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.History(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

func (handler *Handler) library(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.Library(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input libraryAddRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.MangaID == "" {
		respond.Error(writer, request, validate.RequiredError("mangaId", "Manga ID is required"))
		return
	}

	if err := handler.service.Add(request.Context(), userID, input.MangaID, input.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Library updated")
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input libraryRemoveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.MangaID == "" {
		respond.Error(writer, request, validate.RequiredError("mangaId", "Manga ID is required"))
		return
	}

	removed, err := handler.service.Remove(request.Context(), userID, input.MangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !removed {
		respond.Error(writer, request, apperr.NotFound("Library entry"))
		return
	}

	respond.Message(writer, "Removed from library")
}
