// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/lehoangduc/mangamirror/internal/platform/request"
	"github.com/lehoangduc/mangamirror/internal/platform/respond"
	"github.com/lehoangduc/mangamirror/pkg/pagination"
	"github.com/lehoangduc/mangamirror/pkg/query"
)

// Handler implements the public catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints on the given router.
//
// # Endpoints
//   - GET /manga/latest        : Top 20 by recency.
//   - GET /manga               : Paginated listing.
//   - GET /manga/{id}          : Single entry with tag names.
//   - GET /manga/{id}/chapters : Chapter list, newest first.
//   - GET /chapters/{id}/pages : Page image URLs.
//   - GET /search              : Keyword/tag search.
//   - GET /tags                : All tag names.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/manga/latest", handler.latest)
	router.Get("/manga", handler.list)
	router.Get("/manga/{id}", handler.get)
	router.Get("/manga/{id}/chapters", handler.chapters)
	router.Get("/chapters/{id}/pages", handler.pages)
	router.Get("/search", handler.search)
	router.Get("/tags", handler.tags)
}

func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	mangas, err := handler.service.Latest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mangas)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	mangas, total, err := handler.service.List(request.Context(), params.Limit, params.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Listed(writer, mangas, params.Limit, params.Offset, total)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	manga, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, manga)
}

func (handler *Handler) chapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.Chapters(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) pages(writer http.ResponseWriter, request *http.Request) {
	urls, err := handler.service.PageURLs(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, urls)
}

// searchEnvelope mirrors the listing envelope but echoes the match mode
// instead of a total count.
type searchEnvelope struct {
	Result string         `json:"result"`
	Data   []MangaSummary `json:"data"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Mode   string         `json:"mode"`
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	mode := strings.ToLower(strings.TrimSpace(values.Get("mode")))
	if mode != "or" {
		mode = "and"
	}

	// A single ?tag= folds into the ?tags= list.
	tagList := query.StringSlice(values.Get("tags"))
	if single := strings.TrimSpace(values.Get("tag")); single != "" {
		tagList = append(tagList, single)
	}

	filter := SearchFilter{
		Query:    strings.TrimSpace(values.Get("q")),
		Tags:     tagList,
		MatchAll: mode == "and",
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	results, err := handler.service.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, searchEnvelope{
		Result: "ok",
		Data:   results,
		Limit:  params.Limit,
		Offset: params.Offset,
		Mode:   mode,
	})
}

func (handler *Handler) tags(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.service.TagNames(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, names)
}
