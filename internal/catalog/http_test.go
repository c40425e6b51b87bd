// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangduc/mangamirror/internal/catalog"
	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
)

// fakeRepository serves canned catalog data and records the last search filter.
type fakeRepository struct {
	latest     []catalog.LatestManga
	manga      *catalog.Manga
	lastFilter catalog.SearchFilter
}

func (f *fakeRepository) ListLatest(_ context.Context, limit int) ([]catalog.LatestManga, error) {
	return f.latest, nil
}

func (f *fakeRepository) List(_ context.Context, limit, offset int) ([]catalog.MangaSummary, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*catalog.Manga, error) {
	if f.manga == nil || f.manga.ID != id {
		return nil, apperr.NotFound("Manga")
	}
	return f.manga, nil
}

func (f *fakeRepository) ListChapters(_ context.Context, mangaID string) ([]catalog.Chapter, error) {
	return nil, nil
}

func (f *fakeRepository) ListPageURLs(_ context.Context, chapterID string) ([]string, error) {
	return nil, nil
}

func (f *fakeRepository) Search(_ context.Context, filter catalog.SearchFilter) ([]catalog.MangaSummary, error) {
	f.lastFilter = filter
	return []catalog.MangaSummary{}, nil
}

func (f *fakeRepository) ListTagNames(_ context.Context) ([]string, error) {
	return []string{"Action"}, nil
}

func newTestRouter(repo catalog.Repository) *chi.Mux {
	router := chi.NewRouter()
	handler := catalog.NewHandler(catalog.NewService(repo, slog.Default()))
	handler.RegisterRoutes(router)
	return router
}

/*
TestHandler_Latest wraps the listing in the standard success envelope.
*/
func TestHandler_Latest(t *testing.T) {
	repo := &fakeRepository{latest: []catalog.LatestManga{{ID: "m1", Title: "Berserk"}}}
	router := newTestRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/manga/latest", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Result string                `json:"result"`
		Data   []catalog.LatestManga `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "ok", body.Result)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Berserk", body.Data[0].Title)
}

/*
TestHandler_Get_NotFound answers unknown IDs with a 404 error envelope.
*/
func TestHandler_Get_NotFound(t *testing.T) {
	router := newTestRouter(&fakeRepository{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/manga/nope", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"result":"error"`)
	assert.Contains(t, recorder.Body.String(), "NOT_FOUND")
}

/*
TestHandler_Search_ModeAndTags verifies mode defaulting and ?tag=/?tags=
folding into one filter.
*/
func TestHandler_Search_ModeAndTags(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantMatchAll bool
		wantTags     []string
		wantQuery    string
	}{
		{"default_mode_is_and", "/search?q=hero", true, nil, "hero"},
		{"explicit_or", "/search?mode=or&tags=action,romance", false, []string{"action", "romance"}, ""},
		{"invalid_mode_falls_back_to_and", "/search?mode=banana", true, nil, ""},
		{"single_tag_folds_in", "/search?tags=action&tag=romance", true, []string{"action", "romance"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			router := newTestRouter(repo)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantMatchAll, repo.lastFilter.MatchAll)
			assert.Equal(t, tt.wantTags, repo.lastFilter.Tags)
			assert.Equal(t, tt.wantQuery, repo.lastFilter.Query)
		})
	}
}

/*
TestHandler_Search_Envelope echoes mode and pagination in the response.
*/
func TestHandler_Search_Envelope(t *testing.T) {
	router := newTestRouter(&fakeRepository{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search?mode=or&limit=5&offset=10", nil))

	var body struct {
		Result string `json:"result"`
		Limit  int    `json:"limit"`
		Offset int    `json:"offset"`
		Mode   string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "ok", body.Result)
	assert.Equal(t, 5, body.Limit)
	assert.Equal(t, 10, body.Offset)
	assert.Equal(t, "or", body.Mode)
}
