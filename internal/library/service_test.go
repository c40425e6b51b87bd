// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package library_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangduc/mangamirror/internal/library"
	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
)

// fakeRepository records calls and serves canned data for service tests.
type fakeRepository struct {
	historyLimit int
	upsertStatus string
	removed      bool

	history []library.HistoryEntry
	entries []library.Entry

	recordReadErr error
}

func (f *fakeRepository) RecordRead(_ context.Context, userID, chapterID string) error {
	return f.recordReadErr
}

func (f *fakeRepository) ListHistory(_ context.Context, userID string, limit int) ([]library.HistoryEntry, error) {
	f.historyLimit = limit
	return f.history, nil
}

func (f *fakeRepository) ListLibrary(_ context.Context, userID string) ([]library.Entry, error) {
	return f.entries, nil
}

func (f *fakeRepository) Upsert(_ context.Context, userID, mangaID, status string) error {
	f.upsertStatus = status
	return nil
}

func (f *fakeRepository) Remove(_ context.Context, userID, mangaID string) (bool, error) {
	return f.removed, nil
}

/*
TestService_History verifies the fixed 50-entry cap on history listings.
*/
func TestService_History(t *testing.T) {
	repo := &fakeRepository{history: []library.HistoryEntry{{MangaID: "m1"}}}
	service := library.NewService(repo, slog.Default())

	entries, err := service.History(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Len(t, entries, 1)
	assert.Equal(t, 50, repo.historyLimit)
}

/*
TestService_Add verifies the default status fallback.
*/
func TestService_Add(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus string
	}{
		{"empty_defaults_to_reading", "", "reading"},
		{"whitespace_defaults_to_reading", "   ", "reading"},
		{"explicit_kept", "completed", "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := library.NewService(repo, slog.Default())

			err := service.Add(context.Background(), "user-1", "manga-1", tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, repo.upsertStatus)
		})
	}
}

/*
TestService_Remove reports whether an entry existed so the handler can 404.
*/
func TestService_Remove(t *testing.T) {
	repo := &fakeRepository{removed: false}
	service := library.NewService(repo, slog.Default())

	removed, err := service.Remove(context.Background(), "user-1", "manga-1")
	require.NoError(t, err)
	assert.False(t, removed)

	repo.removed = true
	removed, err = service.Remove(context.Background(), "user-1", "manga-1")
	require.NoError(t, err)
	assert.True(t, removed)
}

/*
TestService_RecordRead surfaces storage errors unchanged.
*/
func TestService_RecordRead(t *testing.T) {
	repo := &fakeRepository{recordReadErr: apperr.NotFound("Chapter")}
	service := library.NewService(repo, slog.Default())

	err := service.RecordRead(context.Background(), "user-1", "chapter-x")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
