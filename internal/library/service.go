// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package library

import (
	"context"
	"log/slog"
	"strings"
)

// historyLimit caps the /history listing at the 50 most recent reads.
const historyLimit = 50

// Service implements per-user library use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// RecordRead stores chapterID as the user's latest read for the chapter's
// parent manga, replacing any earlier chapter of the same manga.
func (service *Service) RecordRead(ctx context.Context, userID, chapterID string) error {
	return service.repo.RecordRead(ctx, userID, chapterID)
}

// History returns the user's 50 most recent reads, newest first.
func (service *Service) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	return service.repo.ListHistory(ctx, userID, historyLimit)
}

// Library returns the user's tracked entries, most recently updated first.
func (service *Service) Library(ctx context.Context, userID string) ([]Entry, error) {
	return service.repo.ListLibrary(ctx, userID)
}

// Add upserts a manga into the user's library. An empty status label falls
// back to [DefaultStatus].
func (service *Service) Add(ctx context.Context, userID, mangaID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		status = DefaultStatus
	}
	return service.repo.Upsert(ctx, userID, mangaID, status)
}

// Remove deletes a manga from the user's library, reporting whether an
// entry existed.
func (service *Service) Remove(ctx context.Context, userID, mangaID string) (bool, error) {
	return service.repo.Remove(ctx, userID, mangaID)
}
