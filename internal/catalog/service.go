// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import (
	"context"
	"log/slog"
)

// latestLimit is the fixed size of the /manga/latest listing.
const latestLimit = 20

// Service implements catalog read use cases.
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

// Latest returns the 20 most recently updated entries.
func (service *Service) Latest(ctx context.Context) ([]LatestManga, error) {
	return service.repo.ListLatest(ctx, latestLimit)
}

// List returns one page of the catalog plus the total entry count.
func (service *Service) List(ctx context.Context, limit, offset int) ([]MangaSummary, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// Get returns one entry with its tag names.
func (service *Service) Get(ctx context.Context, id string) (*Manga, error) {
	return service.repo.GetByID(ctx, id)
}

// Chapters returns an entry's chapters in reading-order-reversed (newest first).
func (service *Service) Chapters(ctx context.Context, mangaID string) ([]Chapter, error) {
	return service.repo.ListChapters(ctx, mangaID)
}

// PageURLs returns a chapter's image URLs ordered by page number.
func (service *Service) PageURLs(ctx context.Context, chapterID string) ([]string, error) {
	return service.repo.ListPageURLs(ctx, chapterID)
}

// Search returns entries matching the filter.
func (service *Service) Search(ctx context.Context, filter SearchFilter) ([]MangaSummary, error) {
	return service.repo.Search(ctx, filter)
}

// TagNames returns every known tag name.
func (service *Service) TagNames(ctx context.Context) ([]string, error) {
	return service.repo.ListTagNames(ctx)
}
