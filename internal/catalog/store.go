// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import "context"

// Repository is the read-side storage contract for the catalog.
type Repository interface {
	// ListLatest returns the most recently updated entries, capped at limit.
	ListLatest(ctx context.Context, limit int) ([]LatestManga, error)

	// List returns one page of entries plus the total row count.
	List(ctx context.Context, limit, offset int) ([]MangaSummary, int, error)

	// GetByID returns one entry with its tag names, or NOT_FOUND.
	GetByID(ctx context.Context, id string) (*Manga, error)

	// ListChapters returns an entry's chapters, newest chapter number first.
	ListChapters(ctx context.Context, mangaID string) ([]Chapter, error)

	// ListPageURLs returns a chapter's image URLs ordered by page number.
	ListPageURLs(ctx context.Context, chapterID string) ([]string, error)

	// Search returns entries matching the filter, most recently updated first.
	Search(ctx context.Context, filter SearchFilter) ([]MangaSummary, error)

	// ListTagNames returns every known tag name, sorted alphabetically.
	ListTagNames(ctx context.Context) ([]string, error)
}
