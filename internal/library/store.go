// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package library

import "context"

// Repository is the storage contract for per-user library state.
type Repository interface {
	// RecordRead resolves the chapter's parent manga and upserts the single
	// (user, manga) history row, overwriting any prior chapter/timestamp.
	// An unknown chapter surfaces as NOT_FOUND.
	RecordRead(ctx context.Context, userID, chapterID string) error

	// ListHistory returns the user's most recent reads, newest first,
	// capped at limit.
	ListHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)

	// ListLibrary returns the user's tracked entries, most recently
	// updated first.
	ListLibrary(ctx context.Context, userID string) ([]Entry, error)

	// Upsert adds a manga to the library or updates its status label.
	// An unknown manga surfaces as NOT_FOUND.
	Upsert(ctx context.Context, userID, mangaID, status string) error

	// Remove deletes a library entry, reporting whether a row existed.
	Remove(ctx context.Context, userID, mangaID string) (bool, error)
}
