// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import (
	"context"
	"time"
)

// MangaRecord is a normalized catalog entry ready for storage.
type MangaRecord struct {
	ID               string
	Title            string
	Description      *string
	Status           string
	PublicationYear  *int
	CoverFilename    *string
	ContentRating    *string
	OriginalLanguage *string
}

// TagRecord is a taxonomy tag keyed by its source id; tags are global and
// deduplicated by that id, never by name.
type TagRecord struct {
	ID    string
	Name  string
	Group *string
}

// ChapterRecord is a normalized chapter ready for storage.
type ChapterRecord struct {
	ID            string
	MangaID       string
	ChapterNumber *string
	Title         *string
	Language      string
	PublishDate   *time.Time
}

// PageRecord is one page image of a chapter.
type PageRecord struct {
	ChapterID  string
	PageNumber int
	ImageURL   string
}

// Store is the persistence contract of the import pipeline. Every insert is
// insert-if-absent: existing rows are left untouched and the boolean reports
// whether a new row was written.
type Store interface {
	// InsertManga writes a catalog entry unless it already exists.
	InsertManga(ctx context.Context, record MangaRecord) (bool, error)

	// UpsertTag writes the tag row unless it already exists and links it to
	// the manga. Both writes happen in one transaction.
	UpsertTag(ctx context.Context, mangaID string, tag TagRecord) error

	// InsertChapter writes a chapter unless it already exists. The boolean
	// gates the expensive page fetch: pages are only pulled for new rows.
	InsertChapter(ctx context.Context, record ChapterRecord) (bool, error)

	// InsertPage writes a page image URL unless it already exists.
	InsertPage(ctx context.Context, record PageRecord) (bool, error)

	// MarkChapterUpload advances the manga's last-chapter timestamp, never
	// moving it backwards.
	MarkChapterUpload(ctx context.Context, mangaID string, uploadedAt time.Time) error
}
