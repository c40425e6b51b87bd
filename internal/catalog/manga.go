// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

// Package catalog exposes the imported manga catalog: series listings,
// per-series detail with tags, chapter lists, and page image URLs.
//
// All rows are written by the importer; this package only reads.
package catalog

import "time"

// MangaStatus represents the publication status reported by the source.
type MangaStatus string

const (
	// MangaStatusOngoing indicates the publication is actively updating.
	MangaStatusOngoing MangaStatus = "ongoing"
	// MangaStatusCompleted indicates no further chapters are expected.
	MangaStatusCompleted MangaStatus = "completed"
	// MangaStatusHiatus indicates the publication is paused indefinitely.
	MangaStatusHiatus MangaStatus = "hiatus"
	// MangaStatusCancelled indicates the publication has been permanently discontinued.
	MangaStatusCancelled MangaStatus = "cancelled"
)

// IsValid reports whether s is a recognised [MangaStatus] value.
func (s MangaStatus) IsValid() bool {
	switch s {
	case MangaStatusOngoing, MangaStatusCompleted, MangaStatusHiatus, MangaStatusCancelled:
		return true
	}
	return false
}

// Manga is the full detail view of a catalog entry, including its tag names.
type Manga struct {
	ID                    string      `json:"id"`
	Title                 string      `json:"title"`
	Description           *string     `json:"description"`
	CoverFilename         *string     `json:"cover_filename"`
	Status                MangaStatus `json:"status"`
	PublicationYear       *int        `json:"publication_year"`
	ContentRating         *string     `json:"content_rating"`
	OriginalLanguage      *string     `json:"original_language"`
	LastChapterUploadedAt *time.Time  `json:"last_chapter_uploaded_at"`

	// Tags holds the English tag names, sorted alphabetically.
	Tags []string `json:"tags"`
}

// MangaSummary is the list-view projection used by /manga and /search.
type MangaSummary struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	CoverFilename   *string     `json:"cover_filename"`
	Status          MangaStatus `json:"status"`
	PublicationYear *int        `json:"publication_year"`
}

// LatestManga is the minimal projection used by /manga/latest.
type LatestManga struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CoverFilename *string `json:"cover_filename"`
}

// Chapter is one translated chapter of a catalog entry.
//
// ChapterNumber stays a string: the source reports decimals ("10.5") and
// occasionally non-numeric labels; ordering is handled at query time.
type Chapter struct {
	ID            string     `json:"id"`
	ChapterNumber *string    `json:"chapter_number"`
	Title         *string    `json:"title"`
	Language      string     `json:"language"`
	PublishDate   *time.Time `json:"publish_date"`
}
