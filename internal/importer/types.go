// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import "time"

// Wire-format DTOs for the upstream catalog API. Field names follow the
// source's JSON exactly; normalization into storage rows happens in
// normalize.go.

// MangaData is one catalog item from the paginated list endpoint.
type MangaData struct {
	ID            string          `json:"id"`
	Attributes    MangaAttributes `json:"attributes"`
	Relationships []Relationship  `json:"relationships"`
}

// MangaAttributes carries the localized metadata of a catalog item.
type MangaAttributes struct {
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	Status      string            `json:"status"`

	// Year is declared as any: the source occasionally emits non-numeric
	// garbage here, which must coerce to null rather than be stored.
	Year any `json:"year"`

	Tags []TagData `json:"tags"`

	ContentRating    string `json:"contentRating"`
	OriginalLanguage string `json:"originalLanguage"`
}

// Relationship links a catalog item to a related resource (cover art, author).
type Relationship struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Attributes *RelationshipAttributes `json:"attributes,omitempty"`
}

// RelationshipAttributes is the expanded payload of an included relationship.
type RelationshipAttributes struct {
	FileName string `json:"fileName"`
}

// TagData is one taxonomy tag attached to a catalog item.
type TagData struct {
	ID         string        `json:"id"`
	Attributes TagAttributes `json:"attributes"`
}

// TagAttributes carries the localized tag name and its taxonomy group.
type TagAttributes struct {
	Name  map[string]string `json:"name"`
	Group string            `json:"group"`
}

// ChapterData is one chapter from the per-entry feed endpoint.
type ChapterData struct {
	ID         string            `json:"id"`
	Attributes ChapterAttributes `json:"attributes"`
}

// ChapterAttributes carries chapter metadata.
type ChapterAttributes struct {
	Chapter            *string    `json:"chapter"`
	Title              *string    `json:"title"`
	TranslatedLanguage string     `json:"translatedLanguage"`
	PublishAt          *time.Time `json:"publishAt"`
}

// ReaderSession is the response of the per-chapter page endpoint: everything
// needed to construct page image URLs.
type ReaderSession struct {
	BaseURL string               `json:"baseUrl"`
	Chapter ReaderSessionChapter `json:"chapter"`
}

// ReaderSessionChapter holds the content hash and the ordered filename lists.
type ReaderSessionChapter struct {
	Hash string `json:"hash"`

	// DataSaver is the reduced-bandwidth quality variant; the importer
	// deliberately ignores the full-resolution "data" list.
	DataSaver []string `json:"dataSaver"`
}

// list/feed envelopes

type mangaListResponse struct {
	Data []MangaData `json:"data"`
}

type chapterFeedResponse struct {
	Data []ChapterData `json:"data"`
}
