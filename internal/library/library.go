// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

// Package library tracks per-user state over the catalog: the follow list
// ("library") and entry-keyed reading history.
//
// History is deliberately keyed by (user, manga) rather than by chapter:
// each read overwrites the previous row, so the table answers "where did I
// leave off" instead of acting as a full audit log.
package library

import "time"

// DefaultStatus is applied when a library entry is added without an
// explicit status label.
const DefaultStatus = "reading"

// Entry is one tracked manga in a user's library, joined with catalog data.
type Entry struct {
	MangaID       string    `json:"id"`
	Title         string    `json:"title"`
	CoverFilename *string   `json:"cover_filename"`
	MangaStatus   string    `json:"manga_status"`
	UserStatus    string    `json:"user_status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HistoryEntry is the most recent chapter a user read for one manga.
type HistoryEntry struct {
	MangaID       string    `json:"manga_id"`
	MangaTitle    string    `json:"manga_title"`
	CoverFilename *string   `json:"cover_filename"`
	ChapterID     string    `json:"chapter_id"`
	ChapterNumber *string   `json:"chapter_number"`
	ChapterTitle  *string   `json:"chapter_title"`
	LastReadAt    time.Time `json:"last_read_at"`
}
