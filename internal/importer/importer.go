// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

// Package importer implements the sequential batch pipeline that mirrors an
// upstream manga catalog into PostgreSQL. A run walks the paginated listing
// from an optional resume checkpoint, inserting entries, tags, chapters and
// page URLs it has not seen before. All writes are insert-if-absent, so a
// run is safe to repeat and safe to interrupt.
package importer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lehoangduc/mangamirror/internal/catalog"
)

// Source is the upstream API surface the pipeline consumes. *Client is the
// production implementation.
type Source interface {
	ListManga(ctx context.Context, limit, offset int) ([]MangaData, error)
	ChapterFeed(ctx context.Context, mangaID string) ([]ChapterData, error)
	ReaderSession(ctx context.Context, chapterID string) (*ReaderSession, error)
}

// Config tunes one import run.
type Config struct {
	// PageLimit is the catalog page size. The offset advances by this
	// amount after every page, fully processed or not.
	PageLimit int

	// EntryDelay is an optional pause between catalog entries.
	EntryDelay time.Duration

	// PageDelay is the pause after storing one chapter's pages, keeping
	// the page-server request rate polite.
	PageDelay time.Duration
}

// Importer drives the import pipeline.
type Importer struct {
	source     Source
	store      Store
	checkpoint Checkpoint
	logger     *slog.Logger
	config     Config
}

// New constructs an [Importer].
func New(source Source, store Store, checkpoint Checkpoint, logger *slog.Logger, config Config) *Importer {
	return &Importer{
		source:     source,
		store:      store,
		checkpoint: checkpoint,
		logger:     logger,
		config:     config,
	}
}

// Stats summarizes what one run inserted.
type Stats struct {
	PagesWalked  int
	MangaSeen    int
	MangaNew     int
	ChaptersNew  int
	PageURLsNew  int
	EntriesError int
}

// Run walks the catalog listing until an empty page, a listing error, or
// context cancellation. Failures inside a single entry or chapter are logged
// and skipped; they never abort the run.
func (importer *Importer) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	offset, err := importer.checkpoint.Load(ctx)
	if err != nil {
		importer.logger.Warn("checkpoint load failed, starting from the top", slog.Any("error", err))
		offset = 0
	}
	if offset > 0 {
		importer.logger.Info("resuming from checkpoint", slog.Int("offset", offset))
	}

	completed := false
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := importer.checkpoint.Save(ctx, offset); err != nil {
			importer.logger.Warn("checkpoint save failed", slog.Any("error", err))
		}

		page, err := importer.source.ListManga(ctx, importer.config.PageLimit, offset)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				// Keep the checkpoint so the next run resumes here.
				importer.logger.Error("catalog listing unavailable, stopping run",
					slog.Int("offset", offset), slog.Any("error", err))
				break
			}
			return stats, err
		}

		if len(page) == 0 {
			completed = true
			importer.logger.Info("reached end of catalog", slog.Int("offset", offset))
			break
		}

		stats.PagesWalked++
		importer.logger.Info("processing catalog page",
			slog.Int("offset", offset),
			slog.Int("entries", len(page)),
		)

		for _, entry := range page {
			stats.MangaSeen++

			if err := importer.processEntry(ctx, entry, &stats); err != nil {
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				stats.EntriesError++
				importer.logger.Error("catalog entry failed, skipping",
					slog.String("manga_id", entry.ID),
					slog.Any("error", err),
				)
			}

			if err := sleep(ctx, importer.config.EntryDelay); err != nil {
				return stats, err
			}
		}

		// The offset advances by the full page size even when some
		// entries failed, matching the listing's pagination contract.
		offset += importer.config.PageLimit
	}

	if completed {
		if err := importer.checkpoint.Clear(ctx); err != nil {
			importer.logger.Warn("checkpoint clear failed", slog.Any("error", err))
		}
	}

	importer.logger.Info("import run finished",
		slog.Int("pages_walked", stats.PagesWalked),
		slog.Int("manga_seen", stats.MangaSeen),
		slog.Int("manga_new", stats.MangaNew),
		slog.Int("chapters_new", stats.ChaptersNew),
		slog.Int("page_urls_new", stats.PageURLsNew),
		slog.Int("entries_error", stats.EntriesError),
	)

	return stats, nil
}

// processEntry mirrors one catalog entry: the row itself, its tags, and its
// English chapter feed.
func (importer *Importer) processEntry(ctx context.Context, entry MangaData, stats *Stats) error {
	record := normalizeManga(entry)

	// The status is stored verbatim either way; unknown values only flag
	// that the upstream vocabulary drifted.
	if !catalog.MangaStatus(record.Status).IsValid() {
		importer.logger.Warn("unknown publication status",
			slog.String("manga_id", record.ID),
			slog.String("status", record.Status),
		)
	}

	inserted, err := importer.store.InsertManga(ctx, record)
	if err != nil {
		return err
	}
	if inserted {
		stats.MangaNew++
		importer.logger.Info("new manga",
			slog.String("manga_id", record.ID),
			slog.String("title", record.Title),
		)
	}

	// Tags are isolated per tag: one bad tag must not block the rest.
	for _, tag := range normalizeTags(entry.Attributes.Tags) {
		if err := importer.store.UpsertTag(ctx, record.ID, tag); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			importer.logger.Warn("tag upsert failed, skipping",
				slog.String("manga_id", record.ID),
				slog.String("tag", tag.Name),
				slog.Any("error", err),
			)
		}
	}

	feed, err := importer.source.ChapterFeed(ctx, record.ID)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			importer.logger.Warn("chapter feed unavailable, skipping",
				slog.String("manga_id", record.ID),
				slog.Any("error", err),
			)
			return nil
		}
		return err
	}

	for _, chapter := range feed {
		// The feed is requested English-only, but the upstream has been
		// seen leaking other languages into it.
		if chapter.Attributes.TranslatedLanguage != "en" {
			importer.logger.Warn("non-english chapter in feed, discarding",
				slog.String("manga_id", record.ID),
				slog.String("chapter_id", chapter.ID),
				slog.String("language", chapter.Attributes.TranslatedLanguage),
			)
			continue
		}

		if err := importer.processChapter(ctx, record.ID, chapter, stats); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			importer.logger.Warn("chapter failed, skipping",
				slog.String("manga_id", record.ID),
				slog.String("chapter_id", chapter.ID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// processChapter stores one chapter and, if it is new, fetches and stores
// its page URLs.
func (importer *Importer) processChapter(ctx context.Context, mangaID string, chapter ChapterData, stats *Stats) error {
	record := normalizeChapter(mangaID, chapter)

	inserted, err := importer.store.InsertChapter(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		// Known chapter: its pages were stored by an earlier run.
		return nil
	}

	stats.ChaptersNew++

	if record.PublishDate != nil {
		if err := importer.store.MarkChapterUpload(ctx, mangaID, *record.PublishDate); err != nil {
			importer.logger.Warn("last upload bump failed",
				slog.String("manga_id", mangaID),
				slog.Any("error", err),
			)
		}
	}

	session, err := importer.source.ReaderSession(ctx, chapter.ID)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			importer.logger.Warn("reader session unavailable, chapter stored without pages",
				slog.String("chapter_id", chapter.ID),
				slog.Any("error", err),
			)
			return nil
		}
		return err
	}

	if len(session.Chapter.DataSaver) == 0 {
		importer.logger.Warn("reader session returned no pages",
			slog.String("chapter_id", chapter.ID),
		)
	}

	for index, filename := range session.Chapter.DataSaver {
		page := PageRecord{
			ChapterID:  chapter.ID,
			PageNumber: index + 1,
			ImageURL:   pageImageURL(session.BaseURL, session.Chapter.Hash, filename),
		}

		inserted, err := importer.store.InsertPage(ctx, page)
		if err != nil {
			return err
		}
		if inserted {
			stats.PageURLsNew++
		}
	}

	return sleep(ctx, importer.config.PageDelay)
}
