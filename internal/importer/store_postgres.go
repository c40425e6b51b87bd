// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lehoangduc/mangamirror/internal/platform/dberr"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL implementation of [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (store *PostgresStore) InsertManga(ctx context.Context, record MangaRecord) (bool, error) {
	const query = `
		INSERT INTO mangas (id, title, description, status, publication_year,
		                    cover_filename, content_rating, original_language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO NOTHING`

	tag, err := store.pool.Exec(ctx, query,
		record.ID, record.Title, record.Description, record.Status,
		record.PublicationYear, record.CoverFilename,
		record.ContentRating, record.OriginalLanguage,
	)
	if err != nil {
		return false, dberr.Wrap(err, "insert_manga")
	}

	return tag.RowsAffected() > 0, nil
}

// UpsertTag writes the tag row keyed by its source id, then links it to the
// manga. Both statements run in one transaction so a crash can't leave a tag
// without its link half-applied across retries.
func (store *PostgresStore) UpsertTag(ctx context.Context, mangaID string, tag TagRecord) error {
	tx, err := store.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "upsert_tag_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertTag = `
		INSERT INTO tags (id, name, "group")
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`

	if _, err := tx.Exec(ctx, insertTag, tag.ID, tag.Name, tag.Group); err != nil {
		return dberr.Wrap(err, "upsert_tag_insert")
	}

	const insertLink = `
		INSERT INTO manga_tags (manga_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (manga_id, tag_id) DO NOTHING`

	if _, err := tx.Exec(ctx, insertLink, mangaID, tag.ID); err != nil {
		return dberr.Wrap(err, "upsert_tag_link")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "upsert_tag_commit")
	}

	return nil
}

func (store *PostgresStore) InsertChapter(ctx context.Context, record ChapterRecord) (bool, error) {
	const query = `
		INSERT INTO chapters (id, manga_id, chapter_number, title, language, publish_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	tag, err := store.pool.Exec(ctx, query,
		record.ID, record.MangaID, record.ChapterNumber,
		record.Title, record.Language, record.PublishDate,
	)
	if err != nil {
		return false, dberr.Wrap(err, "insert_chapter")
	}

	return tag.RowsAffected() > 0, nil
}

func (store *PostgresStore) InsertPage(ctx context.Context, record PageRecord) (bool, error) {
	const query = `
		INSERT INTO chapter_pages (chapter_id, page_number, image_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (chapter_id, page_number) DO NOTHING`

	tag, err := store.pool.Exec(ctx, query, record.ChapterID, record.PageNumber, record.ImageURL)
	if err != nil {
		return false, dberr.Wrap(err, "insert_page")
	}

	return tag.RowsAffected() > 0, nil
}

// MarkChapterUpload advances mangas.last_chapter_uploaded_at monotonically:
// GREATEST keeps the newer of the stored and the incoming timestamp.
func (store *PostgresStore) MarkChapterUpload(ctx context.Context, mangaID string, uploadedAt time.Time) error {
	const query = `
		UPDATE mangas
		SET last_chapter_uploaded_at = GREATEST(COALESCE(last_chapter_uploaded_at, $2), $2)
		WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, mangaID, uploadedAt); err != nil {
		return dberr.Wrap(err, "mark_chapter_upload")
	}

	return nil
}
