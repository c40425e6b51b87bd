// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// RecordRead resolves chapter -> manga and upserts the history row inside
// one transaction, so the lookup and the write see a consistent snapshot.
func (repository *PostgresRepository) RecordRead(ctx context.Context, userID, chapterID string) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "record_read_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var mangaID string
	err = tx.QueryRow(ctx, `SELECT manga_id FROM chapters WHERE id = $1`, chapterID).Scan(&mangaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return dberr.Wrap(err, "record_read_resolve_chapter")
	}

	const upsert = `
		INSERT INTO user_reading_history (user_id, manga_id, chapter_id, last_read_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, manga_id) DO UPDATE
		SET chapter_id = EXCLUDED.chapter_id,
		    last_read_at = now()`

	if _, err := tx.Exec(ctx, upsert, userID, mangaID, chapterID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Chapter or user")
		}
		return dberr.Wrap(err, "record_read_upsert")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "record_read_commit")
	}

	return nil
}

func (repository *PostgresRepository) ListHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	const query = `
		SELECT m.id, m.title, m.cover_filename,
		       c.id, c.chapter_number, c.title,
		       h.last_read_at
		FROM user_reading_history h
		JOIN chapters c ON h.chapter_id = c.id
		JOIN mangas m ON c.manga_id = m.id
		WHERE h.user_id = $1
		ORDER BY h.last_read_at DESC
		LIMIT $2`

	rows, err := repository.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_history")
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var e HistoryEntry
		err := rows.Scan(
			&e.MangaID, &e.MangaTitle, &e.CoverFilename,
			&e.ChapterID, &e.ChapterNumber, &e.ChapterTitle,
			&e.LastReadAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_history_entry")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (repository *PostgresRepository) ListLibrary(ctx context.Context, userID string) ([]Entry, error) {
	const query = `
		SELECT m.id, m.title, m.cover_filename, m.status,
		       l.status, l.updated_at
		FROM user_library l
		JOIN mangas m ON l.manga_id = m.id
		WHERE l.user_id = $1
		ORDER BY l.updated_at DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_library")
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.MangaID, &e.Title, &e.CoverFilename, &e.MangaStatus,
			&e.UserStatus, &e.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_library_entry")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (repository *PostgresRepository) Upsert(ctx context.Context, userID, mangaID, status string) error {
	const query = `
		INSERT INTO user_library (user_id, manga_id, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, manga_id) DO UPDATE
		SET status = EXCLUDED.status,
		    updated_at = now()`

	if _, err := repository.pool.Exec(ctx, query, userID, mangaID, status); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Manga")
		}
		return dberr.Wrap(err, "library_upsert")
	}

	return nil
}

func (repository *PostgresRepository) Remove(ctx context.Context, userID, mangaID string) (bool, error) {
	const query = `DELETE FROM user_library WHERE user_id = $1 AND manga_id = $2`

	tag, err := repository.pool.Exec(ctx, query, userID, mangaID)
	if err != nil {
		return false, dberr.Wrap(err, fmt.Sprintf("library_remove user=%s", userID))
	}

	return tag.RowsAffected() > 0, nil
}
