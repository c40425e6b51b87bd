// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import (
	"context"
	"errors"

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

func (repository *PostgresRepository) ListLatest(ctx context.Context, limit int) ([]LatestManga, error) {
	const query = `
		SELECT id, title, cover_filename
		FROM mangas
		ORDER BY COALESCE(last_chapter_uploaded_at, created_at) DESC
		LIMIT $1`

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_latest_mangas")
	}
	defer rows.Close()

	results := make([]LatestManga, 0, limit)
	for rows.Next() {
		var m LatestManga
		if err := rows.Scan(&m.ID, &m.Title, &m.CoverFilename); err != nil {
			return nil, dberr.Wrap(err, "scan_latest_manga")
		}
		results = append(results, m)
	}

	return results, rows.Err()
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]MangaSummary, int, error) {
	const query = `
		SELECT id, title, cover_filename, status, publication_year
		FROM mangas
		ORDER BY COALESCE(last_chapter_uploaded_at, created_at) DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_mangas")
	}
	defer rows.Close()

	results := make([]MangaSummary, 0, limit)
	for rows.Next() {
		var m MangaSummary
		if err := rows.Scan(&m.ID, &m.Title, &m.CoverFilename, &m.Status, &m.PublicationYear); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_manga_summary")
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_mangas")
	}

	var total int
	if err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mangas`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_mangas")
	}

	return results, total, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*Manga, error) {
	const mangaQuery = `
		SELECT id, title, description, cover_filename, status, publication_year,
		       content_rating, original_language, last_chapter_uploaded_at
		FROM mangas
		WHERE id = $1`

	m := &Manga{}
	err := repository.pool.QueryRow(ctx, mangaQuery, id).Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.CoverFilename,
		&m.Status,
		&m.PublicationYear,
		&m.ContentRating,
		&m.OriginalLanguage,
		&m.LastChapterUploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, dberr.Wrap(err, "get_manga_by_id")
	}

	const tagsQuery = `
		SELECT t.name
		FROM tags t
		JOIN manga_tags mt ON t.id = mt.tag_id
		WHERE mt.manga_id = $1
		ORDER BY t.name ASC`

	rows, err := repository.pool.Query(ctx, tagsQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_manga_tags")
	}
	defer rows.Close()

	m.Tags = make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, "scan_manga_tag")
		}
		m.Tags = append(m.Tags, name)
	}

	return m, rows.Err()
}

func (repository *PostgresRepository) ListChapters(ctx context.Context, mangaID string) ([]Chapter, error) {
	// Numeric chapter numbers sort descending; non-numeric values (and null)
	// sort as -1, i.e. after every numeric chapter. Ties break on publish
	// date, with absent dates treated as the epoch.
	const query = `
		SELECT id, chapter_number, title, language, publish_date
		FROM chapters
		WHERE manga_id = $1
		ORDER BY
			CASE WHEN chapter_number ~ '^[0-9]+(\.[0-9]+)?$'
			     THEN chapter_number::numeric
			     ELSE -1
			END DESC,
			COALESCE(publish_date, 'epoch'::timestamptz) DESC`

	rows, err := repository.pool.Query(ctx, query, mangaID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := make([]Chapter, 0)
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.ChapterNumber, &c.Title, &c.Language, &c.PublishDate); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, rows.Err()
}

func (repository *PostgresRepository) ListPageURLs(ctx context.Context, chapterID string) ([]string, error) {
	const query = `
		SELECT image_url
		FROM chapter_pages
		WHERE chapter_id = $1
		ORDER BY page_number ASC`

	rows, err := repository.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapter_pages")
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter_page")
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

func (repository *PostgresRepository) Search(ctx context.Context, filter SearchFilter) ([]MangaSummary, error) {
	query, args := buildSearchQuery(filter)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_mangas")
	}
	defer rows.Close()

	results := make([]MangaSummary, 0)
	for rows.Next() {
		var m MangaSummary
		if err := rows.Scan(&m.ID, &m.Title, &m.CoverFilename, &m.Status, &m.PublicationYear); err != nil {
			return nil, dberr.Wrap(err, "scan_search_result")
		}
		results = append(results, m)
	}

	return results, rows.Err()
}

func (repository *PostgresRepository) ListTagNames(ctx context.Context) ([]string, error) {
	// Tags are keyed by source id, so distinct ids may share a name.
	const query = `SELECT DISTINCT name FROM tags ORDER BY name ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tag_names")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag_name")
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
