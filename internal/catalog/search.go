// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import (
	"fmt"
	"strings"
)

// SearchFilter describes a catalog search.
//
// Query is a case-insensitive substring match on the title. Tags are matched
// exactly (case-insensitive) against tag names; MatchAll selects "and"
// semantics (every listed tag must be present) versus "or" (at least one).
// Both filters combine conjunctively when present.
type SearchFilter struct {
	Query    string
	Tags     []string
	MatchAll bool
	Limit    int
	Offset   int
}

// buildSearchQuery renders the filter into a SQL statement and its bind args.
//
// The tag joins are only added when tags are requested. "and" mode is
// enforced by grouping on the entry and requiring the count of distinct
// matched tag names to equal the number of requested tags; "or" mode needs
// no post-filter since the join alone guarantees at least one match.
func buildSearchQuery(filter SearchFilter) (string, []any) {
	var builder strings.Builder
	var args []any

	builder.WriteString(`
		SELECT m.id, m.title, m.cover_filename, m.status, m.publication_year
		FROM mangas m`)

	if len(filter.Tags) > 0 {
		builder.WriteString(`
		JOIN manga_tags mt ON mt.manga_id = m.id
		JOIN tags t ON t.id = mt.tag_id`)
	}

	var conditions []string

	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(m.title) LIKE $%d", len(args)))
	}

	if len(filter.Tags) > 0 {
		placeholders := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			args = append(args, strings.ToLower(tag))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf("LOWER(t.name) IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(conditions) > 0 {
		builder.WriteString("\n\t\tWHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}

	// Grouping on the primary key lets Postgres project the remaining manga
	// columns while deduplicating the tag joins.
	builder.WriteString("\n\t\tGROUP BY m.id")

	if len(filter.Tags) > 0 && filter.MatchAll {
		args = append(args, len(filter.Tags))
		builder.WriteString(fmt.Sprintf("\n\t\tHAVING COUNT(DISTINCT LOWER(t.name)) = $%d", len(args)))
	}

	builder.WriteString("\n\t\tORDER BY COALESCE(m.last_chapter_uploaded_at, m.created_at) DESC")

	args = append(args, filter.Limit)
	builder.WriteString(fmt.Sprintf("\n\t\tLIMIT $%d", len(args)))
	args = append(args, filter.Offset)
	builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return builder.String(), args
}
