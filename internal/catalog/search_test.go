// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestBuildSearchQuery_TitleOnly renders a title-only search without tag joins.
*/
func TestBuildSearchQuery_TitleOnly(t *testing.T) {
	sql, args := buildSearchQuery(SearchFilter{
		Query:  "One Piece",
		Limit:  20,
		Offset: 0,
	})

	assert.Contains(t, sql, "LOWER(m.title) LIKE $1")
	assert.NotContains(t, sql, "JOIN manga_tags")
	assert.NotContains(t, sql, "HAVING")
	assert.Contains(t, sql, "ORDER BY COALESCE(m.last_chapter_uploaded_at, m.created_at) DESC")

	assert.Equal(t, []any{"%one piece%", 20, 0}, args)
}

/*
TestBuildSearchQuery_TagsAnyMode renders an "or" tag search: joins but no
HAVING post-filter.
*/
func TestBuildSearchQuery_TagsAnyMode(t *testing.T) {
	sql, args := buildSearchQuery(SearchFilter{
		Tags:   []string{"Action", "Romance"},
		Limit:  10,
		Offset: 5,
	})

	assert.Contains(t, sql, "JOIN manga_tags mt ON mt.manga_id = m.id")
	assert.Contains(t, sql, "LOWER(t.name) IN ($1, $2)")
	assert.Contains(t, sql, "GROUP BY m.id")
	assert.NotContains(t, sql, "HAVING")

	assert.Equal(t, []any{"action", "romance", 10, 5}, args)
}

/*
TestBuildSearchQuery_TagsAllMode renders an "and" tag search enforcing that
every requested tag matched.
*/
func TestBuildSearchQuery_TagsAllMode(t *testing.T) {
	sql, args := buildSearchQuery(SearchFilter{
		Tags:     []string{"Action", "Romance", "Drama"},
		MatchAll: true,
		Limit:    20,
		Offset:   0,
	})

	assert.Contains(t, sql, "LOWER(t.name) IN ($1, $2, $3)")
	assert.Contains(t, sql, "HAVING COUNT(DISTINCT LOWER(t.name)) = $4")

	assert.Equal(t, []any{"action", "romance", "drama", 3, 20, 0}, args)
}

/*
TestBuildSearchQuery_Combined renders title and tag filters conjunctively.
*/
func TestBuildSearchQuery_Combined(t *testing.T) {
	sql, args := buildSearchQuery(SearchFilter{
		Query:    "hero",
		Tags:     []string{"Action"},
		MatchAll: true,
		Limit:    20,
		Offset:   40,
	})

	assert.Contains(t, sql, "LOWER(m.title) LIKE $1 AND LOWER(t.name) IN ($2)")
	assert.Contains(t, sql, "HAVING COUNT(DISTINCT LOWER(t.name)) = $3")

	assert.Equal(t, []any{"%hero%", "action", 1, 20, 40}, args)
}

/*
TestBuildSearchQuery_NoFilters renders an unfiltered listing with pagination only.
*/
func TestBuildSearchQuery_NoFilters(t *testing.T) {
	sql, args := buildSearchQuery(SearchFilter{Limit: 20, Offset: 0})

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "JOIN")
	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")

	assert.Equal(t, []any{20, 0}, args)
}
