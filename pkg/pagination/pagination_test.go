// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehoangduc/mangamirror/pkg/pagination"
)

/*
TestFromRequest verifies limit/offset parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/manga", 20, 0},
		{"explicit_values", "/manga?limit=50&offset=100", 50, 100},
		{"limit_too_large", "/manga?limit=500", 20, 0},
		{"limit_zero", "/manga?limit=0", 20, 0},
		{"negative_offset", "/manga?offset=-5", 20, 0},
		{"non_numeric", "/manga?limit=abc&offset=xyz", 20, 0},
		{"max_limit_allowed", "/manga?limit=100", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}
