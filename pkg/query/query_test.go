// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehoangduc/mangamirror/pkg/query"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "action", []string{"action"}},
		{"multiple", "action,romance,comedy", []string{"action", "romance", "comedy"}},
		{"whitespace_trimmed", " action , romance ", []string{"action", "romance"}},
		{"empty_segments_dropped", "action,,romance,", []string{"action", "romance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}
