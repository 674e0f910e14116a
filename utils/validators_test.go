package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAccountID(t *testing.T) {
	assert.True(t, IsValidAccountID("user-1"))
	assert.False(t, IsValidAccountID(""))
	assert.False(t, IsValidAccountID(" user-1"))
	assert.False(t, IsValidAccountID(strings.Repeat("x", 192)))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, DefaultPageLimit},
		{"explicit", "3", "25", 3, 25},
		{"garbage", "abc", "-4", 1, DefaultPageLimit},
		{"clamped", "2", "500", 2, MaxPageLimit},
		{"huge page", "4611686018427387905", "50", MaxPage, MaxPageLimit},
		{"page past int range", "99999999999999999999", "", 1, DefaultPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePagination(tt.page, tt.limit, DefaultPageLimit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
