package utils

import (
	"strconv"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	MaxPage          = 1_000_000
	maxAccountIDLen  = 191
)

// IsValidAccountID checks the shape of an opaque account id from a request.
func IsValidAccountID(id string) bool {
	if id == "" || len(id) > maxAccountIDLen {
		return false
	}
	return strings.TrimSpace(id) == id
}

// ParsePagination reads page and limit query values, falling back to
// defaults for missing or malformed input. Page is clamped to MaxPage and
// limit to MaxPageLimit.
func ParsePagination(rawPage, rawLimit string, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit, err = strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
