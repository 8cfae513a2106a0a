package event

import "strconv"

// Listing page bounds.
const (
	MinPageLimit     = 1
	MaxPageLimit     = 100
	DefaultPageLimit = 20
)

// PageRequest selects a window of the sorted photo sequence. The cursor is an
// opaque token that currently encodes a zero-based decimal offset; when no
// cursor is given an explicit offset wins over a 1-based page number.
// Pagination is stateless: every call re-derives the full sorted sequence,
// which is cheap because galleries are capped at upload time.
type PageRequest struct {
	Limit  int
	Cursor string
	Offset string
	Page   string
}

// Page is one window of the photo sequence. Total counts the whole sequence
// on every page; NextCursor is empty once the window reaches the end.
type Page struct {
	Items      []Photo `json:"items"`
	Total      int     `json:"total"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

// clampLimit forces a requested page size into [MinPageLimit, MaxPageLimit],
// defaulting when unset.
func clampLimit(limit int) int {
	if limit == 0 {
		return DefaultPageLimit
	}
	return max(MinPageLimit, min(MaxPageLimit, limit))
}

// start resolves the window's starting offset. Precedence: cursor, then
// offset, then page. Negative or non-numeric values clamp to the lowest valid
// position.
func (p PageRequest) start() int {
	if p.Cursor != "" {
		return clampNonNegative(p.Cursor)
	}
	if p.Offset != "" {
		return clampNonNegative(p.Offset)
	}
	if p.Page != "" {
		page := atoiOr(p.Page, 1)
		if page < 1 {
			page = 1
		}
		return (page - 1) * clampLimit(p.Limit)
	}
	return 0
}

// paginate cuts one window out of the sorted sequence. An offset past the end
// yields an empty page with no next cursor.
func paginate(photos []Photo, req PageRequest) Page {
	limit := clampLimit(req.Limit)
	start := req.start()

	page := Page{Items: []Photo{}, Total: len(photos)}
	if start >= len(photos) {
		return page
	}

	end := min(start+limit, len(photos))
	page.Items = photos[start:end]
	if end < len(photos) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page
}

func clampNonNegative(s string) int {
	return max(0, atoiOr(s, 0))
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
