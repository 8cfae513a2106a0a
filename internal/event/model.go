// Package event manages time-boxed photo galleries and their persistence in
// the object store.
package event

import (
	"strconv"
	"strings"
	"time"
)

// Photo cap bounds applied at event creation.
const (
	MinPhotoCap     = 5
	MaxPhotoCap     = 15
	DefaultPhotoCap = 5
)

// Event is the metadata document describing one gallery. It is written once
// at creation; only BannerURL mutates afterwards, via overwrite of the whole
// document. The document itself is the single source of truth for the
// event's namespace in the store.
type Event struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	MaxPhotos      int       `json:"maxPhotos"`
	UploadDeadline time.Time `json:"uploadDeadline"`
	BannerURL      string    `json:"bannerUrl,omitempty"`

	// HostKey is the bearer secret authorizing deletion, the manage view and
	// banner changes. Handed out exactly once, at creation; there is no
	// rotation path, so a leaked key means recreating the event.
	HostKey string `json:"hostKey"`
}

// Photo is one gallery entry derived from a store listing.
type Photo struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
}

// durations maps the accepted event duration codes to their lengths.
var durations = map[string]time.Duration{
	"1d":  1 * 24 * time.Hour,
	"3d":  3 * 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"14d": 14 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// ParseDuration resolves a duration code ("1d", "3d", "7d", "14d", "30d").
func ParseDuration(code string) (time.Duration, error) {
	d, ok := durations[code]
	if !ok {
		return 0, ErrInvalidDuration
	}
	return d, nil
}

// ClampPhotoCap forces a requested cap into [MinPhotoCap, MaxPhotoCap].
func ClampPhotoCap(n int) int {
	return max(MinPhotoCap, min(MaxPhotoCap, n))
}

// CoercePhotoCap turns a loosely typed JSON value into a photo cap. Numbers
// and numeric strings are used as-is; anything else falls back to the
// default. The result is always clamped.
func CoercePhotoCap(v any) int {
	switch n := v.(type) {
	case float64:
		return ClampPhotoCap(int(n))
	case int:
		return ClampPhotoCap(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return DefaultPhotoCap
		}
		return ClampPhotoCap(parsed)
	default:
		return DefaultPhotoCap
	}
}
