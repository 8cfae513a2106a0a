package event

import (
	"crypto/rand"
	"regexp"
)

// idAlphabet has 64 characters so a random byte masked to 6 bits maps to one
// character without modulo bias. Same alphabet the original gallery links use,
// URL-safe by construction.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const (
	// IDLength is the length of event and photo identifiers. Collisions are
	// treated as negligible at this length; no uniqueness check is performed
	// against existing keys.
	IDLength = 10
	// HostKeyLength is the length of the host secret.
	HostKeyLength = 21
)

// idPattern matches identifiers built from idAlphabet. Applied to ids that
// arrive from clients so junk input cannot form stray store keys.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NewID returns a fresh random identifier of n characters.
func NewID(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("event: read random bytes: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = idAlphabet[b&63]
	}
	return string(buf)
}

// ValidEventID reports whether id is usable as an event identifier. Only a
// shape check: at least 5 characters from the id alphabet, no existence
// lookup.
func ValidEventID(id string) bool {
	return len(id) >= 5 && idPattern.MatchString(id)
}

// ValidPhotoID reports whether id is usable as a photo identifier.
func ValidPhotoID(id string) bool {
	return id != "" && idPattern.MatchString(id)
}
