// Package logmeta implements the structured metadata attached to log
// events: shared session tags and the ordered metadata set a writer
// consumes on each write.
package logmeta

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Tag is a shared, read-only identifier derived from one or more origin
// strings (typically a bus name and a session object path). Metadata
// entries reference a Tag instead of copying its text; the textual form is
// computed from the stored hash on demand.
type Tag struct {
	hash string
}

// NewTag derives a Tag from the given origin strings.
func NewTag(origin ...string) *Tag {
	sum := sha256.Sum256([]byte(strings.Join(origin, " ")))
	return &Tag{hash: hex.EncodeToString(sum[:])}
}

// Render returns the textual form of the tag, either encapsulated as
// {tag:HASH} or as the bare hash.
func (t *Tag) Render(encapsulated bool) string {
	if encapsulated {
		return "{tag:" + t.hash + "}"
	}
	return t.hash
}

// String renders the tag in its encapsulated form.
func (t *Tag) String() string {
	return t.Render(true)
}
