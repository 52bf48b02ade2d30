package domain

import (
	"net/url"
	"time"
)

// Bookmark is a stored (label, URL) pair with storage-assigned identity.
//
// It is the canonical wire shape of the API: field names and ordering
// match the JSON documents exchanged with clients.
type Bookmark struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id"`

	// Label is optional display text. The server never derives one;
	// clients may supply a fallback before calling the API.
	Label string `json:"label,omitempty"`

	// URL is the normalized form produced by NormalizeURL.
	// No two live bookmarks share the same normalized URL.
	URL string `json:"url"`

	// DateCreated is set once at creation.
	DateCreated time.Time `json:"date_created"`

	// DateModified is set at creation. No update operation exists,
	// so it currently always equals DateCreated. Kept on the wire
	// for compatibility.
	DateModified time.Time `json:"date_modified"`
}

// NormalizeURL parses raw and returns its canonical encoded string form,
// the representation used for storage and uniqueness comparison.
// A URL without both a scheme and a host is rejected with ErrInvalidURL.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}
