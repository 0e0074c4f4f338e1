// Package model defines the snippet domain types and the schema validation
// applied to documents fetched from the blob store.
//
// The JSON field names below are the wire format: the serialized Snippet is
// exactly what gets stored at a blob identifier, and what every other client
// of the same blob must be able to read back.
package model

import "time"

// CodeFile is one named, language-tagged file inside a snippet.
//
// Language is a free-form tag consumed by whatever renders the file. A list
// of well-known values lives in language.go, but unknown tags are tolerated
// and treated as plain text.
type CodeFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// Snippet is the core domain document.
//
// ID is a client-generated logical identifier used only for local bookkeeping
// (the recent-items index). BlobID is the storage layer's identity — the
// identifier the blob service assigned when this document was stored — and is
// the only value ever used to address the remote store. The stored payload
// embeds its own BlobID so a reader can recover it from the document content,
// not only from the document's address.
//
// File ordering is display order and is preserved across updates.
type Snippet struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Files       []CodeFile `json:"files"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	BlobID      string     `json:"blobId"`
}

// RecentSnippet is the lightweight projection kept in the local index.
// It is written once at creation time and removed at deletion time; it is
// deliberately not refreshed on update, so Title reflects the creation-time
// title.
type RecentSnippet struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	BlobID    string    `json:"blobId"`
}

// Summary projects a snippet into its recent-items form.
func (s *Snippet) Summary() RecentSnippet {
	return RecentSnippet{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		BlobID:    s.BlobID,
	}
}

// NewFile is a file as submitted by a caller creating a snippet — identical
// to CodeFile except the ID has not been assigned yet.
type NewFile struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// CreateRequest carries the caller-supplied fields for a new snippet.
type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Files       []NewFile `json:"files"`
}

// UpdateRequest is a partial overwrite of an existing snippet. Nil pointers
// and a nil Files slice mean "keep the current value" — there is no way to
// distinguish "absent" from "empty" with plain strings, hence the pointers.
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Files       []CodeFile `json:"files,omitempty"`
}
