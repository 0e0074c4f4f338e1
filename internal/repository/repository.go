// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite) and in
// internal/blob; the service never imports those directly.
package repository

import (
	"context"

	"github.com/sakif/snipshare/internal/model"
)

// BlobStore is the remote blob service seen from the client side: four verbs
// over opaque text payloads addressed by an opaque identifier. Implemented
// by blob.Client against the real service and by test fakes.
type BlobStore interface {
	// Create stores the payload and returns the identifier the service
	// assigned to it.
	Create(ctx context.Context, payload string) (string, error)
	Get(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id, payload string) error
	Delete(ctx context.Context, id string) error
}

// RecentRepository is the local index of recently created snippets, keyed by
// the snippet's logical id and ordered by creation time.
type RecentRepository interface {
	// Put inserts or overwrites the summary with the same ID.
	Put(ctx context.Context, summary model.RecentSnippet) error
	// List returns at most limit summaries, most recently created first.
	List(ctx context.Context, limit int) ([]model.RecentSnippet, error)
	// RemoveByBlobID deletes the summary whose BlobID matches. Removing a
	// blob id with no matching summary is not an error.
	RemoveByBlobID(ctx context.Context, blobID string) error
	Clear(ctx context.Context) error
}

// BlobRepository is the server-side storage behind blobd, the self-hostable
// implementation of the blob contract.
type BlobRepository interface {
	CreateBlob(ctx context.Context, blob *model.Blob) error
	GetBlob(ctx context.Context, id string) (*model.Blob, error)
	UpdateBlob(ctx context.Context, id, content string) error
	DeleteBlob(ctx context.Context, id string) error
}
