package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository"
)

// Compile-time check that *DB implements repository.BlobRepository.
var _ repository.BlobRepository = (*DB)(nil)

// CreateBlob inserts a new blob. The caller assigns the id; blobd uses xid
// so ids are URL-safe and sortable by creation time.
func (db *DB) CreateBlob(ctx context.Context, blob *model.Blob) error {
	now := time.Now().UTC()
	blob.CreatedAt = now
	blob.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO blobs (id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		blob.ID,
		blob.Content,
		blob.CreatedAt,
		blob.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blob: %w", err)
	}
	return nil
}

// GetBlob retrieves a blob by id.
func (db *DB) GetBlob(ctx context.Context, id string) (*model.Blob, error) {
	var blob model.Blob
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, content, created_at, updated_at FROM blobs WHERE id = ?`,
		id,
	).Scan(&blob.ID, &blob.Content, &blob.CreatedAt, &blob.UpdatedAt)

	if err != nil {
		// database/sql does not wrap ErrNoRows, so == is the check
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(id)
		}
		return nil, fmt.Errorf("sqlite: getting blob %s: %w", id, err)
	}
	return &blob, nil
}

// UpdateBlob overwrites the content of an existing blob.
func (db *DB) UpdateBlob(ctx context.Context, id, content string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE blobs SET content = ?, updated_at = ? WHERE id = ?`,
		content,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blob %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking blob update %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound(id)
	}
	return nil
}

// DeleteBlob removes a blob by id.
func (db *DB) DeleteBlob(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blobs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blob %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking blob delete %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound(id)
	}
	return nil
}
