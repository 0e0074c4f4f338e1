package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository"
)

// Compile-time check that *DB implements repository.RecentRepository.
var _ repository.RecentRepository = (*DB)(nil)

const (
	// DefaultRecentLimit is applied when a caller asks for zero or fewer rows.
	DefaultRecentLimit = 20
	// MaxRecentLimit caps a single List call.
	MaxRecentLimit = 100
)

// Put inserts the summary, or overwrites the existing row with the same id.
// The upsert keeps Put idempotent — re-recording a snippet that is already
// in the index is not an error.
func (db *DB) Put(ctx context.Context, summary model.RecentSnippet) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO recent_snippets (id, title, created_at, blob_id)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			created_at = excluded.created_at,
			blob_id    = excluded.blob_id`,
		summary.ID,
		summary.Title,
		summary.CreatedAt.UTC(),
		summary.BlobID,
	)
	if err != nil {
		return apperror.LocalStore("put", err)
	}
	return nil
}

// List returns the most recently created summaries, newest first. The limit
// is clamped to [1, MaxRecentLimit] with DefaultRecentLimit for non-positive
// values, so a bad caller can never drag the whole table into memory.
func (db *DB) List(ctx context.Context, limit int) ([]model.RecentSnippet, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, created_at, blob_id
		 FROM recent_snippets
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, apperror.LocalStore("list", err)
	}
	defer rows.Close()

	summaries := make([]model.RecentSnippet, 0, limit)
	for rows.Next() {
		var s model.RecentSnippet
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.Title, &createdAt, &s.BlobID); err != nil {
			return nil, apperror.LocalStore("scanning row", err)
		}
		s.CreatedAt = createdAt.UTC()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.LocalStore("iterating rows", err)
	}

	return summaries, nil
}

// RemoveByBlobID deletes the summary whose blob id matches. Deleting a blob
// id that is not in the index is a no-op, not an error — the snippet may
// have been created in another session or on another machine.
func (db *DB) RemoveByBlobID(ctx context.Context, blobID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM recent_snippets WHERE blob_id = ?`,
		blobID,
	)
	if err != nil {
		return apperror.LocalStore(fmt.Sprintf("removing blob id %s", blobID), err)
	}
	return nil
}

// Clear empties the index.
func (db *DB) Clear(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM recent_snippets`)
	if err != nil {
		return apperror.LocalStore("clear", err)
	}
	return nil
}
