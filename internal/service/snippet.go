// Package service contains the snippet workflow — the orchestration layer
// between the remote blob store and the local recent-items index.
//
// The service receives both stores as interfaces (repository.BlobStore,
// repository.RecentRepository), so it has zero knowledge of HTTP or SQL.
// The CLI calls it today; any other front end could call it unchanged, and
// tests exercise it against in-memory fakes.
//
// The one invariant everything here protects: a snippet's canonical
// identity is the blob store's identity. The logical ID exists only for
// local bookkeeping and never addresses the remote store.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository"
)

const (
	MaxTitleLength     = 200
	MaxFilesPerSnippet = 50
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// SnippetService implements the snippet persistence workflow.
type SnippetService struct {
	blobs  repository.BlobStore
	recent repository.RecentRepository
	logger *slog.Logger
	now    func() time.Time // injectable clock for tests
}

// NewSnippetService wires the workflow to its two stores.
func NewSnippetService(blobs repository.BlobStore, recent repository.RecentRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		blobs:  blobs,
		recent: recent,
		logger: logger,
		now:    time.Now,
	}
}

// Create builds, persists, and indexes a new snippet.
//
// Persistence is two-phase because the blob store assigns the identifier:
// the snippet is first stored with an empty blobId to obtain one, then the
// blob is overwritten with the identifier embedded, so the stored document
// is self-describing — a reader can recover the blob id from the content,
// not only from the address.
//
// Failure policy: if the first store fails, nothing was persisted anywhere
// and no summary is recorded. If the second store (the embed patch) fails,
// the blob exists and is fully addressable, just with a stale embedded
// blobId; the summary IS recorded before the error returns, so the blob
// stays findable from the recent list.
func (s *SnippetService) Create(ctx context.Context, req model.CreateRequest) (*model.Snippet, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "snippet title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("snippet title must be %d characters or less", MaxTitleLength))
	}
	if len(req.Files) == 0 {
		return nil, apperror.ValidationFailed("files", "a snippet needs at least one file")
	}
	if len(req.Files) > MaxFilesPerSnippet {
		return nil, apperror.ValidationFailed("files",
			fmt.Sprintf("a snippet may have at most %d files", MaxFilesPerSnippet))
	}

	// One instant for both timestamps: createdAt == updatedAt marks a
	// never-edited snippet.
	now := s.now().UTC().Truncate(time.Second)

	files := make([]model.CodeFile, 0, len(req.Files))
	for i, f := range req.Files {
		if strings.TrimSpace(f.Name) == "" {
			return nil, apperror.ValidationFailed("files",
				fmt.Sprintf("file %d has no name", i))
		}
		language := f.Language
		if language == "" {
			language = model.DetectLanguage(f.Name)
		}
		files = append(files, model.CodeFile{
			ID:       xid.New().String(),
			Name:     f.Name,
			Content:  f.Content,
			Language: language,
		})
	}

	snippet := &model.Snippet{
		ID:          xid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Files:       files,
		CreatedAt:   now,
		UpdatedAt:   now,
		BlobID:      "", // unknown until the store assigns one
	}

	payload, err := json.Marshal(snippet)
	if err != nil {
		return nil, fmt.Errorf("serializing snippet: %w", err)
	}

	blobID, err := s.blobs.Create(ctx, string(payload))
	if err != nil {
		s.logger.Error("failed to store snippet",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing snippet: %w", err)
	}
	snippet.BlobID = blobID

	// Second phase: rewrite the blob with its own id embedded.
	payload, err = json.Marshal(snippet)
	if err != nil {
		return nil, fmt.Errorf("serializing snippet: %w", err)
	}
	patchErr := s.blobs.Update(ctx, blobID, string(payload))
	if patchErr != nil {
		s.logger.Warn("snippet stored but blob id patch failed; stored document carries an empty blobId",
			slog.String("blobId", blobID),
			slog.String("error", patchErr.Error()),
		)
	}

	// The blob exists, so index it even when the patch failed — otherwise
	// the only copy of the id is lost with the error message.
	if err := s.recent.Put(ctx, snippet.Summary()); err != nil {
		s.logger.Error("failed to index snippet",
			slog.String("blobId", blobID),
			slog.String("error", err.Error()),
		)
		if patchErr == nil {
			return nil, fmt.Errorf("indexing snippet: %w", err)
		}
	}
	if patchErr != nil {
		return nil, fmt.Errorf("patching snippet blob id: %w", patchErr)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("blobId", blobID),
		slog.Int("files", len(files)),
	)
	return snippet, nil
}

// Get fetches and validates the snippet stored at blobID.
//
// A not-found from the store propagates unchanged. A payload that is not
// JSON fails with ErrMalformed; JSON with the wrong shape fails with
// ErrInvalidSnippet carrying field-level detail. No partial snippet is ever
// returned.
func (s *SnippetService) Get(ctx context.Context, blobID string) (*model.Snippet, error) {
	blobID = strings.TrimSpace(blobID)
	if blobID == "" {
		return nil, apperror.ValidationFailed("blobId", "blob id is required")
	}

	raw, err := s.blobs.Get(ctx, blobID)
	if err != nil {
		return nil, err
	}

	snippet, err := model.ParseSnippet([]byte(raw))
	if err != nil {
		s.logger.Warn("fetched blob is not a valid snippet",
			slog.String("blobId", blobID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return snippet, nil
}

// Update merges the partial request into the stored snippet and re-persists
// the whole document at the same blob id.
//
// Merge semantics: a nil Title/Description pointer and a nil Files slice
// keep the stored value; anything provided overwrites it wholesale.
// UpdatedAt is refreshed on every call, even when no visible field changed.
// The recent-items summary is deliberately not touched: the recent list
// shows creation-time titles (see RefreshRecent for the explicit sync).
func (s *SnippetService) Update(ctx context.Context, blobID string, req model.UpdateRequest) (*model.Snippet, error) {
	snippet, err := s.Get(ctx, blobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "snippet title is required")
		}
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("snippet title must be %d characters or less", MaxTitleLength))
		}
		snippet.Title = title
	}
	if req.Description != nil {
		snippet.Description = strings.TrimSpace(*req.Description)
	}
	if req.Files != nil {
		if len(req.Files) == 0 {
			return nil, apperror.ValidationFailed("files", "a snippet needs at least one file")
		}
		snippet.Files = req.Files
	}

	snippet.UpdatedAt = s.now().UTC().Truncate(time.Second)

	payload, err := json.Marshal(snippet)
	if err != nil {
		return nil, fmt.Errorf("serializing snippet: %w", err)
	}
	if err := s.blobs.Update(ctx, blobID, string(payload)); err != nil {
		s.logger.Error("failed to update snippet",
			slog.String("blobId", blobID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	s.logger.Info("snippet updated", slog.String("blobId", blobID))
	return snippet, nil
}

// Delete removes the remote blob, then the local summary. A failed remote
// delete (including not-found) propagates with no local side effects; a
// missing local summary is a benign no-op.
func (s *SnippetService) Delete(ctx context.Context, blobID string) error {
	blobID = strings.TrimSpace(blobID)
	if blobID == "" {
		return apperror.ValidationFailed("blobId", "blob id is required")
	}

	if err := s.blobs.Delete(ctx, blobID); err != nil {
		return err
	}

	if err := s.recent.RemoveByBlobID(ctx, blobID); err != nil {
		return fmt.Errorf("removing snippet from recent list: %w", err)
	}

	s.logger.Info("snippet deleted", slog.String("blobId", blobID))
	return nil
}

// Recent lists the local index, newest first. The limit is clamped the same
// way the repository clamps it, so both layers agree on the bounds.
func (s *SnippetService) Recent(ctx context.Context, limit int) ([]model.RecentSnippet, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.recent.List(ctx, limit)
}

// ClearRecent empties the local index. Remote blobs are untouched.
func (s *SnippetService) ClearRecent(ctx context.Context) error {
	return s.recent.Clear(ctx)
}

// RefreshRecent re-fetches a snippet and rewrites its local summary. This is
// the explicit sync for the stale-title case: updates never refresh the
// recent list on their own, so a caller that wants the list to reflect an
// edited title calls this afterwards.
func (s *SnippetService) RefreshRecent(ctx context.Context, blobID string) error {
	snippet, err := s.Get(ctx, blobID)
	if err != nil {
		return err
	}
	if err := s.recent.Put(ctx, snippet.Summary()); err != nil {
		return fmt.Errorf("refreshing recent entry: %w", err)
	}
	return nil
}
