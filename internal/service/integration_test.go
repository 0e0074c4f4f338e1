package service_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/blob"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository/sqlite"
	"github.com/sakif/snipshare/internal/server"
	"github.com/sakif/snipshare/internal/service"
)

// newIntegrationService assembles the real stack end to end: the workflow
// service, the HTTP blob client, a blobd instance on an in-memory database,
// and an in-memory sqlite recent index. Only the network is fake (httptest).
func newIntegrationService(t *testing.T) *service.SnippetService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	srv, err := server.New(server.Config{DBPath: ":memory:", BaseURL: "http://blobd.test"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := blob.NewClient(ts.URL, nil)
	return service.NewSnippetService(client, db, logger)
}

func TestIntegration_SnippetLifecycle(t *testing.T) {
	svc := newIntegrationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateRequest{
		Title:       "hello",
		Description: "integration",
		Files: []model.NewFile{
			{Name: "a.js", Content: "1", Language: "javascript"},
			{Name: "b.py", Content: "2", Language: "python"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.BlobID)

	// fetch through the full stack and compare
	fetched, err := svc.Get(ctx, created.BlobID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.BlobID, fetched.BlobID)
	require.Len(t, fetched.Files, 2)
	assert.Equal(t, "a.js", fetched.Files[0].Name)
	assert.True(t, fetched.CreatedAt.Equal(created.CreatedAt))

	// the recent index saw the creation
	summaries, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, created.BlobID, summaries[0].BlobID)

	// partial update keeps everything it does not name
	newTitle := "renamed"
	updated, err := svc.Update(ctx, created.BlobID, model.UpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "integration", updated.Description)
	assert.Len(t, updated.Files, 2)

	// delete removes remote blob and local summary
	require.NoError(t, svc.Delete(ctx, created.BlobID))

	_, err = svc.Get(ctx, created.BlobID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	summaries, err = svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestIntegration_GetNonexistent(t *testing.T) {
	svc := newIntegrationService(t)

	_, err := svc.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
