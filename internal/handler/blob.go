package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository"
)

// MaxBlobSize caps a single payload at 1 MiB. Snippet documents are JSON
// text; anything bigger is almost certainly a mistake or abuse.
const MaxBlobSize = 1 << 20

// BlobHandler serves the four-verb blob contract:
//
//	POST   /blob/new   create, body = payload, response = resource locator
//	GET    /blob/{id}  read
//	PUT    /blob/{id}  overwrite
//	DELETE /blob/{id}  remove
//
// Payloads are opaque: the handler never parses or inspects them.
type BlobHandler struct {
	repo    repository.BlobRepository
	baseURL string // prefix of the locator returned on create
	logger  *slog.Logger
}

// NewBlobHandler creates a BlobHandler. baseURL is the externally visible
// address of this server, used to build the locator that create returns.
func NewBlobHandler(repo repository.BlobRepository, baseURL string, logger *slog.Logger) *BlobHandler {
	return &BlobHandler{
		repo:    repo,
		baseURL: baseURL,
		logger:  logger,
	}
}

// HandleCreate stores a new blob and answers with its resource locator as
// plain text. The final path segment of the locator is the blob id.
func (h *BlobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	blob := &model.Blob{
		ID:      xid.New().String(),
		Content: content,
	}
	if err := h.repo.CreateBlob(r.Context(), blob); err != nil {
		h.logger.Error("failed to create blob", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Info("blob created",
		slog.String("id", blob.ID),
		slog.Int("bytes", len(content)),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	io.WriteString(w, h.baseURL+"/blob/"+blob.ID)
}

// HandleGet returns the stored payload as plain text.
func (h *BlobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "blob id is required"))
		return
	}

	blob, err := h.repo.GetBlob(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, blob.Content)
}

// HandleUpdate overwrites the stored payload.
func (h *BlobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "blob id is required"))
		return
	}

	content, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	if err := h.repo.UpdateBlob(r.Context(), id, content); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("blob updated",
		slog.String("id", id),
		slog.Int("bytes", len(content)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes the blob.
func (h *BlobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "blob id is required"))
		return
	}

	if err := h.repo.DeleteBlob(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("blob deleted", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// readPayload reads the request body with the size cap applied. On failure
// it writes the error response itself and reports ok=false.
func (h *BlobHandler) readPayload(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBlobSize))
	if err != nil {
		writeError(w, apperror.ValidationFailed("body",
			"payload is unreadable or exceeds the size limit"))
		return "", false
	}
	return string(body), true
}
