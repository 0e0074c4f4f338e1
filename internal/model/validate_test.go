package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/snipshare/internal/apperror"
)

func validDocument() map[string]any {
	return map[string]any{
		"id":          "snip1",
		"title":       "hello",
		"description": "a test snippet",
		"files": []any{
			map[string]any{
				"id":       "file1",
				"name":     "a.js",
				"content":  "1",
				"language": "javascript",
			},
		},
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "2024-05-01T10:00:00Z",
		"blobId":    "blob1",
	}
}

func marshal(t *testing.T, doc any) []byte {
	t.Helper()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshaling test document: %v", err)
	}
	return raw
}

func TestParseSnippet_Valid(t *testing.T) {
	snippet, err := ParseSnippet(marshal(t, validDocument()))
	if err != nil {
		t.Fatalf("ParseSnippet() error = %v", err)
	}

	if snippet.ID != "snip1" {
		t.Errorf("ID = %q, want %q", snippet.ID, "snip1")
	}
	if snippet.Title != "hello" {
		t.Errorf("Title = %q, want %q", snippet.Title, "hello")
	}
	if len(snippet.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(snippet.Files))
	}
	if snippet.Files[0].Language != "javascript" {
		t.Errorf("Language = %q, want javascript", snippet.Files[0].Language)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !snippet.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", snippet.CreatedAt, want)
	}
}

func TestParseSnippet_OptionalDescription(t *testing.T) {
	doc := validDocument()
	delete(doc, "description")

	snippet, err := ParseSnippet(marshal(t, doc))
	if err != nil {
		t.Fatalf("ParseSnippet() error = %v", err)
	}
	if snippet.Description != "" {
		t.Errorf("Description = %q, want empty", snippet.Description)
	}
}

func TestParseSnippet_NotJSON(t *testing.T) {
	_, err := ParseSnippet([]byte("this is not json {"))
	if !errors.Is(err, apperror.ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestParseSnippet_InvalidShapes(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(doc map[string]any)
		wantDetail string
	}{
		{
			name:       "missing files",
			mutate:     func(doc map[string]any) { delete(doc, "files") },
			wantDetail: "files is required",
		},
		{
			name:       "files not an array",
			mutate:     func(doc map[string]any) { doc["files"] = "nope" },
			wantDetail: "files must be an array",
		},
		{
			name: "file entry missing content",
			mutate: func(doc map[string]any) {
				doc["files"] = []any{
					map[string]any{"id": "f", "name": "a.js", "language": "javascript"},
				}
			},
			wantDetail: "files[0].content is required",
		},
		{
			name:       "missing title",
			mutate:     func(doc map[string]any) { delete(doc, "title") },
			wantDetail: "title is required",
		},
		{
			name:       "title wrong type",
			mutate:     func(doc map[string]any) { doc["title"] = 42 },
			wantDetail: "title must be a string",
		},
		{
			name:       "description wrong type",
			mutate:     func(doc map[string]any) { doc["description"] = 42 },
			wantDetail: "description must be a string",
		},
		{
			name:       "missing blobId",
			mutate:     func(doc map[string]any) { delete(doc, "blobId") },
			wantDetail: "blobId is required",
		},
		{
			name:       "createdAt not a timestamp",
			mutate:     func(doc map[string]any) { doc["createdAt"] = "yesterday" },
			wantDetail: "createdAt must be an RFC 3339 timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			_, err := ParseSnippet(marshal(t, doc))
			if !errors.Is(err, apperror.ErrInvalidSnippet) {
				t.Fatalf("error = %v, want ErrInvalidSnippet", err)
			}
			if !strings.Contains(err.Error(), tt.wantDetail) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantDetail)
			}
		})
	}
}

// A document with several problems reports all of them, not just the first.
func TestParseSnippet_CollectsAllProblems(t *testing.T) {
	doc := validDocument()
	delete(doc, "title")
	delete(doc, "blobId")

	_, err := ParseSnippet(marshal(t, doc))
	if !errors.Is(err, apperror.ErrInvalidSnippet) {
		t.Fatalf("error = %v, want ErrInvalidSnippet", err)
	}
	for _, want := range []string{"title is required", "blobId is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}
}

func TestParseSnippet_NonObjectDocument(t *testing.T) {
	_, err := ParseSnippet([]byte(`["not", "an", "object"]`))
	if !errors.Is(err, apperror.ErrInvalidSnippet) {
		t.Errorf("error = %v, want ErrInvalidSnippet", err)
	}
}

// The serialized form of a parsed snippet must parse again to the same
// value: the wire format round-trips.
func TestParseSnippet_RoundTrip(t *testing.T) {
	first, err := ParseSnippet(marshal(t, validDocument()))
	if err != nil {
		t.Fatalf("ParseSnippet() error = %v", err)
	}

	reserialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("re-serializing: %v", err)
	}

	second, err := ParseSnippet(reserialized)
	if err != nil {
		t.Fatalf("ParseSnippet(reserialized) error = %v", err)
	}
	if second.ID != first.ID || second.Title != first.Title ||
		second.BlobID != first.BlobID || len(second.Files) != len(first.Files) {
		t.Errorf("round-trip changed the snippet: %+v vs %+v", first, second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) || !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("round-trip changed the timestamps")
	}
}
