package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakif/snipshare/internal/apperror"
)

// ParseSnippet turns a raw payload fetched from the blob store into a
// Snippet, or fails with a typed error.
//
// Two distinct failure classes, because callers display them differently:
//   - apperror.ErrMalformed: the payload is not JSON at all
//   - apperror.ErrInvalidSnippet: it is JSON, but the shape is wrong
//
// The shape check runs against the untyped JSON value BEFORE decoding into
// the struct. Decoding directly with json.Unmarshal would silently
// zero-value missing fields ("files": null becomes an empty slice, a missing
// title becomes ""), and a corrupted document would flow through the app
// looking like a real snippet. Every failing field is collected so the error
// message names all of them, not just the first.
func ParseSnippet(raw []byte) (*Snippet, error) {
	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, apperror.Malformed(err)
	}

	if problems := checkSnippetShape(untyped); len(problems) > 0 {
		return nil, apperror.InvalidSnippet(problems)
	}

	// Shape is known good; this decode can only fail on the timestamp
	// format, which the shape check does not cover.
	var snippet Snippet
	if err := json.Unmarshal(raw, &snippet); err != nil {
		return nil, apperror.InvalidSnippet([]string{err.Error()})
	}
	return &snippet, nil
}

// checkSnippetShape validates the untyped JSON value against the snippet
// schema and returns one message per failing field. An empty result means
// the document is valid.
func checkSnippetShape(v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		return []string{"document must be a JSON object"}
	}

	var problems []string

	problems = append(problems, requireString(obj, "id")...)
	problems = append(problems, requireString(obj, "title")...)
	problems = append(problems, requireString(obj, "createdAt")...)
	problems = append(problems, requireString(obj, "updatedAt")...)
	problems = append(problems, requireString(obj, "blobId")...)
	problems = append(problems, requireTimestamp(obj, "createdAt")...)
	problems = append(problems, requireTimestamp(obj, "updatedAt")...)

	// description is optional, but must be a string when present
	if desc, present := obj["description"]; present {
		if _, ok := desc.(string); !ok {
			problems = append(problems, "description must be a string")
		}
	}

	files, present := obj["files"]
	if !present {
		return append(problems, "files is required")
	}
	list, ok := files.([]any)
	if !ok {
		return append(problems, "files must be an array")
	}
	for i, entry := range list {
		problems = append(problems, checkFileShape(i, entry)...)
	}
	return problems
}

func checkFileShape(index int, v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		return []string{fmt.Sprintf("files[%d] must be an object", index)}
	}
	var problems []string
	for _, field := range []string{"id", "name", "content", "language"} {
		for _, p := range requireString(obj, field) {
			problems = append(problems, fmt.Sprintf("files[%d].%s", index, p))
		}
	}
	return problems
}

// requireString reports a missing or non-string field. The message starts
// with the field name so checkFileShape can prefix it with its path.
func requireString(obj map[string]any, field string) []string {
	v, present := obj[field]
	if !present {
		return []string{field + " is required"}
	}
	if _, ok := v.(string); !ok {
		return []string{field + " must be a string"}
	}
	return nil
}

// requireTimestamp checks RFC 3339 format on a field already known to be a
// string; requireString reports the missing/wrong-type cases.
func requireTimestamp(obj map[string]any, field string) []string {
	s, ok := obj[field].(string)
	if !ok {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return []string{field + " must be an RFC 3339 timestamp"}
	}
	return nil
}
