package model

import (
	"path/filepath"
	"strings"
)

// SupportedLanguages are the tags the UI layer knows how to highlight.
// The list is advisory: a snippet may carry any tag, and unknown tags are
// rendered as plain text rather than rejected.
var SupportedLanguages = []string{
	"javascript",
	"typescript",
	"python",
	"html",
	"css",
	"json",
	"markdown",
	"text",
}

var displayNames = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"python":     "Python",
	"html":       "HTML",
	"css":        "CSS",
	"json":       "JSON",
	"markdown":   "Markdown",
	"text":       "Plain Text",
}

var extensionLanguages = map[string]string{
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".py":   "python",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".json": "json",
	".md":   "markdown",
	".txt":  "text",
}

// LanguageDisplayName returns the human-readable name for a language tag.
// Unknown tags come back unchanged.
func LanguageDisplayName(tag string) string {
	if name, ok := displayNames[tag]; ok {
		return name
	}
	return tag
}

// DetectLanguage guesses a language tag from a filename's extension,
// defaulting to "text".
func DetectLanguage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return "text"
}
