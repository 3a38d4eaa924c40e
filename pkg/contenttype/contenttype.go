// Package contenttype gates which response bodies reach the type synthesis
// engine. Only JSON bodies are synthesizable; text is reported as skipped
// and binary is dropped outright.
package contenttype

import (
	"mime"
	"strings"
	"unicode/utf8"
)

// Category is a coarse classification of a response content type.
type Category string

const (
	JSON   Category = "json"
	Text   Category = "text"
	Binary Category = "binary"
)

// Classify maps a Content-Type header value to its coarse category.
// Parameters (charset, boundary) are stripped via mime.ParseMediaType;
// malformed values fall back to lowercase substring matching. An empty
// content type classifies as binary.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// application/json, application/vnd.*+json, text/json
	if strings.Contains(mediaType, "json") {
		return JSON
	}
	if strings.HasPrefix(mediaType, "text/") ||
		strings.Contains(mediaType, "xml") ||
		strings.Contains(mediaType, "yaml") ||
		strings.Contains(mediaType, "javascript") {
		return Text
	}
	return Binary
}

// IsJSON reports whether a body should be handed to the engine. When the
// declared content type is not JSON but the body itself is valid UTF-8
// starting with a JSON opener, the body wins: capture backends frequently
// see APIs that mislabel JSON as text/plain.
func IsJSON(contentType string, body []byte) bool {
	if Classify(contentType) == JSON {
		return true
	}
	trimmed := strings.TrimLeft(string(body), " \t\r\n")
	if trimmed == "" || !utf8.ValidString(trimmed) {
		return false
	}
	switch trimmed[0] {
	case '{', '[':
		return true
	}
	return false
}
