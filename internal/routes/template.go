// Package routes maintains the registry of logical routes: observed
// requests grouped by host, method, and normalized path template, each with
// a bounded window of decoded response samples and the declaration most
// recently synthesized for it.
package routes

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

var (
	uuidSegment    = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	numericSegment = regexp.MustCompile(`^\d+$`)
	hexSegment     = regexp.MustCompile(`^[0-9a-f]{8,}$`)
	versionSegment = regexp.MustCompile(`^v\d+$`)
)

// TemplatePath normalizes a URL path into a route template: identifier-like
// segments collapse to placeholders so /users/123 and /users/456 become the
// same logical route.
func TemplatePath(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = normalizeSegment(seg)
	}
	return strings.Join(segments, "/")
}

func normalizeSegment(segment string) string {
	lower := strings.ToLower(segment)
	switch {
	case uuidSegment.MatchString(lower):
		return "{uuid}"
	case numericSegment.MatchString(segment):
		return "{id}"
	case hexSegment.MatchString(lower):
		return "{hex}"
	default:
		return segment
	}
}

// RouteID derives a deterministic short identifier from the route key.
func RouteID(host, method, template string) string {
	sum := sha256.Sum256([]byte(host + "\x00" + method + "\x00" + template))
	return hex.EncodeToString(sum[:])[:12]
}

// BaseName derives the declaration base name for a route, e.g.
// GET /api/users/{id} -> "GetUsersById". API prefixes and version segments
// are dropped; placeholder segments become By-qualifiers.
func BaseName(method, template string) string {
	var b strings.Builder
	b.WriteString(pascal(strings.ToLower(method)))

	for _, seg := range strings.Split(template, "/") {
		if seg == "" || seg == "api" || versionSegment.MatchString(seg) {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			b.WriteString(pascal(strings.Trim(seg, "{}")))
			continue
		}
		b.WriteString(pascal(seg))
	}

	name := b.String()
	if name == "" || !unicode.IsLetter(rune(name[0])) {
		return "Route" + name
	}
	return name
}

// pascal converts a path segment to PascalCase, splitting on any
// non-alphanumeric rune and dropping characters that cannot appear in a
// declaration name.
func pascal(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
