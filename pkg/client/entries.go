package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
)

// Session is one capture session.
type Session struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Active     bool   `json:"active"`
	EntryCount int    `json:"entry_count"`
}

// EntrySummary is the listing form of a captured exchange: metadata only,
// no bodies. Seq is a monotonically increasing per-session cursor.
type EntrySummary struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	TsMs   int64  `json:"ts_ms"`
	Method string `json:"method"`
	URL    string `json:"url"`
	Status int    `json:"status"`
}

// Entry is a fully hydrated exchange including the response body.
type Entry struct {
	EntrySummary
	RespContentType string  `json:"resp_content_type,omitempty"`
	RespBody        *string `json:"resp_body,omitempty"` // base64
}

// ListSessions retrieves all sessions known to the capture backend.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.get(ctx, "/sessions", nil, &sessions); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// ListEntries pages entry summaries for a session, strictly after the given
// sequence number, oldest first. Use afterSeq 0 to start from the beginning.
func (c *Client) ListEntries(ctx context.Context, sessionID string, afterSeq int64, limit int) ([]EntrySummary, error) {
	query := url.Values{}
	if afterSeq > 0 {
		query.Set("after_seq", strconv.FormatInt(afterSeq, 10))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var entries []EntrySummary
	path := "/sessions/" + url.PathEscape(sessionID) + "/entries"
	if err := c.get(ctx, path, query, &entries); err != nil {
		return nil, fmt.Errorf("listing entries for session %q: %w", sessionID, err)
	}
	return entries, nil
}

// GetEntry retrieves one entry with its response body.
func (c *Client) GetEntry(ctx context.Context, sessionID, entryID string) (*Entry, error) {
	path := "/sessions/" + url.PathEscape(sessionID) + "/entries/" + url.PathEscape(entryID)
	var entry Entry
	if err := c.get(ctx, path, nil, &entry); err != nil {
		return nil, fmt.Errorf("getting entry %q: %w", entryID, err)
	}
	return &entry, nil
}

// DecodeResponseBody returns the entry's decoded response body, or nil when
// the entry has none.
func (e *Entry) DecodeResponseBody() ([]byte, error) {
	if e.RespBody == nil || *e.RespBody == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(*e.RespBody)
	if err != nil {
		return nil, fmt.Errorf("decoding body of entry %q: %w", e.ID, err)
	}
	return decoded, nil
}
