package routes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/wiretype-mcp/internal/config"
	"github.com/usestring/wiretype-mcp/pkg/client"
)

// EntrySink receives fully hydrated entries as the refresher drains them
// from the capture backend.
type EntrySink interface {
	Entry(entry *client.Entry) error
}

// Refresher tails the capture backend and feeds new entries to a sink.
// Each session carries a sequence cursor so refreshes fetch only what
// arrived since the previous pass.
type Refresher struct {
	client *client.Client
	sink   EntrySink
	cfg    *config.Config

	// singleflight deduplicates concurrent refreshes of the same session.
	group singleflight.Group

	mu      sync.Mutex
	cursors map[string]int64
}

// NewRefresher creates a Refresher draining into sink.
func NewRefresher(c *client.Client, sink EntrySink, cfg *config.Config) *Refresher {
	return &Refresher{
		client:  c,
		sink:    sink,
		cfg:     cfg,
		cursors: make(map[string]int64),
	}
}

// Start launches the background refresh loop. It returns immediately; the
// loop stops when ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	slog.Info("starting background refresh",
		slog.Duration("interval", r.cfg.RefreshInterval),
	)

	go func() {
		ticker := time.NewTicker(r.cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("stopping background refresh")
				return
			case <-ticker.C:
				r.refreshAll(ctx)
			}
		}
	}()
}

// RefreshSession drains new entries for one session. Concurrent calls for
// the same session are coalesced, and a refresh timeout bounds each pass.
func (r *Refresher) RefreshSession(ctx context.Context, sessionID string) error {
	refreshCtx, cancel := context.WithTimeout(ctx, r.cfg.RefreshTimeout)
	defer cancel()

	_, err, _ := r.group.Do(sessionID, func() (any, error) {
		return nil, r.doRefresh(refreshCtx, sessionID)
	})
	return err
}

func (r *Refresher) refreshAll(ctx context.Context) {
	sessions, err := r.client.ListSessions(ctx)
	if err != nil {
		slog.Warn("failed to list sessions for background refresh",
			slog.String("error", err.Error()),
		)
		return
	}

	for _, session := range sessions {
		if err := r.RefreshSession(ctx, session.ID); err != nil {
			slog.Warn("background refresh failed",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (r *Refresher) doRefresh(ctx context.Context, sessionID string) error {
	start := time.Now()
	cursor := r.cursor(sessionID)

	summaries, err := r.client.ListEntries(ctx, sessionID, cursor, r.cfg.TailLimit)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	if len(summaries) == 0 {
		slog.Debug("refresh completed with no new entries",
			slog.String("session_id", sessionID),
		)
		return nil
	}

	entries, err := r.fetchConcurrently(ctx, sessionID, summaries)
	if err != nil {
		return fmt.Errorf("fetching entries: %w", err)
	}

	// Ingest in sequence order so route windows see arrivals oldest first.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })

	ingested := 0
	for _, entry := range entries {
		if err := r.sink.Entry(entry); err != nil {
			slog.Debug("failed to ingest entry",
				slog.String("entry_id", entry.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		ingested++
	}

	r.advanceCursor(sessionID, summaries[len(summaries)-1].Seq)

	slog.Info("refresh completed",
		slog.String("session_id", sessionID),
		slog.Int("fetched", len(summaries)),
		slog.Int("ingested", ingested),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

// fetchConcurrently hydrates entry summaries using a bounded worker pool.
// A single missing entry does not fail the batch; the capture backend may
// evict entries between listing and fetching.
func (r *Refresher) fetchConcurrently(ctx context.Context, sessionID string, summaries []client.EntrySummary) ([]*client.Entry, error) {
	slots := make([]*client.Entry, len(summaries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.FetchWorkers)

	for i, summary := range summaries {
		g.Go(func() error {
			entry, err := r.client.GetEntry(ctx, sessionID, summary.ID)
			if err != nil {
				slog.Debug("failed to fetch entry",
					slog.String("session_id", sessionID),
					slog.String("entry_id", summary.ID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			slots[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]*client.Entry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *Refresher) cursor(sessionID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursors[sessionID]
}

func (r *Refresher) advanceCursor(sessionID string, seq int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq > r.cursors[sessionID] {
		r.cursors[sessionID] = seq
	}
}
