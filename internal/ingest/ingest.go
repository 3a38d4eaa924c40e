// Package ingest converts captured entries into route observations: it
// gates on content type, decodes the JSON body into the engine's tagged
// value form, resolves the logical route, and records the observation.
package ingest

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/usestring/wiretype-mcp/internal/cache"
	"github.com/usestring/wiretype-mcp/internal/config"
	"github.com/usestring/wiretype-mcp/internal/routes"
	"github.com/usestring/wiretype-mcp/pkg/client"
	"github.com/usestring/wiretype-mcp/pkg/contenttype"
	"github.com/usestring/wiretype-mcp/pkg/sample"
	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

// Ingestor feeds captured entries into the route store.
type Ingestor struct {
	store *routes.Store
	cache *cache.BodyCache
	cfg   *config.Config
}

// New creates an Ingestor.
func New(store *routes.Store, bodyCache *cache.BodyCache, cfg *config.Config) *Ingestor {
	return &Ingestor{store: store, cache: bodyCache, cfg: cfg}
}

// Entry ingests one captured exchange. Entries without a JSON body still
// register their route and outcome (the sample stays nil); bodies that are
// too large or undecodable are skipped with a debug log rather than an
// error, since malformed traffic is normal at a capture boundary.
func (in *Ingestor) Entry(entry *client.Entry) error {
	parsed, err := url.Parse(entry.URL)
	if err != nil {
		return fmt.Errorf("entry %s has unparseable URL: %w", entry.ID, err)
	}

	host := strings.ToLower(parsed.Host)
	method := strings.ToUpper(entry.Method)
	template := routes.TemplatePath(parsed.Path)

	route := routes.Route{
		ID:       routes.RouteID(host, method, template),
		Host:     host,
		Method:   method,
		Template: template,
		BaseName: routes.BaseName(method, template),
	}

	obs := typegen.Observation{
		StatusCode: entry.Status,
		ReceivedAt: time.UnixMilli(entry.TsMs).UTC(),
	}
	obs.Value = in.decodeBody(entry)

	in.store.Record(route, obs)
	return nil
}

func (in *Ingestor) decodeBody(entry *client.Entry) *sample.Value {
	if cached, ok := in.cache.Get(entry.ID); ok {
		return cached
	}

	body, err := entry.DecodeResponseBody()
	if err != nil || body == nil {
		return nil
	}
	if in.cfg.BodyMaxBytes > 0 && len(body) > in.cfg.BodyMaxBytes {
		slog.Debug("skipping oversized body",
			slog.String("entry_id", entry.ID),
			slog.Int("bytes", len(body)),
		)
		return nil
	}
	if !contenttype.IsJSON(entry.RespContentType, body) {
		return nil
	}

	v, err := sample.Decode(body)
	if err != nil {
		slog.Debug("skipping undecodable body",
			slog.String("entry_id", entry.ID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	in.cache.Put(entry.ID, v)
	return v
}
