package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// timestamp formats a time for tool output, empty when unset.
func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// RouteTypesInput is the input for wiretype_route_types.
type RouteTypesInput struct {
	RouteID string `json:"route_id" jsonschema:"route ID from wiretype_list_routes"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"drain new capture entries before synthesizing"`
}

// RouteTypesOutput is the output for wiretype_route_types.
type RouteTypesOutput struct {
	RouteID      string `json:"route_id"`
	TypeName     string `json:"type_name,omitempty"`
	Declarations string `json:"declarations,omitempty"`
	Signature    string `json:"signature,omitempty"`
	Changed      bool   `json:"changed"`
	SampleCount  int    `json:"sample_count"`
	GeneratedAt  string `json:"generated_at,omitempty"`
	Hint         string `json:"hint,omitempty"`
}

// ToolRouteTypes synthesizes interface declarations for a route's response
// bodies. Unchanged traffic returns the previous declaration with
// changed=false, so callers can poll cheaply.
func ToolRouteTypes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RouteTypesInput) (*sdkmcp.CallToolResult, RouteTypesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RouteTypesInput) (*sdkmcp.CallToolResult, RouteTypesOutput, error) {
		if input.RouteID == "" {
			return nil, RouteTypesOutput{}, ErrInvalidInput("route_id is required")
		}

		if input.Refresh && d.Refresher != nil {
			sessions, err := d.Client.ListSessions(ctx)
			if err != nil {
				return nil, RouteTypesOutput{}, WrapCaptureError(err)
			}
			for _, session := range sessions {
				if err := d.Refresher.RefreshSession(ctx, session.ID); err != nil {
					return nil, RouteTypesOutput{}, WrapCaptureError(err)
				}
			}
		}

		if _, ok := d.Store.Get(input.RouteID); !ok {
			return nil, RouteTypesOutput{}, ErrNotFound("route", input.RouteID)
		}

		decl, changed, err := d.Store.Synthesize(input.RouteID)
		if err != nil {
			return nil, RouteTypesOutput{}, &CodedError{
				Code:    ErrCodeCaptureError,
				Message: "type synthesis failed",
				Cause:   err,
			}
		}

		output := RouteTypesOutput{
			RouteID: input.RouteID,
			Changed: changed,
		}
		if decl == nil {
			output.Hint = "no JSON response bodies observed for this route yet"
			return nil, output, nil
		}

		output.TypeName = decl.TypeName
		output.Declarations = decl.Text
		output.Signature = decl.Signature
		output.SampleCount = decl.SampleCount
		output.GeneratedAt = timestamp(decl.GeneratedAt)
		return nil, output, nil
	}
}
