package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

// RouteSamplesInput is the input for wiretype_route_samples.
type RouteSamplesInput struct {
	RouteID     string `json:"route_id" jsonschema:"route ID from wiretype_list_routes"`
	StatusClass string `json:"status_class,omitempty" jsonschema:"only return samples in this outcome class: 2xx, 3xx, 4xx, 5xx, or other"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of samples, newest last (default 10)"`
}

// RouteSamplesOutput is the output for wiretype_route_samples.
type RouteSamplesOutput struct {
	RouteID string       `json:"route_id"`
	Samples []SampleInfo `json:"samples"`
	Total   int          `json:"total"`
}

// SampleInfo is one observed response body with its outcome.
type SampleInfo struct {
	Status      int    `json:"status"`
	StatusClass string `json:"status_class"`
	IsError     bool   `json:"is_error"`
	ReceivedAt  string `json:"received_at,omitempty"`
	Body        any    `json:"body,omitempty"`
	HasBody     bool   `json:"has_body"`
}

const defaultSampleLimit = 10

// ToolRouteSamples returns the retained response body observations for a
// route, oldest first.
func ToolRouteSamples(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RouteSamplesInput) (*sdkmcp.CallToolResult, RouteSamplesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RouteSamplesInput) (*sdkmcp.CallToolResult, RouteSamplesOutput, error) {
		if input.RouteID == "" {
			return nil, RouteSamplesOutput{}, ErrInvalidInput("route_id is required")
		}

		observations, ok := d.Store.Observations(input.RouteID)
		if !ok {
			return nil, RouteSamplesOutput{}, ErrNotFound("route", input.RouteID)
		}

		if input.StatusClass != "" {
			filtered := observations[:0:0]
			for _, obs := range observations {
				if typegen.StatusClass(obs.StatusCode) == input.StatusClass {
					filtered = append(filtered, obs)
				}
			}
			observations = filtered
		}

		limit := input.Limit
		if limit <= 0 {
			limit = defaultSampleLimit
		}

		output := RouteSamplesOutput{
			RouteID: input.RouteID,
			Samples: make([]SampleInfo, 0, min(limit, len(observations))),
			Total:   len(observations),
		}

		// Keep the newest samples when over the limit.
		if len(observations) > limit {
			observations = observations[len(observations)-limit:]
		}
		for _, obs := range observations {
			info := SampleInfo{
				Status:      obs.StatusCode,
				StatusClass: typegen.StatusClass(obs.StatusCode),
				IsError:     typegen.IsErrorStatus(obs.StatusCode),
				ReceivedAt:  timestamp(obs.ReceivedAt),
			}
			if obs.Value != nil {
				info.Body = obs.Value.Interface()
				info.HasBody = true
			}
			output.Samples = append(output.Samples, info)
		}

		return nil, output, nil
	}
}
