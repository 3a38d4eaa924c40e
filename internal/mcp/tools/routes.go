package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/wiretype-mcp/internal/routes"
)

// ListRoutesInput is the input for wiretype_list_routes.
type ListRoutesInput struct {
	Host        string `json:"host,omitempty" jsonschema:"filter routes by host (exact match, lowercase)"`
	Method      string `json:"method,omitempty" jsonschema:"filter routes by HTTP method, e.g. GET"`
	StatusClass string `json:"status_class,omitempty" jsonschema:"filter routes that saw this outcome class: 2xx, 3xx, 4xx, 5xx, or other"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of routes to return (default 50)"`
}

// ListRoutesOutput is the output for wiretype_list_routes.
type ListRoutesOutput struct {
	Routes []RouteInfo `json:"routes"`
	Total  int         `json:"total"`
}

// RouteInfo is a route listing row.
type RouteInfo struct {
	RouteID       string         `json:"route_id"`
	Host          string         `json:"host"`
	Method        string         `json:"method"`
	Template      string         `json:"template"`
	SampleCount   int            `json:"sample_count"`
	StatusProfile map[string]int `json:"status_profile"`
	HasTypes      bool           `json:"has_types"`
	Signature     string         `json:"signature,omitempty"`
	LastSeen      string         `json:"last_seen,omitempty"`
}

const defaultRouteLimit = 50

// ToolListRoutes lists observed routes, most sampled first.
func ToolListRoutes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRoutesInput) (*sdkmcp.CallToolResult, ListRoutesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRoutesInput) (*sdkmcp.CallToolResult, ListRoutesOutput, error) {
		if input.StatusClass != "" {
			switch input.StatusClass {
			case "2xx", "3xx", "4xx", "5xx", "other":
			default:
				return nil, ListRoutesOutput{}, ErrInvalidInput("status_class must be one of 2xx, 3xx, 4xx, 5xx, other")
			}
		}

		summaries := d.Store.List(routes.Filter{
			Host:        input.Host,
			Method:      input.Method,
			StatusClass: input.StatusClass,
		})

		limit := input.Limit
		if limit <= 0 {
			limit = defaultRouteLimit
		}

		output := ListRoutesOutput{
			Routes: make([]RouteInfo, 0, min(limit, len(summaries))),
			Total:  len(summaries),
		}
		for _, s := range summaries {
			if len(output.Routes) >= limit {
				break
			}
			output.Routes = append(output.Routes, RouteInfo{
				RouteID:       s.ID,
				Host:          s.Host,
				Method:        s.Method,
				Template:      s.Template,
				SampleCount:   s.Count,
				StatusProfile: s.StatusProfile,
				HasTypes:      s.HasTypes,
				Signature:     s.Signature,
				LastSeen:      timestamp(s.LastSeen),
			})
		}

		return nil, output, nil
	}
}
