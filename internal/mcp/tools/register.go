package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "wiretype_list_routes",
		Description: "List observed API routes with sample counts, outcome class profiles, and change-detection signatures. Routes are grouped by host, method, and templated path (e.g. /api/users/{id}). Filter by host, method, or status_class. Pass a route_id to wiretype_route_types, wiretype_route_samples, or wiretype_query_samples for deeper analysis.",
	}, ToolListRoutes(d))

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "wiretype_route_types",
		Description: "Synthesize TypeScript-style interface declarations from a route's observed JSON response bodies, grouped by outcome class (2xx, 4xx, ...). Returns the declaration text, an 8-hex change-detection signature, and changed=false when the route's recent traffic matches the previous synthesis. Set refresh=true to drain new capture entries first.",
	}, ToolRouteTypes(d))

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "wiretype_route_samples",
		Description: "Return the retained response body observations for a route, oldest first, with status code and outcome class per sample. Use status_class to narrow to one outcome bucket. Use wiretype_query_samples instead to extract specific values across samples.",
	}, ToolRouteSamples(d))

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "wiretype_query_samples",
		Description: "Run a JQ expression against each retained JSON response body of a route and collect the extracted values. Supports deduplication and a max_results cap. Use this to pull field values (IDs, tokens, enums) out of captured traffic; use wiretype_route_types for structure.",
	}, ToolQuerySamples(d))
}
