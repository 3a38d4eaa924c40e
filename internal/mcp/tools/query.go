package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// QuerySamplesInput is the input for wiretype_query_samples.
type QuerySamplesInput struct {
	RouteID     string `json:"route_id" jsonschema:"route ID from wiretype_list_routes"`
	Expression  string `json:"expression" jsonschema:"JQ expression to run against each sample body, e.g. '.items[].id'"`
	Deduplicate bool   `json:"deduplicate,omitempty" jsonschema:"drop duplicate values across samples"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"cap on extracted values (default 100)"`
}

// QuerySamplesOutput is the output for wiretype_query_samples.
type QuerySamplesOutput struct {
	RouteID        string   `json:"route_id"`
	Values         []any    `json:"values"`
	Errors         []string `json:"errors,omitempty"`
	RawCount       int      `json:"raw_count"`
	SamplesQueried int      `json:"samples_queried"`
	Hint           string   `json:"hint,omitempty"`
}

const defaultQueryMaxResults = 100

// ToolQuerySamples runs a JQ expression across a route's retained response
// bodies and returns the extracted values.
func ToolQuerySamples(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySamplesInput) (*sdkmcp.CallToolResult, QuerySamplesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QuerySamplesInput) (*sdkmcp.CallToolResult, QuerySamplesOutput, error) {
		if input.RouteID == "" {
			return nil, QuerySamplesOutput{}, ErrInvalidInput("route_id is required")
		}
		if input.Expression == "" {
			return nil, QuerySamplesOutput{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QuerySamplesOutput{}, ErrInvalidInput(err.Error())
		}

		observations, ok := d.Store.Observations(input.RouteID)
		if !ok {
			return nil, QuerySamplesOutput{}, ErrNotFound("route", input.RouteID)
		}

		inputs := make([]any, 0, len(observations))
		labels := make([]string, 0, len(observations))
		for i, obs := range observations {
			if obs.Value == nil {
				continue
			}
			inputs = append(inputs, obs.Value.Interface())
			labels = append(labels, fmt.Sprintf("sample[%d] status=%d", i, obs.StatusCode))
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultQueryMaxResults
		}

		result, err := d.Query.Query(inputs, labels, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, QuerySamplesOutput{}, ErrInvalidInput(err.Error())
		}

		output := QuerySamplesOutput{
			RouteID:        input.RouteID,
			Values:         result.Values,
			Errors:         result.Errors,
			RawCount:       result.RawCount,
			SamplesQueried: len(inputs),
		}
		if len(inputs) == 0 {
			output.Hint = "no JSON response bodies retained for this route"
		}
		return nil, output, nil
	}
}
