package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wiretype-mcp/internal/query"
	"github.com/usestring/wiretype-mcp/internal/routes"
	"github.com/usestring/wiretype-mcp/pkg/sample"
	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

func seededDeps(t *testing.T) (*Deps, routes.Route) {
	t.Helper()

	store := routes.NewStore(typegen.NewEngine(typegen.Options{}), 50)
	route := routes.Route{
		ID:       routes.RouteID("api.example.com", "GET", "/users/{id}"),
		Host:     "api.example.com",
		Method:   "GET",
		Template: "/users/{id}",
		BaseName: "GetUsersById",
	}

	for _, raw := range []string{`{"id": 1, "name": "ada"}`, `{"id": 2, "name": "grace"}`} {
		v, err := sample.Decode([]byte(raw))
		require.NoError(t, err)
		store.Record(route, typegen.Observation{Value: v, StatusCode: 200})
	}
	v, err := sample.Decode([]byte(`{"error": "not found"}`))
	require.NoError(t, err)
	store.Record(route, typegen.Observation{Value: v, StatusCode: 404})

	return &Deps{Store: store, Query: query.NewEngine()}, route
}

func TestToolListRoutes(t *testing.T) {
	d, route := seededDeps(t)
	handler := ToolListRoutes(d)

	_, output, err := handler(context.Background(), nil, ListRoutesInput{})
	require.NoError(t, err)
	require.Len(t, output.Routes, 1)
	assert.Equal(t, route.ID, output.Routes[0].RouteID)
	assert.Equal(t, 3, output.Routes[0].SampleCount)
	assert.Equal(t, map[string]int{"2xx": 2, "4xx": 1}, output.Routes[0].StatusProfile)
	assert.False(t, output.Routes[0].HasTypes)

	_, filtered, err := handler(context.Background(), nil, ListRoutesInput{Method: "POST"})
	require.NoError(t, err)
	assert.Empty(t, filtered.Routes)

	_, _, err = handler(context.Background(), nil, ListRoutesInput{StatusClass: "20x"})
	require.Error(t, err)
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolRouteTypes(t *testing.T) {
	d, route := seededDeps(t)
	handler := ToolRouteTypes(d)

	_, output, err := handler(context.Background(), nil, RouteTypesInput{RouteID: route.ID})
	require.NoError(t, err)
	assert.True(t, output.Changed)
	assert.Contains(t, output.Declarations, "interface GetUsersByIdSuccess2xxResponse")
	assert.Contains(t, output.Declarations, "interface GetUsersByIdClientError4xxErrorResponse")
	assert.Regexp(t, `^[0-9a-f]{8}$`, output.Signature)
	assert.Equal(t, 3, output.SampleCount)

	// Second call over unchanged traffic reports changed=false.
	_, again, err := handler(context.Background(), nil, RouteTypesInput{RouteID: route.ID})
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, output.Signature, again.Signature)

	_, _, err = handler(context.Background(), nil, RouteTypesInput{RouteID: "missing"})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeNotFound, coded.Code)

	_, _, err = handler(context.Background(), nil, RouteTypesInput{})
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolRouteSamples(t *testing.T) {
	d, route := seededDeps(t)
	handler := ToolRouteSamples(d)

	_, output, err := handler(context.Background(), nil, RouteSamplesInput{RouteID: route.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, output.Total)
	require.Len(t, output.Samples, 3)
	assert.Equal(t, "2xx", output.Samples[0].StatusClass)
	assert.False(t, output.Samples[0].IsError)
	assert.True(t, output.Samples[0].HasBody)

	_, errors4xx, err := handler(context.Background(), nil, RouteSamplesInput{RouteID: route.ID, StatusClass: "4xx"})
	require.NoError(t, err)
	require.Len(t, errors4xx.Samples, 1)
	assert.True(t, errors4xx.Samples[0].IsError)

	_, limited, err := handler(context.Background(), nil, RouteSamplesInput{RouteID: route.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, limited.Total)
	assert.Len(t, limited.Samples, 2)
}

func TestToolQuerySamples(t *testing.T) {
	d, route := seededDeps(t)
	handler := ToolQuerySamples(d)

	_, output, err := handler(context.Background(), nil, QuerySamplesInput{
		RouteID:    route.ID,
		Expression: ".name",
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"ada", "grace"}, output.Values)
	assert.Equal(t, 3, output.SamplesQueried)

	_, _, err = handler(context.Background(), nil, QuerySamplesInput{RouteID: route.ID, Expression: ".name["})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}
