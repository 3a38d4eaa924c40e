package routes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wiretype-mcp/pkg/sample"
	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

func testRoute(host, method, template string) Route {
	return Route{
		ID:       RouteID(host, method, template),
		Host:     host,
		Method:   method,
		Template: template,
		BaseName: BaseName(method, template),
	}
}

func bodyObs(t *testing.T, raw string, status int) typegen.Observation {
	t.Helper()
	v, err := sample.Decode([]byte(raw))
	require.NoError(t, err)
	return typegen.Observation{Value: v, StatusCode: status, ReceivedAt: time.Now().UTC()}
}

func newTestStore(obsCap int) *Store {
	return NewStore(typegen.NewEngine(typegen.Options{}), obsCap)
}

func TestStoreRecordAndGet(t *testing.T) {
	store := newTestStore(10)
	route := testRoute("api.example.com", "GET", "/users/{id}")

	store.Record(route, bodyObs(t, `{"id": 1}`, 200))

	got, ok := store.Get(route.ID)
	require.True(t, ok)
	assert.Equal(t, route, got)

	obs, ok := store.Observations(route.ID)
	require.True(t, ok)
	assert.Len(t, obs, 1)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStoreObservationCap(t *testing.T) {
	store := newTestStore(3)
	route := testRoute("api.example.com", "GET", "/users")

	for i := 0; i < 5; i++ {
		store.Record(route, bodyObs(t, `{"n": 1}`, 200))
	}

	obs, ok := store.Observations(route.ID)
	require.True(t, ok)
	assert.Len(t, obs, 3, "window should retain only the newest observations")

	// Status counts track everything seen, not just the retained window.
	summaries := store.List(Filter{})
	require.Len(t, summaries, 1)
	assert.Equal(t, 5, summaries[0].Count)
}

func TestStoreListOrderAndFilter(t *testing.T) {
	store := newTestStore(10)
	users := testRoute("api.example.com", "GET", "/users")
	orders := testRoute("api.example.com", "POST", "/orders")
	health := testRoute("ops.example.com", "GET", "/health")

	store.Record(users, bodyObs(t, `{"id": 1}`, 200))
	store.Record(users, bodyObs(t, `{"id": 2}`, 200))
	store.Record(users, bodyObs(t, `{"error": "nope"}`, 404))
	store.Record(orders, bodyObs(t, `{"ok": true}`, 201))
	store.Record(health, bodyObs(t, `{"up": true}`, 200))

	all := store.List(Filter{})
	require.Len(t, all, 3)
	assert.Equal(t, users.ID, all[0].ID, "most observed route first")
	assert.Equal(t, 3, all[0].Count)
	assert.Equal(t, map[string]int{"2xx": 2, "4xx": 1}, all[0].StatusProfile)

	posts := store.List(Filter{Method: "POST"})
	require.Len(t, posts, 1)
	assert.Equal(t, orders.ID, posts[0].ID)

	opsHost := store.List(Filter{Host: "ops.example.com"})
	require.Len(t, opsHost, 1)
	assert.Equal(t, health.ID, opsHost[0].ID)

	clientErrors := store.List(Filter{StatusClass: "4xx"})
	require.Len(t, clientErrors, 1)
	assert.Equal(t, users.ID, clientErrors[0].ID)

	none := store.List(Filter{Host: "ops.example.com", Method: "POST"})
	assert.Empty(t, none)
}

func TestStoreSynthesizeTracksSignature(t *testing.T) {
	store := newTestStore(10)
	route := testRoute("api.example.com", "GET", "/users/{id}")

	store.Record(route, bodyObs(t, `{"id": 7, "name": "ada"}`, 200))

	decl, changed, err := store.Synthesize(route.ID)
	require.NoError(t, err)
	require.True(t, changed)
	require.NotNil(t, decl)
	assert.Contains(t, decl.Text, "interface GetUsersByIdSuccess2xxResponse")
	assert.Contains(t, decl.Text, "id: number;")

	// Same window again: unchanged, previous declaration returned.
	again, changed, err := store.Synthesize(route.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, decl, again)

	// New traffic shifts the signature.
	store.Record(route, bodyObs(t, `{"error": "missing"}`, 404))
	next, changed, err := store.Synthesize(route.ID)
	require.NoError(t, err)
	require.True(t, changed)
	assert.NotEqual(t, decl.Signature, next.Signature)
	assert.Contains(t, next.Text, "GetUsersByIdClientError4xxErrorResponse")

	listed := store.List(Filter{})
	require.Len(t, listed, 1)
	assert.True(t, listed[0].HasTypes)
	assert.Equal(t, next.Signature, listed[0].Signature)
}

func TestStoreSynthesizeMissingRoute(t *testing.T) {
	store := newTestStore(10)
	_, _, err := store.Synthesize("nope")
	assert.Error(t, err)
}
