package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexNoFilterMeansUnscoped(t *testing.T) {
	ix := NewIndex()
	ix.Add("r1", "api.example.com", "GET", "2xx")

	assert.Nil(t, ix.RouteIDs(Filter{}), "empty filter should skip scoping entirely")
}

func TestIndexIntersection(t *testing.T) {
	ix := NewIndex()
	ix.Add("users", "api.example.com", "GET", "2xx")
	ix.Add("users", "api.example.com", "GET", "4xx")
	ix.Add("orders", "api.example.com", "POST", "2xx")
	ix.Add("health", "ops.example.com", "GET", "2xx")

	byHost := ix.RouteIDs(Filter{Host: "api.example.com"})
	require.NotNil(t, byHost)
	assert.Len(t, byHost, 2)
	assert.Contains(t, byHost, "users")
	assert.Contains(t, byHost, "orders")

	byBoth := ix.RouteIDs(Filter{Host: "api.example.com", Method: "GET"})
	assert.Len(t, byBoth, 1)
	assert.Contains(t, byBoth, "users")

	byClass := ix.RouteIDs(Filter{StatusClass: "4xx"})
	assert.Len(t, byClass, 1)
	assert.Contains(t, byClass, "users")

	miss := ix.RouteIDs(Filter{Host: "ops.example.com", StatusClass: "4xx"})
	assert.Empty(t, miss)

	unknown := ix.RouteIDs(Filter{Host: "nowhere.example.com"})
	assert.Empty(t, unknown)
	assert.NotNil(t, unknown, "unknown key should yield an empty set, not unscoped")
}
