package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryExtractsValues(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"id": float64(1), "name": "ada"},
		map[string]any{"id": float64(2), "name": "grace"},
	}

	result, err := e.Query(inputs, nil, ".id", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, result.Values)
	assert.Equal(t, 2, result.RawCount)
	assert.Empty(t, result.Errors)
	assert.ElementsMatch(t, []string{"sample[0]", "sample[1]"}, result.MatchedLabels)
}

func TestQueryIteratesArrays(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"items": []any{
			map[string]any{"sku": "a"},
			map[string]any{"sku": "b"},
		}},
	}

	result, err := e.Query(inputs, nil, ".items[].sku", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, result.Values)
}

func TestQueryDeduplicate(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"status": "ok"},
		map[string]any{"status": "ok"},
		map[string]any{"status": "degraded"},
	}

	result, err := e.Query(inputs, nil, ".status", true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"ok", "degraded"}, result.Values)
	assert.Equal(t, 3, result.RawCount, "raw count is pre-dedup")
}

func TestQueryMaxResults(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"n": float64(1)},
		map[string]any{"n": float64(2)},
		map[string]any{"n": float64(3)},
	}

	result, err := e.Query(inputs, nil, ".n", false, 2)
	require.NoError(t, err)
	assert.Len(t, result.Values, 2)
}

func TestQueryLabelsInErrors(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"items": nil},
	}

	result, err := e.Query(inputs, []string{"sample[0] status=200"}, ".items[]", false, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "sample[0] status=200")
	assert.Contains(t, result.Errors[0], "the path may not exist")
}

func TestQueryInvalidExpression(t *testing.T) {
	e := NewEngine()

	_, err := e.Query([]any{map[string]any{}}, nil, ".items[", false, 0)
	assert.Error(t, err)

	assert.Error(t, e.ValidateExpression(".items["))
	assert.NoError(t, e.ValidateExpression(".items[] | select(.active)"))
}

func TestQuerySkipsNullResults(t *testing.T) {
	e := NewEngine()

	inputs := []any{
		map[string]any{"maybe": nil},
		map[string]any{"maybe": "present"},
	}

	result, err := e.Query(inputs, nil, ".maybe", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"present"}, result.Values)
}
