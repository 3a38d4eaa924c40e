package typegen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

func decodeAll(t *testing.T, raws ...string) []*sample.Value {
	t.Helper()
	out := make([]*sample.Value, 0, len(raws))
	for _, raw := range raws {
		out = append(out, mustDecode(t, raw))
	}
	return out
}

func TestAggregate_UnionAcrossSamples(t *testing.T) {
	fields, err := Aggregate(decodeAll(t, `{"a": 1}`, `{"a": "x"}`, `{"a": null}`), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldType{Name: "a", Type: "number | string | null"}, fields[0])
}

func TestAggregate_OptionalFromAbsence(t *testing.T) {
	fields, err := Aggregate(decodeAll(t, `{"a": 1}`, `{}`), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldType{Name: "a", Type: "number | undefined"}, fields[0])
}

func TestAggregate_NullableAndOptional(t *testing.T) {
	fields, err := Aggregate(decodeAll(t, `{"a": 1}`, `{"a": null}`, `{}`), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "number | null | undefined", fields[0].Type)
}

func TestAggregate_NonObjectSamplesIgnored(t *testing.T) {
	// Arrays and primitives neither contribute fields nor count toward the
	// absence denominator.
	fields, err := Aggregate(decodeAll(t, `{"a": 1}`, `[1, 2]`, `"loose string"`, `null`), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldType{Name: "a", Type: "number"}, fields[0])
}

func TestAggregate_EmptyInput(t *testing.T) {
	fields, err := Aggregate(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestAggregate_FieldsSortedByName(t *testing.T) {
	fields, err := Aggregate(decodeAll(t, `{"zebra": 1, "apple": true}`), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "apple", fields[0].Name)
	assert.Equal(t, "zebra", fields[1].Name)
}

func TestAggregate_DeterministicUnderPermutation(t *testing.T) {
	raws := []string{
		`{"a": 1, "b": "x"}`,
		`{"a": "y", "c": [1, 2]}`,
		`{"b": null}`,
		`{"a": true, "b": "z", "c": []}`,
	}

	baseline, err := Aggregate(decodeAll(t, raws...), Options{})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]string, len(raws))
		copy(shuffled, raws)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Aggregate(decodeAll(t, shuffled...), Options{})
		require.NoError(t, err)
		assert.Equal(t, baseline, got)
	}
}

func TestAggregate_NestedShapes(t *testing.T) {
	fields, err := Aggregate(decodeAll(t,
		`{"user": {"id": 1, "name": "a"}}`,
		`{"user": {"id": 2}}`,
	), Options{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	// Field-level optionality applies to top-level fields; nested records
	// are unioned structurally.
	assert.Equal(t, "{ id: number } | { id: number; name: string }", fields[0].Type)
}
