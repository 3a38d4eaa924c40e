package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Primitives(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind Kind
	}{
		{"null", `null`, Null},
		{"bool", `true`, Bool},
		{"number", `3.14`, Number},
		{"string", `"hello"`, String},
		{"array", `[1, 2]`, Array},
		{"object", `{"a": 1}`, Object},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind)
		})
	}
}

func TestDecode_ObjectFieldsSorted(t *testing.T) {
	v, err := Decode([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`))
	require.NoError(t, err)
	require.Equal(t, Object, v.Kind)

	names := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, names)
}

func TestDecode_Nested(t *testing.T) {
	v, err := Decode([]byte(`{"user": {"id": 7, "tags": ["a", "b"]}}`))
	require.NoError(t, err)

	user := v.Lookup("user")
	require.NotNil(t, user)
	assert.Equal(t, Object, user.Kind)

	id := user.Lookup("id")
	require.NotNil(t, id)
	assert.Equal(t, Number, id.Kind)
	assert.Equal(t, 7.0, id.Num)

	tags := user.Lookup("tags")
	require.NotNil(t, tags)
	assert.Equal(t, Array, tags.Kind)
	assert.Len(t, tags.Items, 2)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"truncated":`))
	assert.Error(t, err)
}

func TestInterface_RoundTrip(t *testing.T) {
	v, err := Decode([]byte(`{"a": [1, null, "x"], "b": true}`))
	require.NoError(t, err)

	got := v.Interface()
	want := map[string]any{
		"a": []any{1.0, nil, "x"},
		"b": true,
	}
	assert.Equal(t, want, got)
}

func TestInterface_CyclicValueTerminates(t *testing.T) {
	v := &Value{Kind: Object}
	v.Fields = append(v.Fields, Field{Name: "self", Value: v})

	got := v.Interface()
	obj, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Nil(t, obj["self"])
}

func TestLookup_Missing(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.Nil(t, v.Lookup("b"))
	assert.Nil(t, (*Value)(nil).Lookup("a"))
}
