package typegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarationName(t *testing.T) {
	tests := []struct {
		class   string
		isError bool
		want    string
	}{
		{"2xx", false, "UsersSuccess2xxResponse"},
		{"3xx", false, "UsersRedirect3xxResponse"},
		{"4xx", true, "UsersClientError4xxErrorResponse"},
		{"5xx", true, "UsersServerError5xxErrorResponse"},
		{"other", false, "UsersOtherStatusResponse"},
		{"other", true, "UsersOtherStatusErrorResponse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeclarationName("Users", tt.class, tt.isError))
	}
}

func TestRenderDeclarations_SingleGroup(t *testing.T) {
	text, ok := RenderDeclarations("Users", []RenderedGroup{
		{Class: "2xx", Fields: []FieldType{
			{Name: "id", Type: "number"},
			{Name: "name", Type: "string | null"},
		}},
	})
	require.True(t, ok)
	assert.Equal(t, "interface UsersSuccess2xxResponse {\n  id: number;\n  name: string | null;\n}", text)
}

func TestRenderDeclarations_MultipleGroupsBlankLineSeparated(t *testing.T) {
	text, ok := RenderDeclarations("Users", []RenderedGroup{
		{Class: "2xx", Fields: []FieldType{{Name: "id", Type: "number"}}},
		{Class: "4xx", IsError: true, Fields: []FieldType{{Name: "error", Type: "string"}}},
	})
	require.True(t, ok)
	want := "interface UsersSuccess2xxResponse {\n  id: number;\n}\n\n" +
		"interface UsersClientError4xxErrorResponse {\n  error: string;\n}"
	assert.Equal(t, want, text)
}

func TestRenderDeclarations_QuotesNonBareNames(t *testing.T) {
	text, ok := RenderDeclarations("Api", []RenderedGroup{
		{Class: "2xx", Fields: []FieldType{
			{Name: "content-type", Type: "string"},
			{Name: "$ref", Type: "string"},
			{Name: "_private", Type: "boolean"},
			{Name: "2fa", Type: "boolean"},
		}},
	})
	require.True(t, ok)
	assert.Contains(t, text, `"content-type": string;`)
	assert.Contains(t, text, "$ref: string;")
	assert.Contains(t, text, "_private: boolean;")
	assert.Contains(t, text, `"2fa": boolean;`)
}

func TestRenderDeclarations_EmptyFieldMap(t *testing.T) {
	text, ok := RenderDeclarations("Ping", []RenderedGroup{{Class: "2xx"}})
	require.True(t, ok)
	assert.Equal(t, "interface PingSuccess2xxResponse {}", text)
}

func TestRenderDeclarations_NoGroups(t *testing.T) {
	text, ok := RenderDeclarations("Users", nil)
	assert.False(t, ok)
	assert.Empty(t, text)
}
