package llm

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchemaDoc = `{
	"title": "Interview Questions",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"level": {"type": "string", "enum": ["Strong Evidence", "Some Evidence"]},
			"score": {"type": "number", "minimum": 0, "maximum": 100}
		},
		"required": ["id", "level"]
	}
}`

func TestSchema_UnmarshalFromJSONSchema(t *testing.T) {
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(testSchemaDoc), &schema))

	assert.Equal(t, "array", schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, []string{"id", "level"}, schema.Items.Required)
	require.NotNil(t, schema.Items.Properties["score"].Maximum)
	assert.Equal(t, 100.0, *schema.Items.Properties["score"].Maximum)
}

func TestSchema_ToGenai(t *testing.T) {
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(testSchemaDoc), &schema))

	converted := schema.toGenai()
	assert.Equal(t, genai.TypeArray, converted.Type)
	require.NotNil(t, converted.Items)
	assert.Equal(t, genai.TypeObject, converted.Items.Type)
	assert.Equal(t, genai.TypeString, converted.Items.Properties["id"].Type)
	assert.Equal(t, genai.TypeNumber, converted.Items.Properties["score"].Type)

	level := converted.Items.Properties["level"]
	assert.Equal(t, "enum", level.Format)
	assert.Equal(t, []string{"Strong Evidence", "Some Evidence"}, level.Enum)
}

func TestSchema_ToGenaiNil(t *testing.T) {
	var schema *Schema
	assert.Nil(t, schema.toGenai())
}

func TestSchema_Name(t *testing.T) {
	var schema *Schema
	assert.Equal(t, "response", schema.Name())
	assert.Equal(t, "Interview_Questions", (&Schema{Title: "Interview Questions"}).Name())
}

func TestSchema_Map(t *testing.T) {
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(testSchemaDoc), &schema))

	m, err := schema.Map()
	require.NoError(t, err)
	assert.Equal(t, "array", m["type"])
	items, ok := m["items"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, items, "properties")
}
