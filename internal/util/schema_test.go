package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	Query    string  `json:"query" description:"What to look for"`
	Limit    *int    `json:"limit,omitempty" description:"Maximum results"`
	Exact    bool    `json:"exact,omitempty"`
	Score    float64 `json:"score"`
	internal string
}

func TestSchemaFromStruct(t *testing.T) {
	schema := SchemaFromStruct(sampleArgs{})

	assert.Equal(t, "object", schema["type"])
	assert.ElementsMatch(t, []string{"query", "score"}, schema["required"])

	props := schema["properties"].(map[string]any)
	require.NotContains(t, props, "internal")

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "What to look for", query["description"])

	assert.Equal(t, "integer", props["limit"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["exact"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])
}

func TestValidateParametersMissingRequired(t *testing.T) {
	schema := SchemaFromStruct(sampleArgs{})
	err := ValidateParameters(map[string]any{"query": "recursion"}, schema)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "score", vErr.Field)
}

func TestValidateParametersTypeMismatch(t *testing.T) {
	schema := SchemaFromStruct(sampleArgs{})
	err := ValidateParameters(map[string]any{"query": 42, "score": 1.0}, schema)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "query", vErr.Field)
}

func TestValidateParametersJSONNumbers(t *testing.T) {
	schema := SchemaFromStruct(sampleArgs{})

	// JSON decodes every number to float64; whole floats satisfy integer.
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"query":"x","score":0.5,"limit":3}`), &params))
	assert.NoError(t, ValidateParameters(params, schema))

	require.NoError(t, json.Unmarshal([]byte(`{"query":"x","score":1,"limit":2.5}`), &params))
	err := ValidateParameters(params, schema)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "limit", vErr.Field)
}

func TestValidateParametersRequiredFromJSONSchema(t *testing.T) {
	// Hand-written schemas that round-tripped through JSON carry []any.
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"query": map[string]any{"type": "string"}},
		"required":   []any{"query"},
	}
	err := ValidateParameters(map[string]any{}, schema)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "query", vErr.Field)

	assert.NoError(t, ValidateParameters(map[string]any{"query": "ok", "extra": true}, schema))
}
