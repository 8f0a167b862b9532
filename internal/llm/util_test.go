package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n[1, 2]\n```",
			expected: `[1, 2]`,
		},
		{
			name:     "inline fence without newline",
			input:    "```{\"key\": \"value\"}```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```  ",
			expected: `{}`,
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(DefaultOpenAIConfig(), "")
	assert.Error(t, err)

	_, err = NewClient(t.Context(), DefaultOpenAIConfig(), "")
	assert.Error(t, err)

	_, err = NewClient(t.Context(), DefaultGeminiConfig(), "")
	assert.Error(t, err)
}

func TestOpenAIClient_GetModel(t *testing.T) {
	client, err := NewOpenAIClient(nil, "test-key")
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.GetModel(TierAdvanced))
	assert.NoError(t, client.Close())
}
