package llm

import (
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "plain JSON",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "no JSON at all",
			input:    "No JSON here",
			expected: "No JSON here",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"a\":1}\n  ",
			expected: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple object",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before object",
			input:    "Voici le résultat de l'analyse :\n{\"resume_executif\": \"ok\"}",
			expected: `{"resume_executif": "ok"}`,
		},
		{
			name:     "nested objects",
			input:    `{"outer": {"inner": "value"}}`,
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "trailing prose",
			input:    `{"key": "value"} et voilà`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "braces inside string",
			input:    `{"template": "total {prix}"}`,
			expected: `{"template": "total {prix}"}`,
		},
		{
			name:     "escaped quotes",
			input:    `{"msg": "dit \"bonjour\""}`,
			expected: `{"msg": "dit \"bonjour\""}`,
		},
		{
			name:     "truncated object",
			input:    `{"resume_executif": "coupé en plein`,
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "no braces",
			input:    "not json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("ExtractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}
