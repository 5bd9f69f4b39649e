package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "bare array",
			raw:      `["Milk", "Eggs"]`,
			expected: []string{"Milk", "Eggs"},
		},
		{
			name:     "array wrapped in prose",
			raw:      "Sure! Based on your stock I suggest:\n[\"Frittata\", \"Fried Rice\"]\nEnjoy!",
			expected: []string{"Frittata", "Fried Rice"},
		},
		{
			name:     "array in code fence",
			raw:      "```json\n[\"Pasta\"]\n```",
			expected: []string{"Pasta"},
		},
		{
			name:     "escaped quotes and brackets inside strings",
			raw:      `Here: ["Shepherd\"s [sic] Pie", "Stew"]`,
			expected: []string{`Shepherd"s [sic] Pie`, "Stew"},
		},
		{
			name:     "no array at all",
			raw:      "I could not find any items in this text.",
			expected: []string{},
		},
		{
			name:     "unclosed bracket",
			raw:      `["Milk", "Eggs"`,
			expected: []string{},
		},
		{
			name:     "array of objects is not a string list",
			raw:      `[{"name": "Milk"}]`,
			expected: []string{},
		},
		{
			name:     "first balanced candidate malformed, later one valid",
			raw:      `[broken] then ["Soup"]`,
			expected: []string{"Soup"},
		},
		{
			name:     "empty array",
			raw:      "Nothing edible found: []",
			expected: []string{},
		},
		{
			name:     "blank entries are dropped",
			raw:      `["Milk", "  ", ""]`,
			expected: []string{"Milk"},
		},
		{
			name:     "empty input",
			raw:      "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONArray(tt.raw))
		})
	}
}

func TestRecipeSuggestionPrompt_IncludesExclusions(t *testing.T) {
	prompt := RecipeSuggestionPrompt([]string{"Eggs", "Cheese"}, []string{"Omelette"})
	assert.Contains(t, prompt, "Eggs, Cheese")
	assert.Contains(t, prompt, "Never suggest these dishes: Omelette")
}

func TestRecipeSuggestionPrompt_NoExclusions(t *testing.T) {
	prompt := RecipeSuggestionPrompt([]string{"Eggs"}, nil)
	assert.NotContains(t, prompt, "Never suggest")
}

func TestDisabledGenerator(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}
