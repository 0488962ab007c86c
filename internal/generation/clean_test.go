package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"fence with whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanResponse(tc.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("object amid prose", func(t *testing.T) {
		got, ok := extractJSONObject(`Sure! Here it is: {"a": {"b": 2}} hope that helps`)
		require.True(t, ok)
		assert.Equal(t, `{"a": {"b": 2}}`, got)
	})

	t.Run("braces inside strings ignored", func(t *testing.T) {
		got, ok := extractJSONObject(`{"text": "closing } brace and \" quote"}`)
		require.True(t, ok)
		assert.Equal(t, `{"text": "closing } brace and \" quote"}`, got)
	})

	t.Run("unbalanced input", func(t *testing.T) {
		_, ok := extractJSONObject(`{"a": 1`)
		assert.False(t, ok)
	})

	t.Run("no object at all", func(t *testing.T) {
		_, ok := extractJSONObject("nothing here")
		assert.False(t, ok)
	})

	t.Run("first top-level object wins", func(t *testing.T) {
		got, ok := extractJSONObject(`{"first": 1} {"second": 2}`)
		require.True(t, ok)
		assert.Equal(t, `{"first": 1}`, got)
	})
}
