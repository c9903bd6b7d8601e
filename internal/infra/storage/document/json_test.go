package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type item struct {
		N int `json:"n"`
	}

	var ok map[string]item
	require.NoError(t, DecodeJSON([]byte("{\"a\": {\"n\": 1}, \"b\": {\"n\": 2}}\n"), &ok))
	assert.Equal(t, map[string]item{"a": {N: 1}, "b": {N: 2}}, ok)

	rejected := map[string]string{
		"trailing bracket": `{"a": {"n": 1}}]`,
		"trailing brace":   `{}}`,
		"second value":     `{} {}`,
		"duplicate key":    `{"a": {"n": 1}, "a": {"n": 2}}`,
		"unknown field":    `{"a": {"n": 1, "m": 2}}`,
	}
	for name, payload := range rejected {
		t.Run(name, func(t *testing.T) {
			var v map[string]item
			assert.Error(t, DecodeJSON([]byte(payload), &v))
		})
	}
}
