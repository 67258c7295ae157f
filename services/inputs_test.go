package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInputs(t *testing.T) {
	t.Run("should strip type annotations and coerce values", func(t *testing.T) {
		typed := CoerceInputs(map[string]string{
			"count:number":    "3.5",
			"enabled:boolean": "true",
			"name:string":     "zest",
			"plain":           "value",
		})

		assert.Equal(t, map[string]any{
			"count":   3.5,
			"enabled": true,
			"name":    "zest",
			"plain":   "value",
		}, typed)
	})

	t.Run("should keep unparsable annotated values as strings", func(t *testing.T) {
		typed := CoerceInputs(map[string]string{
			"count:number":    "not-a-number",
			"enabled:boolean": "maybe",
		})

		assert.Equal(t, map[string]any{
			"count":   "not-a-number",
			"enabled": "maybe",
		}, typed)
	})

	t.Run("should leave unknown annotations untouched", func(t *testing.T) {
		typed := CoerceInputs(map[string]string{
			"payload:json": "{}",
		})

		assert.Equal(t, map[string]any{
			"payload:json": "{}",
		}, typed)
	})

	t.Run("should handle empty input", func(t *testing.T) {
		assert.Empty(t, CoerceInputs(nil))
	})
}
