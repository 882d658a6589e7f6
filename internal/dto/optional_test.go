package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Description OptionalString `json:"description"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Description.Set)
		assert.Nil(t, p.Description.Value)
	})

	t.Run("null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &p))
		assert.True(t, p.Description.Set)
		assert.Nil(t, p.Description.Value)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description": "lubang besar"}`), &p))
		assert.True(t, p.Description.Set)
		require.NotNil(t, p.Description.Value)
		assert.Equal(t, "lubang besar", *p.Description.Value)
	})
}

func TestOptionalStringMarshal(t *testing.T) {
	v := "retak memanjang"

	out, err := json.Marshal(OptionalString{Set: true, Value: &v})
	require.NoError(t, err)
	assert.Equal(t, `"retak memanjang"`, string(out))

	out, err = json.Marshal(OptionalString{Set: true})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
