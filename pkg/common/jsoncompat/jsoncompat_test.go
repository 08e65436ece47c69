package jsoncompat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Id    int     `json:"id"`
	Title string  `json:"title"`
	Rate  float64 `json:"rate,omitempty"`
}

func TestUnmarshalArray(t *testing.T) {
	var out []payload
	err := Unmarshal([]byte(`[{"id":1,"title":"Backpack","rate":3.9},{"id":2,"title":"Shirt"}]`), &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Backpack", out[0].Title)
	assert.Equal(t, 3.9, out[0].Rate)
	assert.Equal(t, 2, out[1].Id)
}

func TestUnmarshalInvalid(t *testing.T) {
	var out []payload
	assert.Error(t, Unmarshal([]byte(`{"id":`), &out))
}

func TestMarshalOmitsEmpty(t *testing.T) {
	data, err := Marshal(payload{Id: 3, Title: "Ring"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"Ring"}`, string(data))
}
