package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"success":true,"slave_id":1,"address":0,"values":[1,2,3]}`))
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Contains(t, env.Fields, "values")
	assert.NotContains(t, env.Fields, "success")

	env, err = DecodeEnvelope([]byte(`{"success":false}`))
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Empty(t, env.Fields)
}

func TestDecodeEnvelopeRejectsNonEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>device busy</html>"},
		{name: "json array", body: `[1,2,3]`},
		{name: "missing success", body: `{"values":[1]}`},
		{name: "non-boolean success", body: `{"success":"yes"}`},
		{name: "empty body", body: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
